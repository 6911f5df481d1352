// Package output writes the generated documentation to the deploy directory.
package output

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/nieomylnieja/refdoc/internal/logfields"
	"github.com/nieomylnieja/refdoc/internal/page"
)

// ReadMeFileName is the name of the copied README inside the deploy directory.
const ReadMeFileName = "README.md"

// Prepare removes the deploy directory with all of its contents and creates it anew.
func Prepare(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, "failed to remove deploy directory %s", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create deploy directory %s", dir)
	}
	return nil
}

// ReadOptional returns the contents of the file at path, or an empty string
// if the path is empty or the file does not exist.
func ReadOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	return string(data), nil
}

// Writer writes files into a single directory.
type Writer struct {
	Dir string
	// Concurrency limits the number of files written at once.
	Concurrency int
	Logger      *slog.Logger
}

// WritePages writes every page to its own file.
// Pages have unique names, so they are written in parallel.
func (w Writer) WritePages(ctx context.Context, pages []page.Page) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(w.Concurrency, 1))
	for _, p := range pages {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return w.WriteFile(p.FileName(), p.Content)
		})
	}
	return group.Wait()
}

// WriteFile writes a single file, replacing any previous contents.
func (w Writer) WriteFile(name, content string) error {
	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	w.logger().Debug("Wrote file", logfields.File(path))
	return nil
}

// CopyReadMe copies the README at src into the directory.
// A missing README is not an error.
func (w Writer) CopyReadMe(src string) (bool, error) {
	content, err := ReadOptional(src)
	if err != nil || content == "" {
		return false, err
	}
	return true, w.WriteFile(ReadMeFileName, content)
}

func (w Writer) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}
