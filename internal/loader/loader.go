// Package loader reads the targets file and loads the libraries it names.
package loader

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/nieomylnieja/refdoc/internal/docxml"
	"github.com/nieomylnieja/refdoc/internal/godoc"
	"github.com/nieomylnieja/refdoc/internal/metadata"
	"github.com/nieomylnieja/refdoc/internal/pathutils"
)

// ErrTargetsMissing is returned when the input directory or the targets file does not exist.
var ErrTargetsMissing = errors.New("targets file not found")

// DocumentationExtension is the extension of documentation record files.
const DocumentationExtension = ".xml"

// Source is a loaded library together with its documentation records.
type Source struct {
	Library *metadata.Library
	Docs    *docxml.Set
}

// ReadTargets returns the library names listed in the targets file, one per line.
// Blank lines are ignored.
func ReadTargets(dir, file string) ([]string, error) {
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return nil, errors.Wrapf(ErrTargetsMissing, "input directory %s does not exist", dir)
	}
	path := filepath.Join(dir, file)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrTargetsMissing, "%s does not exist", path)
		}
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer func() { _ = f.Close() }()

	var targets []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			targets = append(targets, name)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return targets, nil
}

// Load loads the named library from dir.
//
// A descriptor file (see [metadata.FindDescriptor]) is loaded together with the
// documentation file of the same name, which is then required.
// Without a descriptor, a Go module directory of the same name is parsed
// with the Go source loader.
func Load(ctx context.Context, dir, name string) (*Source, error) {
	if path, ok := metadata.FindDescriptor(dir, name); ok {
		return loadDescriptor(dir, name, path)
	}
	moduleDir := filepath.Join(dir, name)
	if pathutils.IsModuleDir(moduleDir) {
		lib, docs, err := godoc.Load(ctx, moduleDir, name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse Go module of library %s", name)
		}
		return &Source{Library: lib, Docs: docs}, nil
	}
	return nil, errors.Errorf("no metadata found for library %s in %s", name, dir)
}

func loadDescriptor(dir, name, path string) (*Source, error) {
	lib, err := metadata.Load(path)
	if err != nil {
		return nil, err
	}
	docsPath := filepath.Join(dir, name+DocumentationExtension)
	if _, err = os.Stat(docsPath); err != nil {
		return nil, errors.Wrapf(err, "documentation file of library %s is missing", name)
	}
	docs, err := docxml.Load(docsPath)
	if err != nil {
		return nil, err
	}
	return &Source{Library: lib, Docs: docs}, nil
}
