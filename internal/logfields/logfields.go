package logfields

import "log/slog"

// Canonical log field names shared across packages.
const (
	KeyLibrary    = "library"
	KeyType       = "type"
	KeyMember     = "member"
	KeyPage       = "page"
	KeyFile       = "file"
	KeyPages      = "pages"
	KeyTypes      = "types"
	KeyLink       = "link"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func Library(name string) slog.Attr   { return slog.String(KeyLibrary, name) }
func Type(fullName string) slog.Attr  { return slog.String(KeyType, fullName) }
func Member(name string) slog.Attr    { return slog.String(KeyMember, name) }
func Page(name string) slog.Attr      { return slog.String(KeyPage, name) }
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func Types(n int) slog.Attr           { return slog.Int(KeyTypes, n) }
func Link(dest string) slog.Attr      { return slog.String(KeyLink, dest) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
