// Package mdsyntax holds the naming rules shared by every generated markdown file.
package mdsyntax

import (
	"strings"

	"github.com/nieomylnieja/refdoc/internal/metadata"
)

// Extension of every generated page.
const Extension = ".md"

// filePrefix is prepended to every type's page name.
const filePrefix = "obj"

var nameReplacer = strings.NewReplacer(
	" ", "_", "(", "_", ")", "_", "[", "_", "]", "_",
	`"`, "_", "'", "_", "<", "_", ">", "_", ",", "_",
	"?", "_", "/", "_", "!", "_", "-", "_", "+", "_",
	"=", "_", "`", "_",
)

// FixName replaces every character that is not allowed in a file or link path with '_'.
func FixName(s string) string {
	return nameReplacer.Replace(s)
}

// NeedsFix reports whether [FixName] would alter s.
func NeedsFix(s string) bool {
	return FixName(s) != s
}

// MarkdownFile appends the markdown extension.
func MarkdownFile(name string) string {
	return name + Extension
}

// PageName returns the extension-less name of the page documenting t.
func PageName(t metadata.TypeRef) string {
	return filePrefix + t.Name
}

// Reference returns the link target of the page documenting t,
// as seen from the deployed sidebar.
func Reference(linkPrefix string, t metadata.TypeRef) string {
	return MarkdownFile(linkPrefix + PageName(t))
}

// IndexReference returns the link target of a page listed in the index.
func IndexReference(linkPrefix, pageName string) string {
	return MarkdownFile(linkPrefix + pageName)
}
