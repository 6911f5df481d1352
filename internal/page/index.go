package page

import (
	"fmt"
	"strings"

	"github.com/nieomylnieja/refdoc/internal/mdsyntax"
)

// IndexOptions configures the sidebar index.
type IndexOptions struct {
	// Title is the heading item under which pages are listed.
	Title string
	// LinkPrefix is prepended to every page link.
	LinkPrefix string
	// Before and After are boilerplate fragments. Empty fragments are omitted.
	Before string
	After  string
}

// BuildIndex renders the sidebar listing every generated page, in generation order.
func BuildIndex(opts IndexOptions, pageNames []string) string {
	var sb strings.Builder
	if opts.Before != "" {
		sb.WriteString(opts.Before)
		sb.WriteString("\n\n")
	}
	sb.WriteString(fmt.Sprintf("- %s\n", opts.Title))
	for _, name := range pageNames {
		sb.WriteString(fmt.Sprintf(" - [%s](%s)\n", name, mdsyntax.IndexReference(opts.LinkPrefix, name)))
	}
	if opts.After != "" {
		sb.WriteString("\n")
		sb.WriteString(opts.After)
		sb.WriteString("\n")
	}
	return sb.String()
}
