// Package page assembles the markdown page of every documented type and the
// sidebar index listing them.
package page

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/nieomylnieja/refdoc/internal/docxml"
	"github.com/nieomylnieja/refdoc/internal/eligibility"
	"github.com/nieomylnieja/refdoc/internal/logfields"
	"github.com/nieomylnieja/refdoc/internal/mdsyntax"
	"github.com/nieomylnieja/refdoc/internal/metadata"
)

// Page is a generated markdown page.
type Page struct {
	// Name is the extension-less page name, as listed in the index.
	Name    string
	Content string
}

// FileName returns the name of the file the page is written to.
func (p Page) FileName() string {
	return mdsyntax.MarkdownFile(p.Name)
}

// universalRoots are base types which are not worth mentioning.
var universalRoots = map[string]struct{}{
	"System.Object": {},
}

// Assembler composes per-type pages of a single library.
type Assembler struct {
	Library  *metadata.Library
	Tables   *TableBuilder
	Examples Examples
	// LinkPrefix is prepended to every link target.
	LinkPrefix string
	// FileEnd is appended to every page. Empty means no footer.
	FileEnd string
	// Claimed maps page names to the full name of the type owning them.
	// Share it between the assemblers of a single run. Nil tracks names per call.
	Claimed map[string]string
	Logger  *slog.Logger
}

// BuildAll returns the pages of every documented type of the library,
// in the library's enumeration order.
// A page name is owned by the first type claiming it, later types with the
// same name are skipped.
func (a *Assembler) BuildAll() []Page {
	claimed := a.Claimed
	if claimed == nil {
		claimed = make(map[string]string)
	}
	var pages []Page
	for _, t := range a.Library.Types {
		p, ok := a.Build(t)
		if !ok {
			continue
		}
		if owner, taken := claimed[p.Name]; taken {
			a.logger().Debug("Skipping type with a page name already in use",
				logfields.Type(t.FullName), logfields.Page(p.Name), slog.String("owner", owner))
			continue
		}
		claimed[p.Name] = t.FullName
		pages = append(pages, p)
	}
	return pages
}

// Build returns the page documenting t, or false if t is not documented.
func (a *Assembler) Build(t metadata.Type) (Page, bool) {
	if t.Kind != metadata.KindClass && t.Kind != metadata.KindEnum {
		return Page{}, false
	}
	if !a.Tables.Filter.IsTypeEligible(t) {
		a.logger().Debug("Skipping ineligible type", logfields.Type(t.FullName))
		return Page{}, false
	}
	name := mdsyntax.PageName(t.Ref())
	if mdsyntax.NeedsFix(name) {
		a.logger().Debug("Skipping type without a valid file name", logfields.Type(t.FullName))
		return Page{}, false
	}

	var sb strings.Builder
	a.writeHeader(&sb, t)
	a.writeDescription(&sb, t)
	switch t.Kind {
	case metadata.KindClass:
		a.writeClassMembers(&sb, t)
	case metadata.KindEnum:
		a.Tables.BuildEnum(&sb, t)
	}
	a.writeExamples(&sb, t)
	if a.FileEnd != "" {
		sb.WriteString("\n")
		sb.WriteString(a.FileEnd)
		sb.WriteString("\n")
	}
	return Page{Name: name, Content: sb.String()}, true
}

func (a *Assembler) writeHeader(sb *strings.Builder, t metadata.Type) {
	sb.WriteString(fmt.Sprintf("# %s\n", t.Name))
	if t.BaseType != nil && !isUniversalRoot(*t.BaseType) {
		switch t.Kind {
		case metadata.KindClass:
			sb.WriteString(fmt.Sprintf("<small>class in `%s` / inherits from %s</small>\n",
				t.Library, a.Tables.Renderer.RenderPlain(*t.BaseType)))
		case metadata.KindEnum:
			sb.WriteString(fmt.Sprintf("<small>enumeration in `%s`</small>\n", t.Library))
		}
	}
	sb.WriteString("\n")
}

func (a *Assembler) writeDescription(sb *strings.Builder, t metadata.Type) {
	summary, _ := a.Tables.Docs.FindSummary(docxml.TypeKey(t.Ref()))
	sb.WriteString("### Description\n")
	sb.WriteString(summary)
	sb.WriteString("\n")
}

// memberKinds are tabulated in this order.
var memberKinds = []metadata.MemberKind{
	metadata.MemberEvent,
	metadata.MemberField,
	metadata.MemberProperty,
	metadata.MemberMethod,
}

func (a *Assembler) writeClassMembers(sb *strings.Builder, t metadata.Type) {
	for _, static := range []bool{false, true} {
		for _, kind := range memberKinds {
			a.Tables.Build(sb, t, kind, eligibility.Own, static)
		}
	}
	var inherited strings.Builder
	for _, static := range []bool{false, true} {
		for _, kind := range memberKinds {
			a.Tables.Build(&inherited, t, kind, eligibility.Inherited, static)
		}
	}
	if strings.TrimSpace(inherited.String()) == "" {
		return
	}
	sb.WriteString("\n\n## Inherited Members\n")
	sb.WriteString(inherited.String())
	sb.WriteString("\n")
}

func (a *Assembler) writeExamples(sb *strings.Builder, t metadata.Type) {
	path, ok := a.Examples.Find(t)
	if !ok {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		a.logger().Debug("Skipping unreadable example",
			logfields.Type(t.FullName), logfields.File(path), logfields.Error(err))
		return
	}
	sb.WriteString("\n## Examples\n\n")
	sb.WriteString(RewritePlaceholders(string(data), a.Library, a.LinkPrefix))
	sb.WriteString("\n")
}

func isUniversalRoot(t metadata.TypeRef) bool {
	_, ok := universalRoots[t.Qualified()]
	return ok
}

func (a *Assembler) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}
