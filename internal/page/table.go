package page

import (
	"fmt"
	"strings"

	"github.com/nieomylnieja/refdoc/internal/metadata"
)

// Entry is a single row of a member table.
type Entry struct {
	Name         string
	TypeOrReturn string
	Protection   string
	Description  string
}

// tableStyle describes the title and columns of a member table.
type tableStyle struct {
	title   string
	columns []string
	cells   func(e Entry) []string
}

var tableStyles = map[metadata.MemberKind]tableStyle{
	metadata.MemberEvent: {
		title:   "Events",
		columns: []string{"Name", "Type", "Description"},
		cells:   func(e Entry) []string { return []string{e.Name, e.TypeOrReturn, e.Description} },
	},
	metadata.MemberField: {
		title:   "Fields",
		columns: []string{"Name", "Type", "Description"},
		cells:   func(e Entry) []string { return []string{e.Name, e.TypeOrReturn, e.Description} },
	},
	metadata.MemberProperty: {
		title:   "Properties",
		columns: []string{"Name", "Type", "Protection", "Description"},
		cells:   func(e Entry) []string { return []string{e.Name, e.TypeOrReturn, e.Protection, e.Description} },
	},
	metadata.MemberMethod: {
		title:   "Methods",
		columns: []string{"Name", "Return", "Description"},
		cells:   func(e Entry) []string { return []string{e.Name, e.TypeOrReturn, e.Description} },
	},
	metadata.MemberEnumValue: {
		title:   "Values",
		columns: []string{"Name", "Description"},
		cells:   func(e Entry) []string { return []string{e.Name, e.Description} },
	},
}

// writeTable renders entries as a markdown table. Nothing is written for an empty set.
func writeTable(sb *strings.Builder, kind metadata.MemberKind, static bool, entries []Entry) {
	if len(entries) == 0 {
		return
	}
	style, ok := tableStyles[kind]
	if !ok {
		panic(fmt.Sprintf("unknown member kind %q", kind))
	}
	title := style.title
	if static {
		title = "Static " + title
	}
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("### %s\n\n", title))
	writeRow(sb, style.columns)
	separator := make([]string, len(style.columns))
	for i := range separator {
		separator[i] = "---"
	}
	writeRow(sb, separator)
	for _, e := range entries {
		writeRow(sb, style.cells(e))
	}
}

var cellEscaper = strings.NewReplacer("|", `\|`)

func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("|")
	for _, c := range cells {
		sb.WriteString(" ")
		sb.WriteString(cellEscaper.Replace(c))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}
