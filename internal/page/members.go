package page

import (
	"log/slog"
	"strings"

	"github.com/nieomylnieja/refdoc/internal/docxml"
	"github.com/nieomylnieja/refdoc/internal/eligibility"
	"github.com/nieomylnieja/refdoc/internal/logfields"
	"github.com/nieomylnieja/refdoc/internal/metadata"
	"github.com/nieomylnieja/refdoc/internal/signature"
)

// TableBuilder renders the member tables of a type.
type TableBuilder struct {
	Filter   eligibility.Filter
	Renderer *signature.Renderer
	Docs     *docxml.Set
	Logger   *slog.Logger
}

// protectionNotAvailable is displayed for a property without accessors.
const protectionNotAvailable = docxml.NotAvailable

// Build writes the table of kind members of t which belong to the given partition
// and pass. Events, fields, properties and methods are supported.
func (b *TableBuilder) Build(sb *strings.Builder, t metadata.Type, kind metadata.MemberKind, p eligibility.Partition, static bool) {
	writeTable(sb, kind, static, b.Entries(t, kind, p, static))
}

// Entries returns the rows of the kind members of t which belong to the given
// partition and pass.
func (b *TableBuilder) Entries(t metadata.Type, kind metadata.MemberKind, p eligibility.Partition, static bool) []Entry {
	var entries []Entry
	for _, m := range t.MembersOf(kind) {
		if !eligibility.InStaticPass(m, static) {
			continue
		}
		if !eligibility.InPartition(t, m, p) {
			continue
		}
		if !b.Filter.IsMemberEligible(t, m) {
			b.logger().Debug("Skipping member",
				logfields.Type(t.FullName),
				logfields.Member(m.Name),
				slog.String("kind", string(kind)))
			continue
		}
		entries = append(entries, b.entry(m))
	}
	return entries
}

// BuildEnum writes the value table of an enum type. Values are neither filtered
// nor partitioned.
func (b *TableBuilder) BuildEnum(sb *strings.Builder, t metadata.Type) {
	values := t.MembersOf(metadata.MemberEnumValue)
	entries := make([]Entry, 0, len(values))
	for _, v := range values {
		description, _ := b.Docs.FindSummary(docxml.EnumValueKey(t.Ref(), v.Name))
		entries = append(entries, Entry{
			Name:        v.Name,
			Description: description,
		})
	}
	writeTable(sb, metadata.MemberEnumValue, false, entries)
}

func (b *TableBuilder) entry(m metadata.Member) Entry {
	description, _ := b.Docs.FindSummary(docxml.MemberKey(m))
	e := Entry{
		Name:        "`" + m.Name + "`",
		Description: description,
	}
	switch m.Kind {
	case metadata.MemberMethod:
		e.Name += b.Renderer.RenderParameterList(m.Parameters())
		e.TypeOrReturn = b.Renderer.RenderReturn(m)
	case metadata.MemberProperty:
		e.TypeOrReturn = b.Renderer.RenderTypeReference(m.Type)
		e.Protection = protection(m.Property)
	default:
		e.TypeOrReturn = b.Renderer.RenderTypeReference(m.Type)
	}
	return e
}

func protection(p *metadata.PropertyInfo) string {
	var markers []string
	if p.HasGetter() {
		markers = append(markers, "`get;`")
	}
	if p.HasSetter() {
		markers = append(markers, "`set;`")
	}
	if len(markers) == 0 {
		return protectionNotAvailable
	}
	return strings.Join(markers, " ")
}

func (b *TableBuilder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}
