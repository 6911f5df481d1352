// Package signature renders type references and member signatures as markdown.
package signature

import (
	"strings"

	"github.com/nieomylnieja/refdoc/internal/mdsyntax"
	"github.com/nieomylnieja/refdoc/internal/metadata"
)

// Renderer renders type references, linking the ones that have a page in this run.
type Renderer struct {
	// Libraries is the set of libraries documented in this run.
	Libraries metadata.Set
	// LinkPrefix is prepended to every link target.
	LinkPrefix string
}

// NewRenderer creates a new [Renderer].
func NewRenderer(libraries metadata.Set, linkPrefix string) *Renderer {
	return &Renderer{Libraries: libraries, LinkPrefix: linkPrefix}
}

// RenderTypeReference renders t as inline code, linked to its page when one exists.
func (r *Renderer) RenderTypeReference(t metadata.TypeRef) string {
	return r.render(t, true, "")
}

// RenderPlain renders t like [Renderer.RenderTypeReference] but without code quotes.
func (r *Renderer) RenderPlain(t metadata.TypeRef) string {
	return r.render(t, false, "")
}

// RenderParameterList renders a parenthesized list of parameter types,
// each annotated with the parameter's name.
func (r *Renderer) RenderParameterList(params []metadata.Parameter) string {
	if len(params) == 0 {
		return "()"
	}
	rendered := make([]string, 0, len(params))
	for _, p := range params {
		rendered = append(rendered, r.render(p.Type, true, p.Name))
	}
	return "(" + strings.Join(rendered, ", ") + ")"
}

// RenderReturn renders the result types of a method.
func (r *Renderer) RenderReturn(m metadata.Member) string {
	rendered := r.RenderTypeReference(m.Type)
	if m.Method == nil || len(m.Method.Results) == 0 {
		return rendered
	}
	parts := []string{rendered}
	for _, res := range m.Method.Results {
		parts = append(parts, r.RenderTypeReference(res))
	}
	return strings.Join(parts, ", ")
}

// CanLink reports whether a page exists for t in this run.
func (r *Renderer) CanLink(t metadata.TypeRef) bool {
	if IsBasicType(t) {
		return false
	}
	if !r.Libraries.Contains(t) {
		return false
	}
	// Generic type definitions are not documented individually.
	return !strings.Contains(t.Name, metadata.GenericArityMarker)
}

func (r *Renderer) render(t metadata.TypeRef, quote bool, paramName string) string {
	typeName := mdsyntax.FixName(t.Name)
	if t.IsByRef() {
		typeName = "ref " + strings.TrimSuffix(typeName, metadata.ByRefMarker)
	}
	if paramName != "" {
		typeName += " " + paramName
	}
	if quote {
		typeName = "`" + typeName + "`"
	}
	if !r.CanLink(t) {
		return typeName
	}
	target := t
	target.Name = strings.TrimSuffix(t.Name, metadata.ByRefMarker)
	return "[" + typeName + "](" + mdsyntax.Reference(r.LinkPrefix, target) + ")"
}

// basicTypes are never linked, no page will exist for them.
var basicTypes = map[string]struct{}{
	"System.Int64":    {},
	"System.Int32":    {},
	"System.Int16":    {},
	"System.UInt64":   {},
	"System.UInt32":   {},
	"System.UInt16":   {},
	"System.String":   {},
	"System.Boolean":  {},
	"System.Single":   {},
	"System.Double":   {},
	"System.Object[]": {},
	"System.Void":     {},
	"System.Byte":     {},
	"System.Action":   {},
	"System.Type":     {},
	"int":             {},
	"int8":            {},
	"int16":           {},
	"int32":           {},
	"int64":           {},
	"uint":            {},
	"uint8":           {},
	"uint16":          {},
	"uint32":          {},
	"uint64":          {},
	"uintptr":         {},
	"string":          {},
	"bool":            {},
	"float32":         {},
	"float64":         {},
	"[]any":           {},
	"[]interface {}":  {},
	"void":            {},
	"byte":            {},
	"rune":            {},
	"reflect.Type":    {},
}

// IsBasicType reports whether t is one of the built-in types.
func IsBasicType(t metadata.TypeRef) bool {
	if _, ok := basicTypes[strings.TrimSuffix(t.Qualified(), metadata.ByRefMarker)]; ok {
		return true
	}
	name := strings.TrimSuffix(t.Name, metadata.ByRefMarker)
	switch {
	case strings.Contains(name, "Action"), strings.HasPrefix(name, "func("):
		return true
	case name == "T":
		return true
	case strings.EqualFold(name, "object"):
		return true
	default:
		return false
	}
}
