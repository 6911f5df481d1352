// Package metadata describes the declarative type metadata of a documented library.
//
// A [Library] is an immutable snapshot: it is either decoded from a descriptor file
// emitted by the library's build (see [Load]) or produced by static analysis of Go
// sources (see the godoc package). Nothing in the generator mutates it.
package metadata

import "strings"

// TypeKind classifies a [Type]. Only classes and enums are documented.
type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindEnum      TypeKind = "enum"
	KindInterface TypeKind = "interface"
	KindOther     TypeKind = "other"
)

// MemberKind is the category tag of a [Member].
type MemberKind string

const (
	MemberEvent     MemberKind = "event"
	MemberField     MemberKind = "field"
	MemberProperty  MemberKind = "property"
	MemberMethod    MemberKind = "method"
	MemberEnumValue MemberKind = "enumValue"
)

// Library is a loaded library together with every type it declares,
// in the library's enumeration order.
type Library struct {
	Name  string `yaml:"name"`
	Types []Type `yaml:"types"`
}

// TypeRef references a type by name.
//
// Name is the simple name, FullName the namespace-qualified name. Nested types carry
// [NestedMarker] in their FullName, by-reference types end with [ByRefMarker].
// Library is empty for types that do not belong to any loaded library.
type TypeRef struct {
	Name     string `yaml:"name"`
	FullName string `yaml:"fullName,omitempty"`
	Library  string `yaml:"library,omitempty"`
}

const (
	// NestedMarker separates a nested type from its declaring type in a full name.
	NestedMarker = "+"
	// ByRefMarker terminates the name of a by-reference parameter type.
	ByRefMarker = "&"
	// GenericArityMarker separates a generic type name from its arity.
	GenericArityMarker = "`"
)

// IsZero reports whether the reference points at nothing.
func (t TypeRef) IsZero() bool {
	return t.Name == "" && t.FullName == ""
}

// IsByRef reports whether the type is a by-reference type.
func (t TypeRef) IsByRef() bool {
	return strings.HasSuffix(t.Name, ByRefMarker)
}

// IsNested reports whether the type is declared inside another type.
func (t TypeRef) IsNested() bool {
	return strings.Contains(t.FullName, NestedMarker)
}

// Qualified returns FullName, or Name for references that carry no namespace.
func (t TypeRef) Qualified() string {
	if t.FullName != "" {
		return t.FullName
	}
	return t.Name
}

// Type is a single type of a [Library].
type Type struct {
	TypeRef  `yaml:",inline"`
	Kind     TypeKind `yaml:"kind"`
	Public   bool     `yaml:"public"`
	BaseType *TypeRef `yaml:"baseType,omitempty"`
	// Members lists every member visible on the type, including the ones
	// declared on its ancestors.
	Members []Member `yaml:"members,omitempty"`
}

// Ref returns the reference to this type.
func (t Type) Ref() TypeRef {
	return t.TypeRef
}

// MembersOf returns the members of the given category in declaration order.
func (t Type) MembersOf(kind MemberKind) []Member {
	var members []Member
	for _, m := range t.Members {
		if m.Kind == kind {
			members = append(members, m)
		}
	}
	return members
}

// Member is a tagged variant over the member categories.
// Exactly one of the category payloads is set for events, properties and methods;
// fields and enum values carry no payload.
type Member struct {
	Kind          MemberKind `yaml:"kind"`
	Name          string     `yaml:"name"`
	DeclaringType TypeRef    `yaml:"declaringType"`
	// Type is the value type of a field or property, the handler type of an event
	// and the return type of a method.
	Type   TypeRef `yaml:"type,omitempty"`
	Static bool    `yaml:"static,omitempty"`

	Event    *EventInfo    `yaml:"event,omitempty"`
	Property *PropertyInfo `yaml:"property,omitempty"`
	Method   *MethodInfo   `yaml:"method,omitempty"`
}

// EventInfo names the accessor methods of an event.
type EventInfo struct {
	Add    string `yaml:"add,omitempty"`
	Remove string `yaml:"remove,omitempty"`
}

// PropertyInfo names the accessor methods of a property.
// An empty name means the accessor does not exist.
type PropertyInfo struct {
	Getter     string      `yaml:"getter,omitempty"`
	Setter     string      `yaml:"setter,omitempty"`
	Parameters []Parameter `yaml:"parameters,omitempty"`
}

// HasGetter reports whether the property can be read.
func (p *PropertyInfo) HasGetter() bool { return p != nil && p.Getter != "" }

// HasSetter reports whether the property can be written.
func (p *PropertyInfo) HasSetter() bool { return p != nil && p.Setter != "" }

// MethodInfo carries the signature of a method.
type MethodInfo struct {
	Parameters       []Parameter `yaml:"parameters,omitempty"`
	GenericArguments []TypeRef   `yaml:"genericArguments,omitempty"`
	// Results holds every result after the first one, for signatures returning
	// more than one value. The first result is [Member.Type].
	Results  []TypeRef `yaml:"results,omitempty"`
	Public   bool      `yaml:"public"`
	Abstract bool      `yaml:"abstract,omitempty"`
	Virtual  bool      `yaml:"virtual,omitempty"`
}

// Parameter is a single method parameter.
type Parameter struct {
	Name string  `yaml:"name"`
	Type TypeRef `yaml:"type"`
}

// Parameters returns the parameters of a method or an indexed property.
func (m Member) Parameters() []Parameter {
	switch {
	case m.Method != nil:
		return m.Method.Parameters
	case m.Property != nil:
		return m.Property.Parameters
	default:
		return nil
	}
}

// IsAccessor reports whether the method m implements one of the accessors of
// property or event o. Both must be declared on the same type.
func (m Member) IsAccessor(o Member) bool {
	if m.Kind != MemberMethod || m.DeclaringType.Qualified() != o.DeclaringType.Qualified() {
		return false
	}
	switch {
	case o.Property != nil:
		return m.Name == o.Property.Getter || m.Name == o.Property.Setter
	case o.Event != nil:
		return m.Name == o.Event.Add || m.Name == o.Event.Remove
	default:
		return false
	}
}

// ReferencedTypes returns every type referenced by the member's signature,
// including its declaring type.
func (m Member) ReferencedTypes() []TypeRef {
	refs := []TypeRef{m.DeclaringType}
	if !m.Type.IsZero() {
		refs = append(refs, m.Type)
	}
	for _, p := range m.Parameters() {
		refs = append(refs, p.Type)
	}
	if m.Method != nil {
		refs = append(refs, m.Method.GenericArguments...)
		refs = append(refs, m.Method.Results...)
	}
	return refs
}
