package docxml

import (
	"strings"

	"github.com/nieomylnieja/refdoc/internal/metadata"
)

// Category markers of the declared keys.
const (
	CategoryType     = 'T'
	CategoryField    = 'F'
	CategoryProperty = 'P'
	CategoryMethod   = 'M'
	CategoryEvent    = 'E'
)

// UnresolvedType is embedded in a canonical key in place of a parameter type
// that has no name, so that the lookup misses instead of failing.
const UnresolvedType = "GEN_ERR"

// byRefKeyMarker replaces [metadata.ByRefMarker] in parameter keys.
const byRefKeyMarker = "@"

// TypeKey returns the canonical key of a type.
func TypeKey(t metadata.TypeRef) string {
	return t.FullName
}

// MemberKey returns the canonical key of a member: the full name of its declaring
// type, a dot and its name, followed by the parameter list for members with
// parameters.
func MemberKey(m metadata.Member) string {
	return memberKey(m.DeclaringType, m.Name, m.Parameters())
}

// EnumValueKey returns the canonical key of a value of the enum type t.
func EnumValueKey(t metadata.TypeRef, name string) string {
	return memberKey(t, name, nil)
}

func memberKey(declaring metadata.TypeRef, name string, params []metadata.Parameter) string {
	key := declaring.FullName + "." + name
	if len(params) == 0 {
		return key
	}
	return key + "(" + ParametersKey(params) + ")"
}

// ParametersKey joins the full type names of the parameters with commas.
// By-reference markers are replaced with '@', the spelling used by documentation keys.
func ParametersKey(params []metadata.Parameter) string {
	names := make([]string, 0, len(params))
	for _, p := range params {
		name := p.Type.FullName
		if name == "" {
			name = UnresolvedType
		}
		names = append(names, strings.ReplaceAll(name, metadata.ByRefMarker, byRefKeyMarker))
	}
	return strings.Join(names, ",")
}

// DeclaredKey prefixes a canonical key with a category marker.
func DeclaredKey(category byte, key string) string {
	return string(category) + ":" + key
}

// Category returns the category marker matching a member kind.
func Category(kind metadata.MemberKind) byte {
	switch kind {
	case metadata.MemberEvent:
		return CategoryEvent
	case metadata.MemberProperty:
		return CategoryProperty
	case metadata.MemberMethod:
		return CategoryMethod
	default:
		return CategoryField
	}
}
