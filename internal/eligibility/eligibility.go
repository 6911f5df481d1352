// Package eligibility decides which types and members may appear in the generated reference.
//
// Every check is a pure boolean decision over the available metadata; nothing here
// reports errors.
package eligibility

import (
	"strings"

	"github.com/nieomylnieja/refdoc/internal/metadata"
)

// Filter holds the configured denylists.
type Filter struct {
	// DisallowedNamespaces are full-name prefixes. A member referencing any
	// type in such a namespace is skipped entirely.
	DisallowedNamespaces []string
	// DisallowedDeclarationTypes are full-name prefixes of types whose
	// declared members are never documented.
	DisallowedDeclarationTypes []string
	// DisallowedTypes are matched against both ends of a full name.
	DisallowedTypes []string
}

// IsTypeEligible reports whether a page may be generated for the type.
func (f Filter) IsTypeEligible(t metadata.Type) bool {
	if !t.Public {
		return false
	}
	return f.IsMemberTypeEligible(t.Ref())
}

// IsMemberTypeEligible reports whether none of the given types is disallowed.
// A single disallowed type vetoes all of them.
func (f Filter) IsMemberTypeEligible(types ...metadata.TypeRef) bool {
	for _, t := range types {
		if t.FullName == "" {
			continue
		}
		// Nested types are not documented.
		if t.IsNested() {
			return false
		}
		if !f.isTypeNameAllowed(t.FullName) {
			return false
		}
		if hasAnyPrefix(t.FullName, f.DisallowedNamespaces) {
			return false
		}
	}
	return true
}

// IsDeclaringTypeEligible reports whether members declared on the type may be documented.
func (f Filter) IsDeclaringTypeEligible(t metadata.TypeRef) bool {
	return !hasAnyPrefix(t.Qualified(), f.DisallowedDeclarationTypes)
}

// IsMemberEligible applies every member rule for member m listed on target:
// the declaring type and referenced types must be allowed, and methods must be
// simple public non-accessor methods.
func (f Filter) IsMemberEligible(target metadata.Type, m metadata.Member) bool {
	if !f.IsDeclaringTypeEligible(m.DeclaringType) {
		return false
	}
	if !f.IsMemberTypeEligible(m.ReferencedTypes()...) {
		return false
	}
	if m.Kind != metadata.MemberMethod {
		return true
	}
	if m.Method == nil || !m.Method.Public || m.Method.Abstract || m.Method.Virtual {
		return false
	}
	return !IsAccessorMethod(target, m)
}

// IsAccessorMethod reports whether the method implements a property or event
// accessor of the type. Such methods are represented by their property or event.
func IsAccessorMethod(t metadata.Type, m metadata.Member) bool {
	for _, o := range t.Members {
		if o.Kind != metadata.MemberProperty && o.Kind != metadata.MemberEvent {
			continue
		}
		if m.IsAccessor(o) {
			return true
		}
	}
	return false
}

// Partition selects own or inherited members.
type Partition int

const (
	// Own members are declared directly on the target type.
	Own Partition = iota
	// Inherited members are declared on an ancestor of the target type.
	Inherited
)

// InPartition reports whether member m of target belongs to the partition p.
func InPartition(target metadata.Type, m metadata.Member, p Partition) bool {
	own := m.DeclaringType.Qualified() == target.Qualified()
	if p == Own {
		return own
	}
	return !own
}

// InStaticPass reports whether the member belongs to the static or the instance pass.
func InStaticPass(m metadata.Member, static bool) bool {
	return m.Static == static
}

func (f Filter) isTypeNameAllowed(fullName string) bool {
	for _, n := range f.DisallowedTypes {
		if strings.HasPrefix(fullName, n) || strings.HasSuffix(fullName, n) {
			return false
		}
	}
	return true
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
