package typeinfo

import (
	"go/types"
	"strconv"

	"github.com/nieomylnieja/refdoc/internal/metadata"
)

// LibraryResolver returns the documented library a package belongs to,
// or an empty string if the package is not documented.
type LibraryResolver func(pkgPath string) string

// Get returns the [metadata.TypeRef] for the [types.Type].
// Pointer indicators are stripped from type names.
// Library is only set for named types declared in a documented package.
//
// Composite types keep their notation in the simple name but are never attributed
// to a library, since no page exists for them.
// Instead of having:
//
//	TypeRef{Name: "[]Bar", Library: "mylib"}
//
// It will produce:
//
//	TypeRef{Name: "[]Bar", FullName: "[]example.com/mylib.Bar"}.
//
// Generic named types follow the arity convention of compiled metadata,
// so List[T] becomes "List`1".
func Get(typ types.Type, resolve LibraryResolver) metadata.TypeRef {
	if typ == nil {
		return metadata.TypeRef{Name: "void", FullName: "void"}
	}
	if ptr, ok := typ.(*types.Pointer); ok {
		typ = ptr.Elem()
	}
	switch t := typ.(type) {
	case *types.Named:
		obj := t.Obj()
		ref := metadata.TypeRef{Name: namedName(t)}
		if obj.Pkg() == nil {
			// Universe scope, e.g. error.
			ref.FullName = ref.Name
			return ref
		}
		ref.FullName = obj.Pkg().Path() + "." + ref.Name
		if resolve != nil {
			ref.Library = resolve(obj.Pkg().Path())
		}
		return ref
	case *types.Alias:
		return Get(types.Unalias(t), resolve)
	case *types.TypeParam:
		name := t.Obj().Name()
		return metadata.TypeRef{Name: name, FullName: name}
	default:
		return metadata.TypeRef{
			Name:     types.TypeString(typ, shortQualifier),
			FullName: types.TypeString(typ, nil),
		}
	}
}

func namedName(t *types.Named) string {
	name := t.Obj().Name()
	if n := t.TypeParams().Len(); n > 0 {
		name += metadata.GenericArityMarker + strconv.Itoa(n)
	}
	return name
}

func shortQualifier(*types.Package) string { return "" }
