package typeinfo

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nieomylnieja/refdoc/internal/metadata"
)

const packageName = "example.com/mylib/models"

type testCase struct {
	name     string
	value    types.Type
	expected metadata.TypeRef
}

func TestGet(t *testing.T) {
	pkg := types.NewPackage(packageName, "models")
	other := types.NewPackage("example.com/other", "other")

	bar := newNamed(pkg, "Bar", types.NewStruct(nil, nil))
	baz := newNamed(other, "Baz", types.NewStruct(nil, nil))
	customString := newNamed(pkg, "customString", types.Typ[types.String])

	list := newNamed(pkg, "List", types.NewStruct(nil, nil))
	tp := types.NewTypeParam(types.NewTypeName(token.NoPos, pkg, "T", nil), types.Universe.Lookup("any").Type())
	list.SetTypeParams([]*types.TypeParam{tp})

	resolve := func(pkgPath string) string {
		if pkgPath == packageName {
			return "mylib"
		}
		return ""
	}

	tests := []testCase{
		{
			name:     "int",
			value:    types.Typ[types.Int],
			expected: metadata.TypeRef{Name: "int", FullName: "int"},
		},
		{
			name:     "pointer to int",
			value:    types.NewPointer(types.Typ[types.Int]),
			expected: metadata.TypeRef{Name: "int", FullName: "int"},
		},
		{
			name:     "slice of int",
			value:    types.NewSlice(types.Typ[types.Int]),
			expected: metadata.TypeRef{Name: "[]int", FullName: "[]int"},
		},
		{
			name:     "documented struct",
			value:    bar,
			expected: metadata.TypeRef{Name: "Bar", FullName: packageName + ".Bar", Library: "mylib"},
		},
		{
			name:     "pointer to documented struct",
			value:    types.NewPointer(bar),
			expected: metadata.TypeRef{Name: "Bar", FullName: packageName + ".Bar", Library: "mylib"},
		},
		{
			name:     "slice of documented struct",
			value:    types.NewSlice(bar),
			expected: metadata.TypeRef{Name: "[]Bar", FullName: "[]" + packageName + ".Bar"},
		},
		{
			name:     "undocumented package",
			value:    baz,
			expected: metadata.TypeRef{Name: "Baz", FullName: "example.com/other.Baz"},
		},
		{
			name:     "custom string",
			value:    customString,
			expected: metadata.TypeRef{Name: "customString", FullName: packageName + ".customString", Library: "mylib"},
		},
		{
			name:     "map of string to struct",
			value:    types.NewMap(types.Typ[types.String], bar),
			expected: metadata.TypeRef{Name: "map[string]Bar", FullName: "map[string]" + packageName + ".Bar"},
		},
		{
			name:     "generic type",
			value:    list,
			expected: metadata.TypeRef{Name: "List`1", FullName: packageName + ".List`1", Library: "mylib"},
		},
		{
			name:     "type parameter",
			value:    tp,
			expected: metadata.TypeRef{Name: "T", FullName: "T"},
		},
		{
			name:     "error",
			value:    types.Universe.Lookup("error").Type(),
			expected: metadata.TypeRef{Name: "error", FullName: "error"},
		},
		{
			name:     "no result",
			value:    nil,
			expected: metadata.TypeRef{Name: "void", FullName: "void"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Get(tc.value, resolve))
		})
	}
}

func newNamed(pkg *types.Package, name string, underlying types.Type) *types.Named {
	obj := types.NewTypeName(token.NoPos, pkg, name, nil)
	return types.NewNamed(obj, underlying, nil)
}
