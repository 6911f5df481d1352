package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	lib, err := Load(filepath.Join("testdata", "Game.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Game", lib.Name, "library name defaults to the file name")
	require.Len(t, lib.Types, 2)

	entity := lib.Types[0]
	assert.Equal(t, "Game", entity.Library)
	assert.Equal(t, KindClass, entity.Kind)
	require.NotNil(t, entity.BaseType)
	assert.Empty(t, entity.BaseType.Library, "foreign types keep an empty library")
	assert.Equal(t, "Game", entity.Members[0].DeclaringType.Library)
	assert.True(t, entity.Members[0].Property.HasGetter())
	assert.False(t, entity.Members[0].Property.HasSetter())

	player := lib.Types[1]
	assert.Equal(t, "Game", player.BaseType.Library)
	follow := player.Members[0]
	assert.Equal(t, "Game", follow.Method.Parameters[0].Type.Library, "by-ref references resolve to the referenced type")
	assert.Equal(t, "Game", follow.Method.GenericArguments[0].Library)
	assert.Empty(t, follow.Type.Library)
}

func TestLoad_NamedLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "descriptor.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "name": "Engine",
  "types": [{"name": "Clock", "fullName": "Engine.Clock", "kind": "class", "public": true}]
}`), 0o600))

	lib, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Engine", lib.Name)
	assert.Equal(t, "Engine", lib.Types[0].Library)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown field":      "types:\n  - name: A\n    fullName: B.A\n    colour: red\n",
		"missing name":       "types:\n  - fullName: B.A\n",
		"missing full name":  "types:\n  - name: A\n",
		"malformed document": "types: [",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "Lib.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		assert.Error(t, err)
	})
}

func TestFindDescriptor(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.json"), []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.yml"), []byte("{}"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "B.yaml"), 0o700))

	path, ok := FindDescriptor(dir, "A")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "A.yml"), path)

	_, ok = FindDescriptor(dir, "B")
	assert.False(t, ok, "directories are not descriptors")
}

func TestSet_Contains(t *testing.T) {
	set := NewSet(&Library{Name: "Game"}, &Library{Name: "Engine"})

	assert.True(t, set.Contains(TypeRef{Name: "Player", Library: "Game"}))
	assert.False(t, set.Contains(TypeRef{Name: "Vector3", Library: "UnityEngine"}))
	assert.False(t, set.Contains(TypeRef{Name: "Int32"}))
}

func TestTypeRef(t *testing.T) {
	ref := TypeRef{Name: "Inner&", FullName: "Game.Outer+Inner&"}
	assert.True(t, ref.IsByRef())
	assert.True(t, ref.IsNested())
	assert.False(t, ref.IsZero())
	assert.True(t, TypeRef{}.IsZero())
	assert.Equal(t, "T", TypeRef{Name: "T"}.Qualified())
}

func TestMember_IsAccessor(t *testing.T) {
	owner := TypeRef{Name: "Entity", FullName: "Game.Entity"}
	prop := Member{Kind: MemberProperty, Name: "Id", DeclaringType: owner, Property: &PropertyInfo{Getter: "get_Id"}}
	event := Member{Kind: MemberEvent, Name: "Died", DeclaringType: owner, Event: &EventInfo{Add: "add_Died", Remove: "remove_Died"}}

	assert.True(t, Member{Kind: MemberMethod, Name: "get_Id", DeclaringType: owner}.IsAccessor(prop))
	assert.True(t, Member{Kind: MemberMethod, Name: "remove_Died", DeclaringType: owner}.IsAccessor(event))
	assert.False(t, Member{Kind: MemberMethod, Name: "get_Id", DeclaringType: TypeRef{Name: "Other"}}.IsAccessor(prop))
	assert.False(t, Member{Kind: MemberField, Name: "get_Id", DeclaringType: owner}.IsAccessor(prop))
}

func TestMember_ReferencedTypes(t *testing.T) {
	m := Member{
		Kind:          MemberMethod,
		DeclaringType: TypeRef{Name: "A"},
		Type:          TypeRef{Name: "B"},
		Method: &MethodInfo{
			Parameters:       []Parameter{{Name: "c", Type: TypeRef{Name: "C"}}},
			GenericArguments: []TypeRef{{Name: "D"}},
			Results:          []TypeRef{{Name: "E"}},
		},
	}
	var names []string
	for _, ref := range m.ReferencedTypes() {
		names = append(names, ref.Name)
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, names)
}
