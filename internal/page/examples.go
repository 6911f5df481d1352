package page

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nieomylnieja/refdoc/internal/mdsyntax"
	"github.com/nieomylnieja/refdoc/internal/metadata"
)

// Examples locates example snippets for types.
type Examples struct {
	// Dir holds one markdown file per example. A missing directory means no examples.
	Dir string
}

// Find returns the example file for t.
// A file named after the type wins. For classes, the first file (in directory order)
// named after the return type or a generic argument of a public instance method
// declared on the type is used otherwise.
func (e Examples) Find(t metadata.Type) (string, bool) {
	if e.Dir == "" {
		return "", false
	}
	if fi, err := os.Stat(e.Dir); err != nil || !fi.IsDir() {
		return "", false
	}
	exact := filepath.Join(e.Dir, mdsyntax.MarkdownFile(t.Name))
	if fi, err := os.Stat(exact); err == nil && !fi.IsDir() {
		return exact, true
	}
	if t.Kind != metadata.KindClass {
		return "", false
	}
	entries, err := os.ReadDir(e.Dir)
	if err != nil {
		return "", false
	}
	methods := declaredInstanceMethods(t)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != mdsyntax.Extension {
			continue
		}
		exampleName := strings.TrimSuffix(entry.Name(), mdsyntax.Extension)
		for _, m := range methods {
			if m.Type.Name == exampleName {
				return filepath.Join(e.Dir, entry.Name()), true
			}
			for _, g := range m.Method.GenericArguments {
				if g.Name == exampleName {
					return filepath.Join(e.Dir, entry.Name()), true
				}
			}
		}
	}
	return "", false
}

func declaredInstanceMethods(t metadata.Type) []metadata.Member {
	var methods []metadata.Member
	for _, m := range t.MembersOf(metadata.MemberMethod) {
		if m.Static || m.Method == nil || !m.Method.Public {
			continue
		}
		if m.DeclaringType.Qualified() != t.Qualified() {
			continue
		}
		methods = append(methods, m)
	}
	return methods
}

// RewritePlaceholders replaces every "(#Name)" placeholder naming a type of lib
// with the link target of that type's page.
func RewritePlaceholders(text string, lib *metadata.Library, linkPrefix string) string {
	if lib == nil || !strings.Contains(text, "(#") {
		return text
	}
	pairs := make([]string, 0, 2*len(lib.Types))
	for _, t := range lib.Types {
		pairs = append(pairs, "(#"+t.Name+")", "("+mdsyntax.Reference(linkPrefix, t.Ref())+")")
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
