package metadata

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DescriptorExtensions lists the recognized descriptor file extensions, in lookup order.
// JSON descriptors are decoded by the YAML decoder, JSON being a subset of YAML.
var DescriptorExtensions = []string{".yaml", ".yml", ".json"}

// Load decodes a library descriptor file.
// When the descriptor does not name the library, the file's base name is used.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read metadata file %s", path)
	}
	lib, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode metadata file %s", path)
	}
	if lib.Name == "" {
		lib.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	lib.fillLibrary()
	return lib, nil
}

// Decode decodes a library descriptor.
func Decode(data []byte) (*Library, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var lib Library
	if err := dec.Decode(&lib); err != nil {
		return nil, errors.Wrap(err, "invalid library descriptor")
	}
	for i, t := range lib.Types {
		if t.Name == "" {
			return nil, errors.Errorf("type #%d has no name", i)
		}
		if t.FullName == "" {
			return nil, errors.Errorf("type %s has no full name", t.Name)
		}
	}
	return &lib, nil
}

// fillLibrary marks every reference to one of the library's own types as belonging
// to it, so that descriptors do not have to repeat the library name everywhere.
func (l *Library) fillLibrary() {
	own := make(map[string]struct{}, len(l.Types))
	for i := range l.Types {
		if l.Types[i].Library == "" {
			l.Types[i].Library = l.Name
		}
		if l.Types[i].Library == l.Name {
			own[l.Types[i].FullName] = struct{}{}
		}
	}
	fill := func(ref *TypeRef) {
		if ref == nil || ref.Library != "" {
			return
		}
		if _, ok := own[strings.TrimSuffix(ref.FullName, ByRefMarker)]; ok {
			ref.Library = l.Name
		}
	}
	for i := range l.Types {
		t := &l.Types[i]
		fill(t.BaseType)
		for j := range t.Members {
			m := &t.Members[j]
			fill(&m.DeclaringType)
			fill(&m.Type)
			if m.Property != nil {
				for k := range m.Property.Parameters {
					fill(&m.Property.Parameters[k].Type)
				}
			}
			if m.Method != nil {
				for k := range m.Method.Parameters {
					fill(&m.Method.Parameters[k].Type)
				}
				for k := range m.Method.GenericArguments {
					fill(&m.Method.GenericArguments[k])
				}
				for k := range m.Method.Results {
					fill(&m.Method.Results[k])
				}
			}
		}
	}
}

// FindDescriptor returns the descriptor file for the named library inside dir.
func FindDescriptor(dir, name string) (string, bool) {
	for _, ext := range DescriptorExtensions {
		path := filepath.Join(dir, name+ext)
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Set is the set of libraries documented in a single run.
type Set map[string]struct{}

// NewSet builds a [Set] from the given libraries.
func NewSet(libs ...*Library) Set {
	s := make(Set, len(libs))
	for _, l := range libs {
		s[l.Name] = struct{}{}
	}
	return s
}

// Contains reports whether the type belongs to one of the documented libraries.
func (s Set) Contains(t TypeRef) bool {
	if t.Library == "" {
		return false
	}
	_, ok := s[t.Library]
	return ok
}
