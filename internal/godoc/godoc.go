// Package godoc builds library metadata and documentation records from Go sources.
//
// Go has no classes, so the following mapping is used:
//   - a struct is a class, its first embedded struct is the base type
//     and its promoted fields and methods are inherited members,
//   - a defined basic type with exported constants is an enum,
//   - package functions returning a type are static methods of that type,
//   - doc comments are the summaries, rendered to markdown.
package godoc

import (
	"cmp"
	"context"
	"go/ast"
	"go/doc/comment"
	"go/token"
	"go/types"
	"maps"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"

	"github.com/nieomylnieja/refdoc/internal/docxml"
	"github.com/nieomylnieja/refdoc/internal/metadata"
	"github.com/nieomylnieja/refdoc/internal/pathutils"
	"github.com/nieomylnieja/refdoc/internal/typeinfo"
)

// Load parses every package found under dir and returns them as a single library.
func Load(ctx context.Context, dir, library string) (*metadata.Library, *docxml.Set, error) {
	parser, err := NewParser(ctx, dir)
	if err != nil {
		return nil, nil, err
	}
	return parser.Parse(library)
}

// NewParser loads complete type information for every package found under dir,
// along with type-annotated syntax of the packages and their dependencies.
func NewParser(ctx context.Context, dir string) (*Parser, error) {
	root, err := pathutils.FindModuleRoot(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find Go module of %s", dir)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", dir)
	}
	rel, err := filepath.Rel(root, absDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s relative to %s", dir, root)
	}
	conf := &packages.Config{
		Context: ctx,
		Dir:     root,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedDeps |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}
	pattern := "./" + filepath.ToSlash(rel) + "/..."
	pkgs, err := packages.Load(conf, pattern)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load packages")
	}
	if len(pkgs) == 0 {
		return nil, errors.Errorf("no Go packages found in %s", dir)
	}
	if err = checkForPackageErrors(pkgs); err != nil {
		return nil, err
	}

	parser := &Parser{
		pkgs:    make(map[string]*goPackage, len(pkgs)),
		initial: make(map[string]struct{}, len(pkgs)),
	}
	for _, pkg := range pkgs {
		parser.initial[pkg.PkgPath] = struct{}{}
	}
	parser.collectAllPackages(pkgs)
	return parser, nil
}

// Parser converts loaded Go packages into a library.
// It is not safe for concurrent use.
type Parser struct {
	pkgs map[string]*goPackage
	// initial holds the paths of the packages the library is made of.
	initial map[string]struct{}

	library string
	records []docxml.Record
	seen    map[string]struct{}
}

type goPackage struct {
	pkg           *packages.Package
	commentParser *comment.Parser
}

// Parse returns the library made of the loaded packages, with its types in
// declaration order, and the documentation records of their members.
func (p *Parser) Parse(library string) (*metadata.Library, *docxml.Set, error) {
	p.library = library
	p.records = nil
	p.seen = make(map[string]struct{})

	lib := &metadata.Library{Name: library}
	for _, path := range slices.Sorted(maps.Keys(p.initial)) {
		lib.Types = append(lib.Types, p.parsePackage(p.pkgs[path].pkg)...)
	}
	docs, err := docxml.NewSet(p.records)
	if err != nil {
		return nil, nil, err
	}
	return lib, docs, nil
}

func (p *Parser) parsePackage(pkg *packages.Package) []metadata.Type {
	scope := pkg.Types.Scope()
	var (
		typeNames []*types.TypeName
		funcs     []*types.Func
		consts    []*types.Const
	)
	for _, name := range scope.Names() {
		switch obj := scope.Lookup(name).(type) {
		case *types.TypeName:
			if !obj.IsAlias() {
				typeNames = append(typeNames, obj)
			}
		case *types.Func:
			funcs = append(funcs, obj)
		case *types.Const:
			consts = append(consts, obj)
		}
	}
	byPos := func(a, b types.Object) int { return cmp.Compare(a.Pos(), b.Pos()) }
	slices.SortFunc(typeNames, func(a, b *types.TypeName) int { return byPos(a, b) })
	slices.SortFunc(funcs, func(a, b *types.Func) int { return byPos(a, b) })
	slices.SortFunc(consts, func(a, b *types.Const) int { return byPos(a, b) })

	result := make([]metadata.Type, 0, len(typeNames))
	for _, obj := range typeNames {
		named, ok := obj.Type().(*types.Named)
		if !ok {
			continue
		}
		result = append(result, p.parseType(named, funcs, consts))
	}
	return result
}

func (p *Parser) parseType(named *types.Named, funcs []*types.Func, consts []*types.Const) metadata.Type {
	obj := named.Obj()
	typ := metadata.Type{
		TypeRef: p.typeRef(named),
		Kind:    metadata.KindOther,
		Public:  obj.Exported(),
	}
	p.record(docxml.DeclaredKey(docxml.CategoryType, docxml.TypeKey(typ.Ref())), p.typeDoc(obj))

	switch u := named.Underlying().(type) {
	case *types.Struct:
		typ.Kind = metadata.KindClass
		typ.BaseType = p.baseType(u)
		typ.Members = append(typ.Members, p.fields(named)...)
		typ.Members = append(typ.Members, p.methods(named)...)
		typ.Members = append(typ.Members, p.constructors(named, funcs)...)
	case *types.Interface:
		typ.Kind = metadata.KindInterface
	case *types.Basic:
		values := p.enumValues(named, consts)
		if len(values) > 0 {
			typ.Kind = metadata.KindEnum
			typ.Members = values
		}
	}
	return typ
}

// baseType returns the first embedded struct, if any.
func (p *Parser) baseType(st *types.Struct) *metadata.TypeRef {
	for i := range st.NumFields() {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		if named := namedOf(f.Type()); named != nil {
			if _, ok := named.Underlying().(*types.Struct); ok {
				ref := p.typeRef(named)
				return &ref
			}
		}
	}
	return nil
}

// fields returns the exported fields of the struct followed by the fields promoted
// from its embedded structs, shallowest first.
func (p *Parser) fields(named *types.Named) []metadata.Member {
	var members []metadata.Member
	visited := make(map[*types.TypeName]struct{})
	taken := make(map[string]struct{})
	level := []*types.Named{named}
	for len(level) > 0 {
		var next []*types.Named
		var declared []string
		for _, n := range level {
			if _, ok := visited[n.Obj()]; ok {
				continue
			}
			visited[n.Obj()] = struct{}{}
			st, ok := n.Underlying().(*types.Struct)
			if !ok {
				continue
			}
			declaring := p.typeRef(n)
			for i := range st.NumFields() {
				f := st.Field(i)
				if f.Embedded() {
					if en := namedOf(f.Type()); en != nil {
						next = append(next, en)
					}
				}
				if !f.Exported() {
					continue
				}
				if _, shadowed := taken[f.Name()]; shadowed {
					continue
				}
				declared = append(declared, f.Name())
				m := metadata.Member{
					Kind:          metadata.MemberField,
					Name:          f.Name(),
					DeclaringType: declaring,
					Type:          p.typeRef(f.Type()),
				}
				p.record(docxml.DeclaredKey(docxml.Category(m.Kind), docxml.MemberKey(m)), p.fieldDoc(f))
				members = append(members, m)
			}
		}
		for _, name := range declared {
			taken[name] = struct{}{}
		}
		level = next
	}
	return members
}

// methods returns the method set of *T, promoted methods included, sorted by name.
func (p *Parser) methods(named *types.Named) []metadata.Member {
	mset := types.NewMethodSet(types.NewPointer(named))
	members := make([]metadata.Member, 0, mset.Len())
	for i := range mset.Len() {
		fn, ok := mset.At(i).Obj().(*types.Func)
		if !ok {
			continue
		}
		recv := namedOf(fn.Signature().Recv().Type())
		if recv == nil {
			continue
		}
		members = append(members, p.method(fn, p.typeRef(recv), false))
	}
	return members
}

// constructors returns the package functions whose first result is the type.
func (p *Parser) constructors(named *types.Named, funcs []*types.Func) []metadata.Member {
	var members []metadata.Member
	for _, fn := range funcs {
		results := fn.Signature().Results()
		if results.Len() == 0 {
			continue
		}
		if rn := namedOf(results.At(0).Type()); rn == nil || rn.Obj() != named.Obj() {
			continue
		}
		members = append(members, p.method(fn, p.typeRef(named), true))
	}
	return members
}

func (p *Parser) method(fn *types.Func, declaring metadata.TypeRef, static bool) metadata.Member {
	sig := fn.Signature()
	info := &metadata.MethodInfo{Public: fn.Exported()}
	params := sig.Params()
	for i := range params.Len() {
		v := params.At(i)
		info.Parameters = append(info.Parameters, metadata.Parameter{Name: v.Name(), Type: p.typeRef(v.Type())})
	}
	typeParams := sig.TypeParams()
	for i := range typeParams.Len() {
		info.GenericArguments = append(info.GenericArguments, p.typeRef(typeParams.At(i)))
	}
	m := metadata.Member{
		Kind:          metadata.MemberMethod,
		Name:          fn.Name(),
		DeclaringType: declaring,
		Type:          typeinfo.Get(nil, nil),
		Static:        static,
		Method:        info,
	}
	results := sig.Results()
	for i := range results.Len() {
		ref := p.typeRef(results.At(i).Type())
		if i == 0 {
			m.Type = ref
		} else {
			info.Results = append(info.Results, ref)
		}
	}
	p.record(docxml.DeclaredKey(docxml.Category(m.Kind), docxml.MemberKey(m)), p.funcDoc(fn))
	return m
}

func (p *Parser) enumValues(named *types.Named, consts []*types.Const) []metadata.Member {
	ref := p.typeRef(named)
	var values []metadata.Member
	for _, c := range consts {
		if !c.Exported() || !types.Identical(c.Type(), named) {
			continue
		}
		values = append(values, metadata.Member{
			Kind:          metadata.MemberEnumValue,
			Name:          c.Name(),
			DeclaringType: ref,
			Type:          ref,
		})
		p.record(docxml.DeclaredKey(docxml.CategoryField, docxml.EnumValueKey(ref, c.Name())), p.constDoc(c))
	}
	return values
}

func (p *Parser) typeRef(typ types.Type) metadata.TypeRef {
	return typeinfo.Get(typ, p.resolveLibrary)
}

func (p *Parser) resolveLibrary(pkgPath string) string {
	if _, ok := p.initial[pkgPath]; ok {
		return p.library
	}
	return ""
}

// record adds a documentation record unless its key was already recorded
// or the documentation is empty.
func (p *Parser) record(key, doc string) {
	if doc == "" {
		return
	}
	if _, ok := p.seen[key]; ok {
		return
	}
	p.seen[key] = struct{}{}
	p.records = append(p.records, docxml.Record{Key: key, Summary: doc})
}

func (p *Parser) typeDoc(obj *types.TypeName) string {
	pkg := p.packageOf(obj)
	if pkg == nil {
		return ""
	}
	decl, err := p.findTypeDeclaration(pkg, obj.Name())
	if err != nil {
		return ""
	}
	text := decl.Doc.Text()
	for _, spec := range decl.Specs {
		if ts, ok := spec.(*ast.TypeSpec); ok && ts.Name.Name == obj.Name() && ts.Doc != nil {
			text = ts.Doc.Text()
		}
	}
	return p.docCommentToMarkdown(pkg, text)
}

func (p *Parser) fieldDoc(f *types.Var) string {
	pkg := p.packageOf(f)
	if pkg == nil {
		return ""
	}
	field, ok := findEnclosing[*ast.Field](pkg, f.Pos())
	if !ok {
		return ""
	}
	return p.docCommentToMarkdown(pkg, field.Doc.Text())
}

func (p *Parser) funcDoc(fn *types.Func) string {
	pkg := p.packageOf(fn)
	if pkg == nil {
		return ""
	}
	decl, ok := findEnclosing[*ast.FuncDecl](pkg, fn.Pos())
	if !ok {
		return ""
	}
	return p.docCommentToMarkdown(pkg, decl.Doc.Text())
}

func (p *Parser) constDoc(c *types.Const) string {
	pkg := p.packageOf(c)
	if pkg == nil {
		return ""
	}
	spec, ok := findEnclosing[*ast.ValueSpec](pkg, c.Pos())
	if !ok {
		return ""
	}
	return p.docCommentToMarkdown(pkg, spec.Doc.Text())
}

func (p *Parser) packageOf(obj types.Object) *goPackage {
	if obj.Pkg() == nil {
		return nil
	}
	pkg := p.getPackageByPath(obj.Pkg().Path())
	if pkg == nil {
		return nil
	}
	if pkg.commentParser == nil {
		pkg.commentParser = p.newCommentParserForPackage(pkg.pkg)
	}
	return pkg
}

// findTypeDeclaration finds the ast.GenDecl for the given type declaration, specified by name.
func (p *Parser) findTypeDeclaration(pkg *goPackage, name string) (*ast.GenDecl, error) {
	obj := pkg.pkg.Types.Scope().Lookup(name)
	if obj == nil {
		return nil, errors.Errorf("%s.%s not found", pkg.pkg.Types.Path(), name)
	}
	decl, ok := findEnclosing[*ast.GenDecl](pkg, obj.Pos())
	if !ok {
		return nil, errors.Errorf("could not find %s.%s declaration", pkg.pkg.Name, name)
	}
	return decl, nil
}

// findEnclosing returns the innermost node of type T enclosing pos.
func findEnclosing[T ast.Node](pkg *goPackage, pos token.Pos) (T, bool) {
	var zero T
	if !pos.IsValid() {
		return zero, false
	}
	for _, file := range pkg.pkg.Syntax {
		if file.FileStart > pos || pos >= file.FileEnd {
			continue // not in this file
		}
		path, _ := astutil.PathEnclosingInterval(file, pos, pos)
		for _, n := range path {
			if n, ok := n.(T); ok {
				return n, true
			}
		}
	}
	return zero, false
}

const docLinkBaseURL = "https://pkg.go.dev"

func (p *Parser) docCommentToMarkdown(pkg *goPackage, text string) string {
	if text == "" {
		return ""
	}
	typeDoc := pkg.commentParser.Parse(text)
	printer := comment.Printer{
		DocLinkURL: func(link *comment.DocLink) string {
			if link.ImportPath == "" {
				link.ImportPath = pkg.pkg.PkgPath
			}
			return link.DefaultURL(docLinkBaseURL)
		},
	}
	return postProcessSummary(string(printer.Markdown(typeDoc)),
		removeEnumDeclaration,
		extractDeprecatedInformation,
		joinLines,
	)
}

func (p *Parser) newCommentParserForPackage(currentPackage *packages.Package) *comment.Parser {
	return &comment.Parser{
		LookupPackage: func(name string) (importPath string, ok bool) {
			for _, pkg := range p.pkgs {
				if pkg.pkg.Name == name {
					return pkg.pkg.PkgPath, true
				}
			}
			return "", false
		},
		LookupSym: func(recv, name string) (ok bool) {
			if recv == "" {
				return currentPackage.Types.Scope().Lookup(name) != nil
			}
			obj := currentPackage.Types.Scope().Lookup(recv)
			if obj == nil {
				return false
			}
			if sel, _, _ := types.LookupFieldOrMethod(obj.Type(), true, currentPackage.Types, name); sel != nil {
				return true
			}
			return false
		},
	}
}

func (p *Parser) getPackageByPath(pkgPath string) *goPackage {
	return p.pkgs[pkgPath]
}

// collectAllPackages recursively adds all packages and their imports to the parser's map.
func (p *Parser) collectAllPackages(pkgs []*packages.Package) {
	for _, pkg := range pkgs {
		if _, exists := p.pkgs[pkg.PkgPath]; exists {
			continue
		}
		p.pkgs[pkg.PkgPath] = &goPackage{pkg: pkg}
		if len(pkg.Imports) > 0 {
			p.collectAllPackages(slices.Collect(maps.Values(pkg.Imports)))
		}
	}
}

func checkForPackageErrors(pkgs []*packages.Package) (err error) {
	packages.Visit(pkgs, func(pkg *packages.Package) bool {
		for _, err = range pkg.Errors {
			err = errors.Wrapf(err, "package %s has reported an error", pkg.PkgPath)
			return false
		}
		mod := pkg.Module
		if mod != nil && mod.Error != nil {
			err = errors.New(mod.Error.Err)
			return false
		}
		return true
	}, nil)
	return err
}

// namedOf returns the named type behind an optional pointer.
func namedOf(typ types.Type) *types.Named {
	if ptr, ok := types.Unalias(typ).(*types.Pointer); ok {
		typ = ptr.Elem()
	}
	named, _ := types.Unalias(typ).(*types.Named)
	return named
}
