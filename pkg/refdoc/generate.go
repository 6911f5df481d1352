package refdoc

import (
	"context"
	"log/slog"
	"time"

	"github.com/nieomylnieja/refdoc/internal/config"
	"github.com/nieomylnieja/refdoc/internal/eligibility"
	"github.com/nieomylnieja/refdoc/internal/linkcheck"
	"github.com/nieomylnieja/refdoc/internal/loader"
	"github.com/nieomylnieja/refdoc/internal/logfields"
	"github.com/nieomylnieja/refdoc/internal/metadata"
	"github.com/nieomylnieja/refdoc/internal/output"
	"github.com/nieomylnieja/refdoc/internal/page"
	"github.com/nieomylnieja/refdoc/internal/signature"
)

// Report summarizes a generation run.
type Report struct {
	Libraries []LibraryReport `json:"libraries"`
	// Skipped lists the targets which could not be loaded.
	Skipped []string `json:"skipped,omitempty"`
	// DanglingLinks lists links to pages which were not generated.
	// It is only filled when link checking is enabled.
	DanglingLinks []linkcheck.Dangling `json:"danglingLinks,omitempty"`
	ReadMeCopied  bool                 `json:"readMeCopied"`
}

// LibraryReport lists the pages generated for a single library.
type LibraryReport struct {
	Name  string   `json:"name"`
	Pages []string `json:"pages"`
}

// PageNames returns the names of every generated page, in generation order.
func (r Report) PageNames() []string {
	var names []string
	for _, lib := range r.Libraries {
		names = append(names, lib.Pages...)
	}
	return names
}

// LoadFunc loads a single library.
type LoadFunc func(ctx context.Context, dir, name string) (*loader.Source, error)

// generateOptions contains options for configuring the behavior of the [Generator].
type generateOptions struct {
	logger *slog.Logger
	load   LoadFunc
}

type GenerateOption func(options generateOptions) generateOptions

// WithLogger sets the logger used for progress and diagnostics.
func WithLogger(logger *slog.Logger) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.logger = logger
		return options
	}
}

// WithLoader replaces the function loading libraries, [loader.Load] by default.
func WithLoader(load LoadFunc) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.load = load
		return options
	}
}

// Generator runs the documentation generation.
type Generator struct {
	cfg     config.Config
	options generateOptions
}

// New creates a [Generator].
func New(cfg config.Config, opts ...GenerateOption) *Generator {
	options := generateOptions{
		logger: slog.Default(),
		load:   loader.Load,
	}
	for _, opt := range opts {
		options = opt(options)
	}
	return &Generator{cfg: cfg, options: options}
}

// Run generates the documentation of every target library.
//
// A missing targets file, a failure to prepare the deploy directory
// or to write any file is fatal. Libraries which fail to load are skipped.
func (g *Generator) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	log := g.options.logger

	targets, err := loader.ReadTargets(g.cfg.AssembliesDir, g.cfg.AssembliesTargetsFile)
	if err != nil {
		return Report{}, err
	}
	if err = output.Prepare(g.cfg.DeployDir); err != nil {
		return Report{}, err
	}
	frags, err := g.readFragments()
	if err != nil {
		return Report{}, err
	}

	var (
		report  Report
		sources []*loader.Source
	)
	for _, name := range targets {
		src, err := g.options.load(ctx, g.cfg.AssembliesDir, name)
		if err != nil {
			log.Error("Failed to load library", logfields.Library(name), logfields.Error(err))
			report.Skipped = append(report.Skipped, name)
			continue
		}
		sources = append(sources, src)
	}
	libraries := make([]*metadata.Library, 0, len(sources))
	for _, src := range sources {
		libraries = append(libraries, src.Library)
	}
	documented := metadata.NewSet(libraries...)

	writer := output.Writer{
		Dir:         g.cfg.DeployDir,
		Concurrency: g.cfg.WriteConcurrency,
		Logger:      log,
	}
	checker := linkcheck.New(g.cfg.DeploySidebarPath)
	claimed := make(map[string]string)
	var pages []page.Page
	for _, src := range sources {
		libStart := time.Now()
		log.Info("Generating library",
			logfields.Library(src.Library.Name),
			logfields.Types(len(src.Library.Types)),
			slog.Int("records", src.Docs.Len()))
		libPages := g.assembler(src, documented, frags.fileEnd, claimed).BuildAll()
		if err = writer.WritePages(ctx, libPages); err != nil {
			return report, err
		}
		libReport := LibraryReport{Name: src.Library.Name, Pages: make([]string, 0, len(libPages))}
		for _, p := range libPages {
			libReport.Pages = append(libReport.Pages, p.Name)
		}
		checker.Add(libReport.Pages...)
		report.Libraries = append(report.Libraries, libReport)
		pages = append(pages, libPages...)
		log.Info("Generated library",
			logfields.Library(src.Library.Name),
			logfields.Pages(len(libPages)),
			logfields.DurationMS(float64(time.Since(libStart).Microseconds())/1000))
	}

	index := page.BuildIndex(page.IndexOptions{
		Title:      g.cfg.TreeTitleName,
		LinkPrefix: g.cfg.DeploySidebarPath,
		Before:     frags.sidebarBefore,
		After:      frags.sidebarEnd,
	}, report.PageNames())
	if err = writer.WriteFile(g.cfg.SidebarName, index); err != nil {
		return report, err
	}
	if report.ReadMeCopied, err = writer.CopyReadMe(g.cfg.ReadMe); err != nil {
		return report, err
	}

	if g.cfg.CheckLinks {
		report.DanglingLinks = checker.Check(pages...)
		for _, d := range report.DanglingLinks {
			log.Warn("Dangling link", logfields.Page(d.Page), logfields.Link(d.Destination))
		}
	}
	log.Info("Documentation generated",
		logfields.Pages(len(pages)),
		logfields.File(g.cfg.DeployDir),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return report, nil
}

func (g *Generator) assembler(
	src *loader.Source,
	documented metadata.Set,
	fileEnd string,
	claimed map[string]string,
) *page.Assembler {
	filter := eligibility.Filter{
		DisallowedNamespaces:       g.cfg.DisallowedNamespaces,
		DisallowedDeclarationTypes: g.cfg.DisallowedDeclarationTypes,
		DisallowedTypes:            g.cfg.DisallowedTypes,
	}
	return &page.Assembler{
		Library: src.Library,
		Tables: &page.TableBuilder{
			Filter:   filter,
			Renderer: signature.NewRenderer(documented, g.cfg.DeploySidebarPath),
			Docs:     src.Docs,
			Logger:   g.options.logger,
		},
		Examples:   page.Examples{Dir: g.cfg.ExamplesDir},
		LinkPrefix: g.cfg.DeploySidebarPath,
		FileEnd:    fileEnd,
		Claimed:    claimed,
		Logger:     g.options.logger,
	}
}

type fragments struct {
	fileEnd       string
	sidebarBefore string
	sidebarEnd    string
}

// readFragments reads the optional boilerplate files.
func (g *Generator) readFragments() (f fragments, err error) {
	if f.fileEnd, err = output.ReadOptional(g.cfg.FileEnd); err != nil {
		return f, err
	}
	if f.sidebarBefore, err = output.ReadOptional(g.cfg.SidebarBefore); err != nil {
		return f, err
	}
	if f.sidebarEnd, err = output.ReadOptional(g.cfg.SidebarEnd); err != nil {
		return f, err
	}
	return f, nil
}
