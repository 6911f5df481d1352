// Package config defines the generator settings and loads them from a YAML file.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/nobl9/govy/pkg/govy"
	"github.com/nobl9/govy/pkg/rules"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "appcfg.yaml"

// Environment variables overriding the matching configuration fields.
const (
	EnvDeployDir     = "REFDOC_DEPLOY_DIR"
	EnvAssembliesDir = "REFDOC_ASSEMBLIES_DIR"
	EnvExamplesDir   = "REFDOC_EXAMPLES_DIR"
)

// Config holds every generator setting.
type Config struct {
	// ReadMe is copied to the deploy directory when it exists.
	ReadMe string `yaml:"readMe"`
	// TreeTitleName is the title of the sidebar listing.
	TreeTitleName string `yaml:"treeTitleName"`
	// SidebarName is the file name of the sidebar index inside the deploy directory.
	SidebarName string `yaml:"sidebarName"`
	// SidebarBefore and SidebarEnd are fragments wrapping the sidebar listing.
	SidebarBefore string `yaml:"sidebarBefore"`
	SidebarEnd    string `yaml:"sidebarEnd"`
	// FileEnd is a fragment appended to every page.
	FileEnd string `yaml:"fileEnd"`
	// AssembliesDir holds the library metadata and documentation files.
	AssembliesDir string `yaml:"assembliesDir"`
	// AssembliesTargetsFile lists the libraries to document, relative to AssembliesDir.
	AssembliesTargetsFile string `yaml:"assembliesTargetsFile"`
	DeployDir             string `yaml:"deployDir"`
	// DeploySidebarPath prefixes every link target.
	DeploySidebarPath string `yaml:"deploySidebarPath"`
	ExamplesDir       string `yaml:"examplesDir"`

	DisallowedNamespaces       []string `yaml:"disallowedNamespaces"`
	DisallowedDeclarationTypes []string `yaml:"disallowedDeclarationTypes"`
	DisallowedTypes            []string `yaml:"disallowedTypes"`

	// WriteConcurrency limits the number of pages written at once.
	WriteConcurrency int `yaml:"writeConcurrency"`
	// CheckLinks enables the verification of links between generated pages.
	CheckLinks bool `yaml:"checkLinks"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		ReadMe:                     filepath.Join("style", "README.md"),
		TreeTitleName:              "DocGen Powered by Overmodded.DocGenerator",
		SidebarName:                "_sidebar.md",
		SidebarBefore:              filepath.Join("style", "_sidebarBefore.md"),
		SidebarEnd:                 filepath.Join("style", "_sidebarEnd.md"),
		FileEnd:                    filepath.Join("style", "_fileEnd.md"),
		AssembliesDir:              "Assemblies",
		AssembliesTargetsFile:      "targets.txt",
		DeployDir:                  "Deploy",
		DeploySidebarPath:          "_deploy/",
		ExamplesDir:                "Examples",
		DisallowedNamespaces:       []string{"UnityEngine"},
		DisallowedDeclarationTypes: []string{"System.Object"},
		DisallowedTypes:            []string{"System.Object"},
		WriteConcurrency:           8,
		CheckLinks:                 true,
	}
}

// Load reads the configuration file at path on top of [Default].
// A missing file keeps the defaults. Variables from a .env file in the working
// directory are loaded first, environment overrides are applied last.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "failed to load .env file")
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return Config{}, errors.Wrapf(err, "failed to read config file %s", path)
	default:
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "failed to decode config file %s", path)
		}
	}
	cfg.applyEnv()
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDeployDir); v != "" {
		c.DeployDir = v
	}
	if v := os.Getenv(EnvAssembliesDir); v != "" {
		c.AssembliesDir = v
	}
	if v := os.Getenv(EnvExamplesDir); v != "" {
		c.ExamplesDir = v
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	return validator.Validate(c)
}

var validator = govy.New(
	govy.For(func(c Config) string { return c.DeployDir }).
		WithName("deployDir").
		Required().
		Rules(rules.StringNotEmpty()),
	govy.For(func(c Config) string { return c.AssembliesDir }).
		WithName("assembliesDir").
		Required().
		Rules(rules.StringNotEmpty()),
	govy.For(func(c Config) string { return c.AssembliesTargetsFile }).
		WithName("assembliesTargetsFile").
		Required().
		Rules(rules.StringNotEmpty()),
	govy.For(func(c Config) string { return c.SidebarName }).
		WithName("sidebarName").
		Required().
		Rules(rules.StringNotEmpty(), rules.StringEndsWith(".md")),
	govy.ForSlice(func(c Config) []string { return c.DisallowedNamespaces }).
		WithName("disallowedNamespaces").
		RulesForEach(rules.StringNotEmpty()),
	govy.ForSlice(func(c Config) []string { return c.DisallowedDeclarationTypes }).
		WithName("disallowedDeclarationTypes").
		RulesForEach(rules.StringNotEmpty()),
	govy.ForSlice(func(c Config) []string { return c.DisallowedTypes }).
		WithName("disallowedTypes").
		RulesForEach(rules.StringNotEmpty()),
	govy.For(func(c Config) int { return c.WriteConcurrency }).
		WithName("writeConcurrency").
		Rules(rules.GTE(1)),
).WithName("Config")
