package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appcfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "_sidebar.md", cfg.SidebarName)
	assert.Equal(t, []string{"UnityEngine"}, cfg.DisallowedNamespaces)
	assert.Equal(t, "Assemblies", cfg.AssembliesDir)
	assert.Equal(t, "targets.txt", cfg.AssembliesTargetsFile)
}

func TestLoad(t *testing.T) {
	t.Run("missing file keeps defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "appcfg.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
deployDir: site
treeTitleName: Game API
disallowedNamespaces: [Internal, Editor]
writeConcurrency: 2
checkLinks: false
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "site", cfg.DeployDir)
		assert.Equal(t, "Game API", cfg.TreeTitleName)
		assert.Equal(t, []string{"Internal", "Editor"}, cfg.DisallowedNamespaces)
		assert.Equal(t, 2, cfg.WriteConcurrency)
		assert.False(t, cfg.CheckLinks)
		assert.Equal(t, "Assemblies", cfg.AssembliesDir, "unset fields keep their defaults")
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv(EnvDeployDir, "from-env")
		t.Setenv(EnvAssembliesDir, "libs")
		t.Setenv(EnvExamplesDir, "snippets")
		cfg, err := Load(writeConfig(t, "deployDir: site\n"))
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.DeployDir)
		assert.Equal(t, "libs", cfg.AssembliesDir)
		assert.Equal(t, "snippets", cfg.ExamplesDir)
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := Load(writeConfig(t, "deployDir: [\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode config file")
	})
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		modify   func(c *Config)
		property string
	}{
		"empty deploy dir": {
			modify:   func(c *Config) { c.DeployDir = "" },
			property: "deployDir",
		},
		"empty assemblies dir": {
			modify:   func(c *Config) { c.AssembliesDir = "" },
			property: "assembliesDir",
		},
		"empty targets file": {
			modify:   func(c *Config) { c.AssembliesTargetsFile = "" },
			property: "assembliesTargetsFile",
		},
		"sidebar without markdown extension": {
			modify:   func(c *Config) { c.SidebarName = "_sidebar.txt" },
			property: "sidebarName",
		},
		"empty denylist entry": {
			modify:   func(c *Config) { c.DisallowedTypes = []string{"System.Object", ""} },
			property: "disallowedTypes",
		},
		"no write concurrency": {
			modify:   func(c *Config) { c.WriteConcurrency = 0 },
			property: "writeConcurrency",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			tc.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.property)
		})
	}
}
