package refdoc

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nieomylnieja/refdoc/internal/config"
	"github.com/nieomylnieja/refdoc/internal/loader"
	"github.com/nieomylnieja/refdoc/internal/metadata"
)

//go:embed testdata/generate_report.json
var expectedGenerateReport []byte

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.AssembliesDir = filepath.Join("testdata", "assemblies")
	cfg.ExamplesDir = filepath.Join("testdata", "examples")
	cfg.FileEnd = filepath.Join("testdata", "style", "_fileEnd.md")
	cfg.SidebarBefore = filepath.Join("testdata", "style", "_sidebarBefore.md")
	cfg.SidebarEnd = filepath.Join("testdata", "style", "_sidebarEnd.md")
	cfg.ReadMe = filepath.Join("testdata", "style", "README.md")
	cfg.DeployDir = filepath.Join(t.TempDir(), "Deploy")
	cfg.TreeTitleName = "Game API"
	return cfg
}

func readDeployed(t *testing.T, cfg config.Config, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.DeployDir, name))
	require.NoError(t, err)
	return string(data)
}

func TestGenerator_Run(t *testing.T) {
	cfg := testConfig(t)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	report, err := New(cfg, WithLogger(logger)).Run(context.Background())
	require.NoError(t, err)

	t.Run("report", func(t *testing.T) {
		var expected Report
		require.NoError(t, json.Unmarshal(expectedGenerateReport, &expected))
		if !assert.JSONEq(t, mustMarshalJSON(t, expected), mustMarshalJSON(t, report)) {
			data, err := json.MarshalIndent(report, "", "  ")
			require.NoError(t, err)
			t.Log(string(data))
		}
	})

	t.Run("deployed files", func(t *testing.T) {
		entries, err := os.ReadDir(cfg.DeployDir)
		require.NoError(t, err)
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		assert.ElementsMatch(t, []string{
			"README.md", "_sidebar.md", "objEntity.md", "objPlayer.md", "objTeam.md",
		}, names)
		assert.Equal(t, "# Game docs\n", readDeployed(t, cfg, "README.md"))
	})

	t.Run("sidebar", func(t *testing.T) {
		assert.Equal(t, "# API\n\n"+
			"- Game API\n"+
			" - [objEntity](_deploy/objEntity.md)\n"+
			" - [objPlayer](_deploy/objPlayer.md)\n"+
			" - [objTeam](_deploy/objTeam.md)\n",
			readDeployed(t, cfg, "_sidebar.md"))
	})

	t.Run("class page", func(t *testing.T) {
		content := readDeployed(t, cfg, "objPlayer.md")
		assert.Contains(t, content,
			"# Player\n<small>class in `Game` / inherits from [Entity](_deploy/objEntity.md)</small>\n\n### Description\n")
		assert.Contains(t, content, "A human controlled entity.")
		assert.Contains(t, content, "| `Team` | [`Team`](_deploy/objTeam.md) | Team the player plays for. |\n")
		assert.Contains(t, content,
			"| `Follow`([`ref Entity target`](_deploy/objEntity.md)) | `Boolean` | Follows the target. |\n")
		assert.Contains(t, content, "### Static Methods\n\n")
		assert.Contains(t, content, "| `Create`() | [`Player`](_deploy/objPlayer.md) | N\\A |\n")
		assert.Contains(t, content, "## Inherited Members\n")
		assert.Contains(t, content, "| `Id` | `Int32` | N\\A |\n")
		assert.NotContains(t, content, "ToString", "members of the universal root are not listed")
		assert.Contains(t, content, "\n## Examples\n\nCall [Entity](_deploy/objEntity.md) first.\n")
		assert.Regexp(t, "\nfooter\n$", content)
	})

	t.Run("class page without documented members", func(t *testing.T) {
		content := readDeployed(t, cfg, "objEntity.md")
		assert.Contains(t, content, "# Entity\n\n### Description\nN\\A\n")
		assert.Contains(t, content, "| `Name` | `String` | `get;` `set;` | N\\A |\n")
		assert.NotContains(t, content, "MoveTo", "members using disallowed namespaces are not listed")
		assert.NotContains(t, content, "get_Name", "accessors are not listed")
		assert.NotContains(t, content, "Inherited Members")
	})

	t.Run("enum page", func(t *testing.T) {
		content := readDeployed(t, cfg, "objTeam.md")
		assert.Contains(t, content, "# Team\n<small>enumeration in `Game`</small>\n")
		assert.Contains(t, content, "### Values\n\n| Name | Description |\n| --- | --- |\n| Red | The left side. |\n| Blue | N\\A |\n")
	})

	t.Run("logs", func(t *testing.T) {
		assert.Contains(t, logs.String(), "Failed to load library")
		assert.Contains(t, logs.String(), "library=Missing")
		assert.Contains(t, logs.String(), "Dangling link")
	})
}

func TestGenerator_Run_Idempotent(t *testing.T) {
	cfg := testConfig(t)
	gen := New(cfg, WithLogger(slog.New(slog.DiscardHandler)))

	_, err := gen.Run(context.Background())
	require.NoError(t, err)
	first := readDeployed(t, cfg, "objPlayer.md")

	require.NoError(t, os.WriteFile(filepath.Join(cfg.DeployDir, "objStale.md"), []byte("stale"), 0o600))
	_, err = gen.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, readDeployed(t, cfg, "objPlayer.md"))
	_, err = os.Stat(filepath.Join(cfg.DeployDir, "objStale.md"))
	assert.True(t, os.IsNotExist(err), "deploy directory is recreated on every run")
}

func TestGenerator_Run_LinkCheckDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.CheckLinks = false

	report, err := New(cfg, WithLogger(slog.New(slog.DiscardHandler))).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.DanglingLinks)
}

func TestGenerator_Run_MissingTargets(t *testing.T) {
	cfg := testConfig(t)
	cfg.AssembliesDir = t.TempDir()

	_, err := New(cfg).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, loader.ErrTargetsMissing))
	_, statErr := os.Stat(cfg.DeployDir)
	assert.True(t, os.IsNotExist(statErr), "nothing is deployed")
}

func TestGenerator_Run_CustomLoader(t *testing.T) {
	cfg := testConfig(t)
	var loaded []string
	load := func(ctx context.Context, dir, name string) (*loader.Source, error) {
		loaded = append(loaded, name)
		if name == "Missing" {
			return nil, errors.New("not found")
		}
		return &loader.Source{Library: &metadata.Library{Name: name}}, nil
	}

	report, err := New(cfg, WithLoader(load), WithLogger(slog.New(slog.DiscardHandler))).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Game", "Missing"}, loaded)
	require.Len(t, report.Libraries, 1)
	assert.Empty(t, report.Libraries[0].Pages)
	assert.Equal(t, "- Game API\n", readDeployed(t, cfg, "_sidebar.md")[len("# API\n\n"):])
}

func TestGenerator_Run_PageNameCollision(t *testing.T) {
	cfg := testConfig(t)
	load := func(ctx context.Context, dir, name string) (*loader.Source, error) {
		if name == "Missing" {
			name = "Other"
		}
		ref := metadata.TypeRef{Name: "Config", FullName: name + ".Config", Library: name}
		base := metadata.TypeRef{Name: name + "Base", FullName: name + "Base"}
		return &loader.Source{Library: &metadata.Library{
			Name:  name,
			Types: []metadata.Type{{TypeRef: ref, Kind: metadata.KindClass, Public: true, BaseType: &base}},
		}}, nil
	}

	report, err := New(cfg, WithLoader(load), WithLogger(slog.New(slog.DiscardHandler))).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"objConfig"}, report.PageNames())
	require.Len(t, report.Libraries, 2)
	assert.Empty(t, report.Libraries[1].Pages)
	assert.Equal(t, "- Game API\n - [objConfig](_deploy/objConfig.md)\n",
		readDeployed(t, cfg, "_sidebar.md")[len("# API\n\n"):])
	content := readDeployed(t, cfg, "objConfig.md")
	assert.Contains(t, content, "class in `Game`")
	assert.NotContains(t, content, "Other")
}

func mustMarshalJSON(t *testing.T, v any) string {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
