package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nieomylnieja/refdoc/internal/config"
)

func TestWatchedDirs(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, []string{"Assemblies", "Examples", "style"}, watchedDirs(cfg))

	cfg.FileEnd = filepath.Join("footer", "_fileEnd.md")
	cfg.ReadMe = ""
	assert.Equal(t, []string{"Assemblies", "Examples", "style", "footer"}, watchedDirs(cfg))
}
