package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/nieomylnieja/refdoc/internal/config"
	"github.com/nieomylnieja/refdoc/internal/logfields"
	"github.com/nieomylnieja/refdoc/internal/watch"
)

// runWatch generates the documentation once and then after every change
// of the input, examples or boilerplate files.
// Failed generations are logged, the watch goes on.
func runWatch(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	rebuild := func(ctx context.Context) {
		if err := runGenerate(ctx, cfg, logger); err != nil {
			logger.Error("Generation failed", logfields.Error(err))
		}
	}
	rebuild(ctx)

	w := watch.Watcher{
		Dirs:     watchedDirs(cfg),
		Debounce: time.Duration(CLI.Watch.Debounce) * time.Millisecond,
		Ignore:   []string{cfg.DeployDir},
		Logger:   logger,
	}
	logger.Info("Watching for changes", slog.Any("dirs", w.Dirs))
	return w.Run(ctx, rebuild)
}

func watchedDirs(cfg config.Config) []string {
	dirs := []string{cfg.AssembliesDir, cfg.ExamplesDir}
	seen := map[string]struct{}{cfg.AssembliesDir: {}, cfg.ExamplesDir: {}}
	for _, fragment := range []string{cfg.ReadMe, cfg.SidebarBefore, cfg.SidebarEnd, cfg.FileEnd} {
		if fragment == "" {
			continue
		}
		dir := filepath.Dir(fragment)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}
