package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"annolint/internal/check"
	"annolint/internal/imagery"
	"annolint/internal/logging"
	"annolint/internal/scale"
	"annolint/internal/store"
	"annolint/internal/task"
)

// resolveBaseURL returns the platform endpoint from the flag, then
// $ANNOLINT_API_URL, then the config file. Empty means the platform default.
func resolveBaseURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("ANNOLINT_API_URL"); v != "" {
		return v
	}
	return cfg.APIBaseURL
}

// resolveProject returns the project from the flag, then $ANNOLINT_PROJECT,
// then the config file. Returns "" if none is set.
func resolveProject(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("ANNOLINT_PROJECT"); v != "" {
		return v
	}
	return cfg.Project
}

// newPlatformClient builds the Scale client from the resolved endpoint and
// the key file.
func newPlatformClient(baseURL, keyPath string) (*scale.Client, error) {
	if keyPath == "" {
		keyPath = cfg.APIKeyPath
	}
	key, err := scale.ReadAPIKey(keyPath)
	if err != nil {
		return nil, fmt.Errorf("platform API key: %w\n\n"+
			"Save your key:  echo '<YOUR_KEY>' > %s && chmod 600 %s", err, keyPath, keyPath)
	}
	return scale.New(baseURL, key)
}

// fetchPlatformTasks pulls a project's completed tasks from the platform.
func fetchPlatformTasks(ctx context.Context, client *scale.Client, project string, limit int) ([]task.Task, error) {
	opts := []scale.ListTasksOption{
		scale.WithProject(project),
		scale.WithStatus("completed"),
	}
	if limit > 0 {
		docs, err := client.Tasks().List(ctx, append(opts, scale.WithLimit(limit))...)
		if err != nil {
			return nil, err
		}
		return scale.ToTasks(docs.Docs), nil
	}
	docs, err := client.Tasks().ListAll(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return scale.ToTasks(docs), nil
}

// loadTasksFile reads a local JSON dump: either a bare task array or a
// platform task-listing page.
func loadTasksFile(path string) ([]task.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tasks file: %w", err)
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err == nil && len(tasks) > 0 && tasks[0].ID != "" {
		return tasks, nil
	}

	var paged scale.PagedTasks
	if err := json.Unmarshal(data, &paged); err == nil && len(paged.Docs) > 0 {
		return scale.ToTasks(paged.Docs), nil
	}
	return nil, fmt.Errorf("tasks file %s: not a task array or task listing", path)
}

// openStore opens the task cache, creating its directory if needed.
// An empty path uses the configured default.
func openStore(dbPath string) (*store.SQLStore, error) {
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dir := filepath.Dir(dbPath); dir != "." && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	return store.Open(dbPath)
}

// newImageSource builds the image fetcher per config: HTTP with the fixed
// download timeout, optionally wrapped in the per-URL cache.
func newImageSource() imagery.Source {
	opts := []imagery.HTTPOption{imagery.WithLogger(logging.New("imagery"))}
	if cfg.ImageDebugDir != "" {
		opts = append(opts, imagery.WithDebugDir(cfg.ImageDebugDir))
	}
	var src imagery.Source = imagery.NewHTTPSource(opts...)
	if cfg.CacheImages {
		src = imagery.NewCachedSource(src)
	}
	return src
}

// newEvaluator wires the three checks from config plus any flag overrides.
func newEvaluator(threshold float64, doubleCount bool) *check.Evaluator {
	opts := []check.Option{check.WithOcclusionThreshold(threshold)}
	if doubleCount {
		opts = append(opts, check.WithDoubleCount())
	}
	return check.NewDefaultEvaluator(newImageSource(), opts...)
}
