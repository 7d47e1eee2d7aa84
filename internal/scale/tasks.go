package scale

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// defaultPageSize is the task page size used by ListAll.
const defaultPageSize = 100

// maxConcurrentPages bounds how many task pages ListAll fetches at once.
const maxConcurrentPages = 4

// TaskScope provides read operations on annotation tasks.
type TaskScope struct {
	client *Client
}

// ListTasksOption configures filter and pagination for task listing.
type ListTasksOption func(params url.Values)

// WithProject filters tasks by project name.
func WithProject(name string) ListTasksOption {
	return func(p url.Values) { p.Set("project", name) }
}

// WithStatus filters tasks by status (e.g. "completed").
func WithStatus(status string) ListTasksOption {
	return func(p url.Values) { p.Set("status", status) }
}

// WithType filters tasks by task type (e.g. "annotation").
func WithType(taskType string) ListTasksOption {
	return func(p url.Values) { p.Set("type", taskType) }
}

// WithLimit sets the page size for listing.
func WithLimit(n int) ListTasksOption {
	return func(p url.Values) { p.Set("limit", strconv.Itoa(n)) }
}

// WithOffset sets the result offset for listing.
func WithOffset(n int) ListTasksOption {
	return func(p url.Values) { p.Set("offset", strconv.Itoa(n)) }
}

// List returns one page of tasks matching the given filters.
func (s *TaskScope) List(ctx context.Context, opts ...ListTasksOption) (*PagedTasks, error) {
	params := url.Values{}
	for _, opt := range opts {
		opt(params)
	}

	u := fmt.Sprintf("%s/tasks?%s", s.client.baseURL, params.Encode())

	var paged PagedTasks
	if err := s.client.doJSON(ctx, "GET", u, "list tasks", nil, &paged); err != nil {
		return nil, err
	}
	return &paged, nil
}

// ListAll returns all tasks matching the filters, auto-paginating. The first
// page establishes the total; remaining pages are fetched concurrently and
// assembled in offset order, so the result order matches a sequential walk.
func (s *TaskScope) ListAll(ctx context.Context, opts ...ListTasksOption) ([]TaskResource, error) {
	first, err := s.List(ctx, append(opts, WithLimit(defaultPageSize), WithOffset(0))...)
	if err != nil {
		return nil, err
	}
	if first.Total <= len(first.Docs) {
		return first.Docs, nil
	}

	pages := (first.Total + defaultPageSize - 1) / defaultPageSize
	results := make([][]TaskResource, pages)
	results[0] = first.Docs

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPages)
	for page := 1; page < pages; page++ {
		g.Go(func() error {
			paged, err := s.List(gctx, append(opts,
				WithLimit(defaultPageSize),
				WithOffset(page*defaultPageSize),
			)...)
			if err != nil {
				return err
			}
			results[page] = paged.Docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []TaskResource
	for _, docs := range results {
		all = append(all, docs...)
	}
	return all, nil
}
