// Package collection keeps one page of a remote paged collection in memory.
package collection

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/iudanet/todokeeper/internal/client/api"
	"github.com/iudanet/todokeeper/internal/models"
)

var (
	// ErrDiscarded is returned when a load result arrived after the controller
	// was closed or after a newer load was started; the result was not applied.
	ErrDiscarded = errors.New("page result discarded")

	// ErrNoPage indicates that nothing has been loaded yet
	ErrNoPage = errors.New("no page loaded")
)

// Fetcher loads one page from the server. api.Gateway.ListTodos,
// TodosByUser and ListUsers all fit.
type Fetcher[T models.Keyed] func(ctx context.Context, q api.PageQuery) (*models.Page[T], error)

// Controller holds the current page of a server-side collection.
// Every successful load replaces the page wholesale; the only in-place
// change is Replace, used to apply a server-confirmed update.
type Controller[T models.Keyed] struct {
	fetch  Fetcher[T]
	logger *slog.Logger
	page   *models.Page[T]
	query  api.PageQuery
	gen    uint64 // номер последней запущенной загрузки
	mu     sync.RWMutex
	closed bool
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	logger *slog.Logger
	scope  int64
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithScope sets the initial scope filter (user id)
func WithScope(userID int64) Option {
	return func(o *options) {
		o.scope = userID
	}
}

// New creates a controller positioned at page 1. Nothing is fetched until
// LoadPage or Reload is called.
func New[T models.Keyed](fetch Fetcher[T], pageSize int, opts ...Option) *Controller[T] {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller[T]{
		fetch:  fetch,
		logger: o.logger,
		query:  api.PageQuery{Page: 1, PageSize: pageSize, UserID: o.scope},
	}
}

// LoadPage fetches page index of size items in the current scope and makes
// it the held page.
func (c *Controller[T]) LoadPage(ctx context.Context, index, size int) (*models.Page[T], error) {
	c.mu.RLock()
	scope := c.query.UserID
	c.mu.RUnlock()
	return c.load(ctx, api.PageQuery{Page: index, PageSize: size, UserID: scope})
}

func (c *Controller[T]) load(ctx context.Context, q api.PageQuery) (*models.Page[T], error) {
	if q.Page < 1 {
		return nil, models.NewValidationError("page", "page must be a positive number")
	}
	if q.PageSize < 1 {
		return nil, models.NewValidationError("page_size", "page size must be a positive number")
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrDiscarded
	}
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	page, err := c.fetch(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.gen {
		c.logger.DebugContext(ctx, "discarding stale page", slog.Int("page", q.Page))
		return nil, ErrDiscarded
	}
	if err != nil {
		return nil, err
	}

	c.page = page
	c.query = q
	return page.Clone(), nil
}

// Reload fetches the current page again.
func (c *Controller[T]) Reload(ctx context.Context) (*models.Page[T], error) {
	return c.load(ctx, c.Query())
}

// SetScope switches the scope filter and goes back to page 1.
func (c *Controller[T]) SetScope(ctx context.Context, userID int64) (*models.Page[T], error) {
	q := c.Query()
	return c.load(ctx, api.PageQuery{Page: 1, PageSize: q.PageSize, UserID: userID})
}

// SetPageSize changes the page size. It always resets to page 1.
func (c *Controller[T]) SetPageSize(ctx context.Context, size int) (*models.Page[T], error) {
	q := c.Query()
	return c.load(ctx, api.PageQuery{Page: 1, PageSize: size, UserID: q.UserID})
}

// Next loads the following page. Without a next page the held page is
// returned unchanged.
func (c *Controller[T]) Next(ctx context.Context) (*models.Page[T], error) {
	c.mu.RLock()
	page, q := c.page, c.query
	c.mu.RUnlock()

	if page == nil {
		return nil, ErrNoPage
	}
	if !page.HasNext {
		return page.Clone(), nil
	}
	q.Page++
	return c.load(ctx, q)
}

// Previous loads the preceding page. On page 1 the held page is returned unchanged.
func (c *Controller[T]) Previous(ctx context.Context) (*models.Page[T], error) {
	c.mu.RLock()
	page, q := c.page, c.query
	c.mu.RUnlock()

	if page == nil {
		return nil, ErrNoPage
	}
	if !page.HasPrevious {
		return page.Clone(), nil
	}
	q.Page--
	return c.load(ctx, q)
}

// AfterDelete applies the repagination rule after one record was deleted:
// with the total reduced by one, a page index past the last page falls back
// to the last page, otherwise the same page is reloaded.
func (c *Controller[T]) AfterDelete(ctx context.Context) (*models.Page[T], error) {
	c.mu.RLock()
	page, q := c.page, c.query
	c.mu.RUnlock()

	if page == nil {
		return c.load(ctx, q)
	}

	total := max(page.TotalCount-1, 0)
	if last := models.MaxPage(total, q.PageSize); q.Page > last {
		c.logger.DebugContext(ctx, "page ran past the end after delete",
			slog.Int("page", q.Page),
			slog.Int("last_page", last))
		q.Page = last
	}
	return c.load(ctx, q)
}

// Settle reloads the current page and, if the server now reports fewer
// pages than the held index, loads the last page instead. Used when the
// local count is not trusted (e.g. a record vanished on the server).
func (c *Controller[T]) Settle(ctx context.Context) (*models.Page[T], error) {
	q := c.Query()
	page, err := c.load(ctx, q)
	if err != nil {
		return nil, err
	}

	if last := models.MaxPage(page.TotalCount, q.PageSize); q.Page > last {
		q.Page = last
		return c.load(ctx, q)
	}
	return page, nil
}

// Replace swaps the held record with the same key for item, keeping its
// position. It reports whether a record was replaced.
func (c *Controller[T]) Replace(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.page == nil {
		return false
	}
	for i := range c.page.Items {
		if c.page.Items[i].Key() == item.Key() {
			c.page.Items[i] = item
			return true
		}
	}
	return false
}

// Find returns the held record with the given key.
func (c *Controller[T]) Find(key int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	if c.page == nil {
		return zero, false
	}
	for _, item := range c.page.Items {
		if item.Key() == key {
			return item, true
		}
	}
	return zero, false
}

// Current returns a copy of the held page, nil before the first load.
func (c *Controller[T]) Current() *models.Page[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page.Clone()
}

// Query returns the query of the held page (or the initial query).
func (c *Controller[T]) Query() api.PageQuery {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

// Close detaches the controller; results of loads still in flight are dropped.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
