package pagination

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/query"
)

// DefaultLimit is the page size used by the event listing endpoints.
const DefaultLimit = 3

type Options struct {
	Page      int // 1-based; values < 1 are treated as 1
	Limit     int // values < 1 fall back to DefaultLimit
	WithTotal bool
}

func (o Options) Normalize() Options {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	return o
}

// Window is the (offset, limit) slice of an ordered result set.
type Window struct {
	Offset int
	Limit  int
}

func (o Options) Window() Window {
	o = o.Normalize()
	return Window{Offset: (o.Page - 1) * o.Limit, Limit: o.Limit}
}

// Source executes composed queries. Fetch must keep the query's order.
type Source[T any] interface {
	Fetch(ctx context.Context, q query.Query, w Window) ([]T, error)
	Count(ctx context.Context, q query.Query) (int, error)
}

type Result[T any] struct {
	Items       []T
	CurrentPage int
	Limit       int

	// Set only when Options.WithTotal was requested.
	HasTotal   bool
	Total      int
	TotalPages int
}

// Paginate fetches one page of q. When opts.WithTotal is set the row count
// runs concurrently with the page fetch; both share ctx cancellation and the
// first failure aborts the other. No partial result is ever returned.
func Paginate[T any](ctx context.Context, src Source[T], q query.Query, opts Options) (Result[T], error) {
	opts = opts.Normalize()
	w := opts.Window()

	var (
		items []T
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := src.Fetch(gctx, q, w)
		if err != nil {
			return fmt.Errorf("fetch page %d: %w", opts.Page, err)
		}
		items = out
		return nil
	})
	if opts.WithTotal {
		g.Go(func() error {
			n, err := src.Count(gctx, q)
			if err != nil {
				return fmt.Errorf("count: %w", err)
			}
			total = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result[T]{}, err
	}

	if items == nil {
		items = []T{}
	}
	res := Result[T]{
		Items:       items,
		CurrentPage: opts.Page,
		Limit:       opts.Limit,
	}
	if opts.WithTotal {
		res.HasTotal = true
		res.Total = total
		res.TotalPages = TotalPages(total, opts.Limit)
	}
	return res, nil
}

// TotalPages is ceil(total/limit).
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
