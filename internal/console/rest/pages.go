package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ledgerdesk/ledgerdesk/internal/console/collection"
	"github.com/ledgerdesk/ledgerdesk/internal/domain"
)

// PageFetcher returns a collection.Fetcher that lists one backend resource,
// e.g. "admins" or "wallets". The token is read per call, so a session
// refresh takes effect without rewiring the collection.
func PageFetcher[T any](c *Client, resource string, token func() string) collection.Fetcher[T] {
	return func(ctx context.Context, req collection.Request) (*domain.PageResult[T], error) {
		q := url.Values{}
		q.Set("page", strconv.Itoa(req.Page))
		q.Set("limit", strconv.Itoa(req.Limit))
		if req.Search != "" {
			q.Set("search", req.Search)
		}
		for k, v := range req.Filters {
			q.Set(k, v)
		}

		var page domain.PageResult[T]
		if err := c.Get(ctx, token(), "/api/v1/"+resource, q, &page); err != nil {
			return nil, err
		}
		return &page, nil
	}
}

// RowMutator returns a collection.Mutator that performs the row actions of
// one resource. id extracts a row's identifier.
func RowMutator[T any](c *Client, resource string, token func() string, id func(T) uint) collection.Mutator[T] {
	return func(ctx context.Context, row T, kind collection.ActionKind) (string, error) {
		switch kind {
		case collection.ActionChangeStatus:
			return c.ToggleStatus(ctx, token(), resource, id(row))
		case collection.ActionDelete:
			return c.Remove(ctx, token(), resource, id(row))
		default:
			return "", domain.NewAppError(domain.CodeValidation, "unsupported row action", nil)
		}
	}
}
