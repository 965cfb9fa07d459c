// Package console wires the backoffice client mechanisms together: route
// decisions per navigation, session lookup, and the capability gate handed
// to protected views.
package console

import (
	"context"

	"github.com/ledgerdesk/ledgerdesk/internal/console/ability"
	"github.com/ledgerdesk/ledgerdesk/internal/console/routeguard"
	"github.com/ledgerdesk/ledgerdesk/internal/console/session"
)

// Console performs the once-per-navigation work every screen shares.
type Console struct {
	routes   routeguard.RouteTable
	sessions session.Store
}

// New creates a Console over the given route table and session store.
func New(routes routeguard.RouteTable, sessions session.Store) *Console {
	return &Console{routes: routes, sessions: sessions}
}

// Navigate classifies one navigation: it looks up the current session and
// runs the route decider. The session lookup is the only I/O involved.
func (c *Console) Navigate(ctx context.Context, path, rawQuery string) (routeguard.Decision, error) {
	s, err := c.sessions.Current(ctx)
	if err != nil {
		return routeguard.Decision{}, err
	}
	return c.routes.Decide(path, rawQuery, s != nil), nil
}

// Ability returns the capability gate for the current session. Signed-out
// visitors get a deny-all gate.
func (c *Console) Ability(ctx context.Context) (*ability.Set, error) {
	s, err := c.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.Ability(), nil
}
