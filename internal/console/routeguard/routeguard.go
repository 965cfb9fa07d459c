// Package routeguard decides, once per navigation, whether the requested
// path may render, must redirect to the login page, or must redirect to the
// default landing page. The decision is pure: given the route table, the
// path, and session presence, the same inputs always produce the same output.
package routeguard

import (
	"net/url"
	"slices"
	"strings"
)

// Action is the outcome kind of a route decision.
type Action int

const (
	// Pass lets the navigation proceed.
	Pass Action = iota
	// RedirectToLogin sends the visitor to the login page, carrying the
	// originally requested path so it can be resumed after sign-in.
	RedirectToLogin
	// RedirectToDefault sends an already-authenticated visitor away from
	// auth-only pages to the default landing page.
	RedirectToDefault
)

// callbackParam is the query parameter on the login path that carries the
// percent-encoded original path+query.
const callbackParam = "callbackUrl"

// Decision is the result of classifying one navigation.
type Decision struct {
	Action Action
	// Target is the redirect location; empty for Pass.
	Target string
}

// RouteTable is the configuration the decider classifies paths against.
// Every reachable path falls into exactly one class; paths listed nowhere
// are protected.
type RouteTable struct {
	// PublicRoutes render without a session.
	PublicRoutes []string
	// AuthRoutes are the auth-only pages (login/register) that must not be
	// visited while authenticated.
	AuthRoutes []string
	// APIAuthPrefix marks traffic handled by the auth subsystem itself;
	// the decider stays out of its way entirely.
	APIAuthPrefix string
	// LoginPath is where unauthenticated visitors are sent.
	LoginPath string
	// DefaultRedirect is where authenticated visitors of auth-only pages land.
	DefaultRedirect string
}

// DefaultRouteTable returns the route table the backoffice ships with.
func DefaultRouteTable() RouteTable {
	return RouteTable{
		PublicRoutes:    []string{"/health"},
		AuthRoutes:      []string{"/login", "/register"},
		APIAuthPrefix:   "/api/auth",
		LoginPath:       "/login",
		DefaultRedirect: "/",
	}
}

// Decide classifies one navigation. Rules are ordered; the first match wins:
//
//  1. API-auth prefix traffic passes untouched.
//  2. Public paths pass regardless of session state.
//  3. Auth-only paths pass when no session exists.
//  4. Any other path without a session redirects to login, with the original
//     path+query percent-encoded in the callbackUrl parameter.
//  5. Auth-only paths with a session redirect to the default landing page.
//  6. Everything else (session present, protected path) passes.
func (t RouteTable) Decide(path, rawQuery string, authenticated bool) Decision {
	isAPIAuth := t.APIAuthPrefix != "" && strings.HasPrefix(path, t.APIAuthPrefix)
	isPublic := slices.Contains(t.PublicRoutes, path)
	isAuthRoute := slices.Contains(t.AuthRoutes, path)

	if isAPIAuth {
		return Decision{Action: Pass}
	}
	if isPublic {
		return Decision{Action: Pass}
	}
	if isAuthRoute && !authenticated {
		return Decision{Action: Pass}
	}

	if !authenticated {
		callback := path
		if rawQuery != "" {
			callback += "?" + rawQuery
		}
		return Decision{
			Action: RedirectToLogin,
			Target: t.LoginPath + "?" + callbackParam + "=" + url.QueryEscape(callback),
		}
	}

	if isAuthRoute {
		return Decision{Action: RedirectToDefault, Target: t.DefaultRedirect}
	}

	return Decision{Action: Pass}
}
