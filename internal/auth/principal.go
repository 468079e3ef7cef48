// Package auth carries the authenticated caller through request contexts.
package auth

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned when an operation needs a caller and none is present.
var ErrUnauthenticated = errors.New("unauthenticated")

// SystemUsername is used for changes made by the service itself, e.g. NOMIS sync.
const SystemUsername = "INCIDENT_REPORTING_API"

// Principal identifies the caller of a request.
type Principal struct {
	Username string
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored in ctx, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.Username == "" {
		return Principal{}, false
	}
	return p, true
}

// Username returns the caller's username or ErrUnauthenticated.
func Username(ctx context.Context) (string, error) {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return "", ErrUnauthenticated
	}
	return p.Username, nil
}
