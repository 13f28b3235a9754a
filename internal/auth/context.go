package auth

import (
	"context"

	"github.com/thenoetrevino/tally/internal/models"
)

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal stores the verified caller in ctx
func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the caller stored by WithPrincipal, or nil
func PrincipalFromContext(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(principalKey).(*models.Principal)
	return p
}
