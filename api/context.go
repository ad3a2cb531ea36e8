package api

import (
	"context"

	"github.com/priyanshu14077/NeuronPress/services"
)

type keyType string

const principalKey keyType = "principal"

// ctxWithPrincipal adds the authenticated caller to the context
func ctxWithPrincipal(ctx context.Context, p services.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// ctxGetPrincipal retrieves the authenticated caller, or the zero Principal on public routes
func ctxGetPrincipal(ctx context.Context) services.Principal {
	p, _ := ctx.Value(principalKey).(services.Principal)
	return p
}
