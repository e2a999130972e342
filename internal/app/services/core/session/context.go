package session

import (
	"context"
	"errors"
	"medisync-service/internal/app/services/core/identity"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
)

func WithResolver(ctx context.Context, resolver *identity.Resolver) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_RESOLVER_KEY, resolver)
}

func ResolverFrom(ctx context.Context) (*identity.Resolver, error) {
	resolver, ok := ctx.Value(constvars.CONTEXT_RESOLVER_KEY).(*identity.Resolver)
	if !ok || resolver == nil {
		return nil, exceptions.ErrMissingResolver(errors.New("no resolver in request context"))
	}
	return resolver, nil
}
