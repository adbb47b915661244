package router

import "context"

// requestContext takes cancellation from the incoming request and falls back
// to the router root for values.
type requestContext struct {
	context.Context
	values context.Context
}

func (ctx requestContext) Value(key any) any {
	if v := ctx.Context.Value(key); v != nil {
		return v
	}

	return ctx.values.Value(key)
}
