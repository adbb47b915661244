package router

import (
	"context"
	"net/http"

	"github.com/questx-lab/nftgallery/config"
	"github.com/rs/cors"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before a handler. It may return a derived
// context, which is passed to the next step. A non-nil error stops the chain.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc always runs at the end of a request, even if a middleware or
// the handler failed. The error, if any, is available via xcontext.Error.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux  *http.ServeMux
	root context.Context

	befores []MiddlewareFunc
	closers []CloserFunc
}

// New creates a router whose handlers see every value stored in root, e.g.
// configs, logger and database.
func New(root context.Context) *Router {
	return &Router{mux: http.NewServeMux(), root: root}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

// Handler returns the http.Handler with CORS applied. The api carries no
// cookies, so credentials are never allowed cross-origin.
func (r *Router) Handler(cfg config.ServerConfigs) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Authorization"},
	}).Handler(r.mux)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Handle(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Handle(pattern, wrapHandler(r, http.MethodPost, handler))
}
