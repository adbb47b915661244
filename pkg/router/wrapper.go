package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mitchellh/mapstructure"
	"github.com/questx-lab/nftgallery/pkg/errorx"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ctx context.Context = requestContext{Context: r.Context(), values: router.root}
		ctx = xcontext.WithHTTPRequest(ctx, r)

		defer func() {
			for _, closer := range router.closers {
				closer(ctx)
			}
		}()

		if r.Method != method {
			ctx = xcontext.WithError(ctx, errorx.New(errorx.NotFound, "Not found method %s", r.Method))
			writeError(ctx, w, http.StatusMethodNotAllowed)
			return
		}

		var err error
		for _, before := range router.befores {
			if ctx, err = runMiddleware(ctx, before); err != nil {
				ctx = xcontext.WithError(ctx, err)
				writeError(ctx, w, http.StatusOK)
				return
			}
		}

		var req Request
		if err := bind(r, method, &req); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind request: %v", err)
			ctx = xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Invalid request"))
			writeError(ctx, w, http.StatusBadRequest)
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, w, http.StatusOK)
			return
		}

		if err := writeJSON(w, http.StatusOK, newResponse(resp)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
		}
	}
}

func runMiddleware(ctx context.Context, middleware MiddlewareFunc) (context.Context, error) {
	newCtx, err := middleware(ctx)
	if err != nil {
		return ctx, err
	}

	if newCtx == nil {
		return ctx, nil
	}

	return newCtx, nil
}

func bind(r *http.Request, method string, req any) error {
	switch method {
	case http.MethodGet:
		query := map[string]any{}
		for key, values := range r.URL.Query() {
			if len(values) > 0 {
				query[key] = values[0]
			}
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           req,
		})
		if err != nil {
			return err
		}

		return decoder.Decode(query)

	case http.MethodPost:
		err := json.NewDecoder(r.Body).Decode(req)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}

	return errors.New("unsupported method")
}

func writeError(ctx context.Context, w http.ResponseWriter, status int) {
	if err := writeJSON(w, status, newErrorResponse(xcontext.Error(ctx))); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
