package router

import (
	"context"
	"net/http"

	"github.com/mitchellh/mapstructure"
	"github.com/pulsefeed/backend/pkg/errorx"
	"github.com/pulsefeed/backend/pkg/xcontext"
)

// HandlerFunc is the signature of every endpoint. The router binds the
// request, runs the middlewares, and turns the returned value or error into
// the response envelope.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can derive a new context, for
// example to attach the authenticated user id.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written. It receives the handler
// error, or nil on success.
type CloserFunc func(ctx context.Context, err error)

type Router struct {
	mux     *http.ServeMux
	baseCtx context.Context
	prefix  string
	befores []MiddlewareFunc
	afters  []CloserFunc
}

// New creates a root router. Endpoints derive their context from ctx, so it
// should carry the database, configs, logger, and token engine.
func New(ctx context.Context) *Router {
	return &Router{mux: http.NewServeMux(), baseCtx: ctx}
}

// Branch returns a router sharing the same mux with an additional path
// prefix. Middlewares registered on the branch do not affect the parent.
func (r *Router) Branch(pattern string) *Router {
	return &Router{
		mux:     r.mux,
		baseCtx: r.baseCtx,
		prefix:  r.prefix + pattern,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]CloserFunc{}, r.afters...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(closer CloserFunc) {
	r.afters = append(r.afters, closer)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodPost, pattern, handler)
}

func register[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	befores := append([]MiddlewareFunc{}, r.befores...)
	afters := append([]CloserFunc{}, r.afters...)

	r.mux.HandleFunc(r.prefix+pattern, func(w http.ResponseWriter, httpReq *http.Request) {
		ctx := xcontext.WithHTTPRequest(r.baseCtx, httpReq)

		err := func() error {
			if httpReq.Method != method {
				return errorx.New(errorx.NotFound, "Not found api")
			}

			for _, middleware := range befores {
				newCtx, err := middleware(ctx)
				if err != nil {
					return err
				}
				ctx = newCtx
			}

			var req Request
			if err := bindRequest(httpReq, method, &req); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return errorx.New(errorx.BadRequest, "Cannot bind the request")
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return err
			}

			if err := writeJSON(w, newResponse(resp)); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
				return errorx.New(errorx.BadResponse, "Cannot write the response")
			}

			return nil
		}()

		if err != nil {
			if werr := writeJSON(w, newErrorResponse(err)); werr != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", werr)
			}
		}

		for _, closer := range afters {
			closer(ctx, err)
		}
	})
}

func bindRequest(httpReq *http.Request, method string, req any) error {
	if method == http.MethodGet {
		return bindQuery(httpReq, req)
	}

	return bindBody(httpReq, req)
}

// bindQuery decodes the url query into the request struct through its json
// tags. Values arrive as strings, so the decoding is weakly typed.
func bindQuery(httpReq *http.Request, req any) error {
	values := map[string]string{}
	for key, value := range httpReq.URL.Query() {
		if len(value) > 0 {
			values[key] = value[0]
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           req,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(values)
}
