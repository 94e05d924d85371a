package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pulsefeed/backend/pkg/errorx"
	"github.com/pulsefeed/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

type echoResponse struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

func echoHandler(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	return &echoResponse{Name: req.Name, Limit: req.Limit}, nil
}

func TestRouter_BindQuery(t *testing.T) {
	r := New(context.Background())
	GET(r, "/echo", echoHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/echo?name=foo&limit=7", nil)
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, `{"code":0,"data":{"name":"foo","limit":7}}`, w.Body.String())
}

func TestRouter_BindBody(t *testing.T) {
	r := New(context.Background())
	POST(r, "/echo", echoHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"foo"}`))
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, `{"code":0,"data":{"name":"foo","limit":0}}`, w.Body.String())

	// An empty body binds the zero request.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/echo", nil)
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, `{"code":0,"data":{"name":"","limit":0}}`, w.Body.String())
}

func TestRouter_MethodMismatch(t *testing.T) {
	r := New(context.Background())
	POST(r, "/echo", echoHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, `{"code":100004,"error":"Not found api"}`, w.Body.String())
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	r := New(context.Background())
	GET(r, "/known", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	})
	GET(r, "/unknown", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, context.DeadlineExceeded
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/known", nil))
	require.Equal(t, `{"code":100003,"error":"Permission denied"}`, w.Body.String())

	// Unexpected errors never leak their message to the client.
	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	require.Equal(t, `{"code":100000,"error":"Request failed"}`, w.Body.String())
}

func TestRouter_BranchMiddleware(t *testing.T) {
	r := New(context.Background())

	whoami := func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: xcontext.RequestUserID(ctx)}, nil
	}

	GET(r, "/public", whoami)

	authed := r.Branch("/user")
	authed.Before(func(ctx context.Context) (context.Context, error) {
		return xcontext.WithRequestUserID(ctx, "user1"), nil
	})
	GET(authed, "/whoami", whoami)

	rejected := r.Branch("/admin")
	rejected.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	})
	GET(rejected, "/whoami", whoami)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/whoami", nil))
	require.Equal(t, `{"code":0,"data":{"name":"user1","limit":0}}`, w.Body.String())

	// The branch middleware does not apply to the parent.
	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
	require.Equal(t, `{"code":0,"data":{"name":"","limit":0}}`, w.Body.String())

	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/whoami", nil))
	require.Equal(t, `{"code":100005,"error":"You need to authenticate before"}`, w.Body.String())
}
