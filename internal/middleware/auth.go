package middleware

import (
	"context"
	"strings"

	"github.com/pulsefeed/backend/pkg/errorx"
	"github.com/pulsefeed/backend/pkg/router"
	"github.com/pulsefeed/backend/pkg/xcontext"
)

// AuthVerifier resolves the access token from the authorization header or
// the auth cookie and attaches the user id to the context. A request without
// a token passes through anonymously, Authenticate rejects it later if the
// endpoint requires a user.
func AuthVerifier() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := accessToken(ctx)
		if token == "" {
			return ctx, nil
		}

		obj, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, obj.ID), nil
	}
}

// Authenticate rejects anonymous requests. Register it after AuthVerifier.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return ctx, nil
	}
}

func accessToken(ctx context.Context) string {
	httpReq := xcontext.HTTPRequest(ctx)
	if httpReq == nil {
		return ""
	}

	authorization := httpReq.Header.Get("Authorization")
	if strings.HasPrefix(authorization, "Bearer ") {
		return strings.TrimPrefix(authorization, "Bearer ")
	}

	cookie, err := httpReq.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
