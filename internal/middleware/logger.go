package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/pulsefeed/backend/pkg/errorx"
	"github.com/pulsefeed/backend/pkg/router"
	"github.com/pulsefeed/backend/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx context.Context, err error) {
		httpReq := xcontext.HTTPRequest(ctx)
		if httpReq == nil {
			return
		}

		info := fmt.Sprintf("%s | %s", httpReq.Method, httpReq.URL.Path)
		if err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %d", info, -1)
			}
		} else {
			xcontext.Logger(ctx).Infof(info)
		}
	}
}
