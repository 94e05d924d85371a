package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/pulsefeed/backend/pkg/errorx"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{Code: 0, Data: data}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

// bindBody decodes a json body. An empty body binds the zero request, since
// most claim endpoints take no parameters.
func bindBody(httpReq *http.Request, req any) error {
	err := json.NewDecoder(httpReq.Body).Decode(req)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func writeJSON(w http.ResponseWriter, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}
