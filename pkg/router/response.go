package router

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/questx-lab/nftgallery/pkg/errorx"
)

type response struct {
	Code  errorx.Code `json:"code"`
	Error string      `json:"error,omitempty"`
	Data  any         `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{Code: 0, Data: data}
}

func newErrorResponse(err error) response {
	var errx errorx.Error
	if errors.As(err, &errx) {
		return response{Code: errx.Code, Error: errx.Message}
	}

	return response{Code: errorx.Unknown.Code, Error: errorx.Unknown.Message}
}

func writeJSON(w http.ResponseWriter, status int, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}
