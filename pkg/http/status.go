package xhttp

import "github.com/valyala/fasthttp"

const (
	StatusOK                  = fasthttp.StatusOK
	StatusCreated             = fasthttp.StatusCreated
	StatusBadRequest          = fasthttp.StatusBadRequest
	StatusUnauthorized        = fasthttp.StatusUnauthorized
	StatusForbidden           = fasthttp.StatusForbidden
	StatusNotFound            = fasthttp.StatusNotFound
	StatusRequestTimeout      = fasthttp.StatusRequestTimeout
	StatusConflict            = fasthttp.StatusConflict
	StatusInternalServerError = fasthttp.StatusInternalServerError
)

func StatusText(code int) string {
	return fasthttp.StatusMessage(code)
}
