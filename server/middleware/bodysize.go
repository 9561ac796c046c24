package middleware

import (
	"net/http"

	"github.com/kbukum/promptserve/util"
)

const defaultMaxBodySize = 1 << 20 // 1MB

// BodySizeLimit restricts request bodies to maxSize (e.g. "1MB", "512KB").
// Oversized bodies fail at read time, which the JSON binding reports as 400.
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > size {
				writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}
