package middleware

import (
	"bytes"
	"net/http"
)

// responseWriter remembers the status and, when capture is set, the body written through it.
type responseWriter struct {
	http.ResponseWriter
	status  int
	capture bool
	body    bytes.Buffer
}

func newResponseWriter(w http.ResponseWriter, capture bool) *responseWriter {
	return &responseWriter{ResponseWriter: w, capture: capture}
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.status == 0 {
		rw.status = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	if rw.capture {
		rw.body.Write(b)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Status() int {
	if rw.status == 0 {
		return http.StatusOK
	}
	return rw.status
}
