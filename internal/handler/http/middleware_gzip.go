package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

// withGZip accepts gzip request bodies and compresses responses for clients
// that ask for it. Whole-table listings are the main beneficiary.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			zr, err := gzip.NewReader(r.Body)
			if err != nil {
				writeErrorBody(w, http.StatusBadRequest, "invalid gzip data")
				return
			}
			defer zr.Close()

			r.Body = io.NopCloser(zr)
			r.Header.Del("Content-Encoding")
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		zw := gzipWriterPool.Get().(*gzip.Writer)
		zw.Reset(w)
		defer gzipWriterPool.Put(zw)

		gw := &gzipResponseWriter{ResponseWriter: w, writer: zw}
		next.ServeHTTP(gw, r)
		_ = gw.finish()
	})
}

// gzipResponseWriter holds the status back until the first body byte, so
// responses without a body go out uncompressed and without gzip headers.
type gzipResponseWriter struct {
	http.ResponseWriter
	writer  *gzip.Writer
	status  int
	started bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.status == 0 {
		w.status = statusCode
	}
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if !w.started {
		w.started = true
		h := w.Header()
		h.Del("Content-Length")
		h.Set("Content-Encoding", "gzip")
		h.Add("Vary", "Accept-Encoding")
		w.ResponseWriter.WriteHeader(w.statusOrOK())
	}
	return w.writer.Write(data)
}

func (w *gzipResponseWriter) statusOrOK() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *gzipResponseWriter) finish() error {
	if w.started {
		return w.writer.Close()
	}
	if w.status != 0 {
		w.ResponseWriter.WriteHeader(w.status)
	}
	return nil
}
