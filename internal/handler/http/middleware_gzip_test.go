// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectsJSON = `[{"id":"p1","projeto":"Horta","esta_ativo":"Sim"}]`

func gzipBytes(t *testing.T, data []byte) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return &buf
}

func gunzip(t *testing.T, r io.Reader) string {
	t.Helper()
	zr, err := gzip.NewReader(r)
	require.NoError(t, err)
	defer zr.Close()
	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(out)
}

// echoHandler answers with the (decoded) request body, or body when the
// request has none.
func echoHandler(t *testing.T, status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		in, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Empty(t, r.Header.Get("Content-Encoding"))

		w.WriteHeader(status)
		if len(in) > 0 {
			_, _ = w.Write(in)
			return
		}
		_, _ = io.WriteString(w, body)
	})
}

func TestGZip_Response(t *testing.T) {
	tests := []struct {
		name           string
		acceptEncoding string
		body           string
		compressed     bool
	}{
		{name: "plain gzip", acceptEncoding: "gzip", body: projectsJSON, compressed: true},
		{name: "no accept-encoding", acceptEncoding: "", body: projectsJSON, compressed: false},
		{name: "gzip among others", acceptEncoding: "deflate, gzip, br", body: projectsJSON, compressed: true},
		{name: "gzip with quality", acceptEncoding: "gzip;q=1.0, identity;q=0.5", body: projectsJSON, compressed: true},
		{name: "only br", acceptEncoding: "br", body: projectsJSON, compressed: false},
		{name: "large table", acceptEncoding: "gzip", body: strings.Repeat(`{"bairro":"Centro"},`, 2000), compressed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()

			withGZip(echoHandler(t, http.StatusOK, tt.body)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			if tt.compressed {
				assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
				assert.Equal(t, tt.body, gunzip(t, rec.Body))
				return
			}
			assert.Empty(t, rec.Header().Get("Content-Encoding"))
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestGZip_Request(t *testing.T) {
	registration := []byte(`{"nome_completo":"Maria","bairro":"Centro"}`)

	tests := []struct {
		name            string
		contentEncoding string
		body            io.Reader
		acceptGzip      bool
		wantStatus      int
	}{
		{name: "gzipped body", contentEncoding: "gzip", body: gzipBytes(t, registration), wantStatus: http.StatusOK},
		{name: "gzip listed first", contentEncoding: "gzip, deflate", body: gzipBytes(t, registration), wantStatus: http.StatusOK},
		{name: "gzipped both ways", contentEncoding: "gzip", body: gzipBytes(t, registration), acceptGzip: true, wantStatus: http.StatusOK},
		{name: "claims gzip but is not", contentEncoding: "gzip", body: bytes.NewReader(registration), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/beneficiaries", tt.body)
			req.Header.Set("Content-Encoding", tt.contentEncoding)
			if tt.acceptGzip {
				req.Header.Set("Accept-Encoding", "gzip")
			}
			rec := httptest.NewRecorder()

			withGZip(echoHandler(t, http.StatusOK, "")).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			switch {
			case tt.wantStatus != http.StatusOK:
				assert.Contains(t, rec.Body.String(), "invalid gzip data")
			case tt.acceptGzip:
				assert.Equal(t, string(registration), gunzip(t, rec.Body))
			default:
				assert.Equal(t, string(registration), rec.Body.String())
			}
		})
	}
}

func TestGZip_ShrinksRepetitiveTables(t *testing.T) {
	body := strings.Repeat(`{"sexo":"Feminino","acesso_agua":"Sim"},`, 1000)
	req := httptest.NewRequest(http.MethodGet, "/api/beneficiaries", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(echoHandler(t, http.StatusOK, body)).ServeHTTP(rec, req)

	assert.Less(t, rec.Body.Len(), len(body)/10)
}

func TestGZip_PooledWritersAreReset(t *testing.T) {
	h := withGZip(echoHandler(t, http.StatusOK, ""))

	const n = 20
	payloads := make([]string, n)
	bodies := make([]*bytes.Buffer, n)
	recs := make([]*httptest.ResponseRecorder, n)
	for i := range n {
		payloads[i] = strings.Repeat("x", i+1)
		bodies[i] = gzipBytes(t, []byte(payloads[i]))
		recs[i] = httptest.NewRecorder()
	}

	var wg sync.WaitGroup
	for i := range n {
		wg.Go(func() {
			req := httptest.NewRequest(http.MethodPost, "/api/users", bodies[i])
			req.Header.Set("Content-Encoding", "gzip")
			req.Header.Set("Accept-Encoding", "gzip")
			h.ServeHTTP(recs[i], req)
		})
	}
	wg.Wait()

	for i := range n {
		assert.Equal(t, payloads[i], gunzip(t, recs[i].Body), "request %d", i)
	}
}

func TestGZip_KeepsStatusAndVary(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/projects", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(echoHandler(t, http.StatusCreated, `{"id":"p1"}`)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))
	assert.Equal(t, `{"id":"p1"}`, gunzip(t, rec.Body))
}

func TestGZip_EmptyResponseIsNotCompressed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/cache/invalidate", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Zero(t, rec.Body.Len())
}

func TestGZip_HandlerWithoutWritesGets200(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
}
