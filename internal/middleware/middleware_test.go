package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func bearerTestHandler(t *testing.T, secret string) (http.Handler, *int) {
	t.Helper()
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})
	reject := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}
	return BearerSecret(secret, reject)(next), &calls
}

func TestBearerSecret_Accepts(t *testing.T) {
	handler, calls := bearerTestHandler(t, "s3cret")

	req := httptest.NewRequest(http.MethodGet, "/cron/sync-roster", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, *calls)
}

func TestBearerSecret_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing header": "",
		"wrong secret":   "Bearer nope",
		"no prefix":      "s3cret",
		"wrong scheme":   "Basic s3cret",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			handler, calls := bearerTestHandler(t, "s3cret")

			req := httptest.NewRequest(http.MethodGet, "/cron/sync-roster", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Zero(t, *calls, "handler must not run")
		})
	}
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})
	handler := RequestID(zerolog.Nop())(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	require.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestRequestID_KeepsIncomingID(t *testing.T) {
	next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})
	handler := RequestID(zerolog.Nop())(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, "trace-123", rec.Header().Get("X-Request-ID"))
}
