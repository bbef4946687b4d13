package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	server := gin.New()
	server.Use(RequestLogger(zerolog.Nop()))

	server.GET("/ping", func(gctx *gin.Context) {
		// The context logger must be usable inside handlers.
		zerolog.Ctx(gctx.Request.Context()).Info().Msg("pong")
		gctx.Status(http.StatusOK)
	})

	return server
}

func TestRequestLoggerGeneratesRequestID(t *testing.T) {
	server := setupTestServer(t)

	request, err := http.NewRequest(http.MethodGet, "/ping", nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func TestRequestLoggerKeepsGivenRequestID(t *testing.T) {
	server := setupTestServer(t)

	request, err := http.NewRequest(http.MethodGet, "/ping", nil)
	require.NoError(t, err)
	request.Header.Set("X-Request-ID", "given-id")

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "given-id", recorder.Header().Get("X-Request-ID"))
}
