package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupTestRouter(logger *zap.SugaredLogger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(logger))
	r.GET("/games", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"games": []string{}})
	})
	r.GET("/games/:game_id", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	r.GET("/server-error", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	})
	return r
}

func TestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedLevel  zapcore.Level
	}{
		{"success", "/games?season=2015", http.StatusOK, zapcore.InfoLevel},
		{"client error", "/games/123", http.StatusNotFound, zapcore.WarnLevel},
		{"server error", "/server-error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			router := setupTestRouter(zap.New(core).Sugar())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.expectedLevel, entry.Level)
			assert.Equal(t, "HTTP request", entry.Message)
		})
	}
}

func TestLogger_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	router := setupTestRouter(zap.New(core).Sugar())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/games/0021500001", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "/games/0021500001", fields["path"])
	assert.Equal(t, "/games/:game_id", fields["route"])
	assert.Equal(t, w.Header().Get(RequestIDHeader), fields["request_id"])
	assert.NotContains(t, fields, "query")
}
