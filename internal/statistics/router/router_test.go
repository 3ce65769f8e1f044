package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, db.Exec(`CREATE TABLE pipeline_runs (
		run_id VARCHAR(36) PRIMARY KEY, min_year INTEGER, max_year INTEGER, total_games INTEGER,
		date_range TEXT, seasons INTEGER, teams INTEGER, missing_attendance INTEGER, weekend_games INTEGER,
		playoff_month_games INTEGER, rivalry_games INTEGER, home_win_rate REAL, created_at DATETIME
	)`).Error)

	r := gin.New()
	RegisterRoutes(r, db, zap.NewNop().Sugar())

	routes := r.Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, http.MethodGet, routes[0].Method)
	assert.Equal(t, "/statistics/summary", routes[0].Path)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/statistics/summary", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
