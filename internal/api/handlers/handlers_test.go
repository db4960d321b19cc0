package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trendlinehq/builder-api/internal/api/middleware"
	"github.com/trendlinehq/builder-api/internal/models"
	"github.com/trendlinehq/builder-api/internal/refdata"
	"github.com/trendlinehq/builder-api/internal/services"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	upstream *httptest.Server
}

// newTestEnv wires the full route table against an in-memory database and a
// stub query engine.
func newTestEnv(t *testing.T, engineHandler http.HandlerFunc) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SavedQuery{}, &models.Referee{}, &models.Player{}))

	if engineHandler == nil {
		engineHandler = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"summary":"12-4 ATS (75.0%)","results":[]}`))
		}
	}
	upstream := httptest.NewServer(engineHandler)
	t.Cleanup(upstream.Close)

	store := refdata.NewStore(db, nil)
	engine := services.NewEngineClient(upstream.URL, 5*time.Second, nil, logrus.New())

	shareHandler := NewShareHandler(store, "https://trendline.app")
	referenceHandler := NewReferenceHandler(store)
	buildsHandler := NewBuildsHandler(db, store, engine)
	queryHandler := NewQueryHandler(store, engine)

	router := gin.New()
	router.GET("/share/decode", shareHandler.DecodeShareLink)
	router.POST("/share/encode", shareHandler.EncodeShareLink)
	router.GET("/reference/teams", referenceHandler.ListTeams)
	router.GET("/reference/referees", referenceHandler.ListReferees)
	router.GET("/reference/players/search", referenceHandler.SearchPlayers)

	query := router.Group("/query")
	query.Use(middleware.OptionalAuth(testJWTSecret))
	query.POST("", queryHandler.RunQuery)
	query.POST("/upcoming", queryHandler.RunUpcoming)
	query.POST("/upcoming-props", queryHandler.RunUpcomingProps)

	builds := router.Group("/builds")
	builds.Use(middleware.AuthRequired(testJWTSecret))
	builds.GET("", buildsHandler.ListBuilds)
	builds.POST("", buildsHandler.CreateBuild)
	builds.GET("/:id", buildsHandler.GetBuild)
	builds.PUT("/:id", buildsHandler.UpdateBuild)
	builds.DELETE("/:id", buildsHandler.DeleteBuild)
	builds.POST("/:id/run", buildsHandler.RunBuild)

	return &testEnv{router: router, db: db, upstream: upstream}
}

func authToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
