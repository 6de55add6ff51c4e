package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"social-realtime/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIsOriginAllowed(t *testing.T) {
	allowed := []string{"http://localhost", "*.example.com"}

	assert.True(t, isOriginAllowed("http://localhost", allowed))
	assert.True(t, isOriginAllowed("http://localhost:3000", allowed))
	assert.True(t, isOriginAllowed("https://app.example.com", allowed))
	assert.False(t, isOriginAllowed("http://evil.com", allowed))
	assert.False(t, isOriginAllowed("", allowed))
	assert.True(t, isOriginAllowed("http://anything", []string{"*"}))
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(DefaultCORSConfig()))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(log.NewNop())
	r := gin.New()
	r.Use(m.Recovery(), m.Logging())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error_code":500,"message":"Something went wrong"}`, w.Body.String())
}
