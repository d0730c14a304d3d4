package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(EnsureSession())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, SessionID(c))
	})
	return r
}

// Session ids key carts, so two visitors must never receive the same
// one.
func TestEnsureSession_MintsDistinctIDs(t *testing.T) {
	r := sessionRouter()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		sid := w.Body.String()
		require.True(t, len(sid) > len("sess_"), "minted id should carry random material, got %q", sid)
		assert.False(t, seen[sid], "session id %q issued twice", sid)
		seen[sid] = true
	}
}

func TestEnsureSession_KeepsExistingCookie(t *testing.T) {
	r := sessionRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sess_existing"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "sess_existing", w.Body.String())
	assert.Empty(t, w.Header().Get("Set-Cookie"), "no new cookie for a returning visitor")
}
