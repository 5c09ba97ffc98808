package contractor

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandler_ManagerRoutesGuarded(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewHandler(NewService(nil, nil, nil, nil))
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", int64(7))
		c.Set("role", "tenant")
	})
	h.RegisterRoutes(router.Group("/"))

	// The role guard rejects before the handler ever binds the body.
	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/contractors"},
		{http.MethodGet, "/contractors/mine"},
		{http.MethodPost, "/invitations"},
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", route.method, route.path)
	}
}
