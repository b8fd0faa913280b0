package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/mazeshare/infrastruture/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedEngine(t *testing.T) (*gin.Engine, uuid.UUID, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := token.NewJwtService("test-secret", "mazeshare-test")
	id := uuid.New()
	tok, err := IssueSessionToken(ts, id, time.Minute)
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(Authoriz(ts))
	engine.GET("/sessions/:ID", func(c *gin.Context) {
		claims, ok := c.Get(ContextSessionClaims)
		require.True(t, ok)
		c.JSON(http.StatusOK, claims)
	})
	return engine, id, tok
}

func TestAuthoriz(t *testing.T) {
	engine, id, tok := newProtectedEngine(t)

	cases := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"bearer header", "/sessions/" + id.String(), "Bearer " + tok, http.StatusOK},
		{"query token", "/sessions/" + id.String() + "?token=" + tok, "", http.StatusOK},
		{"missing token", "/sessions/" + id.String(), "", http.StatusUnauthorized},
		{"malformed header", "/sessions/" + id.String(), "Token " + tok, http.StatusUnauthorized},
		{"garbage token", "/sessions/" + id.String(), "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"other session", "/sessions/" + uuid.NewString(), "Bearer " + tok, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
