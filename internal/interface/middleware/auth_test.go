package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

type stubUserRepo struct {
	users map[string]*entity.User
}

func (r *stubUserRepo) Create(context.Context, *entity.User) error { return nil }

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) ListByRole(context.Context, entity.Role) ([]*entity.User, error) {
	return nil, nil
}

func authTestRouter(jwt *helpers.JWTManager, repo repository.UserRepository, roles ...entity.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{Authenticate(jwt, repo)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})
	r.GET("/probe", handlers...)
	return r
}

func doProbe(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*entity.User{
		"user-1": {ID: "user-1", Role: entity.RoleAuthor},
	}}
	r := authTestRouter(jwt, repo)

	t.Run("missing cookie", func(t *testing.T) {
		w := doProbe(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doProbe(r, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token for deleted user", func(t *testing.T) {
		token, _, err := jwt.GenerateToken("gone-user")
		require.NoError(t, err)
		w := doProbe(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, _, err := jwt.GenerateToken("user-1")
		require.NoError(t, err)
		w := doProbe(r, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", w.Body.String())
	})
}

func TestRequireRoles(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*entity.User{
		"author-1": {ID: "author-1", Role: entity.RoleAuthor},
		"reader-1": {ID: "reader-1", Role: entity.RoleReader},
	}}
	r := authTestRouter(jwt, repo, entity.RoleAuthor)

	authorToken, _, err := jwt.GenerateToken("author-1")
	require.NoError(t, err)
	readerToken, _, err := jwt.GenerateToken("reader-1")
	require.NoError(t, err)

	w := doProbe(r, authorToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doProbe(r, readerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
