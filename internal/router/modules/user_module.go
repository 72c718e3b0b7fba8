package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-api/internal/container"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

// UserModule wires the user routes.
// Public: POST /user/register, POST /user/login, GET /user/authors
// Protected: GET /user/logout, GET /user/my_profile

type UserModule struct {
	Handler *handlers.UserHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, users repository.UserRepository, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, Users: users, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	user := rg.Group("/user")
	user.POST("/register", registerLimiter, m.Handler.Register)
	user.POST("/login", loginLimiter, m.Handler.Login)
	user.GET("/authors", m.Handler.Authors)

	auth := user.Group("/")
	auth.Use(middleware.Authenticate(m.JWT, m.Users))
	{
		auth.GET("/logout", m.Handler.Logout)
		auth.GET("/my_profile", m.Handler.MyProfile)
	}
}
