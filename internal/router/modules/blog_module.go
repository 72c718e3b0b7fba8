package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-api/internal/container"
	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

// BlogModule wires the blog routes.
// Public: GET /blog/all_blogs, GET /blog/search
// Session: GET /blog/single_blog/:id (any role)
// Author only: POST /blog/post, PUT /blog/update/:id,
// DELETE /blog/delete/:id, GET /blog/my_blogs

type BlogModule struct {
	Handler *handlers.BlogHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewBlogModule(h *handlers.BlogHandler, users repository.UserRepository, jwt *helpers.JWTManager) *BlogModule {
	return &BlogModule{Handler: h, Users: users, JWT: jwt}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	blog := rg.Group("/blog")
	blog.GET("/all_blogs", m.Handler.AllBlogs)
	blog.GET("/search", m.Handler.Search)

	auth := blog.Group("/")
	auth.Use(middleware.Authenticate(m.JWT, m.Users))
	{
		auth.GET("/single_blog/:id", m.Handler.SingleBlog)

		authors := auth.Group("/")
		authors.Use(middleware.RequireRoles(entity.RoleAuthor))
		authors.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
		{
			authors.POST("/post", m.Handler.Create)
			authors.PUT("/update/:id", m.Handler.Update)
			authors.DELETE("/delete/:id", m.Handler.Delete)
			authors.GET("/my_blogs", m.Handler.MyBlogs)
		}
	}
}
