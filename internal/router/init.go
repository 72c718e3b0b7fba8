package router

import (
	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/container"
	pginfra "github.com/oksasatya/go-blog-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
	"github.com/oksasatya/go-blog-api/internal/router/modules"
)

// InitModules builds the user and blog modules from the container singletons
// and registers them with the router registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	blogRepo := pginfra.NewBlogRepository(container.GetPGPool())

	userSvc := application.NewUserService(
		userRepo,
		container.GetJWT(),
		container.GetUploader(),
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
		logger,
	)
	blogSvc := application.NewBlogService(
		blogRepo,
		container.GetUploader(),
		container.GetRedis(),
		container.GetES(),
		cfg.ESBlogsIndex,
		logger,
	)

	userHandler := handlers.NewUserHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	blogHandler := handlers.NewBlogHandler(blogSvc, logger)

	r.Add(modules.NewUserModule(userHandler, userRepo, container.GetJWT()))
	r.Add(modules.NewBlogModule(blogHandler, userRepo, container.GetJWT()))
}
