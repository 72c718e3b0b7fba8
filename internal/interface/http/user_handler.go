package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
	"github.com/oksasatya/go-blog-api/pkg/response"
	"github.com/oksasatya/go-blog-api/pkg/validation"
)

type UserHandler struct {
	Svc     *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Name      string `form:"name" binding:"required,personname"`
	Email     string `form:"email" binding:"required,email"`
	Password  string `form:"password" binding:"required,pwd"`
	Phone     string `form:"phone" binding:"required"`
	Education string `form:"education" binding:"required"`
	Role      string `form:"role" binding:"required,role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,role"`
}

// imageInput adapts a multipart file header into a workflow image input.
func imageInput(fh *multipart.FileHeader) (*application.ImageInput, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	return &application.ImageInput{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "please fill full details", validation.ToDetails(err))
		return
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "user avatar required", nil)
		return
	}
	avatar, err := imageInput(fh)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read avatar file", nil)
		return
	}

	u, token, exp, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		Education: req.Education,
		Role:      entity.Role(req.Role),
		Avatar:    avatar,
	})
	if err != nil {
		status, msg := userErrStatus(err)
		if status == http.StatusInternalServerError {
			h.Logger.WithError(err).Error("register failed")
		}
		response.Error[any](c, status, msg, nil)
		return
	}

	h.Cookies.SetToken(c, token, exp)
	response.Success(c, http.StatusCreated, gin.H{"user": u, "token": token}, "user registered successfully")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "please fill full form", validation.ToDetails(err))
		return
	}
	u, token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password, entity.Role(req.Role))
	if err != nil {
		status, msg := userErrStatus(err)
		if status == http.StatusInternalServerError {
			h.Logger.WithError(err).Error("login failed")
		}
		response.Error[any](c, status, msg, nil)
		return
	}
	h.Cookies.SetToken(c, token, exp)
	response.Success(c, http.StatusOK, gin.H{"user": u, "token": token}, "user logged in successfully")
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "user logged out")
}

func (h *UserHandler) MyProfile(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.Error[any](c, http.StatusUnauthorized, "user is not authenticated", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "profile")
}

func (h *UserHandler) Authors(c *gin.Context) {
	authors, err := h.Svc.Authors(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list authors failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	if authors == nil {
		authors = []*entity.User{}
	}
	response.Success(c, http.StatusOK, gin.H{"authors": authors}, "authors")
}

func userErrStatus(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrEmailTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, application.ErrInvalidFileType),
		errors.Is(err, application.ErrUploadFailed):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, application.ErrMainImageRequired):
		return http.StatusBadRequest, "user avatar required"
	case errors.Is(err, application.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
