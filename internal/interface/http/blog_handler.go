package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/pkg/response"
	"github.com/oksasatya/go-blog-api/pkg/validation"
)

type BlogHandler struct {
	Svc    *application.BlogService
	Logger *logrus.Logger
}

func NewBlogHandler(svc *application.BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, Logger: logger}
}

type createBlogRequest struct {
	Title              string `form:"title" binding:"required"`
	Intro              string `form:"intro" binding:"required"`
	Category           string `form:"category" binding:"required"`
	ParaOneTitle       string `form:"paraOneTitle"`
	ParaOneDescription string `form:"paraOneDescription"`
	ParaTwoTitle       string `form:"paraTwoTitle"`
	ParaTwoDescription string `form:"paraTwoDescription"`
	Published          bool   `form:"published"`
}

// optionalFile returns the named multipart file, or nil when absent.
func optionalFile(c *gin.Context, name string) (*application.ImageInput, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil, nil
	}
	return imageInput(fh)
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req createBlogRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "title, intro and category are required fields", validation.ToDetails(err))
		return
	}

	mainImage, err := optionalFile(c, "mainImage")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read mainImage file", nil)
		return
	}
	if mainImage == nil {
		response.Error[any](c, http.StatusBadRequest, "main blog image is mandatory", nil)
		return
	}
	paraOneImage, err := optionalFile(c, "paraOneImage")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read paraOneImage file", nil)
		return
	}
	paraTwoImage, err := optionalFile(c, "paraTwoImage")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read paraTwoImage file", nil)
		return
	}

	author := middleware.CurrentUser(c)
	blog, err := h.Svc.Create(c.Request.Context(), author, application.CreateBlogInput{
		Title:              req.Title,
		Intro:              req.Intro,
		Category:           req.Category,
		ParaOneTitle:       req.ParaOneTitle,
		ParaOneDescription: req.ParaOneDescription,
		ParaTwoTitle:       req.ParaTwoTitle,
		ParaTwoDescription: req.ParaTwoDescription,
		Published:          req.Published,
		MainImage:          mainImage,
		ParaOneImage:       paraOneImage,
		ParaTwoImage:       paraTwoImage,
	})
	if err != nil {
		status, msg := blogErrStatus(err)
		if status == http.StatusInternalServerError {
			h.Logger.WithError(err).Error("create blog failed")
		}
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"blog": blog}, "blog uploaded")
}

func (h *BlogHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var in application.UpdateBlogInput
	if v, ok := c.GetPostForm("title"); ok {
		in.Title = &v
	}
	if v, ok := c.GetPostForm("intro"); ok {
		in.Intro = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		in.Category = &v
	}
	if v, ok := c.GetPostForm("paraOneTitle"); ok {
		in.ParaOneTitle = &v
	}
	if v, ok := c.GetPostForm("paraOneDescription"); ok {
		in.ParaOneDescription = &v
	}
	if v, ok := c.GetPostForm("paraTwoTitle"); ok {
		in.ParaTwoTitle = &v
	}
	if v, ok := c.GetPostForm("paraTwoDescription"); ok {
		in.ParaTwoDescription = &v
	}
	if v, ok := c.GetPostForm("published"); ok {
		published, err := strconv.ParseBool(v)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "published must be a boolean", nil)
			return
		}
		in.Published = &published
	}

	var err error
	if in.MainImage, err = optionalFile(c, "mainImage"); err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read mainImage file", nil)
		return
	}
	if in.ParaOneImage, err = optionalFile(c, "paraOneImage"); err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read paraOneImage file", nil)
		return
	}
	if in.ParaTwoImage, err = optionalFile(c, "paraTwoImage"); err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read paraTwoImage file", nil)
		return
	}

	blog, err := h.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		status, msg := blogErrStatus(err)
		if status == http.StatusInternalServerError {
			h.Logger.WithError(err).Error("update blog failed")
		}
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blog": blog}, "blog updated")
}

func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		status, msg := blogErrStatus(err)
		if status == http.StatusInternalServerError {
			h.Logger.WithError(err).Error("delete blog failed")
		}
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "blog deleted")
}

func (h *BlogHandler) AllBlogs(c *gin.Context) {
	blogs, err := h.Svc.ListPublished(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list published blogs failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	if blogs == nil {
		blogs = []*entity.Blog{}
	}
	response.Success(c, http.StatusOK, gin.H{"blogs": blogs}, "published blogs")
}

func (h *BlogHandler) SingleBlog(c *gin.Context) {
	blog, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, msg := blogErrStatus(err)
		if status == http.StatusInternalServerError {
			h.Logger.WithError(err).Error("get blog failed")
		}
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blog": blog}, "blog")
}

func (h *BlogHandler) MyBlogs(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	blogs, err := h.Svc.ListByAuthor(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).Error("list my blogs failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	if blogs == nil {
		blogs = []*entity.Blog{}
	}
	response.Success(c, http.StatusOK, gin.H{"blogs": blogs}, "my blogs")
}

func (h *BlogHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("blog search failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": hits}, "search results")
}

func blogErrStatus(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrBlogNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, application.ErrMainImageRequired),
		errors.Is(err, application.ErrInvalidFileType),
		errors.Is(err, application.ErrUploadFailed):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
