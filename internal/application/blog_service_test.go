package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
)

func newBlogService(blogs *fakeBlogRepo, up *fakeUploader) *BlogService {
	return NewBlogService(blogs, up, nil, nil, "", quietLogger())
}

func testAuthor() *entity.User {
	return &entity.User{
		ID:     "author-1",
		Name:   "Jane Writer",
		Avatar: entity.Image{ID: "uploads/avatar.png", URL: "https://cdn.example.com/uploads/avatar.png"},
	}
}

func createBlogInput() CreateBlogInput {
	return CreateBlogInput{
		Title:        "Go in Production",
		Intro:        "Notes from two years of running Go services.",
		Category:     "engineering",
		Published:    true,
		MainImage:    pngInput("main.png"),
		ParaOneImage: pngInput("para1.png"),
		ParaTwoImage: pngInput("para2.png"),
	}
}

func TestCreateBlogSuccess(t *testing.T) {
	blogs := newFakeBlogRepo()
	up := newFakeUploader()
	svc := newBlogService(blogs, up)

	b, err := svc.Create(context.Background(), testAuthor(), createBlogInput())
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "uploads/main.png", b.MainImage.ID)
	require.NotNil(t, b.ParaOneImage)
	assert.Equal(t, "uploads/para1.png", b.ParaOneImage.ID)
	require.NotNil(t, b.ParaTwoImage)
	assert.Equal(t, "uploads/para2.png", b.ParaTwoImage.ID)

	assert.Equal(t, "author-1", b.CreatedBy)
	assert.Equal(t, "Jane Writer", b.AuthorName)
	assert.Equal(t, "https://cdn.example.com/uploads/avatar.png", b.AuthorAvatar)

	assert.Equal(t, 3, up.uploadCount())
	assert.Equal(t, 1, blogs.count())
}

func TestCreateBlogMainImageOnly(t *testing.T) {
	blogs := newFakeBlogRepo()
	up := newFakeUploader()
	svc := newBlogService(blogs, up)

	in := createBlogInput()
	in.ParaOneImage = nil
	in.ParaTwoImage = nil
	b, err := svc.Create(context.Background(), testAuthor(), in)
	require.NoError(t, err)
	assert.Nil(t, b.ParaOneImage)
	assert.Nil(t, b.ParaTwoImage)
	assert.Equal(t, 1, up.uploadCount())
}

func TestCreateBlogRequiresMainImage(t *testing.T) {
	svc := newBlogService(newFakeBlogRepo(), newFakeUploader())

	in := createBlogInput()
	in.MainImage = nil
	_, err := svc.Create(context.Background(), testAuthor(), in)
	assert.ErrorIs(t, err, ErrMainImageRequired)
}

func TestCreateBlogRejectsBadMIMEBeforeUpload(t *testing.T) {
	up := newFakeUploader()
	svc := newBlogService(newFakeBlogRepo(), up)

	in := createBlogInput()
	in.ParaTwoImage.ContentType = "application/pdf"
	_, err := svc.Create(context.Background(), testAuthor(), in)
	assert.ErrorIs(t, err, ErrInvalidFileType)
	assert.Zero(t, up.uploadCount())
}

func TestCreateBlogUploadFailureCleansUp(t *testing.T) {
	blogs := newFakeBlogRepo()
	up := newFakeUploader()
	up.failFor["para2.png"] = true
	svc := newBlogService(blogs, up)

	_, err := svc.Create(context.Background(), testAuthor(), createBlogInput())
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Zero(t, blogs.count())

	// Every upload that made it to the store is released again.
	deleted := up.deleted()
	for _, img := range up.uploads {
		assert.Contains(t, deleted, img.ID)
	}
}

func TestUpdateBlogPatchesTextOnly(t *testing.T) {
	blogs := newFakeBlogRepo()
	up := newFakeUploader()
	svc := newBlogService(blogs, up)

	b, err := svc.Create(context.Background(), testAuthor(), createBlogInput())
	require.NoError(t, err)

	title := "Go in Production, Revisited"
	published := false
	got, err := svc.Update(context.Background(), b.ID, UpdateBlogInput{Title: &title, Published: &published})
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.False(t, got.Published)
	// Untouched fields survive the patch.
	assert.Equal(t, b.Intro, got.Intro)
	assert.Equal(t, b.Category, got.Category)
	assert.Equal(t, b.MainImage, got.MainImage)
	assert.Equal(t, 3, up.uploadCount())
	assert.Empty(t, up.deleted())
}

func TestUpdateBlogReplacesMainImage(t *testing.T) {
	blogs := newFakeBlogRepo()
	up := newFakeUploader()
	svc := newBlogService(blogs, up)

	b, err := svc.Create(context.Background(), testAuthor(), createBlogInput())
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), b.ID, UpdateBlogInput{MainImage: pngInput("main-v2.png")})
	require.NoError(t, err)
	assert.Equal(t, "uploads/main-v2.png", got.MainImage.ID)
	assert.Contains(t, up.deleted(), "uploads/main.png")
}

func TestUpdateBlogAddsParaImageWithoutDelete(t *testing.T) {
	blogs := newFakeBlogRepo()
	up := newFakeUploader()
	svc := newBlogService(blogs, up)

	in := createBlogInput()
	in.ParaOneImage = nil
	in.ParaTwoImage = nil
	b, err := svc.Create(context.Background(), testAuthor(), in)
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), b.ID, UpdateBlogInput{ParaOneImage: pngInput("para1-new.png")})
	require.NoError(t, err)
	require.NotNil(t, got.ParaOneImage)
	assert.Equal(t, "uploads/para1-new.png", got.ParaOneImage.ID)
	// No prior object existed, so nothing is deleted.
	assert.Empty(t, up.deleted())
}

func TestUpdateBlogNotFound(t *testing.T) {
	svc := newBlogService(newFakeBlogRepo(), newFakeUploader())

	title := "whatever"
	_, err := svc.Update(context.Background(), "no-such-id", UpdateBlogInput{Title: &title})
	assert.ErrorIs(t, err, ErrBlogNotFound)
}

func TestDeleteBlogReleasesImages(t *testing.T) {
	blogs := newFakeBlogRepo()
	up := newFakeUploader()
	svc := newBlogService(blogs, up)

	b, err := svc.Create(context.Background(), testAuthor(), createBlogInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), b.ID))
	assert.Zero(t, blogs.count())

	deleted := up.deleted()
	assert.Contains(t, deleted, "uploads/main.png")
	assert.Contains(t, deleted, "uploads/para1.png")
	assert.Contains(t, deleted, "uploads/para2.png")

	assert.ErrorIs(t, svc.Delete(context.Background(), b.ID), ErrBlogNotFound)
}

func TestGetBlog(t *testing.T) {
	blogs := newFakeBlogRepo()
	svc := newBlogService(blogs, newFakeUploader())

	b, err := svc.Create(context.Background(), testAuthor(), createBlogInput())
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = svc.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrBlogNotFound)
}

func TestListPublishedAndByAuthor(t *testing.T) {
	blogs := newFakeBlogRepo()
	svc := newBlogService(blogs, newFakeUploader())

	in := createBlogInput()
	in.ParaOneImage = nil
	in.ParaTwoImage = nil
	_, err := svc.Create(context.Background(), testAuthor(), in)
	require.NoError(t, err)

	draft := createBlogInput()
	draft.ParaOneImage = nil
	draft.ParaTwoImage = nil
	draft.Title = "Draft"
	draft.Published = false
	_, err = svc.Create(context.Background(), testAuthor(), draft)
	require.NoError(t, err)

	published, err := svc.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.True(t, published[0].Published)

	mine, err := svc.ListByAuthor(context.Background(), "author-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := svc.ListByAuthor(context.Background(), "someone-else")
	require.NoError(t, err)
	assert.Empty(t, none)
}
