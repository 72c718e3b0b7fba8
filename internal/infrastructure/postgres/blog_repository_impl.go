package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

const blogColumns = `
	id, title, intro, category,
	para_one_title, para_one_description, para_two_title, para_two_description,
	main_image_id, main_image_url,
	para_one_image_id, para_one_image_url,
	para_two_image_id, para_two_image_url,
	created_by, author_name, author_avatar, published, created_at, updated_at`

func (r *BlogRepository) Create(ctx context.Context, b *entity.Blog) error {
	var p1ID, p1URL, p2ID, p2URL *string
	if b.ParaOneImage != nil {
		p1ID, p1URL = &b.ParaOneImage.ID, &b.ParaOneImage.URL
	}
	if b.ParaTwoImage != nil {
		p2ID, p2URL = &b.ParaTwoImage.ID, &b.ParaTwoImage.URL
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blogs (
			title, intro, category,
			para_one_title, para_one_description, para_two_title, para_two_description,
			main_image_id, main_image_url,
			para_one_image_id, para_one_image_url,
			para_two_image_id, para_two_image_url,
			created_by, author_name, author_avatar, published
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`, b.Title, b.Intro, b.Category,
		b.ParaOneTitle, b.ParaOneDescription, b.ParaTwoTitle, b.ParaTwoDescription,
		b.MainImage.ID, b.MainImage.URL,
		p1ID, p1URL, p2ID, p2URL,
		b.CreatedBy, b.AuthorName, b.AuthorAvatar, b.Published)

	return row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*entity.Blog, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id)
	b, err := scanBlog(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BlogRepository) ListPublished(ctx context.Context) ([]*entity.Blog, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+blogColumns+` FROM blogs WHERE published = true ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBlogs(rows)
}

func (r *BlogRepository) ListByCreator(ctx context.Context, userID string) ([]*entity.Blog, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+blogColumns+` FROM blogs WHERE created_by = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBlogs(rows)
}

func (r *BlogRepository) Update(ctx context.Context, b *entity.Blog) error {
	var p1ID, p1URL, p2ID, p2URL *string
	if b.ParaOneImage != nil {
		p1ID, p1URL = &b.ParaOneImage.ID, &b.ParaOneImage.URL
	}
	if b.ParaTwoImage != nil {
		p2ID, p2URL = &b.ParaTwoImage.ID, &b.ParaTwoImage.URL
	}
	b.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE blogs SET
			title = $1, intro = $2, category = $3,
			para_one_title = $4, para_one_description = $5,
			para_two_title = $6, para_two_description = $7,
			main_image_id = $8, main_image_url = $9,
			para_one_image_id = $10, para_one_image_url = $11,
			para_two_image_id = $12, para_two_image_url = $13,
			published = $14, updated_at = $15
		WHERE id = $16
	`, b.Title, b.Intro, b.Category,
		b.ParaOneTitle, b.ParaOneDescription, b.ParaTwoTitle, b.ParaTwoDescription,
		b.MainImage.ID, b.MainImage.URL,
		p1ID, p1URL, p2ID, p2URL,
		b.Published, b.UpdatedAt, b.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanBlog(row pgx.Row) (*entity.Blog, error) {
	b := &entity.Blog{}
	var p1ID, p1URL, p2ID, p2URL *string
	if err := row.Scan(&b.ID, &b.Title, &b.Intro, &b.Category,
		&b.ParaOneTitle, &b.ParaOneDescription, &b.ParaTwoTitle, &b.ParaTwoDescription,
		&b.MainImage.ID, &b.MainImage.URL,
		&p1ID, &p1URL, &p2ID, &p2URL,
		&b.CreatedBy, &b.AuthorName, &b.AuthorAvatar, &b.Published,
		&b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if p1ID != nil && p1URL != nil {
		b.ParaOneImage = &entity.Image{ID: *p1ID, URL: *p1URL}
	}
	if p2ID != nil && p2URL != nil {
		b.ParaTwoImage = &entity.Image{ID: *p2ID, URL: *p2URL}
	}
	return b, nil
}

func collectBlogs(rows pgx.Rows) ([]*entity.Blog, error) {
	var blogs []*entity.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

var _ repository.BlogRepository = (*BlogRepository)(nil)
