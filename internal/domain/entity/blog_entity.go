package entity

import "time"

// Blog is the aggregate root for the blog domain.
// AuthorName and AuthorAvatar are snapshotted from the creating user at
// creation time and are not kept in sync with later profile edits.
type Blog struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Intro              string    `json:"intro"`
	Category           string    `json:"category"`
	ParaOneTitle       string    `json:"paraOneTitle,omitempty"`
	ParaOneDescription string    `json:"paraOneDescription,omitempty"`
	ParaTwoTitle       string    `json:"paraTwoTitle,omitempty"`
	ParaTwoDescription string    `json:"paraTwoDescription,omitempty"`
	MainImage          Image     `json:"mainImage"`
	ParaOneImage       *Image    `json:"paraOneImage,omitempty"`
	ParaTwoImage       *Image    `json:"paraTwoImage,omitempty"`
	CreatedBy          string    `json:"createdBy"`
	AuthorName         string    `json:"authorName"`
	AuthorAvatar       string    `json:"authorAvatar"`
	Published          bool      `json:"published"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// RemoteImageIDs returns the media-store identifiers referenced by the blog.
func (b *Blog) RemoteImageIDs() []string {
	ids := []string{b.MainImage.ID}
	if b.ParaOneImage != nil {
		ids = append(ids, b.ParaOneImage.ID)
	}
	if b.ParaTwoImage != nil {
		ids = append(ids, b.ParaTwoImage.ID)
	}
	return ids
}
