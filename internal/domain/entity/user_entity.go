package entity

import "time"

// Role is the authorization role of a user. Only Authors may write blogs.
type Role string

const (
	RoleReader Role = "Reader"
	RoleAuthor Role = "Author"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleReader || r == RoleAuthor
}

// Image references an object in the remote media store.
type Image struct {
	ID  string `json:"public_id"`
	URL string `json:"url"`
}

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash and is never serialized.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Education string    `json:"education"`
	Role      Role      `json:"role"`
	Avatar    Image     `json:"avatar"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
