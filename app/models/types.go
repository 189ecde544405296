package models

// Account represents a registered user. Email doubles as the primary key.
type Account struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Post represents a blog post with a draft/published state.
type Post struct {
	ID          int      `json:"id" validate:"required,gt=0"`
	Title       string   `json:"title" validate:"required,max=200"`
	Body        string   `json:"body" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	IsPublished bool     `json:"is_published"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at" validate:"required"`
	UpdatedAt   string   `json:"updated_at" validate:"required"`
}
