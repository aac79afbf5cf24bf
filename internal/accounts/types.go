package accounts

import "time"

// Account is a locally registered identity. Its ID is the author id stamped on posts.
type Account struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	LastLoginAt     time.Time `json:"last_login_at,omitzero"`
}

// RegisterRequest is the input for creating an account.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}
