package api

import "strconv"

// Tress is a single shared text/code snippet as returned by the backend.
// OwnerID and OwnerUsername are nil for anonymously created snippets.
type Tress struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	Language      string  `json:"language"`
	IsPublic      bool    `json:"is_public"`
	OwnerID       *int    `json:"owner_id"`
	OwnerUsername *string `json:"owner_username"`
	CreatedAt     string  `json:"created_at"`
	ExpiresAt     *string `json:"expires_at"`
}

// OwnedBy reports whether the snippet belongs to the user with the given
// string-encoded id. Anonymous snippets are owned by nobody.
func (t *Tress) OwnedBy(userID string) bool {
	if t.OwnerID == nil || userID == "" {
		return false
	}
	return strconv.Itoa(*t.OwnerID) == userID
}

// TressPreview is the reduced projection of Tress used by paginated list
// views: full content is replaced by a truncated content_preview.
type TressPreview struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Language       string  `json:"language"`
	IsPublic       bool    `json:"is_public"`
	OwnerID        *int    `json:"owner_id"`
	OwnerUsername  *string `json:"owner_username"`
	CreatedAt      string  `json:"created_at"`
	ExpiresAt      *string `json:"expires_at"`
	ContentPreview string  `json:"content_preview"`
}

// PaginationInfo accompanies every paginated listing response.
type PaginationInfo struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// PageResponse is one page of previews plus its pagination metadata.
type PageResponse struct {
	Items      []TressPreview `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// CreateTressRequest is the payload for creating a snippet.
// ExpiresInDays is omitted when nil; the backend caps it at 365 days for
// anonymous submissions.
type CreateTressRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Language      string `json:"language"`
	IsPublic      bool   `json:"is_public"`
	ExpiresInDays *int   `json:"expires_in_days,omitempty"`
}

// UserProfile is the response of /auth/me.
type UserProfile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenResponse is the response of /auth/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
}

// RegisterRequest is the payload for /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
