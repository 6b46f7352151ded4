package domain

import "time"

// ShortenRequest accepts both the plain {"url"} body and the extended form
// with originalUrl and per-link policy.
type ShortenRequest struct {
	URL         string     `json:"url"`
	OriginalURL string     `json:"originalUrl"`
	CustomAlias string     `json:"customAlias"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	Password    string     `json:"password"`
	ClickLimit  *int64     `json:"clickLimit"`
}

type ShortenResponse struct {
	ShortURL  string     `json:"shortUrl"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type CreateURLRequest struct {
	URL string `json:"url"`
}

type CreateURLResponse struct {
	ShortCode   string `json:"short_code"`
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
}

type CreateURLBatchRequest struct {
	URLs []string `json:"urls"`
}

type CreateURLBatchResponse struct {
	URLs []CreateURLResponse `json:"urls"`
}

// LinkResponse is the admin view of a stored link. The password hash is
// never exposed, only whether one is set.
type LinkResponse struct {
	ShortCode   string     `json:"short_code"`
	ShortURL    string     `json:"short_url"`
	OriginalURL string     `json:"original_url"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ClickLimit  *int64     `json:"click_limit,omitempty"`
	IsActive    bool       `json:"is_active"`
	Protected   bool       `json:"protected"`
}
