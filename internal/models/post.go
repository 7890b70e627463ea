package models

import "time"

// DefaultPostImage is used when a post is saved without its own image.
const DefaultPostImage = "https://images.unsplash.com/photo-1556228720-195a672e8a03?w=300&h=300&fit=crop"

type Post struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	Image       string     `json:"image"`
	ProductID   string     `json:"product_id"`
	Platform    string     `json:"platform"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	UserID      string     `json:"user_id"`
	WordCount   int        `json:"word_count"`
}

type ScheduledPost struct {
	ID            string    `json:"id"`
	PostID        string    `json:"post_id,omitempty"`
	Content       string    `json:"content"`
	Platform      string    `json:"platform"`
	ScheduledDate time.Time `json:"scheduled_date"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)
