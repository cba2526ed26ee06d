// Package presenter shapes posts into the API's two output views. The view
// is selected explicitly by the calling route: list views for bulk reads
// (never carrying content), detail views for single-item reads and writes.
package presenter

import (
	"math"
	"strconv"
	"strings"
	"time"

	"quill/internal/models"
)

// wordsPerMinute is the reading speed used for the read_time estimate.
const wordsPerMinute = 200

// AuthorSummary is the author subset embedded in list views.
type AuthorSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// PostListView is the bulk-listing shape. Content is never sent in bulk.
type PostListView struct {
	ID            uint          `json:"id"`
	Title         string        `json:"title"`
	Excerpt       string        `json:"excerpt"`
	Author        AuthorSummary `json:"author"`
	Category      string        `json:"category"`
	ImageURL      string        `json:"image"`
	CreatedAt     time.Time     `json:"created_at"`
	ReadTime      string        `json:"read_time"`
	FormattedDate string        `json:"formatted_date"`
}

// PostDetailView is the single-item shape: all list fields plus the full
// content, update timestamp, published flag, and the author's public fields.
type PostDetailView struct {
	ID            uint              `json:"id"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	Excerpt       string            `json:"excerpt"`
	Author        models.PublicUser `json:"author"`
	Category      string            `json:"category"`
	ImageURL      string            `json:"image"`
	Published     bool              `json:"published"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	ReadTime      string            `json:"read_time"`
	FormattedDate string            `json:"formatted_date"`
}

// ListView renders the bulk-listing shape for a post.
func ListView(p *models.Post) PostListView {
	return PostListView{
		ID:      p.ID,
		Title:   p.Title,
		Excerpt: p.Excerpt,
		Author: AuthorSummary{
			ID:        p.Author.ID,
			Username:  p.Author.Username,
			FirstName: p.Author.FirstName,
			LastName:  p.Author.LastName,
		},
		Category:      p.Category,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		ReadTime:      ReadTime(p.Content),
		FormattedDate: FormatDate(p.CreatedAt),
	}
}

// ListViews renders list views for a slice of posts, preserving order.
func ListViews(posts []*models.Post) []PostListView {
	views := make([]PostListView, 0, len(posts))
	for _, p := range posts {
		views = append(views, ListView(p))
	}
	return views
}

// DetailView renders the single-item shape for a post.
func DetailView(p *models.Post) PostDetailView {
	return PostDetailView{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		Author:        p.Author.Public(),
		Category:      p.Category,
		ImageURL:      p.ImageURL,
		Published:     p.Published,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		ReadTime:      ReadTime(p.Content),
		FormattedDate: FormatDate(p.CreatedAt),
	}
}

// DetailViews renders detail views for a slice of posts, preserving order.
func DetailViews(posts []*models.Post) []PostDetailView {
	views := make([]PostDetailView, 0, len(posts))
	for _, p := range posts {
		views = append(views, DetailView(p))
	}
	return views
}

// ReadTime estimates reading time at 200 words per minute, rounded to the
// nearest minute and floored at one.
func ReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return strconv.Itoa(minutes) + " min read"
}

// FormatDate renders a timestamp as "Month DD, YYYY" in a fixed locale.
func FormatDate(t time.Time) string {
	return t.Format("January 02, 2006")
}
