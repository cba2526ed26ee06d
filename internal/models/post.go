package models

import (
	"time"
)

// Category is the closed set of post categories. Values outside the set are
// rejected at the boundary rather than stored as free text.
type Category string

const (
	CategoryTechnology  Category = "Technology"
	CategoryLifestyle   Category = "Lifestyle"
	CategoryProgramming Category = "Programming"
	CategoryDesign      Category = "Design"
	CategoryBusiness    Category = "Business"

	// DefaultCategory applies when a post is created without one.
	DefaultCategory = CategoryTechnology
)

// AllCategories lists every valid category value.
var AllCategories = []Category{
	CategoryTechnology,
	CategoryLifestyle,
	CategoryProgramming,
	CategoryDesign,
	CategoryBusiness,
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// excerptLimit is the number of characters of content used when deriving an
// excerpt, counted in runes so multi-byte text truncates cleanly.
const excerptLimit = 200

// DeriveExcerpt returns the stored excerpt for a post whose caller supplied
// none: the first 200 characters of content, with "..." appended only when
// truncation actually occurred.
func DeriveExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptLimit {
		return string(runes[:excerptLimit]) + "..."
	}
	return content
}

// Post is the primary content entity. The author reference is set once at
// creation and is never client-settable afterwards. Rows are removed
// permanently on delete; there is no soft-delete column.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	Excerpt   string    `gorm:"size:500" json:"excerpt"`
	Category  string    `gorm:"size:20;not null;default:Technology" json:"category"`
	ImageURL  string    `json:"image"`
	AuthorID  uint      `gorm:"not null;index" json:"-"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
