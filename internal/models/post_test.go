package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveExcerpt(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Short content kept verbatim",
			content:  "A short post body",
			expected: "A short post body",
		},
		{
			name:     "Exactly 200 characters has no ellipsis",
			content:  strings.Repeat("a", 200),
			expected: strings.Repeat("a", 200),
		},
		{
			name:     "201 characters truncates with ellipsis",
			content:  strings.Repeat("a", 201),
			expected: strings.Repeat("a", 200) + "...",
		},
		{
			name:     "Empty content yields empty excerpt",
			content:  "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveExcerpt(tt.content))
		})
	}
}

func TestDeriveExcerptCountsRunes(t *testing.T) {
	// 201 multi-byte characters must truncate at 200 characters, not bytes.
	content := strings.Repeat("é", 201)
	got := DeriveExcerpt(content)
	assert.Equal(t, strings.Repeat("é", 200)+"...", got)
}

func TestDeriveExcerptLongContent(t *testing.T) {
	content := strings.Repeat("lorem ipsum ", 50) // 600 characters
	got := DeriveExcerpt(content)
	assert.Len(t, []rune(got), 203)
	assert.Equal(t, content[:200], got[:200])
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestCategoryValid(t *testing.T) {
	for _, c := range AllCategories {
		assert.True(t, c.Valid(), "expected %q to be valid", c)
	}
	assert.False(t, Category("Gardening").Valid())
	assert.False(t, Category("technology").Valid(), "categories are case-sensitive")
	assert.False(t, Category("").Valid())
}
