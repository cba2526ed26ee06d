package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	postKeyPrefix = "post:%d"
	categoriesKey = "categories:published"
)

const (
	// PostTTL bounds staleness of anonymously served post details.
	PostTTL = 30 * time.Minute
	// CategoriesTTL bounds staleness of the category aggregate; writes
	// invalidate it eagerly so the TTL is a backstop.
	CategoriesTTL = 10 * time.Minute
)

// PostKey returns the cache key for a post detail.
func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// CategoriesKey returns the cache key for the in-use category aggregate.
func CategoriesKey() string {
	return categoriesKey
}

// InvalidatePost drops a cached post detail and the category aggregate,
// which any post write may have changed.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, categoriesKey)
}
