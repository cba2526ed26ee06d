package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"quill/internal/authz"
	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
)

const maxTitleLen = 200

// PostService handles post authoring, browsing and search.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	AuthorID  uint
	Title     string
	Content   string
	Excerpt   string
	Category  string
	ImageURL  string
	Published *bool
}

// UpdatePostInput carries partial post changes. Nil fields are left
// untouched. There is no author field: authorship never changes.
type UpdatePostInput struct {
	ActorID   uint
	PostID    uint
	Title     *string
	Content   *string
	Excerpt   *string
	Category  *string
	ImageURL  *string
	Published *bool
}

type ListPostsInput struct {
	ActorID  uint
	Category string
	Author   string
	Ordering string
	Limit    int
	Offset   int
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return nil, models.NewValidationError("title too long (max 200 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("content is required")
	}

	category := models.DefaultCategory
	if in.Category != "" {
		category = models.Category(in.Category)
		if !category.Valid() {
			return nil, models.NewValidationError("invalid category")
		}
	}

	excerpt := in.Excerpt
	if excerpt == "" {
		excerpt = models.DeriveExcerpt(in.Content)
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	post := &models.Post{
		Title:     title,
		Content:   in.Content,
		Excerpt:   excerpt,
		Category:  string(category),
		ImageURL:  in.ImageURL,
		AuthorID:  in.AuthorID,
		Published: published,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsCreatedTotal.WithLabelValues(string(category)).Inc()

	author, err := s.userRepo.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}
	post.Author = *author
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint, actorID uint) (*models.Post, error) {
	return s.postRepo.GetPublishedByID(ctx, id, actorID)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, int64, error) {
	return s.postRepo.List(ctx, repository.ListOptions{
		Category: in.Category,
		Author:   in.Author,
		Ordering: in.Ordering,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
}

// SearchPosts matches the query against title, content, excerpt and category
// of published posts. A blank query matches nothing.
func (s *PostService) SearchPosts(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	if strings.TrimSpace(query) == "" {
		return []*models.Post{}, nil
	}
	observability.SearchQueriesTotal.Inc()
	return s.postRepo.Search(ctx, query, limit, offset)
}

// ListMine returns the caller's own posts, drafts included.
func (s *PostService) ListMine(ctx context.Context, actorID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListByAuthorID(ctx, actorID, limit, offset)
}

func (s *PostService) Categories(ctx context.Context) ([]string, error) {
	return s.postRepo.Categories(ctx)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetPublishedByID(ctx, in.PostID, in.ActorID)
	if err != nil {
		return nil, err
	}
	if !authz.Allowed(in.ActorID, post, authz.ActionUpdate) {
		return nil, models.NewForbiddenError("you can only modify your own posts")
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("title is required")
		}
		if utf8.RuneCountInString(title) > maxTitleLen {
			return nil, models.NewValidationError("title too long (max 200 characters)")
		}
		post.Title = title
	}
	contentChanged := false
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("content is required")
		}
		post.Content = *in.Content
		contentChanged = true
	}
	if in.Excerpt != nil && *in.Excerpt != "" {
		post.Excerpt = *in.Excerpt
	} else if contentChanged || (in.Excerpt != nil && *in.Excerpt == "") {
		// The stored excerpt tracks the content unless the client manages
		// it explicitly. Supplying an empty excerpt clears that management
		// and re-derives, so the excerpt is never empty alongside content.
		post.Excerpt = models.DeriveExcerpt(post.Content)
	}
	if in.Category != nil {
		category := models.Category(*in.Category)
		if !category.Valid() {
			return nil, models.NewValidationError("invalid category")
		}
		post.Category = string(category)
	}
	if in.ImageURL != nil {
		post.ImageURL = *in.ImageURL
	}
	if in.Published != nil {
		post.Published = *in.Published
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint) error {
	post, err := s.postRepo.GetPublishedByID(ctx, postID, actorID)
	if err != nil {
		return err
	}
	if !authz.Allowed(actorID, post, authz.ActionDelete) {
		return models.NewForbiddenError("you can only modify your own posts")
	}

	deleted, err := s.postRepo.Delete(ctx, postID)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Post", postID)
	}
	return nil
}
