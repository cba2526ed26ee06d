package server

import (
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/presenter"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c)

	posts, count, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		ActorID:  middleware.ActorID(c),
		Category: c.Query("category"),
		Author:   c.Query("author"),
		Ordering: c.Query("ordering"),
		Limit:    page.Limit(),
		Offset:   page.Offset(),
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(envelope(page, count, presenter.ListViews(posts)))
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := middleware.ActorID(c)

	var req struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		Excerpt   string `json:"excerpt"`
		Category  string `json:"category"`
		Image     string `json:"image"`
		Published *bool  `json:"published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID:  userID,
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Category:  req.Category,
		ImageURL:  req.Image,
		Published: req.Published,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(presenter.DetailView(post))
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id, middleware.ActorID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(presenter.DetailView(post))
}

// GetMyPosts handles GET /api/posts/mine. The caller sees all of their own
// posts, drafts included.
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	userID := middleware.ActorID(c)
	page := parsePagination(c)

	posts, err := s.postService.ListMine(c.Context(), userID, page.Limit(), page.Offset())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"results": presenter.DetailViews(posts),
	})
}

// GetUserPosts handles GET /api/posts/user/:username
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	username := c.Params("username")
	page := parsePagination(c)

	posts, count, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Author: username,
		Limit:  page.Limit(),
		Offset: page.Offset(),
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(envelope(page, count, presenter.ListViews(posts)))
}

// UpdatePost handles PUT and PATCH /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := middleware.ActorID(c)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title     *string `json:"title"`
		Content   *string `json:"content"`
		Excerpt   *string `json:"excerpt"`
		Category  *string `json:"category"`
		Image     *string `json:"image"`
		Published *bool   `json:"published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		ActorID:   userID,
		PostID:    id,
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Category:  req.Category,
		ImageURL:  req.Image,
		Published: req.Published,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(presenter.DetailView(post))
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := middleware.ActorID(c)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), userID, id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SearchPosts handles GET /api/search?q=...
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	page := parsePagination(c)

	posts, err := s.postService.SearchPosts(c.Context(), c.Query("q"), page.Limit(), page.Offset())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"results": presenter.ListViews(posts),
	})
}

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.postService.Categories(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if categories == nil {
		categories = []string{}
	}

	return c.JSON(fiber.Map{
		"categories": categories,
	})
}
