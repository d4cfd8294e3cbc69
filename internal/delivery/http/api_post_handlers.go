package delivery_http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/custom_errors"
	"inkwell/internal/model"
)

// APIHealth handles GET /api.
func (s *Server) APIHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Personal Blog API"})
}

type createPostRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags" validate:"omitempty,dive,min=1,max=50"`
}

// CreatePost handles POST /posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title and content are required"})
	}

	created, err := s.postService.CreatePost(c.Context(), &model.CreatePostDTO{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		s.metrics.IncrementPostOperations("create", false)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create post"})
	}

	s.metrics.IncrementPostOperations("create", true)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
		"id":      created.Post.ID,
	})
}

// ListPosts handles GET /posts.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		s.metrics.IncrementPostOperations("list", false)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list posts"})
	}

	s.metrics.IncrementPostOperations("list", true)
	return c.JSON(posts)
}

// GetPost handles GET /posts/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}

	post, err := s.postService.GetPostByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		s.metrics.IncrementPostOperations("get", false)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get post"})
	}

	s.metrics.IncrementPostOperations("get", true)
	return c.JSON(post)
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
