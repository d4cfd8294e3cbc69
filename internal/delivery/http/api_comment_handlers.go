package delivery_http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/custom_errors"
	"inkwell/internal/model"
)

type createCommentRequest struct {
	Author  string `json:"author" validate:"required"`
	Title   string `json:"title"`
	Content string `json:"content" validate:"required"`
}

// CreateComment handles POST /posts/:id/comments.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Author and content are required"})
	}

	created, err := s.commentService.CreateComment(c.Context(), &model.CreateCommentDTO{
		PostID:  postID,
		Author:  req.Author,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		s.metrics.IncrementCommentOperations("create", false)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create comment"})
	}

	s.metrics.IncrementCommentOperations("create", true)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment created successfully",
		"id":      created.ID,
	})
}

// ListComments handles GET /posts/:id/comments.
func (s *Server) ListComments(c *fiber.Ctx) error {
	postID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}

	comments, err := s.commentService.ListByPost(c.Context(), postID)
	if err != nil {
		s.metrics.IncrementCommentOperations("list", false)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list comments"})
	}

	s.metrics.IncrementCommentOperations("list", true)
	return c.JSON(comments)
}
