package delivery_http

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/custom_errors"
	"inkwell/internal/model"
)

const (
	titleMinLength    = 3
	titleMaxLength    = 200
	contentMinLength  = 10
	maxTagsPerPost    = 10
	maxTagNameLength  = 50
	postNotFoundPlain = "Post not found"
)

// HomePage handles GET /.
func (s *Server) HomePage(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	tags, err := s.postService.ListTags(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	tagNames := make([]string, 0, len(tags))
	for _, tag := range tags {
		tagNames = append(tagNames, tag.Name)
	}

	return s.renderPage(c, "home.html", fiber.Map{
		"Posts": toPostViews(posts),
		"Tags":  tagNames,
	})
}

// PostPage handles GET /post/:id.
func (s *Server) PostPage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString(postNotFoundPlain)
	}

	detail, err := s.postService.GetPostByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).SendString(postNotFoundPlain)
		}
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	return s.renderPage(c, "post.html", fiber.Map{
		"Post":     toPostView(detail.Post, detail.Tags),
		"Comments": toCommentViews(detail.Comments),
	})
}

// SubmitComment handles POST /post/:id/comment. Invalid submissions are
// dropped without feedback; the browser is sent back to the post page
// either way.
func (s *Server) SubmitComment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString(postNotFoundPlain)
	}

	author := c.FormValue("author")
	title := c.FormValue("title")
	content := c.FormValue("content")

	if author == "" || content == "" {
		s.log.Debug("Dropping invalid comment submission", slog.Int64("post_id", id))
		return c.Redirect(fmt.Sprintf("/post/%d", id), fiber.StatusSeeOther)
	}

	_, err = s.commentService.CreateComment(c.Context(), &model.CreateCommentDTO{
		PostID:  id,
		Author:  author,
		Title:   title,
		Content: content,
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).SendString(postNotFoundPlain)
		}
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	return c.Redirect(fmt.Sprintf("/post/%d", id), fiber.StatusSeeOther)
}

// CreatePostPage handles GET /create.
func (s *Server) CreatePostPage(c *fiber.Ctx) error {
	return s.renderPage(c, "create.html", fiber.Map{})
}

// SubmitCreatePost handles POST /create.
func (s *Server) SubmitCreatePost(c *fiber.Ctx) error {
	title := c.FormValue("title")
	content := c.FormValue("content")

	if msg, ok := validatePostForm(title, content); !ok {
		return c.Status(fiber.StatusBadRequest).SendString(msg)
	}

	_, err := s.postService.CreatePost(c.Context(), &model.CreatePostDTO{
		Title:   title,
		Content: content,
		Tags:    parseTagList(c.FormValue("tags")),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// EditPostPage handles GET /edit/:id.
func (s *Server) EditPostPage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString(postNotFoundPlain)
	}

	detail, err := s.postService.GetPostByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).SendString(postNotFoundPlain)
		}
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	view := toPostView(detail.Post, detail.Tags)
	return s.renderPage(c, "edit.html", fiber.Map{
		"Post":    view,
		"TagLine": strings.Join(view.Tags, ", "),
	})
}

// SubmitEditPost handles POST /edit/:id.
func (s *Server) SubmitEditPost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString(postNotFoundPlain)
	}

	title := c.FormValue("title")
	content := c.FormValue("content")

	if msg, ok := validatePostForm(title, content); !ok {
		return c.Status(fiber.StatusBadRequest).SendString(msg)
	}

	err = s.postService.UpdatePost(c.Context(), id, &model.UpdatePostDTO{
		Title:   &title,
		Content: &content,
		Tags:    parseTagList(c.FormValue("tags")),
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).SendString(postNotFoundPlain)
		}
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	return c.Redirect(fmt.Sprintf("/post/%d", id), fiber.StatusSeeOther)
}

// TagPage handles GET /tag/:name. Tag matching is exact and case-sensitive.
func (s *Server) TagPage(c *fiber.Ctx) error {
	name := c.Params("name")

	posts, err := s.postService.ListPostsByTag(c.Context(), name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	return s.renderPage(c, "tag.html", fiber.Map{
		"Tag":   name,
		"Posts": toPostViews(posts),
	})
}

func validatePostForm(title, content string) (string, bool) {
	titleLen := utf8.RuneCountInString(title)
	if titleLen < titleMinLength || titleLen > titleMaxLength {
		return fmt.Sprintf("Title must be between %d and %d characters", titleMinLength, titleMaxLength), false
	}
	if utf8.RuneCountInString(content) < contentMinLength {
		return fmt.Sprintf("Content must be at least %d characters long", contentMinLength), false
	}
	return "", true
}

// parseTagList splits a comma-separated tag string, keeping at most ten tags
// and capping each name at fifty characters. A name repeated in the same
// field is kept once. Excess input is dropped silently. The result is never
// nil so an empty field clears a post's tags on edit.
func parseTagList(raw string) []string {
	tags := make([]string, 0, maxTagsPerPost)
	seen := make(map[string]bool, maxTagsPerPost)
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if runes := []rune(name); len(runes) > maxTagNameLength {
			name = string(runes[:maxTagNameLength])
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, name)
		if len(tags) == maxTagsPerPost {
			break
		}
	}
	return tags
}
