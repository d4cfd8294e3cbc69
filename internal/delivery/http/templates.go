package delivery_http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func (s *Server) renderPage(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error("Failed to render template",
			slog.String("template", name),
			slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

type postView struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt string
	Tags      []string
}

type commentView struct {
	Author    string
	Title     string
	Content   string
	CreatedAt string
}

const pageTimeFormat = "January 2, 2006 15:04"

func toPostView(post *model.Post, tags []*model.Tag) postView {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return postView{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt.Time.Format(pageTimeFormat),
		Tags:      names,
	}
}

func toPostViews(posts []*model.PostWithTags) []postView {
	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, toPostView(p.Post, p.Tags))
	}
	return views
}

func toCommentViews(comments []*model.Comment) []commentView {
	views := make([]commentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, commentView{
			Author:    comment.Author,
			Title:     comment.Title,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt.Time.Format(pageTimeFormat),
		})
	}
	return views
}
