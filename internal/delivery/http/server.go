package delivery_http

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"inkwell/internal/logger"
	"inkwell/internal/ports"
	comment_service "inkwell/internal/service/comment"
	post_service "inkwell/internal/service/post"
)

var validate = validator.New()

type Server struct {
	app            *fiber.App
	address        string
	port           int
	log            *logger.Logger
	metrics        ports.MetricsProvider
	postService    post_service.Service
	commentService comment_service.Service
}

func NewServer(
	postService post_service.Service,
	commentService comment_service.Service,
	address string,
	port int,
	log *logger.Logger,
	metrics ports.MetricsProvider,
) *Server {
	s := &Server{
		address:        address,
		port:           port,
		log:            log,
		metrics:        metrics,
		postService:    postService,
		commentService: commentService,
	}

	app := fiber.New(fiber.Config{
		AppName:               "inkwell",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(s.requestObserver())

	s.app = app
	s.registerRoutes(app)

	return s
}

func (s *Server) registerRoutes(app *fiber.App) {
	// JSON API
	app.Get("/api", s.APIHealth)
	app.Get("/posts", s.ListPosts)
	app.Get("/posts/:id", s.GetPost)
	app.Post("/posts", s.CreatePost)
	app.Get("/posts/:id/comments", s.ListComments)
	app.Post("/posts/:id/comments", s.CreateComment)

	// HTML pages
	app.Get("/", s.HomePage)
	app.Get("/post/:id", s.PostPage)
	app.Post("/post/:id/comment", s.SubmitComment)
	app.Get("/create", s.CreatePostPage)
	app.Post("/create", s.SubmitCreatePost)
	app.Get("/edit/:id", s.EditPostPage)
	app.Post("/edit/:id", s.SubmitEditPost)
	app.Get("/tag/:name", s.TagPage)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%d", s.address, s.port)
	s.log.Info("Starting HTTP server", slog.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
