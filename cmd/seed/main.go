package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/config"
	"inkwell/internal/logger"
	prometheus_metrics "inkwell/internal/metrics/prometheus"
	"inkwell/internal/model"
	comment_postgres "inkwell/internal/repository/comment/postgres"
	post_postgres "inkwell/internal/repository/post/postgres"
	"inkwell/internal/repository/postgres"
	tag_postgres "inkwell/internal/repository/tag/postgres"
	comment_service "inkwell/internal/service/comment"
	post_service "inkwell/internal/service/post"
)

type samplePost struct {
	title   string
	content string
	tags    []string
}

var samplePosts = []samplePost{
	{
		title:   "Welcome to My Blog",
		content: "This is my first blog post! I'm excited to share my journey learning backend development. Stay tuned for more posts about coding, tutorials, and my projects.",
		tags:    []string{"introduction", "personal"},
	},
	{
		title:   "Getting Started with Go",
		content: "Go is a great language for building services. It has simple syntax, a strong standard library, and first-class concurrency. In this post, I'll share some tips for getting started and resources that helped me learn.",
		tags:    []string{"go", "tutorial", "beginner"},
	},
	{
		title:   "Building Web Services",
		content: "Lightweight web frameworks make it easy to build small to medium-sized applications. Today I learned how to set up routes, templates, and connect to a database. It's easier than I thought!",
		tags:    []string{"go", "web-development", "tutorial"},
	},
	{
		title:   "Understanding Databases",
		content: "Databases are essential for storing data in web applications. I've been learning about PostgreSQL and schema migrations. Keeping the schema in versioned migration files makes deployments much less scary.",
		tags:    []string{"database", "postgres", "tutorial"},
	},
	{
		title:   "Testing Your Code",
		content: "Writing tests is important to make sure your code works correctly. I learned how to write unit tests, integration tests, and end-to-end tests. It takes time but it's worth it to catch bugs early.",
		tags:    []string{"testing", "go"},
	},
}

var sampleComments = []struct {
	postIndex int
	author    string
	title     string
	content   string
}{
	{0, "John", "Great start!", "Welcome to the blogging world! Looking forward to more posts."},
	{1, "Sarah", "Very helpful", "Thanks for sharing these tips. Really helpful for beginners like me!"},
	{2, "Mike", "Nice write-up", "I agree, a small framework makes web development so much easier. Great post!"},
}

func main() {
	cfg := config.MustLoad()
	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DbName)
	ctx := context.Background()
	log := logger.New(cfg.Env)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()

	unitOfWork := postgres.NewPostgresUOW(pool, log, metrics)
	postRepo := post_postgres.NewPostRepository(pool, log, metrics)
	commentRepo := comment_postgres.NewCommentRepository(pool, log, metrics)
	tagRepo := tag_postgres.NewTagRepository(pool, log, metrics)

	postService := post_service.NewPostService(postRepo, commentRepo, tagRepo, unitOfWork, log)
	commentService := comment_service.NewCommentService(commentRepo, postRepo, log)

	log.Info("Adding sample blog posts")

	postIDs := make([]int64, 0, len(samplePosts))
	for _, sample := range samplePosts {
		created, err := postService.CreatePost(ctx, &model.CreatePostDTO{
			Title:   sample.title,
			Content: sample.content,
			Tags:    sample.tags,
		})
		if err != nil {
			log.Error("Failed to create sample post",
				slog.String("title", sample.title),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		postIDs = append(postIDs, created.Post.ID)
	}

	log.Info("Adding sample comments")

	for _, sample := range sampleComments {
		_, err := commentService.CreateComment(ctx, &model.CreateCommentDTO{
			PostID:  postIDs[sample.postIndex],
			Author:  sample.author,
			Title:   sample.title,
			Content: sample.content,
		})
		if err != nil {
			log.Error("Failed to create sample comment", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// A handful of random comments so pagination-free pages still look lived-in.
	for i := 0; i < 5; i++ {
		_, err := commentService.CreateComment(ctx, &model.CreateCommentDTO{
			PostID:  postIDs[gofakeit.Number(0, len(postIDs)-1)],
			Author:  gofakeit.FirstName(),
			Title:   gofakeit.Sentence(3),
			Content: gofakeit.Paragraph(1, 2, 8, " "),
		})
		if err != nil {
			log.Error("Failed to create random comment", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	log.Info("Sample data has been added", slog.Int("posts", len(postIDs)))
}
