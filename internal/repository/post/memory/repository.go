package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"inkwell/internal/custom_errors"
	"inkwell/internal/logger"
	"inkwell/internal/model"
)

type PostRepository struct {
	log      *logger.Logger
	mu       sync.RWMutex
	posts    map[int64]*model.Post
	postTags map[int64]map[string]bool
	nextID   int64
}

func NewPostRepository(log *logger.Logger) *PostRepository {
	return &PostRepository{
		log:      log,
		posts:    make(map[int64]*model.Post),
		postTags: make(map[int64]map[string]bool),
		nextID:   1,
	}
}

// SimulateTagged associates a tag name with a post so ListByTag can be
// exercised without a tag repository.
func (p *PostRepository) SimulateTagged(postID int64, tagName string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.postTags[postID] == nil {
		p.postTags[postID] = make(map[string]bool)
	}
	p.postTags[postID][tagName] = true
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	created := &model.Post{
		ID:        p.nextID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	p.nextID++
	p.posts[created.ID] = created

	postCopy := *created
	return &postCopy, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	postCopy := *post
	return &postCopy, nil
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	if update.Title == nil && update.Content == nil {
		return nil, custom_errors.ErrNoUpdateRows
	}
	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Content != nil {
		post.Content = *update.Content
	}

	postCopy := *post
	return &postCopy, nil
}

func (p *PostRepository) List(ctx context.Context) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	posts := make([]*model.Post, 0, len(p.posts))
	for _, post := range p.posts {
		postCopy := *post
		posts = append(posts, &postCopy)
	}
	sortNewestFirst(posts)

	return posts, nil
}

func (p *PostRepository) ListByTag(ctx context.Context, tagName string) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var posts []*model.Post
	for id, tags := range p.postTags {
		if !tags[tagName] {
			continue
		}
		if post, exists := p.posts[id]; exists {
			postCopy := *post
			posts = append(posts, &postCopy)
		}
	}
	sortNewestFirst(posts)

	return posts, nil
}

func sortNewestFirst(posts []*model.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Time.Equal(posts[j].CreatedAt.Time) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.Time.After(posts[j].CreatedAt.Time)
	})
}
