package memory

import (
	"context"
	"sort"
	"sync"

	"inkwell/internal/custom_errors"
	"inkwell/internal/logger"
	"inkwell/internal/model"
)

type TagRepository struct {
	log          *logger.Logger
	mu           sync.RWMutex
	tags         map[int64]*model.Tag
	tagsByName   map[string]*model.Tag
	postTags     map[int64]map[int64]bool
	postsByTagID map[int64]map[int64]bool
	nextID       int64
}

func NewTagRepository(log *logger.Logger) *TagRepository {
	return &TagRepository{
		log:          log,
		tags:         make(map[int64]*model.Tag),
		tagsByName:   make(map[string]*model.Tag),
		postTags:     make(map[int64]map[int64]bool),
		postsByTagID: make(map[int64]map[int64]bool),
		nextID:       1,
	}
}

func (t *TagRepository) Create(ctx context.Context, name string) (*model.Tag, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.tagsByName[name]; exists {
		return nil, custom_errors.ErrTagAlreadyExists
	}

	tag := &model.Tag{
		ID:   t.nextID,
		Name: name,
	}
	t.nextID++

	t.tags[tag.ID] = tag
	t.tagsByName[tag.Name] = tag
	t.postsByTagID[tag.ID] = make(map[int64]bool)

	tagCopy := *tag
	return &tagCopy, nil
}

func (t *TagRepository) GetByName(ctx context.Context, name string) (*model.Tag, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tag, exists := t.tagsByName[name]
	if !exists {
		return nil, custom_errors.ErrTagNotFound
	}

	tagCopy := *tag
	return &tagCopy, nil
}

func (t *TagRepository) FindByPost(ctx context.Context, postID int64) ([]*model.Tag, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var result []*model.Tag
	if tagMap, exists := t.postTags[postID]; exists {
		for tagID := range tagMap {
			if tag, found := t.tags[tagID]; found {
				tagCopy := *tag
				result = append(result, &tagCopy)
			}
		}
	}
	sortByName(result)

	return result, nil
}

func (t *TagRepository) ListAll(ctx context.Context) ([]*model.Tag, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]*model.Tag, 0, len(t.tags))
	for _, tag := range t.tags {
		tagCopy := *tag
		result = append(result, &tagCopy)
	}
	sortByName(result)

	return result, nil
}

func (t *TagRepository) DeleteUnused(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for tagID, postMap := range t.postsByTagID {
		if len(postMap) == 0 {
			if tag, exists := t.tags[tagID]; exists {
				delete(t.tagsByName, tag.Name)
				delete(t.tags, tagID)
				delete(t.postsByTagID, tagID)
			}
		}
	}

	return nil
}

func (t *TagRepository) TagPost(ctx context.Context, postID int64, tagNames []string) error {
	if len(tagNames) == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, name := range tagNames {
		tag, exists := t.tagsByName[name]
		if !exists {
			return custom_errors.ErrTagNotFound
		}
		if t.postTags[postID] == nil {
			t.postTags[postID] = make(map[int64]bool)
		}
		t.postTags[postID][tag.ID] = true
		t.postsByTagID[tag.ID][postID] = true
	}

	return nil
}

func (t *TagRepository) ReplacePostTags(ctx context.Context, postID int64, newTags []string) error {
	t.mu.Lock()

	if tagMap, exists := t.postTags[postID]; exists {
		for tagID := range tagMap {
			delete(t.postsByTagID[tagID], postID)
		}
	}
	delete(t.postTags, postID)
	t.mu.Unlock()

	return t.TagPost(ctx, postID, newTags)
}

func sortByName(tags []*model.Tag) {
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})
}
