package storage

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/tanoeluis/VibrantBlog/models"
)

// MemStorage keeps users and posts in maps owned by the store. One RWMutex guards
// the maps and the id counters together.
type MemStorage struct {
	mu         sync.RWMutex
	users      map[uint]models.User
	posts      map[uint]models.Post
	nextUserID uint
	nextPostID uint
	now        func() time.Time
}

var _ Storage = (*MemStorage)(nil)

// NewMemStorage returns an empty store using the wall clock.
func NewMemStorage() *MemStorage {
	return NewMemStorageWithClock(time.Now)
}

// NewMemStorageWithClock returns an empty store stamping posts with now.
func NewMemStorageWithClock(now func() time.Time) *MemStorage {
	return &MemStorage{
		users:      make(map[uint]models.User),
		posts:      make(map[uint]models.Post),
		nextUserID: 1,
		nextPostID: 1,
		now:        now,
	}
}

func (s *MemStorage) GetUser(_ context.Context, id uint) (models.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok, nil
}

func (s *MemStorage) GetUserByUsername(_ context.Context, username string) (models.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.findUserLocked(username)
	return u, ok, nil
}

func (s *MemStorage) findUserLocked(username string) (models.User, bool) {
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *MemStorage) CreateUser(_ context.Context, in models.NewUser) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.findUserLocked(in.Username); taken {
		return models.User{}, ErrUsernameTaken
	}
	u := models.User{ID: s.nextUserID, Username: in.Username, Password: in.Password}
	s.nextUserID++
	s.users[u.ID] = u
	return u, nil
}

func (s *MemStorage) GetAllPosts(_ context.Context) ([]models.Post, error) {
	s.mu.RLock()
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p)
	}
	s.mu.RUnlock()

	// Ids grow with insertion, so ordering by id first makes the stable sort
	// keep insertion order among equal timestamps.
	slices.SortFunc(out, func(a, b models.Post) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortStableFunc(out, func(a, b models.Post) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (s *MemStorage) GetPostByID(_ context.Context, id uint) (models.Post, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	return p, ok, nil
}

func (s *MemStorage) CreatePost(_ context.Context, in models.NewPost) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := in.ToPost(s.now())
	p.ID = s.nextPostID
	s.nextPostID++
	s.posts[p.ID] = p
	return p, nil
}

func (s *MemStorage) UpdatePost(_ context.Context, id uint, patch models.PostPatch) (models.Post, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, false, nil
	}
	merged := models.ApplyPatch(p, patch, s.now())
	s.posts[id] = merged
	return merged, true, nil
}

func (s *MemStorage) DeletePost(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return false, nil
	}
	delete(s.posts, id)
	return true, nil
}
