// Package storage persists users and posts behind a single contract with an
// in-memory and a GORM-backed implementation.
package storage

import (
	"context"
	"errors"

	"github.com/tanoeluis/VibrantBlog/models"
)

// ErrUsernameTaken is returned by CreateUser when the username is already registered.
var ErrUsernameTaken = errors.New("username already taken")

// Storage is the persistence contract used by the HTTP and auth layers.
//
// Lookups report a miss through the boolean result, never through the error.
// A non-nil error always means the backing store failed (or, for CreateUser,
// ErrUsernameTaken).
type Storage interface {
	// GetUser looks a user up by id.
	GetUser(ctx context.Context, id uint) (models.User, bool, error)
	// GetUserByUsername looks a user up by exact, case-sensitive username.
	GetUserByUsername(ctx context.Context, username string) (models.User, bool, error)
	// CreateUser assigns the next user id and stores the record.
	CreateUser(ctx context.Context, in models.NewUser) (models.User, error)

	// GetAllPosts returns every post, newest createdAt first. Posts sharing a
	// createdAt keep insertion order.
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	// GetPostByID looks a post up by id.
	GetPostByID(ctx context.Context, id uint) (models.Post, bool, error)
	// CreatePost assigns the next post id, applies defaults and stamps both timestamps.
	CreatePost(ctx context.Context, in models.NewPost) (models.Post, error)
	// UpdatePost merges patch over the stored post. A missing id reports false
	// and changes nothing.
	UpdatePost(ctx context.Context, id uint, patch models.PostPatch) (models.Post, bool, error)
	// DeletePost removes the post and reports whether anything was removed.
	DeletePost(ctx context.Context, id uint) (bool, error)
}
