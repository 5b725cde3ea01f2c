package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tanoeluis/VibrantBlog/models"
)

// GormStorage persists users and posts in a relational database through GORM.
// Ids come from the database's auto-increment keys and timestamps from the
// DB's NowFunc.
type GormStorage struct {
	db *gorm.DB
}

var _ Storage = (*GormStorage)(nil)

// NewGormStorage wraps an opened database. The database should be opened with
// TranslateError enabled so unique-key violations surface as gorm.ErrDuplicatedKey.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

// AutoMigrate creates or extends the users and posts tables.
func (s *GormStorage) AutoMigrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.User{}, &models.Post{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (s *GormStorage) GetUser(ctx context.Context, id uint) (models.User, bool, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, false, nil
		}
		return models.User{}, false, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return u, true, nil
}

func (s *GormStorage) GetUserByUsername(ctx context.Context, username string) (models.User, bool, error) {
	return findUserByUsername(s.db.WithContext(ctx), username)
}

func findUserByUsername(db *gorm.DB, username string) (models.User, bool, error) {
	var users []models.User
	if err := db.Where("username = ?", username).Limit(1).Find(&users).Error; err != nil {
		return models.User{}, false, fmt.Errorf("failed to load user %q: %w", username, err)
	}
	if len(users) == 0 {
		return models.User{}, false, nil
	}
	return users[0], true, nil
}

func (s *GormStorage) CreateUser(ctx context.Context, in models.NewUser) (models.User, error) {
	u := models.User{Username: in.Username, Password: in.Password}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, taken, err := findUserByUsername(tx, in.Username); err != nil {
			return err
		} else if taken {
			return ErrUsernameTaken
		}
		return tx.Create(&u).Error
	})
	switch {
	case err == nil:
		return u, nil
	case errors.Is(err, ErrUsernameTaken), errors.Is(err, gorm.ErrDuplicatedKey):
		// The unique index catches registrations racing past the lookup.
		return models.User{}, ErrUsernameTaken
	default:
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
}

func (s *GormStorage) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *GormStorage) GetPostByID(ctx context.Context, id uint) (models.Post, bool, error) {
	var p models.Post
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Post{}, false, nil
		}
		return models.Post{}, false, fmt.Errorf("failed to load post %d: %w", id, err)
	}
	return p, true, nil
}

func (s *GormStorage) CreatePost(ctx context.Context, in models.NewPost) (models.Post, error) {
	p := in.ToPost(s.db.NowFunc())
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return models.Post{}, fmt.Errorf("failed to create post: %w", err)
	}
	return p, nil
}

func (s *GormStorage) UpdatePost(ctx context.Context, id uint, patch models.PostPatch) (models.Post, bool, error) {
	var merged models.Post
	found := true
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Post
		if err := tx.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				found = false
				return nil
			}
			return err
		}
		merged = models.ApplyPatch(current, patch, s.db.NowFunc())
		return tx.Save(&merged).Error
	})
	if err != nil {
		return models.Post{}, false, fmt.Errorf("failed to update post %d: %w", id, err)
	}
	if !found {
		return models.Post{}, false, nil
	}
	return merged, true, nil
}

func (s *GormStorage) DeletePost(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete post %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
