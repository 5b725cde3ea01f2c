package models

import "time"

const (
	// DefaultReadTime is applied when a post is created without a read time.
	DefaultReadTime = "3 min read"
	// DefaultImageURL is applied when a post is created without a cover image.
	DefaultImageURL = "https://images.unsplash.com/photo-1498050108023-c5249f4df085"
)

// Post represents a blog article.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Summary   string    `gorm:"type:text;not null" json:"summary"`
	Author    string    `gorm:"size:128;not null" json:"author"`
	Category  string    `gorm:"size:64;not null" json:"category"`
	ReadTime  string    `gorm:"size:32;not null" json:"readTime"`
	ImageURL  string    `gorm:"size:1024;not null" json:"imageUrl"`
	CreatedAt time.Time `gorm:"index;not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false" json:"updatedAt"`
}

// NewPost is the create input. ReadTime and ImageURL are optional; nil means absent.
type NewPost struct {
	Title    string  `json:"title" binding:"required"`
	Content  string  `json:"content" binding:"required"`
	Summary  string  `json:"summary" binding:"required"`
	Author   string  `json:"author" binding:"required"`
	Category string  `json:"category" binding:"required"`
	ReadTime *string `json:"readTime"`
	ImageURL *string `json:"imageUrl"`
}

// ToPost builds the record to persist, applying field defaults and stamping both
// timestamps with now. The id is left for the store to assign.
func (in NewPost) ToPost(now time.Time) Post {
	p := Post{
		Title:     in.Title,
		Content:   in.Content,
		Summary:   in.Summary,
		Author:    in.Author,
		Category:  in.Category,
		ReadTime:  DefaultReadTime,
		ImageURL:  DefaultImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.ReadTime != nil {
		p.ReadTime = *in.ReadTime
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	return p
}

// PostPatch is the partial update input; only non-nil fields are applied.
type PostPatch struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Summary  *string `json:"summary"`
	Author   *string `json:"author"`
	Category *string `json:"category"`
	ReadTime *string `json:"readTime"`
	ImageURL *string `json:"imageUrl"`
}

// Empty reports whether the patch changes no field.
func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Summary == nil && p.Author == nil &&
		p.Category == nil && p.ReadTime == nil && p.ImageURL == nil
}

// ApplyPatch returns a copy of post with the present patch fields merged over it.
// ID and CreatedAt never change; UpdatedAt becomes now, clamped so it never
// precedes CreatedAt.
func ApplyPatch(post Post, patch PostPatch, now time.Time) Post {
	merged := post
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Content != nil {
		merged.Content = *patch.Content
	}
	if patch.Summary != nil {
		merged.Summary = *patch.Summary
	}
	if patch.Author != nil {
		merged.Author = *patch.Author
	}
	if patch.Category != nil {
		merged.Category = *patch.Category
	}
	if patch.ReadTime != nil {
		merged.ReadTime = *patch.ReadTime
	}
	if patch.ImageURL != nil {
		merged.ImageURL = *patch.ImageURL
	}
	if now.Before(post.CreatedAt) {
		now = post.CreatedAt
	}
	merged.UpdatedAt = now
	return merged
}
