package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tanoeluis/VibrantBlog/models"
	"github.com/tanoeluis/VibrantBlog/storage"
	"github.com/tanoeluis/VibrantBlog/utils"
)

// PostController manages CRUD operations for posts.
type PostController struct {
	store storage.Storage
	log   *zap.Logger
}

// NewPostController creates a new PostController instance.
func NewPostController(store storage.Storage, log *zap.Logger) *PostController {
	return &PostController{store: store, log: log}
}

// ListPosts returns every post, newest first. Clients slice the list themselves.
func (p *PostController) ListPosts(ctx *gin.Context) {
	posts, err := p.store.GetAllPosts(ctx.Request.Context())
	if err != nil {
		p.log.Error("list posts", zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list posts")
		return
	}
	utils.Success(ctx, gin.H{"items": posts, "total": len(posts)})
}

// GetPost returns a single post.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid post id")
		return
	}

	post, found, err := p.store.GetPostByID(ctx.Request.Context(), id)
	if err != nil {
		p.log.Error("load post", zap.Uint("post_id", id), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load post")
		return
	}
	if !found {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// CreatePost allows authenticated users to create new posts.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req models.NewPost
	if err := bindStrictJSON(ctx, &req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	req.Title = utils.SanitizeText(req.Title)
	req.Summary = utils.SanitizeText(req.Summary)
	req.Author = utils.SanitizeText(req.Author)
	req.Category = utils.SanitizeText(req.Category)
	if req.Title == "" || req.Summary == "" || req.Author == "" || req.Category == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "title, summary, author and category cannot be empty")
		return
	}

	post, err := p.store.CreatePost(ctx.Request.Context(), req)
	if err != nil {
		p.log.Error("create post", zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create post")
		return
	}

	uid, _ := getUserID(ctx)
	p.log.Info("post created", zap.Uint("post_id", post.ID), zap.Uint("user_id", uid))
	utils.Created(ctx, gin.H{"post": post})
}

// UpdatePost applies a partial update; fields absent from the body stay untouched.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid post id")
		return
	}

	var patch models.PostPatch
	if err := bindStrictJSON(ctx, &patch); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}

	for _, field := range []*string{patch.Title, patch.Summary, patch.Author, patch.Category} {
		if field == nil {
			continue
		}
		*field = utils.SanitizeText(*field)
		if *field == "" {
			utils.Error(ctx, http.StatusBadRequest, 40025, "title, summary, author and category cannot be empty")
			return
		}
	}
	if patch.Content != nil && *patch.Content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40025, "content cannot be empty")
		return
	}

	if patch.Empty() {
		p.log.Debug("empty patch only refreshes updatedAt", zap.Uint("post_id", id))
	}

	post, found, err := p.store.UpdatePost(ctx.Request.Context(), id, patch)
	if err != nil {
		p.log.Error("update post", zap.Uint("post_id", id), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to update post")
		return
	}
	if !found {
		utils.Error(ctx, http.StatusNotFound, 40403, "post not found")
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid post id")
		return
	}

	removed, err := p.store.DeletePost(ctx.Request.Context(), id)
	if err != nil {
		p.log.Error("delete post", zap.Uint("post_id", id), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50028, "failed to delete post")
		return
	}
	if !removed {
		utils.Error(ctx, http.StatusNotFound, 40404, "post not found")
		return
	}
	utils.Success(ctx, gin.H{"deleted": true})
}
