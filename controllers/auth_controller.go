package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tanoeluis/VibrantBlog/middleware"
	"github.com/tanoeluis/VibrantBlog/models"
	"github.com/tanoeluis/VibrantBlog/storage"
	"github.com/tanoeluis/VibrantBlog/utils"
)

// AuthController handles registration, login and the token lifecycle.
type AuthController struct {
	store     storage.Storage
	tokens    *utils.TokenManager
	blacklist *utils.TokenBlacklist
	log       *zap.Logger
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(store storage.Storage, tokens *utils.TokenManager, blacklist *utils.TokenBlacklist, log *zap.Logger) *AuthController {
	return &AuthController{store: store, tokens: tokens, blacklist: blacklist, log: log}
}

type credentials struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// Register creates a local account with a bcrypt-hashed password and logs it in.
func (a *AuthController) Register(ctx *gin.Context) {
	var req credentials
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "username must be at least 3 and password at least 6 characters")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if len(req.Username) < 3 {
		utils.Error(ctx, http.StatusBadRequest, 40002, "username must be at least 3 characters")
		return
	}

	// Cheap early answer; CreateUser enforces uniqueness again atomically.
	if _, taken, err := a.store.GetUserByUsername(ctx.Request.Context(), req.Username); err != nil {
		a.log.Error("lookup user", zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to register user")
		return
	} else if taken {
		utils.Error(ctx, http.StatusConflict, 40901, "username already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		utils.Error(ctx, http.StatusBadRequest, 40003, "password must be at most 72 bytes")
		return
	}
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to hash password")
		return
	}

	user, err := a.store.CreateUser(ctx.Request.Context(), models.NewUser{Username: req.Username, Password: hash})
	if errors.Is(err, storage.ErrUsernameTaken) {
		utils.Error(ctx, http.StatusConflict, 40901, "username already exists")
		return
	}
	if err != nil {
		a.log.Error("create user", zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to register user")
		return
	}

	token, _, err := a.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}
	a.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	utils.Created(ctx, gin.H{"token": token, "user": user})
}

// Login verifies user credentials and issues a JWT.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid request payload")
		return
	}

	user, found, err := a.store.GetUserByUsername(ctx.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		a.log.Error("lookup user", zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50005, "failed to log in")
		return
	}
	if !found || !utils.CheckPassword(user.Password, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	token, _, err := a.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}
	utils.Success(ctx, gin.H{"token": token, "user": user})
}

// Logout revokes the presented token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	claims, ok := middleware.CurrentClaims(ctx)
	if !ok || claims.ExpiresAt == nil {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "unauthorized")
		return
	}

	if err := a.blacklist.Revoke(ctx.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		a.log.Error("revoke token", zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50006, "failed to log out")
		return
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the current authenticated user's information.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	user, found, err := a.store.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		a.log.Error("load user", zap.Uint("user_id", userID), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50007, "failed to load user")
		return
	}
	if !found {
		utils.Error(ctx, http.StatusNotFound, 40402, "user not found")
		return
	}
	utils.Success(ctx, user)
}
