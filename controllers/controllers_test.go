package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tanoeluis/VibrantBlog/middleware"
	"github.com/tanoeluis/VibrantBlog/models"
	"github.com/tanoeluis/VibrantBlog/storage"
	"github.com/tanoeluis/VibrantBlog/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	router    *gin.Engine
	store     storage.Storage
	tokens    *utils.TokenManager
	blacklist *utils.TokenBlacklist
}

func newTestServer(t *testing.T, store storage.Storage) *testServer {
	t.Helper()
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	blacklist := utils.NewTokenBlacklist(nil)
	log := zap.NewNop()

	posts := NewPostController(store, log)
	auth := NewAuthController(store, tokens, blacklist, log)
	authRequired := middleware.AuthRequired(tokens, blacklist)

	r := gin.New()
	r.POST("/register", auth.Register)
	r.POST("/login", auth.Login)
	r.POST("/logout", authRequired, auth.Logout)
	r.GET("/user", authRequired, auth.Me)
	r.GET("/posts", posts.ListPosts)
	r.GET("/posts/:id", posts.GetPost)
	r.POST("/posts", authRequired, posts.CreatePost)
	r.PATCH("/posts/:id", authRequired, posts.UpdatePost)
	r.DELETE("/posts/:id", authRequired, posts.DeletePost)

	return &testServer{router: r, store: store, tokens: tokens, blacklist: blacklist}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()
	token, _, err := s.tokens.GenerateToken(1, "writer")
	require.NoError(t, err)
	return token
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// brokenStorage fails every call the way an unreachable database would.
type brokenStorage struct{}

var errBroken = errors.New("connection refused")

func (brokenStorage) GetUser(context.Context, uint) (models.User, bool, error) {
	return models.User{}, false, errBroken
}

func (brokenStorage) GetUserByUsername(context.Context, string) (models.User, bool, error) {
	return models.User{}, false, errBroken
}

func (brokenStorage) CreateUser(context.Context, models.NewUser) (models.User, error) {
	return models.User{}, errBroken
}

func (brokenStorage) GetAllPosts(context.Context) ([]models.Post, error) {
	return nil, errBroken
}

func (brokenStorage) GetPostByID(context.Context, uint) (models.Post, bool, error) {
	return models.Post{}, false, errBroken
}

func (brokenStorage) CreatePost(context.Context, models.NewPost) (models.Post, error) {
	return models.Post{}, errBroken
}

func (brokenStorage) UpdatePost(context.Context, uint, models.PostPatch) (models.Post, bool, error) {
	return models.Post{}, false, errBroken
}

func (brokenStorage) DeletePost(context.Context, uint) (bool, error) {
	return false, errBroken
}
