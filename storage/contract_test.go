package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanoeluis/VibrantBlog/models"
)

// tickClock advances one second on every reading so successive writes get
// strictly increasing timestamps.
type tickClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTickClock() *tickClock {
	return &tickClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *tickClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type storeFactory func(t *testing.T, now func() time.Time) Storage

func strPtr(s string) *string { return &s }

func newPostInput(title string) models.NewPost {
	return models.NewPost{
		Title:    title,
		Content:  "# " + title,
		Summary:  title + " summary",
		Author:   "Sarah Chen",
		Category: "Technology",
	}
}

// withoutTimes zeroes the timestamps so records coming back from a database
// can be compared field by field; instants are checked separately.
func withoutTimes(p models.Post) models.Post {
	p.CreatedAt = time.Time{}
	p.UpdatedAt = time.Time{}
	return p
}

func postIDs(posts []models.Post) []uint {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

func runStorageContract(t *testing.T, newStore storeFactory) {
	t.Run("CreatePostAssignsIncreasingIDs", func(t *testing.T) {
		s := newStore(t, newTickClock().Now)
		ctx := context.Background()

		var last uint
		for i := 0; i < 5; i++ {
			p, err := s.CreatePost(ctx, newPostInput("post"))
			require.NoError(t, err)
			assert.Greater(t, p.ID, last)
			last = p.ID
		}
		assert.Equal(t, uint(5), last)
	})

	t.Run("CreatePostAppliesDefaultsAndTimestamps", func(t *testing.T) {
		s := newStore(t, newTickClock().Now)
		ctx := context.Background()

		p, err := s.CreatePost(ctx, newPostInput("Hello"))
		require.NoError(t, err)
		assert.Equal(t, uint(1), p.ID)
		assert.Equal(t, models.DefaultReadTime, p.ReadTime)
		assert.Equal(t, models.DefaultImageURL, p.ImageURL)
		assert.False(t, p.CreatedAt.IsZero())
		assert.True(t, p.UpdatedAt.Equal(p.CreatedAt))

		stored, found, err := s.GetPostByID(ctx, p.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, withoutTimes(p), withoutTimes(stored))
		assert.True(t, stored.CreatedAt.Equal(p.CreatedAt))
	})

	t.Run("CreatePostKeepsSuppliedOptionals", func(t *testing.T) {
		s := newStore(t, newTickClock().Now)
		in := newPostInput("Hello")
		in.ReadTime = strPtr("9 min read")
		in.ImageURL = strPtr("https://example.com/cover.png")

		p, err := s.CreatePost(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "9 min read", p.ReadTime)
		assert.Equal(t, "https://example.com/cover.png", p.ImageURL)
	})

	t.Run("GetAllPostsNewestFirst", func(t *testing.T) {
		s := newStore(t, newTickClock().Now)
		ctx := context.Background()

		p1, err := s.CreatePost(ctx, newPostInput("t1"))
		require.NoError(t, err)
		p2, err := s.CreatePost(ctx, newPostInput("t2"))
		require.NoError(t, err)
		p3, err := s.CreatePost(ctx, newPostInput("t3"))
		require.NoError(t, err)

		posts, err := s.GetAllPosts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []uint{p3.ID, p2.ID, p1.ID}, postIDs(posts))
	})

	t.Run("GetAllPostsEqualTimestampsKeepInsertionOrder", func(t *testing.T) {
		fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		s := newStore(t, func() time.Time { return fixed })
		ctx := context.Background()

		for _, title := range []string{"a", "b", "c"} {
			_, err := s.CreatePost(ctx, newPostInput(title))
			require.NoError(t, err)
		}
		posts, err := s.GetAllPosts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []uint{1, 2, 3}, postIDs(posts))
	})

	t.Run("GetAllPostsEmpty", func(t *testing.T) {
		s := newStore(t, newTickClock().Now)
		posts, err := s.GetAllPosts(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("GetAllPostsIsASnapshot", func(t *testing.T) {
		s := newStore(t, newTickClock().Now)
		ctx := context.Background()

		p, err := s.CreatePost(ctx, newPostInput("Hello"))
		require.NoError(t, err)
		posts, err := s.GetAllPosts(ctx)
		require.NoError(t, err)

		_, _, err = s.UpdatePost(ctx, p.ID, models.PostPatch{Title: strPtr("Changed")})
		require.NoError(t, err)
		_, err = s.CreatePost(ctx, newPostInput("Another"))
		require.NoError(t, err)

		require.Len(t, posts, 1)
		assert.Equal(t, "Hello", posts[0].Title)
	})

	t.Run("UpdatePostChangesOnlyGivenFields", func(t *testing.T) {
		s := newStore(t, newTickClock().Now)
		ctx := context.Background()

		orig, err := s.CreatePost(ctx, newPostInput("Hello"))
		require.NoError(t, err)

		updated, found, err := s.UpdatePost(ctx, orig.ID, models.PostPatch{Title: strPtr("X")})
		require.NoError(t, err)
		require.True(t, found)

		want := withoutTimes(orig)
		want.Title = "X"
		assert.Equal(t, want, withoutTimes(updated))
		assert.True(t, updated.CreatedAt.Equal(orig.CreatedAt))
		assert.True(t, updated.UpdatedAt.After(orig.UpdatedAt))

		stored, found, err := s.GetPostByID(ctx, orig.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, withoutTimes(updated), withoutTimes(stored))
		assert.True(t, stored.UpdatedAt.Equal(updated.UpdatedAt))
	})

	t.Run("UpdatePostMissingIDHasNoEffect", func(t *testing.T) {
		s := newStore(t, newTickClock().Now)
		ctx := context.Background()

		p, err := s.CreatePost(ctx, newPostInput("Hello"))
		require.NoError(t, err)
		before, err := s.GetAllPosts(ctx)
		require.NoError(t, err)

		_, found, err := s.UpdatePost(ctx, 42, models.PostPatch{Title: strPtr("X")})
		require.NoError(t, err)
		assert.False(t, found)

		after, err := s.GetAllPosts(ctx)
		require.NoError(t, err)
		require.Len(t, after, len(before))
		assert.Equal(t, withoutTimes(before[0]), withoutTimes(after[0]))
		assert.True(t, after[0].UpdatedAt.Equal(p.UpdatedAt))
	})

	t.Run("DeletePostIsIdempotent", func(t *testing.T) {
		s := newStore(t, newTickClock().Now)
		ctx := context.Background()

		p, err := s.CreatePost(ctx, newPostInput("Hello"))
		require.NoError(t, err)

		removed, err := s.DeletePost(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		_, found, err := s.GetPostByID(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, found)

		removed, err = s.DeletePost(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("DeletedIDsAreNotReissued", func(t *testing.T) {
		s := newStore(t, newTickClock().Now)
		ctx := context.Background()

		first, err := s.CreatePost(ctx, newPostInput("a"))
		require.NoError(t, err)
		second, err := s.CreatePost(ctx, newPostInput("b"))
		require.NoError(t, err)
		_, err = s.DeletePost(ctx, second.ID)
		require.NoError(t, err)

		third, err := s.CreatePost(ctx, newPostInput("c"))
		require.NoError(t, err)
		assert.Greater(t, third.ID, second.ID)
		assert.NotEqual(t, first.ID, third.ID)
	})

	t.Run("EndToEndScenario", func(t *testing.T) {
		s := newStore(t, newTickClock().Now)
		ctx := context.Background()

		a, err := s.CreatePost(ctx, newPostInput("Hello"))
		require.NoError(t, err)
		b, err := s.CreatePost(ctx, newPostInput("World"))
		require.NoError(t, err)

		posts, err := s.GetAllPosts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []uint{b.ID, a.ID}, postIDs(posts))

		a2, found, err := s.UpdatePost(ctx, a.ID, models.PostPatch{Summary: strPtr("new summary")})
		require.NoError(t, err)
		require.True(t, found)
		assert.True(t, a2.UpdatedAt.After(a.UpdatedAt))

		bNow, found, err := s.GetPostByID(ctx, b.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, withoutTimes(b), withoutTimes(bNow))
		assert.True(t, bNow.UpdatedAt.Equal(b.UpdatedAt))

		posts, err = s.GetAllPosts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []uint{b.ID, a.ID}, postIDs(posts))

		removed, err := s.DeletePost(ctx, b.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		posts, err = s.GetAllPosts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []uint{a.ID}, postIDs(posts))
		_, found, err = s.GetPostByID(ctx, b.ID)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("UsersCreateAndLookup", func(t *testing.T) {
		s := newStore(t, newTickClock().Now)
		ctx := context.Background()

		alice, err := s.CreateUser(ctx, models.NewUser{Username: "alice", Password: "hash-a"})
		require.NoError(t, err)
		bob, err := s.CreateUser(ctx, models.NewUser{Username: "bob", Password: "hash-b"})
		require.NoError(t, err)
		assert.Equal(t, uint(1), alice.ID)
		assert.Equal(t, uint(2), bob.ID)

		got, found, err := s.GetUser(ctx, bob.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, bob, got)

		got, found, err = s.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, alice, got)
		assert.Equal(t, "hash-a", got.Password)

		_, found, err = s.GetUser(ctx, 99)
		require.NoError(t, err)
		assert.False(t, found)

		_, found, err = s.GetUserByUsername(ctx, "Alice")
		require.NoError(t, err)
		assert.False(t, found, "username lookup is case-sensitive")
	})

	t.Run("CreateUserRejectsDuplicateUsername", func(t *testing.T) {
		s := newStore(t, newTickClock().Now)
		ctx := context.Background()

		_, err := s.CreateUser(ctx, models.NewUser{Username: "alice", Password: "x"})
		require.NoError(t, err)

		_, err = s.CreateUser(ctx, models.NewUser{Username: "alice", Password: "y"})
		assert.ErrorIs(t, err, ErrUsernameTaken)

		carol, err := s.CreateUser(ctx, models.NewUser{Username: "carol", Password: "z"})
		require.NoError(t, err)
		assert.Equal(t, uint(2), carol.ID)
	})
}
