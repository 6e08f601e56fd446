package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/blog-backend/internal/auth"
	"github.com/baharkarakas/blog-backend/internal/models"
	repo "github.com/baharkarakas/blog-backend/internal/repository"
	"github.com/baharkarakas/blog-backend/internal/repository/memory"
)

type fixture struct {
	users *UserService
	blogs *BlogService
	tm    *auth.TokenManager
	repos memory.Repositories
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	tm := auth.NewTokenManager("test-secret", "blog-backend", time.Hour)
	return fixture{
		users: NewUserService(repos.Users, tm),
		blogs: NewBlogService(repos.Blogs, repos.Users),
		tm:    tm,
		repos: repos,
	}
}

func (f fixture) signup(t *testing.T, first, email string) models.User {
	t.Helper()
	s, err := f.users.Signup(context.Background(), SignupInput{
		FirstName: first, LastName: "Tester", Email: email, Password: "password123",
	})
	require.NoError(t, err)
	return s.User
}

func (f fixture) draft(t *testing.T, userID, title string) models.Blog {
	t.Helper()
	b, err := f.blogs.Create(context.Background(), userID, CreateBlogInput{Title: title, Body: "some body text"})
	require.NoError(t, err)
	return b
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("lorem ", n))
}

func ptr[T any](v T) *T { return &v }

// countingBlogs records how often List reaches the store.
type countingBlogs struct {
	repo.Blogs
	lists int
}

func (c *countingBlogs) List(ctx context.Context, f repo.BlogFilter) ([]models.Blog, error) {
	c.lists++
	return c.Blogs.List(ctx, f)
}
