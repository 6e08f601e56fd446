// Package memory keeps users and blogs in process memory. It backs
// STORE_DRIVER=memory and the service and API tests.
package memory

import (
	"sync"

	"github.com/baharkarakas/blog-backend/internal/models"
	"github.com/baharkarakas/blog-backend/internal/repository"
)

type Store struct {
	mu    sync.RWMutex
	users map[string]models.User
	blogs map[string]models.Blog
}

func NewStore() *Store {
	return &Store{
		users: map[string]models.User{},
		blogs: map[string]models.Blog{},
	}
}

type Repositories struct {
	Users repository.Users
	Blogs repository.Blogs
}

func NewRepositories(s *Store) Repositories {
	return Repositories{Users: &usersRepo{s}, Blogs: &blogsRepo{s}}
}

func cloneBlog(b models.Blog) models.Blog {
	b.Tags = append([]string{}, b.Tags...)
	b.Author = nil
	return b
}
