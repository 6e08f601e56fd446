package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/blog-backend/internal/models"
	"github.com/baharkarakas/blog-backend/internal/repository"
)

type blogsRepo struct{ s *Store }

// titleTaken must be called with the lock held.
func (r *blogsRepo) titleTaken(title, exceptID string) bool {
	for id, b := range r.s.blogs {
		if id != exceptID && b.Title == title {
			return true
		}
	}
	return false
}

func (r *blogsRepo) Create(_ context.Context, b models.Blog) (models.Blog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.titleTaken(b.Title, "") {
		return models.Blog{}, repository.ErrDuplicate
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Timestamp.IsZero() {
		b.Timestamp = time.Now().UTC()
	}
	b = cloneBlog(b)
	r.s.blogs[b.ID] = b
	return cloneBlog(b), nil
}

func (r *blogsRepo) GetByID(_ context.Context, id string) (models.Blog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.blogs[id]
	if !ok {
		return models.Blog{}, repository.ErrNotFound
	}
	return cloneBlog(b), nil
}

func (r *blogsRepo) List(_ context.Context, f repository.BlogFilter) ([]models.Blog, error) {
	f = f.Normalize()
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	r.s.mu.RLock()
	var matched []models.Blog
	for _, b := range r.s.blogs {
		if f.State != "" && b.State != f.State {
			continue
		}
		if f.AuthorID != "" && b.AuthorID != f.AuthorID {
			continue
		}
		if needle != "" && !r.matches(b, needle) {
			continue
		}
		matched = append(matched, cloneBlog(b))
	}
	r.s.mu.RUnlock()

	sortBlogs(matched, f.SortBy)

	out := []models.Blog{}
	if off := f.Offset(); off < len(matched) {
		end := off + f.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		out = append(out, matched[off:end]...)
	}
	return out, nil
}

// matches must be called with the read lock held.
func (r *blogsRepo) matches(b models.Blog, needle string) bool {
	if strings.Contains(strings.ToLower(b.Title), needle) {
		return true
	}
	for _, t := range b.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	if u, ok := r.s.users[b.AuthorID]; ok {
		return strings.Contains(strings.ToLower(u.FirstName), needle) ||
			strings.Contains(strings.ToLower(u.LastName), needle)
	}
	return false
}

func sortBlogs(bs []models.Blog, by repository.SortField) {
	sort.SliceStable(bs, func(i, j int) bool {
		a, b := bs[i], bs[j]
		switch by {
		case repository.SortReadCount:
			if a.ReadCount != b.ReadCount {
				return a.ReadCount > b.ReadCount
			}
		case repository.SortReadingTime:
			if a.ReadingTime != b.ReadingTime {
				return a.ReadingTime > b.ReadingTime
			}
		}
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		return a.ID < b.ID
	})
}

func (r *blogsRepo) ListByAuthor(_ context.Context, authorID string) ([]models.Blog, error) {
	r.s.mu.RLock()
	out := []models.Blog{}
	for _, b := range r.s.blogs {
		if b.AuthorID == authorID {
			out = append(out, cloneBlog(b))
		}
	}
	r.s.mu.RUnlock()
	sortBlogs(out, repository.SortTimestamp)
	return out, nil
}

func (r *blogsRepo) Update(_ context.Context, b models.Blog) (models.Blog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.blogs[b.ID]
	if !ok {
		return models.Blog{}, repository.ErrNotFound
	}
	if r.titleTaken(b.Title, b.ID) {
		return models.Blog{}, repository.ErrDuplicate
	}
	cur.Title = b.Title
	cur.Description = b.Description
	cur.Body = b.Body
	cur.Tags = b.Tags
	cur.State = b.State
	cur.ReadingTime = b.ReadingTime
	cur = cloneBlog(cur)
	r.s.blogs[b.ID] = cur
	return cloneBlog(cur), nil
}

func (r *blogsRepo) IncrementReadCount(_ context.Context, id string) (models.Blog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.blogs[id]
	if !ok {
		return models.Blog{}, repository.ErrNotFound
	}
	b.ReadCount++
	r.s.blogs[id] = b
	return cloneBlog(b), nil
}

func (r *blogsRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.blogs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.blogs, id)
	return nil
}
