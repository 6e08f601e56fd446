package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/baharkarakas/blog-backend/internal/metrics"
	"github.com/baharkarakas/blog-backend/internal/models"
	repo "github.com/baharkarakas/blog-backend/internal/repository"
	"github.com/baharkarakas/blog-backend/internal/validate"
)

type CreateBlogInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	Tags        []string `json:"tags"`
}

// EditBlogInput leaves nil fields unchanged.
type EditBlogInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Body        *string   `json:"body"`
	Tags        *[]string `json:"tags"`
}

func (in EditBlogInput) empty() bool {
	return in.Title == nil && in.Description == nil && in.Body == nil && in.Tags == nil
}

type ListQuery struct {
	Page   int
	Limit  int
	Search string
	State  string
	SortBy string
}

type BlogService struct {
	blogs repo.Blogs
	users repo.Users
	now   func() time.Time
}

func NewBlogService(b repo.Blogs, u repo.Users) *BlogService {
	return &BlogService{blogs: b, users: u, now: time.Now}
}

// ----------------- Commands -----------------

func (s *BlogService) Create(ctx context.Context, userID string, in CreateBlogInput) (models.Blog, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Blog{}, ErrUserNotFound
	}
	if err != nil {
		return models.Blog{}, err
	}
	if err := validate.Collect(
		validate.Required("title", in.Title),
		validate.Required("body", in.Body),
	); err != nil {
		return models.Blog{}, err
	}

	b, err := s.blogs.Create(ctx, models.Blog{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Body:        in.Body,
		Tags:        cleanTags(in.Tags),
		State:       models.StateDraft,
		ReadCount:   0,
		ReadingTime: models.ReadingTime(in.Body),
		AuthorID:    u.ID,
		Timestamp:   s.now().UTC(),
	})
	if err != nil {
		return models.Blog{}, duplicateTitle(err)
	}
	metrics.BlogsCreated.Inc()

	a := u.Author()
	b.Author = &a
	return b, nil
}

func (s *BlogService) SetState(ctx context.Context, id, userID, state string) (models.Blog, error) {
	if ef := validate.OneOf("state", state, string(models.StateDraft), string(models.StatePublished)); ef != nil {
		return models.Blog{}, validate.Errs{*ef}
	}
	b, err := s.owned(ctx, id, userID)
	if err != nil {
		return models.Blog{}, err
	}
	next := models.BlogState(state)
	if b.State == models.StatePublished && next == models.StateDraft {
		return models.Blog{}, validate.Field("state", "a published blog cannot return to draft")
	}
	if b.State != next {
		b.State = next
		if b, err = s.blogs.Update(ctx, b); err != nil {
			return models.Blog{}, notFound(err)
		}
		metrics.BlogStateChanges.WithLabelValues(state).Inc()
	}
	return s.withAuthor(ctx, b)
}

func (s *BlogService) Edit(ctx context.Context, id, userID string, in EditBlogInput) (models.Blog, error) {
	b, err := s.owned(ctx, id, userID)
	if err != nil {
		return models.Blog{}, err
	}
	if in.empty() {
		return models.Blog{}, validate.Field("blog", "at least one field is required to update the blog")
	}

	var checks []*validate.ErrField
	if in.Title != nil {
		checks = append(checks, validate.Required("title", *in.Title))
		b.Title = strings.TrimSpace(*in.Title)
	}
	if in.Body != nil {
		checks = append(checks, validate.Required("body", *in.Body))
		b.Body = *in.Body
		b.ReadingTime = models.ReadingTime(b.Body)
	}
	if err := validate.Collect(checks...); err != nil {
		return models.Blog{}, err
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Tags != nil {
		b.Tags = cleanTags(*in.Tags)
	}

	if b, err = s.blogs.Update(ctx, b); err != nil {
		return models.Blog{}, notFound(duplicateTitle(err))
	}
	return s.withAuthor(ctx, b)
}

func (s *BlogService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return notFound(s.blogs.Delete(ctx, id))
}

// ----------------- Queries -----------------

// List returns published blogs unless another state is asked for. Drafts are
// only listed for an authenticated viewer and only their own.
func (s *BlogService) List(ctx context.Context, viewerID string, q ListQuery) ([]models.Blog, error) {
	sortBy, err := repo.ParseSortField(q.SortBy)
	if err != nil {
		return nil, validate.Field("sortBy", "invalid sort field")
	}
	f := repo.BlogFilter{
		State:    models.StatePublished,
		Search:   q.Search,
		SortBy:   sortBy,
		Page:     q.Page,
		PageSize: q.Limit,
	}
	if q.State != "" {
		f.State = models.BlogState(q.State)
		if !f.State.Valid() {
			return nil, validate.Field("state", "must be one of draft, published")
		}
	}
	if f.State == models.StateDraft {
		if viewerID == "" {
			return nil, ErrAccessDenied
		}
		f.AuthorID = viewerID
	}

	blogs, err := s.blogs.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return blogs, s.attachAuthors(ctx, blogs)
}

// Get counts as a read: read_count goes up by one before the blog is returned.
func (s *BlogService) Get(ctx context.Context, id string) (models.Blog, error) {
	b, err := s.blogs.IncrementReadCount(ctx, id)
	if err != nil {
		return models.Blog{}, notFound(err)
	}
	metrics.BlogReads.Inc()
	return s.withAuthor(ctx, b)
}

func (s *BlogService) ListByAuthor(ctx context.Context, userID string) ([]models.Blog, error) {
	blogs, err := s.blogs.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return blogs, s.attachAuthors(ctx, blogs)
}

// ----------------- Helpers -----------------

func (s *BlogService) owned(ctx context.Context, id, userID string) (models.Blog, error) {
	b, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return models.Blog{}, notFound(err)
	}
	if b.AuthorID != userID {
		return models.Blog{}, ErrForbidden
	}
	return b, nil
}

func (s *BlogService) withAuthor(ctx context.Context, b models.Blog) (models.Blog, error) {
	one := []models.Blog{b}
	if err := s.attachAuthors(ctx, one); err != nil {
		return models.Blog{}, err
	}
	return one[0], nil
}

func (s *BlogService) attachAuthors(ctx context.Context, blogs []models.Blog) error {
	if len(blogs) == 0 {
		return nil
	}
	seen := map[string]struct{}{}
	ids := make([]string, 0, len(blogs))
	for _, b := range blogs {
		if _, ok := seen[b.AuthorID]; !ok {
			seen[b.AuthorID] = struct{}{}
			ids = append(ids, b.AuthorID)
		}
	}
	authors, err := s.users.Authors(ctx, ids)
	if err != nil {
		return fmt.Errorf("load authors: %w", err)
	}
	for i := range blogs {
		if a, ok := authors[blogs[i].AuthorID]; ok {
			blogs[i].Author = &a
		}
	}
	return nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func notFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func duplicateTitle(err error) error {
	if errors.Is(err, repo.ErrDuplicate) {
		return fmt.Errorf("%w: title", ErrDuplicate)
	}
	return err
}
