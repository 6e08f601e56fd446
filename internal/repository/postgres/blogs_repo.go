package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/baharkarakas/blog-backend/internal/models"
	"github.com/baharkarakas/blog-backend/internal/repository"
)

type blogsRepo struct{ db DBTX }

func NewBlogs(db DBTX) repository.Blogs {
	return &blogsRepo{db: db}
}

const blogColumns = `b.id::text, b.title, b.description, b.body, b.tags, b.state, b.read_count, b.reading_time, b.author_id::text, b.created_at`

func scanBlog(row pgx.Row) (models.Blog, error) {
	var (
		b     models.Blog
		state string
	)
	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.Body, &b.Tags, &state,
		&b.ReadCount, &b.ReadingTime, &b.AuthorID, &b.Timestamp)
	b.State = models.BlogState(state)
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return b, err
}

func (r *blogsRepo) Create(ctx context.Context, b models.Blog) (models.Blog, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	out, err := scanBlog(r.db.QueryRow(ctx,
		`INSERT INTO blogs AS b (id, title, description, body, tags, state, read_count, reading_time, author_id, created_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING `+blogColumns,
		b.ID, b.Title, b.Description, b.Body, b.Tags, string(b.State), b.ReadCount, b.ReadingTime, b.AuthorID, b.Timestamp,
	))
	if err != nil {
		return models.Blog{}, mapErr("create blog", err)
	}
	return out, nil
}

func (r *blogsRepo) GetByID(ctx context.Context, id string) (models.Blog, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Blog{}, repository.ErrNotFound
	}
	b, err := scanBlog(r.db.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs b WHERE b.id=$1`, id))
	if err != nil {
		return models.Blog{}, mapErr("get blog", err)
	}
	return b, nil
}

func (r *blogsRepo) List(ctx context.Context, f repository.BlogFilter) ([]models.Blog, error) {
	q, args := buildListQuery(f.Normalize())
	return r.query(ctx, "list blogs", q, args...)
}

func (r *blogsRepo) ListByAuthor(ctx context.Context, authorID string) ([]models.Blog, error) {
	if _, err := uuid.Parse(authorID); err != nil {
		return []models.Blog{}, nil
	}
	return r.query(ctx, "list author blogs",
		`SELECT `+blogColumns+` FROM blogs b WHERE b.author_id=$1 ORDER BY b.created_at DESC, b.id`, authorID)
}

func (r *blogsRepo) query(ctx context.Context, op, q string, args ...any) ([]models.Blog, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	out := []models.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, mapErr(op, err)
		}
		out = append(out, b)
	}
	return out, mapErr(op, rows.Err())
}

func (r *blogsRepo) Update(ctx context.Context, b models.Blog) (models.Blog, error) {
	if _, err := uuid.Parse(b.ID); err != nil {
		return models.Blog{}, repository.ErrNotFound
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	out, err := scanBlog(r.db.QueryRow(ctx,
		`UPDATE blogs AS b
		    SET title=$2, description=$3, body=$4, tags=$5, state=$6, reading_time=$7
		  WHERE b.id=$1
		  RETURNING `+blogColumns,
		b.ID, b.Title, b.Description, b.Body, b.Tags, string(b.State), b.ReadingTime,
	))
	if err != nil {
		return models.Blog{}, mapErr("update blog", err)
	}
	return out, nil
}

func (r *blogsRepo) IncrementReadCount(ctx context.Context, id string) (models.Blog, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Blog{}, repository.ErrNotFound
	}
	out, err := scanBlog(r.db.QueryRow(ctx,
		`UPDATE blogs AS b
		    SET read_count = b.read_count + 1
		  WHERE b.id=$1
		  RETURNING `+blogColumns,
		id,
	))
	if err != nil {
		return models.Blog{}, mapErr("increment read count", err)
	}
	return out, nil
}

func (r *blogsRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM blogs WHERE id=$1`, id)
	if err != nil {
		return mapErr("delete blog", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var sortColumns = map[repository.SortField]string{
	"":                         "b.created_at",
	repository.SortTimestamp:   "b.created_at",
	repository.SortReadCount:   "b.read_count",
	repository.SortReadingTime: "b.reading_time",
}

// buildListQuery expects a normalized filter with a valid SortBy.
func buildListQuery(f repository.BlogFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.State != "" {
		where = append(where, "b.state = "+arg(string(f.State)))
	}
	if f.AuthorID != "" {
		where = append(where, "b.author_id::text = "+arg(f.AuthorID))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg("%" + escapeLike(s) + "%")
		where = append(where, fmt.Sprintf(`(b.title ILIKE %[1]s
		  OR EXISTS (SELECT 1 FROM unnest(b.tags) tag WHERE tag ILIKE %[1]s)
		  OR EXISTS (SELECT 1 FROM users u WHERE u.id = b.author_id AND (u.first_name ILIKE %[1]s OR u.last_name ILIKE %[1]s)))`, p))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + blogColumns + ` FROM blogs b`)
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	col := sortColumns[f.SortBy]
	sb.WriteString(" ORDER BY " + col + " DESC")
	if col != "b.created_at" {
		sb.WriteString(", b.created_at DESC")
	}
	sb.WriteString(", b.id")
	sb.WriteString(" LIMIT " + arg(f.PageSize) + " OFFSET " + arg(f.Offset()))
	return sb.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
