package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/baharkarakas/blog-backend/internal/models"
	"github.com/baharkarakas/blog-backend/internal/repository"
)

type usersRepo struct{ db DBTX }

func NewUsers(db DBTX) repository.Users {
	return &usersRepo{db: db}
}

const userColumns = `id::text, first_name, last_name, email, password_hash, created_at`

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO users(id, first_name, last_name, email, password_hash)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING `+userColumns,
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return models.User{}, mapErr("create user", err)
	}
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.User{}, repository.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *usersRepo) getOne(ctx context.Context, q string, arg string) (models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, q, arg).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return models.User{}, mapErr("get user", err)
	}
	return u, nil
}

func (r *usersRepo) Authors(ctx context.Context, ids []string) (map[string]models.Author, error) {
	out := make(map[string]models.Author, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT id::text, first_name, last_name, email FROM users WHERE id::text = ANY($1)`, ids)
	if err != nil {
		return nil, mapErr("list authors", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email); err != nil {
			return nil, mapErr("scan author", err)
		}
		out[a.ID] = a
	}
	return out, mapErr("list authors", rows.Err())
}
