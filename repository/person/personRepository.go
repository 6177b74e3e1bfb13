package personrepo

import (
	"context"
	"database/sql"

	"equiploan/model"
)

type Repo interface {
	Create(ctx context.Context, p *model.Person) error
	ByEmail(ctx context.Context, email string) (*model.Person, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, p *model.Person) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO persons(first_name, last_name, email, role, password_hash)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at`,
		p.FirstName, p.LastName, p.Email, p.Role, p.PasswordHash,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.Person, error) {
	p := &model.Person{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, first_name, last_name, email, role, password_hash, created_at
        FROM persons
        WHERE lower(email) = lower($1)`,
		email,
	).Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Role, &p.PasswordHash, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}
