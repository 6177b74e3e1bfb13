package equiprepo

import (
	"context"
	"database/sql"

	"equiploan/model"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) CreateEquipment(ctx context.Context, name, category string) (int64, error) {
	const q = `
		INSERT INTO equipment (name, category, status)
		VALUES ($1, $2, 'AVAILABLE')
		RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, name, category).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repo) List(ctx context.Context) ([]model.Equipment, error) {
	return r.list(ctx, `SELECT id, name, category, status FROM equipment ORDER BY id`)
}

func (r *Repo) ListAvailable(ctx context.Context) ([]model.Equipment, error) {
	return r.list(ctx, `SELECT id, name, category, status FROM equipment WHERE status = 'AVAILABLE' ORDER BY id`)
}

func (r *Repo) Detail(ctx context.Context, id int64) (*model.Equipment, error) {
	eq := &model.Equipment{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, category, status FROM equipment WHERE id = $1`, id,
	).Scan(&eq.ID, &eq.Name, &eq.Category, &eq.Status)
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *Repo) list(ctx context.Context, q string) ([]model.Equipment, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Equipment
	for rows.Next() {
		var eq model.Equipment
		if err := rows.Scan(&eq.ID, &eq.Name, &eq.Category, &eq.Status); err != nil {
			return nil, err
		}
		out = append(out, eq)
	}
	return out, rows.Err()
}
