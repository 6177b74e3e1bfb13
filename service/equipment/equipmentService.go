package equipsvc

import (
	"context"
	"database/sql"
	"errors"

	"equiploan/model"
	"equiploan/service/faults"
)

type Repo interface {
	CreateEquipment(ctx context.Context, name, category string) (int64, error)
	List(ctx context.Context) ([]model.Equipment, error)
	ListAvailable(ctx context.Context) ([]model.Equipment, error)
	Detail(ctx context.Context, id int64) (*model.Equipment, error)
}

type Service interface {
	Create(ctx context.Context, name, category string) (int64, error)
	List(ctx context.Context) ([]model.Equipment, error)
	ListAvailable(ctx context.Context) ([]model.Equipment, error)
	Detail(ctx context.Context, id int64) (*model.Equipment, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, name, category string) (int64, error) {
	if name == "" || category == "" {
		return 0, faults.New(faults.Validation, "name and category are required")
	}
	return s.r.CreateEquipment(ctx, name, category)
}

func (s *service) List(ctx context.Context) ([]model.Equipment, error) { return s.r.List(ctx) }

func (s *service) ListAvailable(ctx context.Context) ([]model.Equipment, error) {
	return s.r.ListAvailable(ctx)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Equipment, error) {
	eq, err := s.r.Detail(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, faults.New(faults.NotFound, "equipment not found")
	}
	return eq, err
}
