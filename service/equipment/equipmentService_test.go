package equipsvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"equiploan/model"
	equipsvc "equiploan/service/equipment"
	"equiploan/service/faults"
)

type repoMock struct {
	createFn    func(ctx context.Context, name, category string) (int64, error)
	listFn      func(ctx context.Context) ([]model.Equipment, error)
	availableFn func(ctx context.Context) ([]model.Equipment, error)
	detailFn    func(ctx context.Context, id int64) (*model.Equipment, error)
}

func (m *repoMock) CreateEquipment(ctx context.Context, name, category string) (int64, error) {
	return m.createFn(ctx, name, category)
}
func (m *repoMock) List(ctx context.Context) ([]model.Equipment, error) { return m.listFn(ctx) }
func (m *repoMock) ListAvailable(ctx context.Context) ([]model.Equipment, error) {
	return m.availableFn(ctx)
}
func (m *repoMock) Detail(ctx context.Context, id int64) (*model.Equipment, error) {
	return m.detailFn(ctx, id)
}

func TestCreate_Validation(t *testing.T) {
	s := equipsvc.New(&repoMock{})
	if _, err := s.Create(context.Background(), "", "Camera"); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := s.Create(context.Background(), "Canon R5", ""); err == nil {
		t.Fatal("expected error for empty category")
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, name, category string) (int64, error) {
			if name != "Canon R5" || category != "Camera" {
				return 0, errors.New("bad args")
			}
			return 42, nil
		},
	}
	s := equipsvc.New(m)
	id, err := s.Create(context.Background(), "Canon R5", "Camera")
	if err != nil || id != 42 {
		t.Fatalf("got id=%v err=%v; want 42 nil", id, err)
	}
}

func TestDetail_NotFound(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*model.Equipment, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := equipsvc.New(m)
	_, err := s.Detail(context.Background(), 99)
	if faults.CodeOf(err) != faults.NotFound {
		t.Fatalf("got %v; want NOT_FOUND", err)
	}
}

func TestPassThroughs(t *testing.T) {
	m := &repoMock{
		listFn:      func(ctx context.Context) ([]model.Equipment, error) { return nil, nil },
		availableFn: func(ctx context.Context) ([]model.Equipment, error) { return nil, nil },
	}
	s := equipsvc.New(m)

	if _, err := s.List(context.Background()); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if _, err := s.ListAvailable(context.Background()); err != nil {
		t.Fatalf("ListAvailable error: %v", err)
	}
}
