package authsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"equiploan/model"
	personrepo "equiploan/repository/person"
	"equiploan/util/hash"
)

type mockRepo struct {
	byEmailFn func(ctx context.Context, email string) (*model.Person, error)
	createFn  func(ctx context.Context, p *model.Person) error
}

var _ personrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.Person, error) {
	if m.byEmailFn == nil {
		return nil, nil
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) Create(ctx context.Context, p *model.Person) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, p)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()

	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, p *model.Person) error {
			p.ID = 42
			return nil
		},
	}
	svc := New(m, "test-secret")

	req := model.RegisterReq{
		FirstName: "Ana",
		LastName:  "Silva",
		Email:     "USER@Example.COM",
		Password:  "supersecret",
	}

	p, tok, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(42), p.ID)
	require.Equal(t, "user@example.com", p.Email)
	require.Equal(t, model.RoleRequester, p.Role)
	require.NotEmpty(t, p.PasswordHash)
}

func TestRegister_ApproverRole(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret")

	p, _, err := svc.Register(ctx, model.RegisterReq{
		FirstName: "Ana",
		LastName:  "Silva",
		Email:     "boss@example.com",
		Role:      "approver",
		Password:  "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, model.RoleApprover, p.Role)
}

func TestRegister_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Email:    " ",
		Password: "123",
	})
	require.ErrorIs(t, err, ErrBadInput)
}

func TestRegister_EmailTaken(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, p *model.Person) error {
			return &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "persons_email_key",
			}
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Email:    "taken@example.com",
		Password: "123456",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_CreateError(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, p *model.Person) error {
			return errors.New("db down")
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Email:    "ok@example.com",
		Password: "123456",
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.Person, error) {
			return &model.Person{
				ID:           7,
				Email:        "user@example.com",
				PasswordHash: hashed,
				Role:         model.RoleRequester,
			}, nil
		},
	}
	svc := New(m, "test-secret")

	p, tok, err := svc.Login(ctx, model.LoginReq{
		Email:    "User@Example.com",
		Password: pw,
	})
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(7), p.ID)
}

func TestLogin_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{
		Email:    " ",
		Password: "",
	})
	require.ErrorIs(t, err, ErrBadInput)
}

func TestLogin_UserNotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{
		Email:    "missing@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()

	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.Person, error) {
			return &model.Person{
				ID:           101,
				Email:        "user@example.com",
				PasswordHash: hashed,
				Role:         model.RoleRequester,
			}, nil
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, ErrInvalidCreds)
}
