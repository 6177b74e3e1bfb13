package authsvc

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"equiploan/model"
	personrepo "equiploan/repository/person"
	"equiploan/util/hash"
	jwtutil "equiploan/util/jwt"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrBadInput     = errors.New("bad input")
	ErrInvalidCreds = errors.New("invalid credentials")
)

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.Person, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.Person, string, error)
}

type service struct {
	pr     personrepo.Repo
	secret string
}

func New(pr personrepo.Repo, secret string) Service {
	return &service{pr: pr, secret: secret}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.Person, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 6 {
		return nil, "", ErrBadInput
	}
	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleRequester
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	p := &model.Person{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		Role:         role,
		PasswordHash: hashed,
	}
	if err := s.pr.Create(ctx, p); err != nil {
		if isDuplicateEmail(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, p.ID, string(p.Role), 24)
	if err != nil {
		return nil, "", err
	}
	return p, token, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.Person, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, "", ErrBadInput
	}
	p, err := s.pr.ByEmail(ctx, email)
	if err != nil || p == nil {
		return nil, "", ErrInvalidCreds
	}
	if !hash.Check(p.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCreds
	}
	token, err := jwtutil.Issue(s.secret, p.ID, string(p.Role), 24)
	if err != nil {
		return nil, "", err
	}
	return p, token, nil
}

func isDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		strings.Contains(strings.ToLower(pgErr.ConstraintName), "email")
}
