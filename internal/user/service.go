package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kasir/internal/notify"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateUser(ctx context.Context, u *User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	// ListUsers returns users newest first, keeping those whose name or
	// email contains query, ignoring case. An empty query keeps everyone.
	ListUsers(ctx context.Context, query string) ([]*User, error)
	CountUsers(ctx context.Context) (int, error)
}

type Service struct {
	repo     Repository
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier notify.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier, now: time.Now}
}

type Params struct {
	Name   string
	Email  string
	Role   Role
	Status Status
}

func (p Params) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidUser)
	}

	if !strings.Contains(p.Email, "@") {
		return fmt.Errorf("%w: email %q", ErrInvalidUser, p.Email)
	}

	if _, err := ParseRole(string(p.Role)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUser, err)
	}

	if _, err := ParseStatus(string(p.Status)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUser, err)
	}

	return nil
}

func (s *Service) List(ctx context.Context, query string) ([]*User, error) {
	return s.repo.ListUsers(ctx, strings.TrimSpace(query))
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.CountUsers(ctx)
}

func (s *Service) Create(ctx context.Context, params Params) (*User, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	u := &User{
		ID:        id,
		Name:      strings.TrimSpace(params.Name),
		Email:     strings.TrimSpace(params.Email),
		Role:      params.Role,
		Status:    params.Status,
		Avatar:    avatarURL(id),
		CreatedAt: s.now(),
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.notify("New user added successfully", notify.SeveritySuccess)

	return u, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*User, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Name = strings.TrimSpace(params.Name)
	u.Email = strings.TrimSpace(params.Email)
	u.Role = params.Role
	u.Status = params.Status

	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	s.notify("User data updated successfully", notify.SeverityInfo)

	return u, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.notify("User removed from system", notify.SeverityError)

	return nil
}

func (s *Service) notify(msg string, sev notify.Severity) {
	if s.notifier != nil {
		s.notifier.Notify(msg, sev)
	}
}
