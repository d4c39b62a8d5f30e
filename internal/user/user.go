package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrInvalidUser = errors.New("invalid user")
)

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleUser   Role = "User"
)

var Roles = []Role{RoleAdmin, RoleEditor, RoleUser}

func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r, nil
		}
	}

	return "", fmt.Errorf("unknown role %q", s)
}

// Status is whether the account may sign in.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusPending  Status = "Pending"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusPending}

func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}

	return "", fmt.Errorf("unknown status %q", s)
}

type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      Role
	Status    Status
	Avatar    string
	CreatedAt time.Time
}

func avatarURL(id uuid.UUID) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/100/100", id)
}
