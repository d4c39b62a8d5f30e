package user

import (
	"time"

	"github.com/google/uuid"
)

var sampleUsers = []struct {
	name   string
	email  string
	role   Role
	status Status
}{
	{"Rina Wulandari", "rina.wulandari@kasir.id", RoleAdmin, StatusActive},
	{"Budi Santoso", "budi.santoso@kasir.id", RoleEditor, StatusActive},
	{"Siti Rahmawati", "siti.rahma@kasir.id", RoleUser, StatusPending},
	{"Agus Pratama", "agus.pratama@kasir.id", RoleUser, StatusActive},
	{"Dewi Lestari", "dewi.lestari@kasir.id", RoleEditor, StatusInactive},
	{"Joko Susilo", "joko.susilo@kasir.id", RoleUser, StatusActive},
}

// SampleUsers returns the demo directory, newest first, nine days apart,
// counting back from now.
func SampleUsers(now time.Time) []*User {
	users := make([]*User, 0, len(sampleUsers))

	for i, s := range sampleUsers {
		id := uuid.New()
		users = append(users, &User{
			ID:        id,
			Name:      s.name,
			Email:     s.email,
			Role:      s.role,
			Status:    s.status,
			Avatar:    avatarURL(id),
			CreatedAt: now.AddDate(0, 0, -i*9),
		})
	}

	return users
}
