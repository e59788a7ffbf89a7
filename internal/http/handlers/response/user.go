package response

import (
	"time"

	"authflow/internal/core/domain/user"
)

type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	CreatedAt   time.Time  `json:"createdAt"`
	ActivatedAt *time.Time `json:"activatedAt,omitempty"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Email = string(du.Email)
	u.Name = string(du.Name)
	u.CreatedAt = du.CreatedAt
	if du.ActivatedAt.IsPresent {
		activatedAt := du.ActivatedAt.Value
		u.ActivatedAt = &activatedAt
	}
}
