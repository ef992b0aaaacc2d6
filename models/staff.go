package models

import "errors"

// Role is an ordered capability level. Every procedure declares the minimum
// role it requires; comparison goes through HasAtLeast, never string equality.
type Role string

const (
	RoleVisitor    Role = "visitor"
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

var roleLevels = map[Role]int{
	RoleVisitor:    0,
	RoleUser:       1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// ParseRole maps a string claim to a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleLevels[r]; !ok {
		return "", errors.New("invalid role")
	}
	return r, nil
}

// HasAtLeast reports whether r sits at or above min on the capability ladder.
func (r Role) HasAtLeast(min Role) bool {
	return roleLevels[r] >= roleLevels[min]
}

type Staff struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"unique;not null" json:"email"`
	Name         string `json:"name"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"type:VARCHAR(20);not null;default:'user'" json:"role"`
}
