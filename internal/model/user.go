package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

const (
	// RoleUser is the base role every authenticated user holds.
	RoleUser = "ROLE_USER"
	// RoleAdmin grants access to privileged operations such as creating users.
	RoleAdmin = "ROLE_ADMIN"
)

// Roles is a set of role tags stored as a JSON array in a single column.
type Roles []string

// Value implements driver.Valuer.
func (r Roles) Value() (driver.Value, error) {
	if r == nil {
		r = Roles{}
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner.
func (r *Roles) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	case nil:
		*r = Roles{}
		return nil
	default:
		return fmt.Errorf("scan roles: unsupported type %T", src)
	}
}

// User represents an authenticated user in the system.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	FirstName    string `json:"first_name" gorm:"size:50;not null"`
	LastName     string `json:"last_name" gorm:"size:100;not null"`
	Username     string `json:"username" gorm:"uniqueIndex;size:150;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Roles        Roles  `json:"roles" gorm:"type:json"`
	CreationMetadata

	// Relations
	Notes []Note `json:"notes,omitempty" gorm:"foreignKey:UserID"`
}

// TableName keeps the table name singular, matching the note FK column.
func (User) TableName() string { return "user" }

// EffectiveRoles returns the stored roles plus the implicit base role,
// deduplicated. Stored data may omit ROLE_USER entirely.
func (u *User) EffectiveRoles() []string {
	seen := map[string]bool{}
	roles := make([]string, 0, len(u.Roles)+1)
	for _, role := range u.Roles {
		if !seen[role] {
			seen[role] = true
			roles = append(roles, role)
		}
	}
	if !seen[RoleUser] {
		roles = append(roles, RoleUser)
	}
	return roles
}
