// Package models holds the server-side domain types shared by repositories,
// services and transports.
package models

import (
	"fmt"
	"time"
)

// Role names one of the three account partitions.
type Role string

const (
	RoleUser        Role = "user"
	RoleContributor Role = "contributor"
	RoleAdmin       Role = "admin"
)

// AllRoles lists every role, most privileged first.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleContributor, RoleUser}
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleContributor, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts s into a Role, rejecting anything outside the
// three known partitions.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// ContributorStatus is the approval state of a contributor account.
type ContributorStatus string

const (
	StatusPending  ContributorStatus = "pending"
	StatusAccepted ContributorStatus = "accepted"
	StatusDeclined ContributorStatus = "declined"
)

func (s ContributorStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// Account is the part every partition shares.
type Account struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProfileFields are the editable profile attributes of users and contributors.
type ProfileFields struct {
	Photo  string   `json:"photo"`
	Bio    string   `json:"bio"`
	Skills []string `json:"skills"`
}

type User struct {
	Account
	ProfileFields
}

type Contributor struct {
	Account
	ProfileFields
	Status ContributorStatus `json:"status"`
}

type Admin struct {
	Account
}

// Profile is implemented by *User, *Contributor and *Admin only.
type Profile interface {
	Role() Role
	Base() *Account
	profile()
}

func (*User) Role() Role { return RoleUser }

func (u *User) Base() *Account { return &u.Account }

func (*User) profile() {}

func (*Contributor) Role() Role { return RoleContributor }

func (c *Contributor) Base() *Account { return &c.Account }

func (*Contributor) profile() {}

func (*Admin) Role() Role { return RoleAdmin }

func (a *Admin) Base() *Account { return &a.Account }

func (*Admin) profile() {}

// ProfileUpdate carries a partial profile edit. Nil fields are left as they are.
// Photo, Bio and Skills are ignored for admins.
type ProfileUpdate struct {
	Name   *string  `json:"name,omitempty"`
	Photo  *string  `json:"photo,omitempty"`
	Bio    *string  `json:"bio,omitempty"`
	Skills []string `json:"skills,omitempty"`
}

// Identity is an authenticated subject as resolved from the account store.
type Identity struct {
	SubjectID string
	Role      Role
	Profile   Profile
}

// Allowed reports whether the identity's role is in roles.
func (i *Identity) Allowed(roles ...Role) bool {
	if i == nil {
		return false
	}
	for _, r := range roles {
		if r == i.Role {
			return true
		}
	}
	return false
}
