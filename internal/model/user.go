// Package model defines domain entities for the application.
package model

import "strconv"

// User is a registered person. Email is unique across all users.
type User struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement;index" json:"id"`
	Name  string `gorm:"column:name;index" json:"name"`
	Email string `gorm:"column:email;uniqueIndex" json:"email"`
}

// TableName pins the table name used by the ORM.
func (User) TableName() string {
	return "users"
}

// CachedUser is the flattened form of a User stored in the cache.
// All fields are strings to match Redis hash storage.
type CachedUser struct {
	ID    string
	Name  string
	Email string
}

// ToCachedUser converts a User to its cached form.
func (u *User) ToCachedUser() *CachedUser {
	return &CachedUser{
		ID:    strconv.FormatInt(u.ID, 10),
		Name:  u.Name,
		Email: u.Email,
	}
}

// ToUser converts a cached entry back into a User.
// Returns false if the entry is incomplete or the id is malformed.
func (c *CachedUser) ToUser() (*User, bool) {
	if c == nil || c.ID == "" {
		return nil, false
	}

	id, err := strconv.ParseInt(c.ID, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}

	return &User{ID: id, Name: c.Name, Email: c.Email}, true
}

// UserPatch carries a partial update. Nil fields leave the stored value unchanged.
type UserPatch struct {
	Name  *string
	Email *string
}

// Apply overwrites the fields of u that are set in the patch.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil
}
