package profile

import (
	"database/sql"

	"github.com/google/uuid"
)

// UserType represents the campus affiliation of a profile
type UserType string

const (
	UserTypeStudent UserType = "student"
	UserTypeFaculty UserType = "faculty"
	UserTypeAlumni  UserType = "alumni"
)

// Profile represents a user profile summary (matches profiles table)
type Profile struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	DisplayName sql.NullString `db:"display_name" json:"display_name,omitempty"`
	Username    string         `db:"username" json:"username"`
	AvatarURL   sql.NullString `db:"avatar_url" json:"avatar_url,omitempty"`
	Role        sql.NullString `db:"role" json:"role,omitempty"`
	UserType    sql.NullString `db:"user_type" json:"user_type,omitempty"`
}
