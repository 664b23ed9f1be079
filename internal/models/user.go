package models

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a document in the users collection.
type User struct {
	ID        primitive.ObjectID `json:"id"                  bson:"_id,omitempty"`
	Username  string             `json:"username"            bson:"username"`
	FirstName string             `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName  string             `json:"lastName,omitempty"  bson:"lastName,omitempty"`
	Email     string             `json:"email"               bson:"email"`
	Password  string             `json:"-"                   bson:"password"` // bcrypt hash, never serialized
	Role      string             `json:"role"                bson:"role"`
}

var emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ValidEmail reports whether addr has an acceptable shape.
func ValidEmail(addr string) bool {
	return emailRe.MatchString(addr)
}

// FormatNames normalizes first name to title case and last name to upper
// case before the record is persisted.
func (u *User) FormatNames() {
	if u.FirstName != "" {
		first, size := utf8.DecodeRuneInString(u.FirstName)
		u.FirstName = string(unicode.ToUpper(first)) + strings.ToLower(u.FirstName[size:])
	}
	if u.LastName != "" {
		u.LastName = strings.ToUpper(u.LastName)
	}
}

// RegisterRequest is the JSON body for POST /auth/register and POST /users.
// Any client-supplied role is ignored.
type RegisterRequest struct {
	Username  string `json:"username"  validate:"required,min=3,max=30"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"     validate:"required"`
	Password  string `json:"password"  validate:"required"`
}

// LoginRequest is the JSON body for POST /auth/login. Either email or
// username identifies the account; an identifier containing "@" is treated
// as an email.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" validate:"required"`
}

// UserPatch carries the updatable account fields for PUT /users/{id}.
// A nil field is left untouched.
type UserPatch struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}
