package auth

import (
	"errors"
	"fmt"
	"strings"
)

// Role enumerates the account roles carried inside signed tokens.
type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
)

// ErrUnknownRole indicates a role value outside the supported set.
var ErrUnknownRole = errors.New("auth: unknown role")

// ParseRole validates raw input and returns the matching Role. A missing or
// garbled role is a typed error here rather than a silent empty claim later.
func ParseRole(rawInput string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(rawInput)) {
	case string(RoleStudent):
		return RoleStudent, nil
	case string(RoleTutor):
		return RoleTutor, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, rawInput)
	}
}

// String returns the underlying role value.
func (r Role) String() string {
	return string(r)
}
