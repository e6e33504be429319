package core

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// ParseRole normalises a stored or submitted role value. Only the two known
// roles are accepted; anything else must be rejected by the caller even when
// credentials are otherwise valid.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleEmployee:
		return RoleEmployee, true
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}
