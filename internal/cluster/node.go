// Package cluster models the role assignment of a loghive node.
package cluster

import (
	"errors"
	"fmt"
	"strings"
)

// Role identifies a capability a node can hold.
type Role string

const (
	RoleAll       Role = "all"
	RoleIngester  Role = "ingester"
	RoleQuerier   Role = "querier"
	RoleCompactor Role = "compactor"
	RoleRouter    Role = "router"
)

// ErrUnknownRole is returned when a role string is not recognized.
var ErrUnknownRole = errors.New("unknown node role")

// ParseRoles parses a comma-separated role list such as "ingester,querier".
// Role names are case-insensitive; surrounding whitespace is ignored.
func ParseRoles(s string) ([]Role, error) {
	var roles []Role
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		switch Role(part) {
		case RoleAll, RoleIngester, RoleQuerier, RoleCompactor, RoleRouter:
			roles = append(roles, Role(part))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, part)
		}
	}
	if len(roles) == 0 {
		return nil, errors.New("at least one node role must be configured")
	}
	return roles, nil
}

// Node describes the local node's role assignment.
type Node struct {
	roles []Role
}

// NewNode creates a node from a comma-separated role list.
func NewNode(roles string) (Node, error) {
	parsed, err := ParseRoles(roles)
	if err != nil {
		return Node{}, err
	}
	return Node{roles: parsed}, nil
}

// HasRole reports whether the node holds the given role.
// A node assigned RoleAll holds every role.
func (n Node) HasRole(role Role) bool {
	for _, r := range n.roles {
		if r == role || r == RoleAll {
			return true
		}
	}
	return false
}

// Roles returns the node's assigned roles.
func (n Node) Roles() []Role {
	return n.roles
}
