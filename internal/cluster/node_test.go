package cluster

import (
	"errors"
	"testing"
)

func TestParseRoles(t *testing.T) {
	tests := []struct {
		input    string
		expected []Role
	}{
		{"all", []Role{RoleAll}},
		{"ingester", []Role{RoleIngester}},
		{"ingester,querier", []Role{RoleIngester, RoleQuerier}},
		{" Ingester , COMPACTOR ", []Role{RoleIngester, RoleCompactor}},
		{"router,,querier", []Role{RoleRouter, RoleQuerier}},
	}

	for _, tt := range tests {
		roles, err := ParseRoles(tt.input)
		if err != nil {
			t.Errorf("ParseRoles(%q) failed: %v", tt.input, err)
			continue
		}
		if len(roles) != len(tt.expected) {
			t.Errorf("ParseRoles(%q) = %v, want %v", tt.input, roles, tt.expected)
			continue
		}
		for i := range roles {
			if roles[i] != tt.expected[i] {
				t.Errorf("ParseRoles(%q)[%d] = %s, want %s", tt.input, i, roles[i], tt.expected[i])
			}
		}
	}
}

func TestParseRolesUnknown(t *testing.T) {
	_, err := ParseRoles("ingester,flarble")
	if err == nil {
		t.Fatal("ParseRoles should fail for unknown role")
	}
	if !errors.Is(err, ErrUnknownRole) {
		t.Errorf("expected ErrUnknownRole, got: %v", err)
	}
}

func TestParseRolesEmpty(t *testing.T) {
	for _, input := range []string{"", " ", ",,"} {
		if _, err := ParseRoles(input); err == nil {
			t.Errorf("ParseRoles(%q) should fail", input)
		}
	}
}

func TestNodeHasRole(t *testing.T) {
	node, err := NewNode("ingester,querier")
	if err != nil {
		t.Fatalf("NewNode failed: %v", err)
	}

	if !node.HasRole(RoleIngester) {
		t.Error("node should hold ingester role")
	}
	if !node.HasRole(RoleQuerier) {
		t.Error("node should hold querier role")
	}
	if node.HasRole(RoleCompactor) {
		t.Error("node should not hold compactor role")
	}
}

func TestNodeHasRoleAll(t *testing.T) {
	node, err := NewNode("all")
	if err != nil {
		t.Fatalf("NewNode failed: %v", err)
	}

	for _, role := range []Role{RoleIngester, RoleQuerier, RoleCompactor, RoleRouter} {
		if !node.HasRole(role) {
			t.Errorf("node with RoleAll should hold %s", role)
		}
	}
}
