package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Role
		ok       bool
	}{
		{name: "Admin", input: "admin", expected: RoleAdmin, ok: true},
		{name: "Employee", input: "employee", expected: RoleEmployee, ok: true},
		{name: "Mixed case", input: "Admin", expected: RoleAdmin, ok: true},
		{name: "Padded", input: "  employee  ", expected: RoleEmployee, ok: true},
		{name: "Unknown", input: "superuser", ok: false},
		{name: "Empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRole(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
