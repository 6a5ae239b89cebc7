package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid simple", "svc-1", false},
		{"valid with dots", "kvm.node-7_a", false},
		{"empty", "", true},
		{"leading dash", "-svc", true},
		{"invalid characters", "svc/../1", true},
		{"spaces", "svc 1", true},
		{"too long", strings.Repeat("a", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ServiceID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOSID(t *testing.T) {
	assert.NoError(t, OSID("debian-12"))
	assert.Error(t, OSID(""))
	assert.Error(t, OSID("debian 12"))
}

func TestReinstallPassword(t *testing.T) {
	assert.NoError(t, ReinstallPassword("long-enough"))
	assert.Error(t, ReinstallPassword(""))
	assert.Error(t, ReinstallPassword("   "))
	assert.Error(t, ReinstallPassword("seven77"))
	assert.NoError(t, ReinstallPassword("eight888"))
}

func TestReinstallPasswordNotLeaked(t *testing.T) {
	err := ReinstallPassword("hunter2")
	assert.Error(t, err)
	assert.NotContains(t, err.Error(), "hunter2")
}

func TestUserID(t *testing.T) {
	assert.NoError(t, UserID("user-1"))
	assert.Error(t, UserID(""))
	assert.Error(t, UserID("   "))
}
