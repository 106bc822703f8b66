package common

import (
	"strings"
	"testing"
)

func TestGetAccountFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "explicit account",
			args: map[string]interface{}{"account": "work"},
			want: "work",
		},
		{
			name: "empty account falls back",
			args: map[string]interface{}{"account": ""},
			want: "default",
		},
		{
			name: "missing account falls back",
			args: map[string]interface{}{},
			want: "default",
		},
		{
			name: "non-string account falls back",
			args: map[string]interface{}{"account": 42},
			want: "default",
		},
		{
			name: "nil args",
			args: nil,
			want: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetAccountFromArgs(tt.args); got != tt.want {
				t.Errorf("GetAccountFromArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthRequiredMessage(t *testing.T) {
	msg := AuthRequiredMessage("work")

	for _, want := range []string{"work", "accounts.google.com", "google_save_auth_code"} {
		if !strings.Contains(msg, want) {
			t.Errorf("AuthRequiredMessage() missing %q:\n%s", want, msg)
		}
	}
}

func TestAuthRequiredMessageInvalidAccount(t *testing.T) {
	msg := AuthRequiredMessage("../evil")
	if !strings.Contains(msg, "Invalid account") {
		t.Errorf("AuthRequiredMessage() should reject invalid account names, got:\n%s", msg)
	}
}
