package gmail_tools

import (
	"reflect"
	"testing"
)

func TestSplitEmailAddresses(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "single address",
			input: "user@example.com",
			want:  []string{"user@example.com"},
		},
		{
			name:  "multiple addresses",
			input: "a@example.com, b@example.com,c@example.com",
			want:  []string{"a@example.com", "b@example.com", "c@example.com"},
		},
		{
			name:  "trailing comma and whitespace",
			input: " a@example.com , ",
			want:  []string{"a@example.com"},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitEmailAddresses(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitEmailAddresses(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
