package entity

import (
	"errors"
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"1", false},
		{"18446744073709551615", false},
		{"", true},
		{"abc", true},
		{"-1", true},
		{"1.5", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := ParseID(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("ParseID(%q) error = %v, want ErrInvalid", tt.input, err)
				}
				return
			}
			if err != nil || id.String() != tt.input {
				t.Errorf("ParseID(%q) = %q, %v", tt.input, id, err)
			}
		})
	}
}

func TestNewID(t *testing.T) {
	if got := NewID(uint(42)); got != "42" {
		t.Errorf("NewID(42) = %q", got)
	}
	if got := NewID("7").Uint(); got != 7 {
		t.Errorf("NewID(\"7\").Uint() = %d", got)
	}
}
