package utils

import (
	"testing"
)

func TestEnsureSuffix(t *testing.T) {
	tests := []struct {
		input    string
		suffix   string
		expected string
	}{
		{"http://asgard", "/", "http://asgard/"},
		{"http://asgard/", "/", "http://asgard/"},
		{"", "/", "/"},
		{"repo.git", ".git", "repo.git"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := EnsureSuffix(tt.input, tt.suffix)
			if got != tt.expected {
				t.Errorf("EnsureSuffix(%q, %q) = %q; want %q", tt.input, tt.suffix, got, tt.expected)
			}
		})
	}
}

func TestEscapeQueryComponent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"abc123", "abc123"},
		{`1\2/3`, "1%5C2%2F3"},
		{"a&b c", "a%26b%20c"},
		{"a+b", "a%2Bb"},
		{"x=y?z", "x%3Dy%3Fz"},
		{"!'()*", "%21%27%28%29%2A"},
		{"-_.~", "-_.~"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := EscapeQueryComponent(tt.input)
			if got != tt.expected {
				t.Errorf("EscapeQueryComponent(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}
