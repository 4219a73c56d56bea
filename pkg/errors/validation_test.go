package errors

import (
	"strings"
	"testing"
)

func TestValidateFamily(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Inter", false},
		{"valid with space", "Noto Sans", false},
		{"valid display", "InterDisplay", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"single quote", "Inter'", true},
		{"double quote", `"Inter"`, true},
		{"backslash", `Inter\`, true},
		{"newline", "Inter\nX", true},
		{"null byte", "Inter\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFamily(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFamily(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateFamily(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	if err := ValidateKey("inter_Inter-Bold"); err != nil {
		t.Errorf("ValidateKey() unexpected error: %v", err)
	}
	if err := ValidateKey(""); err == nil {
		t.Error("ValidateKey(\"\") should fail")
	}
	if err := ValidateKey("it's"); err == nil {
		t.Error("ValidateKey with quote should fail")
	}
}

func TestValidateRelativePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid file", "Inter-Bold.woff2", false},
		{"valid nested", "inter/Inter-Bold.woff2", false},
		{"valid dots in name", "inter/v4..0/Inter.woff2", false},

		{"empty", "", true},
		{"absolute", "/fonts/Inter.woff2", true},
		{"traversal", "../Inter.woff2", true},
		{"traversal nested", "a/../../Inter.woff2", true},
		{"backslash", "inter\\Inter.woff2", true},
		{"control char", "Inter\x01.woff2", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRelativePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRelativePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
