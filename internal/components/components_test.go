package components

import (
	"testing"
)

func TestGetComponentByName(t *testing.T) {
	tests := []struct {
		name      string
		component string
		wantErr   bool
	}{
		{"audit", "audit", false},
		{"scanning", "scanning", false},
		{"catalog", "catalog", false},
		{"account", "account", false},
		{"case insensitive", "AUDIT", false},
		{"whitespace trimmed", "  catalog  ", false},
		{"unknown", "detectors", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetComponentByName(tt.component)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetComponentByName(%q) error = %v, wantErr %v", tt.component, err, tt.wantErr)
			}
		})
	}
}

func TestValidateComponents(t *testing.T) {
	tests := []struct {
		name        string
		components  []string
		wantValid   int
		wantInvalid int
		wantErr     bool
	}{
		{"empty enables all", nil, 0, 0, false},
		{"all valid", []string{"audit", "catalog"}, 2, 0, false},
		{"mixed", []string{"audit", "bogus"}, 1, 1, false},
		{"all invalid", []string{"bogus", "nope"}, 0, 2, true},
		{"only blanks", []string{" ", ""}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, invalid, err := ValidateComponents(tt.components)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateComponents(%v) error = %v, wantErr %v", tt.components, err, tt.wantErr)
			}
			if len(valid) != tt.wantValid {
				t.Errorf("valid = %v, want %d entries", valid, tt.wantValid)
			}
			if len(invalid) != tt.wantInvalid {
				t.Errorf("invalid = %v, want %d entries", invalid, tt.wantInvalid)
			}
		})
	}
}
