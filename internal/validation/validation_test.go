package validation

import "testing"

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"valid", "auth-service", false},
		{"valid single char", "a", false},
		{"valid with digits", "auth-2", false},
		{"valid at max length", repeat("a", 100), false},
		{"empty", "", true},
		{"too long", repeat("a", 101), true},
		{"uppercase", "Auth-Service", true},
		{"leading hyphen", "-auth", true},
		{"trailing hyphen", "auth-", true},
		{"double hyphen", "auth--service", true},
		{"underscore", "auth_service", true},
		{"space", "auth service", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSlug(%q) error = %v, wantErr %v", tt.slug, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"valid", "Fix the login bug", false},
		{"valid single char", "x", false},
		{"valid at max length", repeat("x", 500), false},
		{"empty", "", true},
		{"too long", repeat("x", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTitle(%q) error = %v, wantErr %v", tt.title, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantErr     bool
	}{
		{"empty is valid", "", false},
		{"valid at max length", repeat("x", 5000), false},
		{"too long", repeat("x", 5001), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDescription(tt.description)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDescription error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func repeat(s string, n int) string {
	out := make([]byte, 0, n*len(s))
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
