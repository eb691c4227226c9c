package utils

import "testing"

func TestDialCodeForCountry(t *testing.T) {
	tests := []struct {
		country string
		want    string
	}{
		{"FR", "+33"},
		{"fr", "+33"},
		{"France", "+33"},
		{"  Belgique ", "+32"},
		{"United States", "+1"},
		{"Atlantide", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := DialCodeForCountry(tt.country); got != tt.want {
			t.Errorf("DialCodeForCountry(%q) = %q, attendu %q", tt.country, got, tt.want)
		}
	}
}

func TestIsSuspiciousPostalCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"690003", false},
		{"69 0003", false}, // les espaces ne comptent pas
		{"69003", true},    // 5 caractères : suspect, avertir sans bloquer
		{"", true},
	}

	for _, tt := range tests {
		if got := IsSuspiciousPostalCode(tt.code); got != tt.want {
			t.Errorf("IsSuspiciousPostalCode(%q) = %v, attendu %v", tt.code, got, tt.want)
		}
	}
}

func TestNormalizePostalCode(t *testing.T) {
	if got := NormalizePostalCode(" 69 00 03 "); got != "690003" {
		t.Errorf("NormalizePostalCode = %q", got)
	}
}
