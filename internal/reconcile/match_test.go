package reconcile_test

import (
	"testing"

	"osteojob/migration-service/internal/reconcile"
)

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Osteopath Wanted", "osteopath wanted"},
		{"  Osteopath   Wanted  ", "osteopath wanted"},
		{"osteopath\twanted", "osteopath wanted"},
		{"OSTEOPATH WANTED", "osteopath wanted"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := reconcile.NormalizeTitle(tc.in); got != tc.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"JOHN@EXAMPLE.com", "john@example.com"},
		{"  john@example.com  ", "john@example.com"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := reconcile.NormalizeEmail(tc.in); got != tc.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
