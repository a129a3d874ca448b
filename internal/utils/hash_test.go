package utils

import "testing"

func TestHashPasswordIsDeterministic(t *testing.T) {
	a := HashPassword("admin123")
	b := HashPassword("admin123")
	if a != b {
		t.Fatalf("hash not deterministic: %q vs %q", a, b)
	}
	if a == "admin123" || a == "" {
		t.Fatalf("hash looks wrong: %q", a)
	}
}

func TestVerifyPassword(t *testing.T) {
	stored := HashPassword("admin123")

	if !VerifyPassword("admin123", stored) {
		t.Fatalf("correct password rejected")
	}
	if VerifyPassword("admin124", stored) {
		t.Fatalf("wrong password accepted")
	}
	if VerifyPassword("", stored) {
		t.Fatalf("empty password accepted")
	}
}
