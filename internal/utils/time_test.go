package utils

import "testing"

func TestAddDays(t *testing.T) {
	cases := []struct {
		in   string
		days int
		want string
	}{
		{"2026-01-15", 30, "2026-02-14"},
		{"2026-12-31", 1, "2027-01-01"},
		{"2026-03-01", -1, "2026-02-28"},
	}
	for _, tc := range cases {
		if got := AddDays(tc.in, tc.days); got != tc.want {
			t.Fatalf("AddDays(%s, %d) = %s, want %s", tc.in, tc.days, got, tc.want)
		}
	}
}

func TestCompactDate(t *testing.T) {
	if got := CompactDate("2026-01-15"); got != "20260115" {
		t.Fatalf("CompactDate = %s", got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "15-01-2026", "2026/01/15", "yesterday"} {
		if _, err := ParseDate(in); err == nil {
			t.Fatalf("ParseDate(%q) should fail", in)
		}
	}
}
