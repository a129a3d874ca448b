package config

import (
	"strings"
	"testing"
)

func TestWithFoundRowsSetsFlag(t *testing.T) {
	got := withFoundRows("user:pass@tcp(localhost:3306)/alhudha?parseTime=true")
	if !strings.Contains(got, "clientFoundRows=true") {
		t.Fatalf("flag missing from DSN: %s", got)
	}
	if !strings.Contains(got, "parseTime=true") {
		t.Fatalf("existing params dropped: %s", got)
	}
}

func TestWithFoundRowsNoParams(t *testing.T) {
	got := withFoundRows("user:pass@tcp(db:3306)/alhudha")
	if !strings.Contains(got, "clientFoundRows=true") {
		t.Fatalf("flag missing from DSN: %s", got)
	}
}

func TestWithFoundRowsKeepsUnparseableDSN(t *testing.T) {
	const bad = "not a dsn at all"
	if got := withFoundRows(bad); got != bad {
		t.Fatalf("unparseable DSN altered: %s", got)
	}
}
