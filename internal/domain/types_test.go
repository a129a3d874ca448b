package domain

import (
	"encoding/json"
	"testing"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"50000.00", 5000000},
		{"50000", 5000000},
		{"0.05", 5},
		{"-50.05", -5005},
		{"12345.6", 1234560},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if err != nil {
			t.Fatalf("ParseMoney(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMoney(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "abc", "1.2.3"} {
		if _, err := ParseMoney(in); err == nil {
			t.Fatalf("ParseMoney(%q) should fail", in)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if got := Money(5000000).String(); got != "50000.00" {
		t.Fatalf("String = %q", got)
	}
	if got := Money(-5005).String(); got != "-50.05" {
		t.Fatalf("String = %q", got)
	}
	if got := Money(5).String(); got != "0.05" {
		t.Fatalf("String = %q", got)
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	type wrap struct {
		Amount Money `json:"amount"`
	}

	b, err := json.Marshal(wrap{Amount: 5000000})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"amount":50000.00}` {
		t.Fatalf("marshal = %s", b)
	}

	var w wrap
	if err := json.Unmarshal([]byte(`{"amount":50000.00}`), &w); err != nil {
		t.Fatal(err)
	}
	if w.Amount != 5000000 {
		t.Fatalf("unmarshal = %d", w.Amount)
	}

	// clients sometimes send amounts as strings
	if err := json.Unmarshal([]byte(`{"amount":"250.50"}`), &w); err != nil {
		t.Fatal(err)
	}
	if w.Amount != 25050 {
		t.Fatalf("unmarshal string = %d", w.Amount)
	}
}

func TestMoneyScan(t *testing.T) {
	var m Money
	if err := m.Scan([]byte("50000.00")); err != nil || m != 5000000 {
		t.Fatalf("scan bytes: %v %d", err, m)
	}
	if err := m.Scan(int64(120)); err != nil || m != 12000 {
		t.Fatalf("scan int64: %v %d", err, m)
	}
	if err := m.Scan(nil); err != nil || m != 0 {
		t.Fatalf("scan nil: %v %d", err, m)
	}
}
