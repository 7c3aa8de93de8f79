package utils

import "testing"

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SMITH", "Smith"},
		{"ACME HOLDINGS LLC", "Acme Holdings Llc"},
		{"mary  ann", "Mary Ann"},
		{"O'BRIEN", "O'brien"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2020-01-15", "2020-01-15"},
		{"01/15/2020", "2020-01-15"},
		{"1/5/2020", "2020-01-05"},
		{"Jan 5, 2020", "2020-01-05"},
		{"not a date", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeDate(tt.in); got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$123,456", 123456, true},
		{" $1,000.50 ", 1000.5, true},
		{"(2,500)", -2500, true},
		{"-", 0, false},
		{"", 0, false},
		{"N/A", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseCurrency(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseCurrency(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseInt(t *testing.T) {
	if v, ok := ParseInt("Built 1,998 (est)"); !ok || v != 1998 {
		t.Errorf("ParseInt = %d, %v, want 1998, true", v, ok)
	}

	if _, ok := ParseInt("none"); ok {
		t.Error("ParseInt(none) expected false")
	}
}

func TestStringPtr(t *testing.T) {
	if StringPtr("  ") != nil {
		t.Error("StringPtr of blank should be nil")
	}

	if p := StringPtr(" x "); p == nil || *p != "x" {
		t.Errorf("StringPtr(\" x \") = %v, want x", p)
	}
}
