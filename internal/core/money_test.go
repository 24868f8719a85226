package core

import "testing"

func TestNormalizeAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1.234,56", "1234.56", true},
		{"50,00", "50", true},
		{"120.500,50", "120500.5", true},
		{"50.000,00", "50000", true},
		{"0,01", "0.01", true},
		{" 2,50 ", "2.5", true},
		{"1.234.567,89", "1234567.89", true},
		{"10", "", false}, // no decimal comma
		{"", "", false},
		{"1,2,3", "", false},
		{"0,00", "", false},
		{"-1,00", "", false},
		{"abc", "", false},
		{"12,3a", "", false},
	}
	for _, tc := range cases {
		got, err := NormalizeAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q: unexpected error %v", tc.in, err)
			}
			if got.String() != tc.out {
				t.Fatalf("%q: expected %s, got %s", tc.in, tc.out, got)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error, got %s", tc.in, got)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"1234.56", "1.234,56"},
		{"50", "50,00"},
		{"170500.5", "170.500,50"},
		{"0.01", "0,01"},
		{"1234567.89", "1.234.567,89"},
		{"999", "999,00"},
	}
	for _, tc := range cases {
		if got := FormatAmount(mustDecimal(t, tc.in)); got != tc.out {
			t.Fatalf("%s: expected %q, got %q", tc.in, tc.out, got)
		}
	}
}

func TestNormalizeFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"1.234,56", "50,00", "170.500,50"} {
		d, err := NormalizeAmount(s)
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if got := FormatAmount(d); got != s {
			t.Fatalf("round trip of %q gave %q", s, got)
		}
	}
}
