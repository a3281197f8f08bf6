package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0", 0, true},
		{"0.01", 1, true},
		{"450.00", 45000, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestFormatDecimalComma(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{45000, "450,00"},
		{1, "0,01"},
		{0, "0,00"},
		{123456, "1234,56"},
		{-250, "-2,50"},
	}
	for _, tc := range cases {
		if got := FormatDecimalComma(tc.cents); got != tc.want {
			t.Errorf("FormatDecimalComma(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestFormatEuro(t *testing.T) {
	if got := FormatEuro(45000); got != "€450,00" {
		t.Errorf("FormatEuro(45000) = %q", got)
	}
	if got := FormatEuro(-45000); got != "-€450,00" {
		t.Errorf("FormatEuro(-45000) = %q", got)
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 0}).Validate(); err != nil {
		t.Fatalf("zero amount should be valid, got %v", err)
	}
	if err := (Money{Cents: -1}).Validate(); err == nil {
		t.Fatal("negative amount should be rejected")
	}
}
