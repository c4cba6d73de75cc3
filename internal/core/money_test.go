package core

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"1.005", "1.01", true}, // half-up rounding
		{" 2.50 ", "2.5", true},
		{"1,200,000", "1200000", true},
		{"1.200.000", "1200000", true},
		{"1,250.75", "1250.75", true},
		{"250,000", "250000", true},
		{"-1", "0", false},
		{"abc", "0", false},
		{"12abc", "0", false},
		{"", "0", false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestCoerceMoney(t *testing.T) {
	cases := []struct {
		name string
		in   any
		out  string
	}{
		{"nil", nil, "0"},
		{"int", 400000, "400000"},
		{"int64", int64(-5), "-5"},
		{"float", 12.5, "12.5"},
		{"nan", math.NaN(), "0"},
		{"inf", math.Inf(1), "0"},
		{"numeric string", "1200000", "1200000"},
		{"numeric prefix", "12abc", "12"},
		{"garbage", "abc", "0"},
		{"empty", "", "0"},
		{"thousands", "1,200,000", "1200000"},
		{"money", NewMoney(7), "7"},
		{"json number", json.Number("3.25"), "3.25"},
		{"unsupported", struct{}{}, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CoerceMoney(tc.in).String(); got != tc.out {
				t.Errorf("CoerceMoney(%v) = %s, want %s", tc.in, got, tc.out)
			}
		})
	}
}

func TestMoneyJSON(t *testing.T) {
	var v struct {
		A Money `json:"a"`
		B Money `json:"b"`
		C Money `json:"c"`
		D Money `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"a": 1200000, "b": "50000", "c": "oops", "d": null}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.A.String() != "1200000" || v.B.String() != "50000" || !v.C.IsZero() || !v.D.IsZero() {
		t.Fatalf("unexpected decode: %+v", v)
	}
	out, err := json.Marshal(v.A)
	if err != nil || string(out) != "1200000" {
		t.Fatalf("marshal = %s, %v", out, err)
	}
}

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{NewMoney(1225000), "1,225,000"},
		{NewMoney(0), "0"},
		{NewMoney(-45000), "-45,000"},
		{CoerceMoney("1250.5"), "1,250.50"},
		{CoerceMoney("0.999"), "1"},
		{CoerceMoney("12345678901234567890"), "12,345,678,901,234,567,890"},
		{CoerceMoney("123456789012345678901.25"), "123,456,789,012,345,678,901.25"},
	}
	for _, tt := range tests {
		if got := tt.in.Format(); got != tt.want {
			t.Errorf("Format(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMoneyScanValue(t *testing.T) {
	var m Money
	for _, src := range []any{int64(42), "42", []byte("42"), float64(42)} {
		if err := m.Scan(src); err != nil || m.String() != "42" {
			t.Fatalf("Scan(%T) = %s, %v", src, m, err)
		}
	}
	v, err := NewMoney(9).Value()
	if err != nil || v != "9" {
		t.Fatalf("Value = %v, %v", v, err)
	}
}
