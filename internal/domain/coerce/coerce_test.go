package coerce

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestFloat(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   float64
		wantOK bool
	}{
		{"float64", 12000.5, 12000.5, true},
		{"int", 42, 42, true},
		{"int64", int64(7), 7, true},
		{"numeric string", "12000", 12000, true},
		{"padded string", "  0.3 ", 0.3, true},
		{"dollar string", "$15000", 15000, true},
		{"json number", json.Number("0.25"), 0.25, true},
		{"nil", nil, 0, false},
		{"empty string", "", 0, false},
		{"garbage", "n/a", 0, false},
		{"bool", true, 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf string", "Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Float(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("Float(%v) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Float(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFloatPtr_Absent(t *testing.T) {
	if p := FloatPtr("unknown"); p != nil {
		t.Errorf("expected nil, got %v", *p)
	}
	if p := FloatPtr("3.5"); p == nil || *p != 3.5 {
		t.Errorf("expected 3.5, got %v", p)
	}
}

func TestInt(t *testing.T) {
	if n, ok := Int("45"); !ok || n != 45 {
		t.Errorf("Int(\"45\") = %d, %v", n, ok)
	}
	if n, ok := Int(44.6); !ok || n != 45 {
		t.Errorf("Int(44.6) = %d, %v", n, ok)
	}
	if _, ok := Int("first"); ok {
		t.Error("expected ok=false for non-numeric")
	}
	if p := IntPtr(nil); p != nil {
		t.Error("expected nil for absent value")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{" Germany ", "Germany"},
		{12000.0, "12000"},
		{0.35, "0.35"},
		{true, "true"},
		{[]int{1}, ""},
	}
	for _, tt := range tests {
		if got := String(tt.in); got != tt.want {
			t.Errorf("String(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, nil},
		{"scalar", "Germany", []string{"Germany"}},
		{"comma delimited", "merit_based, need_based", []string{"merit_based", "need_based"}},
		{"semicolon delimited", "AI; Robotics", []string{"AI", "Robotics"}},
		{"string list", []string{"USA", "Canada"}, []string{"USA", "Canada"}},
		{"any list", []any{"USA", "Canada", 3}, []string{"USA", "Canada", "3"}},
		{"dedupe case insensitive", []string{"USA", "usa", "UK"}, []string{"USA", "UK"}},
		{"drops empties", " , ,AI,", []string{"AI"}},
		{"only delimiters", ",,", nil},
		{"number scalar", 7, []string{"7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Set(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Set(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
