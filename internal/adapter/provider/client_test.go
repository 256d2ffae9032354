package provider

import (
	"encoding/json"
	"testing"
)

func TestFlexFloatUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *float64
	}{
		{"JSON number", `{"v": 32.7472}`, ptr(32.7472)},
		{"decimal string", `{"v": "-97.0833"}`, ptr(-97.0833)},
		{"null", `{"v": null}`, nil},
		{"empty string", `{"v": ""}`, nil},
		{"junk string", `{"v": "N/A"}`, nil},
		{"absent", `{}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				V *flexFloat `json:"v"`
			}
			if err := json.Unmarshal([]byte(tt.input), &doc); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v, want tolerant decode", tt.input, err)
			}

			got := coord(doc.V)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("coord() = %v, want nil", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("coord() = %v, want %v", got, *tt.want)
			}
		})
	}
}

func TestDecimalString(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{25.5, "25.5"},
		{450, "450"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := decimalString(tt.in); *got != tt.want {
			t.Errorf("decimalString(%v) = %q, want %q", tt.in, *got, tt.want)
		}
	}
}

func ptr(v float64) *float64 { return &v }
