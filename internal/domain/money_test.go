package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSafeParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain number", "42.5", "42.5"},
		{"whitespace", "  7 ", "7"},
		{"empty", "", "0"},
		{"garbage", "abc", "0"},
		{"negative", "-3.2", "-3.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeParse(tt.input)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("SafeParse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestLooseNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantValid bool
		wantValue string
	}{
		{"json number", `12.75`, true, "12.75"},
		{"numeric string", `"89.99"`, true, "89.99"},
		{"string with spaces", `" 5 "`, true, "5"},
		{"null", `null`, false, "0"},
		{"garbage string", `"abc"`, false, "0"},
		{"object", `{"x":1}`, false, "0"},
		{"bool", `true`, false, "0"},
		{"zero", `0`, true, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n LooseNumber
			if err := json.Unmarshal([]byte(tt.payload), &n); err != nil {
				t.Fatalf("unmarshal returned error: %v", err)
			}
			if n.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", n.Valid, tt.wantValid)
			}
			if !n.OrZero().Equal(decimal.RequireFromString(tt.wantValue)) {
				t.Errorf("value = %s, want %s", n.OrZero(), tt.wantValue)
			}
		})
	}
}

func TestLooseNumberUnmarshalInsideStruct(t *testing.T) {
	var rec struct {
		Amount LooseNumber `json:"amount"`
		Extra  LooseNumber `json:"extra"`
	}
	payload := `{"amount":"250","extra":[1,2]}`
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if !rec.Amount.Positive() {
		t.Error("amount should be valid and positive")
	}
	if rec.Extra.Valid {
		t.Error("array payload should be invalid, not an error")
	}
}

func TestLooseNumberMarshal(t *testing.T) {
	valid, err := json.Marshal(Num(decimal.RequireFromString("10.5")))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(valid) != "10.5" {
		t.Errorf("marshal valid = %s, want 10.5", valid)
	}

	invalid, err := json.Marshal(LooseNumber{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(invalid) != "null" {
		t.Errorf("marshal invalid = %s, want null", invalid)
	}
}

func TestPositive(t *testing.T) {
	if Num(decimal.Zero).Positive() {
		t.Error("zero should not be positive")
	}
	if NumFromString("-5").Positive() {
		t.Error("negative should not be positive")
	}
	if (LooseNumber{Value: decimal.NewFromInt(3)}).Positive() {
		t.Error("invalid number should not be positive")
	}
	if !NumFromString("0.01").Positive() {
		t.Error("0.01 should be positive")
	}
}
