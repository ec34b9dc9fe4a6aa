package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyAddAndMulCount(t *testing.T) {
	price, err := NewMoneyFromString("19.90")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	subtotal := price.MulCount(3)
	if subtotal.String() != "59.70" {
		t.Fatalf("expected 59.70, got %s", subtotal.String())
	}

	freight, err := NewMoneyFromString("10.00")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	total := subtotal.Add(freight)
	if total.String() != "69.70" {
		t.Fatalf("expected 69.70, got %s", total.String())
	}
}

func TestMoneyRoundsToTwoDecimals(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.NewFromFloat(1.005))
	if m.String() != "1.01" {
		t.Fatalf("expected 1.01, got %s", m.String())
	}

	if _, err := NewMoneyFromString("not-a-number"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m, err := NewMoneyFromString("50")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal money failed: %v", err)
	}
	if string(b) != `"50.00"` {
		t.Fatalf("expected \"50.00\", got %s", string(b))
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"60.00"`), &fromString); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if fromString.String() != "60.00" {
		t.Fatalf("expected 60.00, got %s", fromString.String())
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte(`12.5`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if fromNumber.String() != "12.50" {
		t.Fatalf("expected 12.50, got %s", fromNumber.String())
	}
}
