package stripe

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		amount   string
		currency string
		want     int64
	}{
		{"19.99", "INR", 1999},
		{"100", "INR", 10000},
		{"0.01", "INR", 1},
		{"0.505", "INR", 50}, // bankers rounding: .5 goes to the even digit
		{"0.515", "INR", 52},
		{"1234", "JPY", 1234}, // zero-decimal currency
	}
	for _, c := range cases {
		amount, err := decimal.NewFromString(c.amount)
		if err != nil {
			t.Fatalf("parse %s failed: %v", c.amount, err)
		}
		got, err := ToMinorUnits(amount, c.currency)
		if err != nil {
			t.Fatalf("ToMinorUnits(%s %s) failed: %v", c.amount, c.currency, err)
		}
		if got != c.want {
			t.Fatalf("ToMinorUnits(%s %s) want %d got %d", c.amount, c.currency, c.want, got)
		}
	}
}

func TestToMinorUnitsRejectsTinyAmounts(t *testing.T) {
	amount := decimal.RequireFromString("0.004")
	if _, err := ToMinorUnits(amount, "INR"); !errors.Is(err, ErrAmountOutOfRange) {
		t.Fatalf("want ErrAmountOutOfRange got %v", err)
	}
	if _, err := ToMinorUnits(decimal.Zero, "INR"); !errors.Is(err, ErrAmountOutOfRange) {
		t.Fatalf("zero amount want ErrAmountOutOfRange got %v", err)
	}
	if _, err := ToMinorUnits(decimal.NewFromInt(-5), "INR"); !errors.Is(err, ErrAmountOutOfRange) {
		t.Fatalf("negative amount want ErrAmountOutOfRange got %v", err)
	}
}

func TestFromMinorUnitsRoundTrip(t *testing.T) {
	amount := decimal.RequireFromString("19.99")
	minor, err := ToMinorUnits(amount, "INR")
	if err != nil {
		t.Fatalf("ToMinorUnits failed: %v", err)
	}
	back := FromMinorUnits(minor, "INR")
	if !back.Equal(amount) {
		t.Fatalf("round trip want %s got %s", amount, back)
	}
}

func TestSessionResultPaid(t *testing.T) {
	paid := &SessionResult{PaymentStatus: "paid"}
	if !paid.Paid() {
		t.Fatalf("paid session should report paid")
	}
	free := &SessionResult{Status: "complete", PaymentStatus: "no_payment_required"}
	if !free.Paid() {
		t.Fatalf("completed zero-cost session should report paid")
	}
	open := &SessionResult{Status: "open", PaymentStatus: "unpaid"}
	if open.Paid() {
		t.Fatalf("open session should not report paid")
	}
}

func TestSessionFromRawReadsCardSummary(t *testing.T) {
	raw := map[string]interface{}{
		"id":             "cs_test_123",
		"status":         "complete",
		"payment_status": "paid",
		"metadata":       map[string]interface{}{"order_no": "ORD-1"},
		"payment_intent": map[string]interface{}{
			"id": "pi_test_456",
			"latest_charge": map[string]interface{}{
				"created": float64(1700000000),
				"payment_method_details": map[string]interface{}{
					"card": map[string]interface{}{"brand": "visa", "last4": "4242"},
				},
			},
		},
	}
	result := sessionFromRaw(raw)
	if result.SessionID != "cs_test_123" {
		t.Fatalf("session id want cs_test_123 got %s", result.SessionID)
	}
	if result.PaymentIntentID != "pi_test_456" {
		t.Fatalf("payment intent want pi_test_456 got %s", result.PaymentIntentID)
	}
	if result.CardBrand != "visa" || result.CardLast4 != "4242" {
		t.Fatalf("card summary mismatch: %s %s", result.CardBrand, result.CardLast4)
	}
	if result.Metadata["order_no"] != "ORD-1" {
		t.Fatalf("metadata order_no want ORD-1 got %s", result.Metadata["order_no"])
	}
	if result.PaidAt == nil {
		t.Fatalf("paid_at should be set from charge created")
	}
}
