package model

import (
	"testing"
	"time"
)

func TestApplyDefaultsFillsMissingFields(t *testing.T) {
	// Simulates a record persisted before validity_days and payment_terms existed.
	q := Quote{
		Items: LineItems{
			{Model: "Extintor CO2", Capacity: "6 Kg", UnitPrice: 150, Quantity: 2},
		},
		CreatedAt: time.Now(),
	}
	q.ApplyDefaults()

	if q.ValidityDays != DefaultValidityDays {
		t.Fatalf("validity_days = %d, want %d", q.ValidityDays, DefaultValidityDays)
	}
	if q.PaymentTerms != DefaultPaymentTerms {
		t.Fatalf("payment_terms = %q, want default", q.PaymentTerms)
	}
	if q.Items[0].Subtotal != 300 {
		t.Fatalf("subtotal = %v, want 300", q.Items[0].Subtotal)
	}
}

func TestApplyDefaultsOverridesStaleSubtotal(t *testing.T) {
	q := Quote{
		ValidityDays: 15,
		PaymentTerms: "À vista",
		Items: LineItems{
			{Model: "Mangueira", Capacity: ManualCapacity, UnitPrice: 40, Quantity: 3, Subtotal: 999},
		},
	}
	q.ApplyDefaults()

	if q.ValidityDays != 15 {
		t.Fatalf("validity_days overwritten: %d", q.ValidityDays)
	}
	if q.Items[0].Subtotal != 120 {
		t.Fatalf("stale subtotal kept: %v", q.Items[0].Subtotal)
	}
}

func TestGrandTotalRecomputesFromItems(t *testing.T) {
	q := Quote{
		Items: LineItems{
			{UnitPrice: 150, Quantity: 2, Subtotal: 1},
			{UnitPrice: 80, Quantity: 1, Subtotal: 1},
		},
	}
	if got := q.GrandTotal(); got != 380 {
		t.Fatalf("grand total = %v, want 380", got)
	}
}

func TestLineItemsScanLegacyColumn(t *testing.T) {
	var items LineItems
	raw := `[{"model":"Extintor CO2","capacity":"6 Kg","unit_price":150,"quantity":2}]`
	if err := items.Scan(raw); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Subtotal != 0 {
		t.Fatalf("legacy record should not carry a subtotal, got %v", items[0].Subtotal)
	}
	if items[0].ComputeSubtotal() != 300 {
		t.Fatalf("computed subtotal = %v, want 300", items[0].ComputeSubtotal())
	}
}
