package service

import (
	"testing"

	"github.com/decioext/quotes-service/internal/model"
)

func TestDraftStoreAddRemove(t *testing.T) {
	d := NewDraftStore()

	d.Add("decio", model.LineItem{Model: "Extintor CO2", Capacity: "6 Kg", UnitPrice: 150, Quantity: 2})
	d.Add("decio", model.LineItem{Model: "Placa de sinalização", Capacity: model.ManualCapacity, UnitPrice: 25, Quantity: 4})

	if got := len(d.Items("decio")); got != 2 {
		t.Fatalf("items = %d, want 2", got)
	}

	if !d.Remove("decio", 0) {
		t.Fatal("remove of existing index failed")
	}
	items := d.Items("decio")
	if len(items) != 1 || items[0].Model != "Placa de sinalização" {
		t.Fatalf("unexpected items after remove: %+v", items)
	}

	if d.Remove("decio", 5) {
		t.Fatal("remove of out-of-range index succeeded")
	}
	if d.Remove("decio", -1) {
		t.Fatal("remove of negative index succeeded")
	}
}

func TestDraftStoreIsolatesUsers(t *testing.T) {
	d := NewDraftStore()
	d.Add("decio", model.LineItem{Model: "Extintor CO2", Quantity: 1})

	if got := len(d.Items("maria")); got != 0 {
		t.Fatalf("maria sees %d items from decio's draft", got)
	}

	d.Clear("maria")
	if got := len(d.Items("decio")); got != 1 {
		t.Fatalf("clearing maria's draft touched decio's: %d items", got)
	}
}

func TestDraftStoreItemsReturnsCopy(t *testing.T) {
	d := NewDraftStore()
	d.Add("decio", model.LineItem{Model: "Extintor CO2", Quantity: 1})

	items := d.Items("decio")
	items[0].Model = "mutated"

	if d.Items("decio")[0].Model != "Extintor CO2" {
		t.Fatal("caller mutation leaked into the draft")
	}
}
