package models

import "testing"

func TestDecodeItemsDefaultsQuantity(t *testing.T) {
	items, err := DecodeItems(`[{"name":"Bread","price":1.25},{"name":"Milk","price":0.99,"quantity":2}]`)
	if err != nil {
		t.Fatalf("DecodeItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Quantity != 1 {
		t.Errorf("missing quantity should default to 1, got %d", items[0].Quantity)
	}
	if items[1].Quantity != 2 {
		t.Errorf("explicit quantity lost: got %d", items[1].Quantity)
	}
}

func TestDecodeItemsEmptyAndInvalid(t *testing.T) {
	items, err := DecodeItems("")
	if err != nil || items != nil {
		t.Errorf("empty text: got %v, %v", items, err)
	}
	if _, err := DecodeItems(`{"name":"not an array"}`); err == nil {
		t.Error("expected error for non-array items")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := []LineItem{
		{Name: "Soap", Price: 2.5, Quantity: 3},
		{Name: "Rice", Price: 10, Quantity: 1},
	}
	text, err := EncodeItems(original)
	if err != nil {
		t.Fatalf("EncodeItems failed: %v", err)
	}
	decoded, err := DecodeItems(text)
	if err != nil {
		t.Fatalf("DecodeItems failed: %v", err)
	}
	if len(decoded) != len(original) {
		t.Fatalf("length mismatch: got %d, want %d", len(decoded), len(original))
	}
	for i := range original {
		if decoded[i] != original[i] {
			t.Errorf("item %d: got %+v, want %+v", i, decoded[i], original[i])
		}
	}

	empty, err := EncodeItems(nil)
	if err != nil || empty != "[]" {
		t.Errorf("nil items should encode as [], got %q (%v)", empty, err)
	}
}

func TestItemsTotal(t *testing.T) {
	items := []LineItem{
		{Name: "Soap", Price: 2.5, Quantity: 3},
		{Name: "Pen", Price: 0.1, Quantity: 3},
	}
	if got := ItemsTotal(items).StringFixed(2); got != "7.80" {
		t.Errorf("ItemsTotal = %s, want 7.80", got)
	}
}
