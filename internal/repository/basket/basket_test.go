package basket

import (
	"context"
	"testing"

	"storefront/internal/domain"
)

func sampleBasket() domain.Basket {
	return domain.Basket{
		domain.SKUPlastic: {SKU: domain.SKUPlastic, Name: "Plastic", UnitUSD: 42, Qty: 2},
		domain.SKUBundle:  {SKU: domain.SKUBundle, Name: "Bundle (Aluminium + Plastic)", UnitUSD: 99, Qty: 1},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := sampleBasket()
	raw, err := encode(original)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got := decode(raw)
	if len(got) != len(original) {
		t.Fatalf("expected %d lines, got %d", len(original), len(got))
	}
	for sku, want := range original {
		line, ok := got[sku]
		if !ok {
			t.Fatalf("missing line for %s after round trip", sku)
		}
		if line != want {
			t.Fatalf("line for %s changed: got %+v, want %+v", sku, line, want)
		}
	}
}

func TestDecodeMalformedFallsBackToEmpty(t *testing.T) {
	for _, raw := range [][]byte{
		nil,
		[]byte(""),
		[]byte("not json"),
		[]byte(`[1,2,3]`),
		[]byte(`null`),
	} {
		b := decode(raw)
		if b == nil {
			t.Fatalf("decode(%q) returned nil basket", raw)
		}
		if len(b) != 0 {
			t.Fatalf("decode(%q) = %+v, want empty basket", raw, b)
		}
	}
}

func TestMemoryRepoRoundTrip(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	loaded, err := repo.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty basket, got %+v", loaded)
	}

	if err := repo.Save(ctx, "s1", sampleBasket()); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err = repo.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Count() != 3 || loaded.SubtotalUSD() != 183 {
		t.Fatalf("unexpected basket after reload: %+v", loaded)
	}

	// Sessions are isolated.
	other, err := repo.Load(ctx, "s2")
	if err != nil {
		t.Fatalf("load other session: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("session s2 should be empty, got %+v", other)
	}

	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	loaded, err = repo.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load after delete: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty basket after delete, got %+v", loaded)
	}
}
