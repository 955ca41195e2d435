package cart

import (
	"context"
	"testing"

	"nova/models"
)

func TestAddLineMergesDuplicates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.AddLine(ctx, "c1", models.CartLine{ProductID: "p1", Quantity: 2, PriceSnapshot: 10}); err != nil {
		t.Fatal(err)
	}
	got, err := s.AddLine(ctx, "c1", models.CartLine{ProductID: "p1", Quantity: 3, PriceSnapshot: 10})
	if err != nil {
		t.Fatal(err)
	}

	if len(got.Lines) != 1 {
		t.Fatalf("lines = %d, want 1 (duplicate adds merge)", len(got.Lines))
	}
	if got.Lines[0].Quantity != 5 {
		t.Errorf("qty = %d, want 5", got.Lines[0].Quantity)
	}
}

func TestUpdateQuantity(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.AddLine(ctx, "c1", models.CartLine{ProductID: "p1", Quantity: 2})

	tests := []struct {
		name      string
		productID string
		qty       int
		wantQty   int
		wantLines int
	}{
		{"set quantity", "p1", 7, 7, 1},
		{"clamped to one", "p1", 0, 1, 1},
		{"negative clamped", "p1", -5, 1, 1},
		{"absent product is a no-op", "p404", 9, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.UpdateQuantity(ctx, "c1", tt.productID, tt.qty)
			if err != nil {
				t.Fatal(err)
			}
			if len(got.Lines) != tt.wantLines {
				t.Fatalf("lines = %d, want %d", len(got.Lines), tt.wantLines)
			}
			if got.Lines[0].Quantity != tt.wantQty {
				t.Errorf("qty = %d, want %d", got.Lines[0].Quantity, tt.wantQty)
			}
		})
	}
}

func TestRemoveLineAndClear(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.AddLine(ctx, "c1", models.CartLine{ProductID: "p1", Quantity: 1})
	s.AddLine(ctx, "c1", models.CartLine{ProductID: "p2", Quantity: 1})

	got, err := s.RemoveLine(ctx, "c1", "p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Lines) != 1 || got.Lines[0].ProductID != "p2" {
		t.Errorf("after remove: %+v, want only p2", got.Lines)
	}

	// Removing a missing product is not an error.
	if _, err := s.RemoveLine(ctx, "c1", "p404"); err != nil {
		t.Errorf("remove of absent product returned %v", err)
	}

	if err := s.Clear(ctx, "c1"); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Get(ctx, "c1")
	if len(got.Lines) != 0 {
		t.Errorf("after clear: %d lines, want 0", len(got.Lines))
	}
}

func TestCartsAreIsolated(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.AddLine(ctx, "alice", models.CartLine{ProductID: "p1", Quantity: 1})
	s.AddLine(ctx, "bob", models.CartLine{ProductID: "p2", Quantity: 4})

	alice, _ := s.Get(ctx, "alice")
	bob, _ := s.Get(ctx, "bob")

	if len(alice.Lines) != 1 || alice.Lines[0].ProductID != "p1" {
		t.Errorf("alice sees %+v", alice.Lines)
	}
	if len(bob.Lines) != 1 || bob.Lines[0].ProductID != "p2" {
		t.Errorf("bob sees %+v", bob.Lines)
	}
}

func TestGetUnknownCartIsEmpty(t *testing.T) {
	s := NewMemoryStore()
	got, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if got.CartID != "nope" || len(got.Lines) != 0 {
		t.Errorf("got %+v, want empty cart", got)
	}
}
