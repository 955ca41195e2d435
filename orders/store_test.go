package orders

import (
	"context"
	"testing"
	"time"

	"nova/models"
)

func TestPutResubmitReplacesItems(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := models.Order{
		OrderID: "ord_abc123",
		Items: []models.OrderItem{
			{ProductID: "iot-1001", Quantity: 2, PriceSnapshot: 14.99},
			{ProductID: "iot-1002", Quantity: 1, PriceSnapshot: 19.90},
		},
		Status: "placed",
	}
	if err := s.Put(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := models.Order{
		OrderID: "ord_abc123",
		Items: []models.OrderItem{
			{ProductID: "iot-1005", Quantity: 3, PriceSnapshot: 49.90},
		},
		Status: "placed",
	}
	if err := s.Put(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "ord_abc123")
	if err != nil {
		t.Fatal(err)
	}
	// The resubmitted document wins outright: no union with the first
	// submission's lines, no leftovers.
	if len(got.Items) != 1 {
		t.Fatalf("items after resubmit = %d, want 1: %+v", len(got.Items), got.Items)
	}
	if got.Items[0].ProductID != "iot-1005" || got.Items[0].Quantity != 3 {
		t.Errorf("items after resubmit = %+v, want only iot-1005 x3", got.Items)
	}

	_, total, err := s.List(ctx, "", 1, 20)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Errorf("order count after resubmit = %d, want 1 (replace, not duplicate)", total)
	}
}

func TestGetUnknownOrder(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "ord_nope"); err == nil {
		t.Error("unknown order id returned no error")
	}
}

func TestListPagination(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	ids := []string{"ord_a", "ord_b", "ord_c", "ord_d", "ord_e"}
	for i, id := range ids {
		s.Put(ctx, models.Order{OrderID: id, UserID: "u1", CreatedAt: base.Add(time.Duration(i) * time.Hour)})
	}

	page1, total, err := s.List(ctx, "u1", 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(page1) != 2 || page1[0].OrderID != "ord_e" {
		t.Errorf("page 1 = %+v, want newest first", page1)
	}

	// Pages collectively return every order exactly once.
	seen := map[string]bool{}
	for page := 1; ; page++ {
		orders, _, err := s.List(ctx, "u1", page, 2)
		if err != nil {
			t.Fatal(err)
		}
		if len(orders) == 0 {
			break
		}
		for _, o := range orders {
			if seen[o.OrderID] {
				t.Errorf("order %s appeared on more than one page", o.OrderID)
			}
			seen[o.OrderID] = true
		}
	}
	if len(seen) != 5 {
		t.Errorf("paged union has %d orders, want 5", len(seen))
	}

	// A page past the end is empty but keeps the correct total.
	beyond, total, err := s.List(ctx, "u1", 99, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(beyond) != 0 || total != 5 {
		t.Errorf("beyond-last page = %d items, total %d; want 0 items, total 5", len(beyond), total)
	}

	// Other users' orders never leak in.
	other, total, _ := s.List(ctx, "u2", 1, 20)
	if len(other) != 0 || total != 0 {
		t.Errorf("u2 sees %d orders, want none", len(other))
	}
}
