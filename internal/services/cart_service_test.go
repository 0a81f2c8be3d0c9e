package services

import (
	"context"
	"errors"
	"testing"

	"rentedBack/internal/fsm"
	"rentedBack/internal/models"
)

func newCartFixture() (*CartService, *fakeCartStore, *fakeProductStore) {
	products := newFakeProductStore(
		models.Product{ID: 1, Title: "Drill", Price: 10, Availability: fsm.Available, UserID: 9},
		models.Product{ID: 2, Title: "Kayak", Price: 40, Availability: fsm.Booked, UserID: 9},
	)
	carts := newFakeCartStore()
	carts.promos["RENT10"] = models.PromoCode{ID: 1, Code: "RENT10", Percent: 10, Active: true}
	return &CartService{Carts: carts, Products: products}, carts, products
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _, _ := newCartFixture()
	_, err := svc.AddItem(context.Background(), 1, models.AddCartItemRequest{ProductID: 99, Quantity: 1, Duration: 3})
	if !errors.Is(err, models.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestAddItemUnavailableProductLeavesCartUnchanged(t *testing.T) {
	svc, _, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, models.AddCartItemRequest{ProductID: 2, Quantity: 1, Duration: 3})
	if !errors.Is(err, models.ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable, got %v", err)
	}
	cart, err := svc.GetCart(ctx, 1)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
}

func TestAddItemReplacesExistingEntry(t *testing.T) {
	svc, _, _ := newCartFixture()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, 1, models.AddCartItemRequest{ProductID: 1, Quantity: 2, Duration: 3}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	cart, err := svc.AddItem(ctx, 1, models.AddCartItemRequest{ProductID: 1, Quantity: 5, Duration: 2})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 item after duplicate add, got %d", len(cart.Items))
	}
	item := cart.Items[0]
	if item.Quantity != 5 || item.Duration != 2 {
		t.Fatalf("expected quantity/duration replaced to 5/2, got %d/%d", item.Quantity, item.Duration)
	}
	if item.Subtotal != 100 { // 10 * 5 * 2
		t.Fatalf("expected subtotal 100, got %.2f", item.Subtotal)
	}
}

func TestAddItemDefaultsDuration(t *testing.T) {
	svc, _, _ := newCartFixture()
	cart, err := svc.AddItem(context.Background(), 1, models.AddCartItemRequest{ProductID: 1, Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if cart.Items[0].Duration != 7 {
		t.Fatalf("expected default duration 7, got %d", cart.Items[0].Duration)
	}
}

func TestPriceSnapshotNotRevalidated(t *testing.T) {
	svc, _, products := newCartFixture()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, 1, models.AddCartItemRequest{ProductID: 1, Quantity: 2, Duration: 3}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	p := products.products[1]
	p.Price = 99
	products.products[1] = p

	cart, err := svc.GetCart(ctx, 1)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if cart.Items[0].Price != 10 {
		t.Fatalf("expected snapshot price 10, got %.2f", cart.Items[0].Price)
	}
	if cart.Items[0].Subtotal != 60 {
		t.Fatalf("expected subtotal 60 from snapshot, got %.2f", cart.Items[0].Subtotal)
	}
}

func TestCartTotalsWithPromo(t *testing.T) {
	svc, _, _ := newCartFixture()
	ctx := context.Background()

	// $10/day, quantity 2, duration 3 days -> $60 subtotal.
	if _, err := svc.AddItem(ctx, 1, models.AddCartItemRequest{ProductID: 1, Quantity: 2, Duration: 3}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	cart, err := svc.ApplyPromo(ctx, 1, "RENT10")
	if err != nil {
		t.Fatalf("ApplyPromo: %v", err)
	}
	if cart.Subtotal != 60 {
		t.Fatalf("expected subtotal 60, got %.2f", cart.Subtotal)
	}
	if cart.Discount != 6 {
		t.Fatalf("expected discount 6, got %.2f", cart.Discount)
	}
	if cart.Total != 54 {
		t.Fatalf("expected total 54, got %.2f", cart.Total)
	}
}

func TestApplyPromoUnknownCode(t *testing.T) {
	svc, _, _ := newCartFixture()
	_, err := svc.ApplyPromo(context.Background(), 1, "NOPE")
	if !errors.Is(err, models.ErrInvalidPromoCode) {
		t.Fatalf("expected ErrInvalidPromoCode, got %v", err)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	svc, _, _ := newCartFixture()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, 1, models.AddCartItemRequest{ProductID: 1, Quantity: 1, Duration: 2}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := svc.Clear(ctx, 1); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	cart, err := svc.GetCart(ctx, 1)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart.Items) != 0 || cart.Total != 0 {
		t.Fatalf("expected empty cart after clear, got %d items total %.2f", len(cart.Items), cart.Total)
	}
}

func TestRemoveMissingItem(t *testing.T) {
	svc, _, _ := newCartFixture()
	_, err := svc.RemoveItem(context.Background(), 1, 42)
	if !errors.Is(err, models.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}
