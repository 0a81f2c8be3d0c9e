package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"rentedBack/internal/fsm"
	"rentedBack/internal/models"
	"rentedBack/internal/pricing"
)

const cartCacheTTL = 24 * time.Hour

type CartService struct {
	Carts    CartStore
	Products ProductStore
	Cache    *redis.Client // optional write-through mirror
}

// GetCart returns the user's cart with totals computed. The database is the
// source of truth; the redis mirror is refreshed on every successful read and
// only consulted when the database is unreachable.
func (s *CartService) GetCart(ctx context.Context, userID int) (models.Cart, error) {
	cart, err := s.Carts.GetCartByUser(ctx, userID)
	if err != nil {
		if cached, ok := s.cachedCart(ctx, userID); ok {
			return cached, nil
		}
		return models.Cart{}, err
	}
	s.computeTotals(&cart)
	s.mirrorCart(ctx, cart)
	return cart, nil
}

// AddItem puts a product into the cart with a price snapshot taken now. A
// product already present is overwritten, not accumulated.
func (s *CartService) AddItem(ctx context.Context, userID int, req models.AddCartItemRequest) (models.Cart, error) {
	product, err := s.Products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return models.Cart{}, err
	}
	if product.Availability != fsm.Available {
		return models.Cart{}, models.ErrProductUnavailable
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	duration := req.Duration
	if duration < 1 {
		duration = pricing.DefaultDurationDays
	}

	cartID, err := s.Carts.EnsureCart(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}
	item := models.CartItem{
		ProductID: product.ID,
		Price:     product.Price,
		Quantity:  quantity,
		Duration:  duration,
	}
	if err := s.Carts.UpsertItem(ctx, cartID, item); err != nil {
		return models.Cart{}, err
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) UpdateItem(ctx context.Context, userID, productID int, req models.UpdateCartItemRequest) (models.Cart, error) {
	cartID, err := s.Carts.EnsureCart(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}
	if err := s.Carts.UpdateItem(ctx, cartID, productID, req.Quantity, req.Duration); err != nil {
		return models.Cart{}, err
	}
	return s.GetCart(ctx, userID)
}

// ReplaceItems swaps the full item list, used when a client syncs its local
// copy up. Prices are re-snapshotted from the live products rather than
// trusted from the payload.
func (s *CartService) ReplaceItems(ctx context.Context, userID int, items []models.CartItem) (models.Cart, error) {
	cartID, err := s.Carts.EnsureCart(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}
	normalized := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		product, err := s.Products.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return models.Cart{}, err
		}
		if product.Availability != fsm.Available {
			return models.Cart{}, models.ErrProductUnavailable
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		if item.Duration < 1 {
			item.Duration = pricing.DefaultDurationDays
		}
		item.Price = product.Price
		normalized = append(normalized, item)
	}
	if err := s.Carts.ReplaceItems(ctx, cartID, normalized); err != nil {
		return models.Cart{}, err
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID int) (models.Cart, error) {
	cartID, err := s.Carts.EnsureCart(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}
	if err := s.Carts.RemoveItem(ctx, cartID, productID); err != nil {
		return models.Cart{}, err
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) Clear(ctx context.Context, userID int) error {
	cartID, err := s.Carts.EnsureCart(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Carts.Clear(ctx, cartID); err != nil {
		return err
	}
	s.dropMirror(ctx, userID)
	return nil
}

func (s *CartService) ApplyPromo(ctx context.Context, userID int, code string) (models.Cart, error) {
	promo, err := s.Carts.GetPromoByCode(ctx, code)
	if err != nil {
		return models.Cart{}, err
	}
	cartID, err := s.Carts.EnsureCart(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}
	if err := s.Carts.SetPromo(ctx, cartID, promo.Code, promo.Percent); err != nil {
		return models.Cart{}, err
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) computeTotals(cart *models.Cart) {
	subtotal := 0.0
	for i := range cart.Items {
		cart.Items[i].Subtotal = pricing.Subtotal(cart.Items[i].Price, cart.Items[i].Quantity, cart.Items[i].Duration)
		subtotal += cart.Items[i].Subtotal
	}
	cart.Subtotal = subtotal
	cart.Discount = pricing.Discount(subtotal, cart.DiscountPercent)
	cart.Total = pricing.Total(subtotal, cart.Discount)
}

func (s *CartService) mirrorCart(ctx context.Context, cart models.Cart) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, cartCacheKey(cart.UserID), data, cartCacheTTL).Err(); err != nil {
		log.Printf("cart mirror write failed for user %d: %v", cart.UserID, err)
	}
}

func (s *CartService) cachedCart(ctx context.Context, userID int) (models.Cart, bool) {
	if s.Cache == nil {
		return models.Cart{}, false
	}
	data, err := s.Cache.Get(ctx, cartCacheKey(userID)).Bytes()
	if err != nil {
		return models.Cart{}, false
	}
	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return models.Cart{}, false
	}
	return cart, true
}

func (s *CartService) dropMirror(ctx context.Context, userID int) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, cartCacheKey(userID)).Err(); err != nil {
		log.Printf("cart mirror delete failed for user %d: %v", userID, err)
	}
}

func cartCacheKey(userID int) string {
	return fmt.Sprintf("cart:%d", userID)
}
