package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"rentedBack/internal/models"
	"rentedBack/internal/services"
)

type CartHandler struct {
	Service *services.CartService
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	cart, err := h.Service.GetCart(r.Context(), userID)
	if err != nil {
		log.Printf("GetCart error: %v", err)
		http.Error(w, "Failed to get cart", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req models.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.ProductID == 0 {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}
	cart, err := h.Service.AddItem(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			http.Error(w, "Product not found", http.StatusNotFound)
		case errors.Is(err, models.ErrProductUnavailable):
			http.Error(w, "Product is not available", http.StatusConflict)
		default:
			log.Printf("AddItem error: %v", err)
			http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(cart)
}

func (h *CartHandler) ReplaceCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req models.ReplaceCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	cart, err := h.Service.ReplaceItems(r.Context(), userID, req.Items)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			http.Error(w, "Product not found", http.StatusNotFound)
		case errors.Is(err, models.ErrProductUnavailable):
			http.Error(w, "Product is not available", http.StatusConflict)
		default:
			log.Printf("ReplaceCart error: %v", err)
			http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(cart)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	productID, err := strconv.Atoi(r.URL.Query().Get(":product_id"))
	if err != nil {
		http.Error(w, "Invalid product_id", http.StatusBadRequest)
		return
	}
	var req models.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	cart, err := h.Service.UpdateItem(r.Context(), userID, productID, req)
	if err != nil {
		if errors.Is(err, models.ErrCartItemNotFound) {
			http.Error(w, "Cart item not found", http.StatusNotFound)
			return
		}
		log.Printf("UpdateItem error: %v", err)
		http.Error(w, "Failed to update cart item", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	productID, err := strconv.Atoi(r.URL.Query().Get(":product_id"))
	if err != nil {
		http.Error(w, "Invalid product_id", http.StatusBadRequest)
		return
	}
	cart, err := h.Service.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		if errors.Is(err, models.ErrCartItemNotFound) {
			http.Error(w, "Cart item not found", http.StatusNotFound)
			return
		}
		log.Printf("RemoveItem error: %v", err)
		http.Error(w, "Failed to remove cart item", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(cart)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := h.Service.Clear(r.Context(), userID); err != nil {
		log.Printf("Clear cart error: %v", err)
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "cart cleared"})
}

func (h *CartHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req models.ApplyPromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	cart, err := h.Service.ApplyPromo(r.Context(), userID, req.Code)
	if err != nil {
		if errors.Is(err, models.ErrInvalidPromoCode) {
			http.Error(w, "Invalid promo code", http.StatusBadRequest)
			return
		}
		log.Printf("ApplyPromo error: %v", err)
		http.Error(w, "Failed to apply promo code", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(cart)
}
