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

type BookingHandler struct {
	Service *services.BookingService
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.ProductID == 0 {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.CreateBooking(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			http.Error(w, "Product not found", http.StatusNotFound)
		case errors.Is(err, models.ErrProductUnavailable):
			http.Error(w, "Product is not available", http.StatusConflict)
		case errors.Is(err, models.ErrInvalidDateRange):
			http.Error(w, "Invalid date range", http.StatusBadRequest)
		case errors.Is(err, models.ErrInvalidRentalPeriod):
			http.Error(w, "Rental period out of allowed range", http.StatusBadRequest)
		default:
			log.Printf("CreateBooking error: %v", err)
			http.Error(w, "Failed to create booking", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(booking)
}

func (h *BookingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	bookings, err := h.Service.CheckoutCart(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrCartEmpty):
			http.Error(w, "Cart is empty", http.StatusBadRequest)
		case errors.Is(err, models.ErrProductNotFound):
			http.Error(w, "Product not found", http.StatusNotFound)
		case errors.Is(err, models.ErrProductUnavailable):
			http.Error(w, "Product is not available", http.StatusConflict)
		case errors.Is(err, models.ErrInvalidDateRange):
			http.Error(w, "Invalid date range", http.StatusBadRequest)
		case errors.Is(err, models.ErrInvalidRentalPeriod):
			http.Error(w, "Rental period out of allowed range", http.StatusBadRequest)
		default:
			log.Printf("Checkout error: %v", err)
			http.Error(w, "Failed to checkout", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(bookings)
}

func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	bookings, err := h.Service.GetBookingsByUser(r.Context(), userID)
	if err != nil {
		log.Printf("GetBookings error: %v", err)
		http.Error(w, "Failed to get bookings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(bookings)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid booking id", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.GetBookingByID(r.Context(), userID, roleFromRequest(r), id)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBookingNotFound):
			http.Error(w, "Booking not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotOwner):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("GetBooking error: %v", err)
			http.Error(w, "Failed to get booking", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(booking)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid booking id", http.StatusBadRequest)
		return
	}
	var req models.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.UpdateStatus(r.Context(), userID, roleFromRequest(r), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBookingNotFound):
			http.Error(w, "Booking not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotOwner):
			http.Error(w, "Forbidden", http.StatusForbidden)
		case errors.Is(err, models.ErrInvalidTransition):
			http.Error(w, "Invalid status transition", http.StatusConflict)
		default:
			log.Printf("UpdateStatus error: %v", err)
			http.Error(w, "Failed to update booking status", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(booking)
}
