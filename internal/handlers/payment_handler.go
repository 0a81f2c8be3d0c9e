package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"rentedBack/internal/models"
	"rentedBack/internal/services"
)

type PaymentHandler struct {
	Service *services.PaymentService
}

func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req models.ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if len(req.BookingIDs) == 0 {
		http.Error(w, "booking_ids is required", http.StatusBadRequest)
		return
	}
	payment, err := h.Service.ProcessPayment(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBookingNotFound):
			http.Error(w, "Booking not found", http.StatusNotFound)
		case errors.Is(err, models.ErrBookingInvalid):
			http.Error(w, "One or more bookings are invalid", http.StatusConflict)
		default:
			log.Printf("ProcessPayment error: %v", err)
			http.Error(w, "Failed to process payment", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payment)
}

func (h *PaymentHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	history, err := h.Service.GetHistory(r.Context(), userID)
	if err != nil {
		log.Printf("GetHistory error: %v", err)
		http.Error(w, "Failed to get payment history", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(history)
}

func (h *PaymentHandler) RequestRefund(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req models.RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.PaymentID == 0 {
		http.Error(w, "payment_id is required", http.StatusBadRequest)
		return
	}
	payment, err := h.Service.RequestRefund(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPaymentNotFound):
			http.Error(w, "Payment not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotOwner):
			http.Error(w, "Forbidden", http.StatusForbidden)
		case errors.Is(err, models.ErrPaymentNotRefundable):
			http.Error(w, "Payment cannot be refunded", http.StatusConflict)
		default:
			log.Printf("RequestRefund error: %v", err)
			http.Error(w, "Failed to refund payment", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(payment)
}
