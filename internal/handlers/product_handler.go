package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"rentedBack/internal/models"
	"rentedBack/internal/services"
	"rentedBack/utils"
)

const maxImageUploadBytes = 10 << 20

type ProductHandler struct {
	Service *services.ProductService
	Storage *utils.S3Storage
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if p.Title == "" || p.Price <= 0 {
		http.Error(w, "title and positive price are required", http.StatusBadRequest)
		return
	}
	created, err := h.Service.CreateProduct(r.Context(), userID, p)
	if err != nil {
		log.Printf("CreateProduct error: %v", err)
		http.Error(w, "Failed to create listing", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid listing id", http.StatusBadRequest)
		return
	}
	product, err := h.Service.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Listing not found", http.StatusNotFound)
			return
		}
		log.Printf("GetProduct error: %v", err)
		http.Error(w, "Failed to get listing", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(product)
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ProductFilterRequest{
		Category:     q.Get("category"),
		Availability: q.Get("availability"),
		Search:       q.Get("search"),
	}
	filter.PriceFrom, _ = strconv.ParseFloat(q.Get("price_from"), 64)
	filter.PriceTo, _ = strconv.ParseFloat(q.Get("price_to"), 64)
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	list, err := h.Service.GetFilteredProducts(r.Context(), filter)
	if err != nil {
		log.Printf("ListProducts error: %v", err)
		http.Error(w, "Failed to get listings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(list)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid listing id", http.StatusBadRequest)
		return
	}
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	p.ID = id
	updated, err := h.Service.UpdateProduct(r.Context(), userID, roleFromRequest(r), p)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotOwner):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("UpdateProduct error: %v", err)
			http.Error(w, "Failed to update listing", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid listing id", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteProduct(r.Context(), userID, roleFromRequest(r), id); err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotOwner):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("DeleteProduct error: %v", err)
			http.Error(w, "Failed to delete listing", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "listing deleted"})
}

func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid listing id", http.StatusBadRequest)
		return
	}
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("UploadImage read error: %v", err)
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	fileName := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(header.Filename))
	url, err := h.Storage.UploadFile(data, fileName, "listings", header.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("UploadImage s3 error: %v", err)
		http.Error(w, "Failed to upload image", http.StatusInternalServerError)
		return
	}

	img := models.ProductImage{
		Name: header.Filename,
		Path: url,
		Type: header.Header.Get("Content-Type"),
	}
	if err := h.Service.AddProductImage(r.Context(), userID, roleFromRequest(r), id, img); err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotOwner):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("AddProductImage error: %v", err)
			http.Error(w, "Failed to attach image", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(img)
}
