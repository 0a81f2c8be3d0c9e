package services

import (
	"context"
	"sort"
	"time"

	"rentedBack/internal/models"
)

type fakeProductStore struct {
	products map[int]models.Product
}

func newFakeProductStore(products ...models.Product) *fakeProductStore {
	f := &fakeProductStore{products: map[int]models.Product{}}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductStore) GetProductByID(_ context.Context, id int) (models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return models.Product{}, models.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductStore) SetAvailability(_ context.Context, id int, availability string) error {
	p, ok := f.products[id]
	if !ok {
		return models.ErrProductNotFound
	}
	p.Availability = availability
	f.products[id] = p
	return nil
}

type fakeBookingStore struct {
	bookings map[int]models.Booking
	nextID   int
}

func newFakeBookingStore(bookings ...models.Booking) *fakeBookingStore {
	f := &fakeBookingStore{bookings: map[int]models.Booking{}, nextID: 1}
	for _, b := range bookings {
		f.bookings[b.ID] = b
		if b.ID >= f.nextID {
			f.nextID = b.ID + 1
		}
	}
	return f
}

func (f *fakeBookingStore) CreateBooking(_ context.Context, b models.Booking) (models.Booking, error) {
	b.ID = f.nextID
	f.nextID++
	b.CreatedAt = time.Now()
	f.bookings[b.ID] = b
	return b, nil
}

func (f *fakeBookingStore) GetBookingByID(_ context.Context, id int) (models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return models.Booking{}, models.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingStore) GetBookingsByUser(_ context.Context, userID int) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBookingStore) UpdateStatuses(_ context.Context, id int, status, paymentStatus string) error {
	b, ok := f.bookings[id]
	if !ok {
		return models.ErrBookingNotFound
	}
	b.Status = status
	b.PaymentStatus = paymentStatus
	f.bookings[id] = b
	return nil
}

func (f *fakeBookingStore) UpdateStatus(_ context.Context, id int, status string) error {
	b, ok := f.bookings[id]
	if !ok {
		return models.ErrBookingNotFound
	}
	b.Status = status
	f.bookings[id] = b
	return nil
}

type fakePaymentStore struct {
	payments map[int]models.Payment
	nextID   int
}

func newFakePaymentStore(payments ...models.Payment) *fakePaymentStore {
	f := &fakePaymentStore{payments: map[int]models.Payment{}, nextID: 1}
	for _, p := range payments {
		f.payments[p.ID] = p
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
	}
	return f
}

func (f *fakePaymentStore) CreatePayment(_ context.Context, p models.Payment) (models.Payment, error) {
	p.ID = f.nextID
	f.nextID++
	p.CreatedAt = time.Now()
	f.payments[p.ID] = p
	return p, nil
}

func (f *fakePaymentStore) GetPaymentByID(_ context.Context, id int) (models.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return models.Payment{}, models.ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakePaymentStore) MarkRefunded(_ context.Context, id int, reason string, at time.Time) error {
	p, ok := f.payments[id]
	if !ok {
		return models.ErrPaymentNotFound
	}
	p.Status = "refunded"
	p.RefundReason = &reason
	p.RefundDate = &at
	f.payments[id] = p
	return nil
}

func (f *fakePaymentStore) GetHistoryByUser(_ context.Context, userID int) ([]models.Payment, error) {
	out := []models.Payment{}
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type fakeCart struct {
	id    int
	items []models.CartItem
	promo string
	pct   float64
}

type fakeCartStore struct {
	carts  map[int]*fakeCart // keyed by user id
	promos map[string]models.PromoCode
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{
		carts:  map[int]*fakeCart{},
		promos: map[string]models.PromoCode{},
	}
}

func (f *fakeCartStore) EnsureCart(_ context.Context, userID int) (int, error) {
	if c, ok := f.carts[userID]; ok {
		return c.id, nil
	}
	f.carts[userID] = &fakeCart{id: userID}
	return userID, nil
}

func (f *fakeCartStore) GetCartByUser(_ context.Context, userID int) (models.Cart, error) {
	c, ok := f.carts[userID]
	if !ok {
		return models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	cart := models.Cart{ID: c.id, UserID: userID, Items: append([]models.CartItem{}, c.items...)}
	if c.promo != "" {
		cart.PromoCode = &c.promo
		cart.DiscountPercent = c.pct
	}
	return cart, nil
}

func (f *fakeCartStore) UpsertItem(_ context.Context, cartID int, item models.CartItem) error {
	c := f.carts[cartID]
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i] = item
			return nil
		}
	}
	c.items = append(c.items, item)
	return nil
}

func (f *fakeCartStore) UpdateItem(_ context.Context, cartID, productID int, quantity, duration *int) error {
	c := f.carts[cartID]
	for i := range c.items {
		if c.items[i].ProductID == productID {
			if quantity != nil {
				c.items[i].Quantity = *quantity
			}
			if duration != nil {
				c.items[i].Duration = *duration
			}
			return nil
		}
	}
	return models.ErrCartItemNotFound
}

func (f *fakeCartStore) RemoveItem(_ context.Context, cartID, productID int) error {
	c := f.carts[cartID]
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return models.ErrCartItemNotFound
}

func (f *fakeCartStore) ReplaceItems(_ context.Context, cartID int, items []models.CartItem) error {
	f.carts[cartID].items = append([]models.CartItem{}, items...)
	return nil
}

func (f *fakeCartStore) Clear(_ context.Context, cartID int) error {
	c := f.carts[cartID]
	c.items = nil
	c.promo = ""
	c.pct = 0
	return nil
}

func (f *fakeCartStore) SetPromo(_ context.Context, cartID int, code string, percent float64) error {
	c := f.carts[cartID]
	c.promo = code
	c.pct = percent
	return nil
}

func (f *fakeCartStore) GetPromoByCode(_ context.Context, code string) (models.PromoCode, error) {
	promo, ok := f.promos[code]
	if !ok || !promo.Active {
		return models.PromoCode{}, models.ErrInvalidPromoCode
	}
	return promo, nil
}

type fakeNotificationStore struct {
	notifications []models.Notification
	batches       int
	tokens        map[int][]string
	nextID        int
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{tokens: map[int][]string{}, nextID: 1}
}

func (f *fakeNotificationStore) CreateBatch(_ context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	f.batches++
	for _, n := range notifications {
		n.ID = f.nextID
		f.nextID++
		n.CreatedAt = time.Now()
		f.notifications = append(f.notifications, n)
	}
	return nil
}

func (f *fakeNotificationStore) ListByUser(_ context.Context, userID int) ([]models.Notification, error) {
	out := []models.Notification{}
	for i := len(f.notifications) - 1; i >= 0; i-- {
		if f.notifications[i].UserID == userID {
			out = append(out, f.notifications[i])
		}
		if len(out) == 50 {
			break
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) GetByID(_ context.Context, id int) (models.Notification, error) {
	for _, n := range f.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return models.Notification{}, models.ErrNotificationNotFound
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, id int) error {
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			f.notifications[i].Read = true
			return nil
		}
	}
	return models.ErrNotificationNotFound
}

func (f *fakeNotificationStore) MarkAllRead(_ context.Context, userID int) error {
	for i := range f.notifications {
		if f.notifications[i].UserID == userID {
			f.notifications[i].Read = true
		}
	}
	return nil
}

func (f *fakeNotificationStore) Delete(_ context.Context, id int) error {
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return models.ErrNotificationNotFound
}

func (f *fakeNotificationStore) RegisterDeviceToken(_ context.Context, t models.DeviceToken) error {
	f.tokens[t.UserID] = append(f.tokens[t.UserID], t.Token)
	return nil
}

func (f *fakeNotificationStore) DeviceTokensByUser(_ context.Context, userID int) ([]string, error) {
	return f.tokens[userID], nil
}

type fakeReviewStore struct {
	reviews  map[int]models.Review
	products *fakeProductStore
	nextID   int
}

func newFakeReviewStore(products *fakeProductStore) *fakeReviewStore {
	return &fakeReviewStore{reviews: map[int]models.Review{}, products: products, nextID: 1}
}

func (f *fakeReviewStore) CreateReview(_ context.Context, rev models.Review) (models.Review, error) {
	rev.ID = f.nextID
	f.nextID++
	rev.CreatedAt = time.Now()
	f.reviews[rev.ID] = rev
	return rev, nil
}

func (f *fakeReviewStore) ExistsForBooking(_ context.Context, userID, bookingID int) (bool, error) {
	for _, rev := range f.reviews {
		if rev.UserID == userID && rev.BookingID != nil && *rev.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewStore) GetReviewByID(_ context.Context, id int) (models.Review, error) {
	rev, ok := f.reviews[id]
	if !ok {
		return models.Review{}, models.ErrReviewNotFound
	}
	return rev, nil
}

func (f *fakeReviewStore) GetReviewsByProductID(_ context.Context, productID int) ([]models.Review, error) {
	out := []models.Review{}
	for _, rev := range f.reviews {
		if rev.ProductID == productID {
			out = append(out, rev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeReviewStore) UpdateReview(_ context.Context, rev models.Review) error {
	if _, ok := f.reviews[rev.ID]; !ok {
		return models.ErrReviewNotFound
	}
	f.reviews[rev.ID] = rev
	return nil
}

func (f *fakeReviewStore) DeleteReview(_ context.Context, id int) error {
	if _, ok := f.reviews[id]; !ok {
		return models.ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewStore) RecomputeProductRating(_ context.Context, productID int) error {
	sum, count := 0, 0
	for _, rev := range f.reviews {
		if rev.ProductID == productID {
			sum += rev.Rating
			count++
		}
	}
	p, ok := f.products.products[productID]
	if !ok {
		return models.ErrProductNotFound
	}
	if count == 0 {
		p.AvgRating = 0
		p.ReviewsCount = 0
	} else {
		p.AvgRating = float64(sum) / float64(count)
		p.ReviewsCount = count
	}
	f.products.products[productID] = p
	return nil
}
