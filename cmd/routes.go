package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Get("/user/:id", authMiddleware.ThenFunc(app.userHandler.GetUser))

	// Listings
	mux.Post("/listings", authMiddleware.ThenFunc(app.productHandler.CreateProduct))
	mux.Get("/listings", standardMiddleware.ThenFunc(app.productHandler.ListProducts))
	mux.Get("/listings/:id", standardMiddleware.ThenFunc(app.productHandler.GetProduct))
	mux.Put("/listings/:id", authMiddleware.ThenFunc(app.productHandler.UpdateProduct))
	mux.Del("/listings/:id", authMiddleware.ThenFunc(app.productHandler.DeleteProduct))
	mux.Post("/listings/:id/images", authMiddleware.ThenFunc(app.productHandler.UploadImage))

	// Cart
	mux.Get("/cart", authMiddleware.ThenFunc(app.cartHandler.GetCart))
	mux.Put("/cart", authMiddleware.ThenFunc(app.cartHandler.ReplaceCart))
	mux.Post("/cart/add", authMiddleware.ThenFunc(app.cartHandler.AddItem))
	mux.Put("/cart/item/:product_id", authMiddleware.ThenFunc(app.cartHandler.UpdateItem))
	mux.Del("/cart/item/:product_id", authMiddleware.ThenFunc(app.cartHandler.RemoveItem))
	mux.Del("/cart/clear", authMiddleware.ThenFunc(app.cartHandler.Clear))
	mux.Post("/cart/promo", authMiddleware.ThenFunc(app.cartHandler.ApplyPromo))

	// Bookings
	mux.Post("/bookings", authMiddleware.ThenFunc(app.bookingHandler.CreateBooking))
	mux.Post("/bookings/checkout", authMiddleware.ThenFunc(app.bookingHandler.Checkout))
	mux.Get("/bookings", authMiddleware.ThenFunc(app.bookingHandler.GetBookings))
	mux.Get("/bookings/:id", authMiddleware.ThenFunc(app.bookingHandler.GetBooking))
	mux.Add("PATCH", "/bookings/:id/status", authMiddleware.ThenFunc(app.bookingHandler.UpdateStatus))

	// Payments
	mux.Post("/payments/process", authMiddleware.ThenFunc(app.paymentHandler.ProcessPayment))
	mux.Get("/payments/history", authMiddleware.ThenFunc(app.paymentHandler.GetHistory))
	mux.Post("/payments/refund", authMiddleware.ThenFunc(app.paymentHandler.RequestRefund))

	// Reviews
	mux.Post("/reviews", authMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get("/reviews/product/:product_id", standardMiddleware.ThenFunc(app.reviewHandler.GetProductReviews))
	mux.Add("PATCH", "/reviews/:id", authMiddleware.ThenFunc(app.reviewHandler.UpdateReview))
	mux.Del("/reviews/:id", authMiddleware.ThenFunc(app.reviewHandler.DeleteReview))

	// Notifications
	mux.Get("/notifications", authMiddleware.ThenFunc(app.notificationHandler.List))
	mux.Add("PATCH", "/notifications/read-all", authMiddleware.ThenFunc(app.notificationHandler.MarkAllRead))
	mux.Add("PATCH", "/notifications/:id/read", authMiddleware.ThenFunc(app.notificationHandler.MarkRead))
	mux.Del("/notifications/:id", authMiddleware.ThenFunc(app.notificationHandler.Delete))
	mux.Post("/notifications/token", authMiddleware.ThenFunc(app.notificationHandler.RegisterDeviceToken))

	// Live notification channel
	mux.Get("/ws", authMiddleware.ThenFunc(app.WebSocketHandler))

	return standardMiddleware.Then(mux)
}
