package main

import (
	"database/sql"
	"log"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"rentedBack/internal/handlers"
	"rentedBack/internal/repositories"
	"rentedBack/internal/services"
	"rentedBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB

	tokenManager *utils.Manager
	wsManager    *WebSocketManager

	userRepo *repositories.UserRepository

	userHandler         *handlers.UserHandler
	productHandler      *handlers.ProductHandler
	cartHandler         *handlers.CartHandler
	bookingHandler      *handlers.BookingHandler
	paymentHandler      *handlers.PaymentHandler
	reviewHandler       *handlers.ReviewHandler
	notificationHandler *handlers.NotificationHandler
}

func initializeApp(db *sql.DB, cache *redis.Client, fcm *messaging.Client, tokenManager *utils.Manager, storage *utils.S3Storage, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	productRepo := repositories.ProductRepository{DB: db}
	cartRepo := repositories.CartRepository{DB: db}
	bookingRepo := repositories.BookingRepository{DB: db}
	paymentRepo := repositories.PaymentRepository{DB: db}
	reviewRepo := repositories.ReviewRepository{DB: db}
	notificationRepo := repositories.NotificationRepository{DB: db}

	// Push delivery: websocket first, then FCM device tokens.
	wsManager := NewWebSocketManager()
	notifier := &services.PushNotifier{
		FCM:     fcm,
		Tokens:  &notificationRepo,
		Sockets: wsManager,
	}

	// Services
	userService := &services.UserService{UserRepo: &userRepo, TokenManager: tokenManager}
	productService := &services.ProductService{ProductRepo: &productRepo}
	cartService := &services.CartService{Carts: &cartRepo, Products: &productRepo, Cache: cache}
	bookingService := &services.BookingService{
		Bookings:      &bookingRepo,
		Products:      &productRepo,
		Carts:         &cartRepo,
		Notifications: &notificationRepo,
		Notifier:      notifier,
	}
	paymentService := &services.PaymentService{
		Payments:      &paymentRepo,
		Bookings:      &bookingRepo,
		Products:      &productRepo,
		Notifications: &notificationRepo,
		Notifier:      notifier,
	}
	reviewService := &services.ReviewService{
		Reviews:       &reviewRepo,
		Bookings:      &bookingRepo,
		Products:      &productRepo,
		Notifications: &notificationRepo,
		Notifier:      notifier,
	}
	notificationService := &services.NotificationService{Notifications: &notificationRepo}

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService}
	productHandler := &handlers.ProductHandler{Service: productService, Storage: storage}
	cartHandler := &handlers.CartHandler{Service: cartService}
	bookingHandler := &handlers.BookingHandler{Service: bookingService}
	paymentHandler := &handlers.PaymentHandler{Service: paymentService}
	reviewHandler := &handlers.ReviewHandler{Service: reviewService}
	notificationHandler := &handlers.NotificationHandler{Service: notificationService}

	return &application{
		errorLog:            errorLog,
		infoLog:             infoLog,
		db:                  db,
		tokenManager:        tokenManager,
		wsManager:           wsManager,
		userRepo:            &userRepo,
		userHandler:         userHandler,
		productHandler:      productHandler,
		cartHandler:         cartHandler,
		bookingHandler:      bookingHandler,
		paymentHandler:      paymentHandler,
		reviewHandler:       reviewHandler,
		notificationHandler: notificationHandler,
	}
}

func openDB(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	return db, nil
}
