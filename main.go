package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goldenwine/customers"
	"goldenwine/db"
	"goldenwine/discounts"
	"goldenwine/notify"
	"goldenwine/orders"
	"goldenwine/qr"
	"goldenwine/ratelim"
	"goldenwine/rdx"
	"goldenwine/routes"
	"goldenwine/sales"
	"goldenwine/shopify"
	"goldenwine/store"
	"goldenwine/tasks"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// XSS, content sniffing, framing
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		// HSTS (must be on HTTPS)
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		// Referrer and permissions
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		// Prevent caching
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(rateLimiter *ratelim.RateLimiter, st store.Store, platform *shopify.Client, runner *tasks.Runner) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	dispatcher := notify.NewDispatcher(notify.NewSMTPMailer(notify.SMTPConfigFromEnv()), "")
	qrCfg := qr.ConfigFromEnv()

	resolver := customers.NewResolver(st, platform, runner)
	reconciler := orders.NewReconciler(st, platform, dispatcher, runner)
	ledger := sales.NewLedger(st)
	validator := discounts.NewValidator(platform)

	routes.AddCustomerRoutes(router, rateLimiter, customers.NewCustomerService(resolver))
	routes.AddOrderRoutes(router, rateLimiter, orders.NewOrderService(reconciler, dispatcher, qrCfg))
	routes.AddSalesRoutes(router, rateLimiter, sales.NewSalesService(ledger))
	routes.AddDiscountRoutes(router, rateLimiter, discounts.NewDiscountService(validator))

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	// read port
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	if err := db.Connect(context.Background()); err != nil {
		log.Fatalf("❌ MongoDB connection failed: %v", err)
	}
	rdx.Init()

	rateLimiter := ratelim.NewRateLimiter()
	runner := tasks.NewRunner()
	st := store.NewMongoStore(db.Database)
	platform := shopify.NewClient(shopify.ConfigFromEnv())

	router := setupRouter(rateLimiter, st, platform, runner)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	// create HTTP server
	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// on shutdown: drain background tasks, close connections
	server.RegisterOnShutdown(func() {
		log.Println("🛑 Draining background tasks...")
		runner.Wait()
	})

	// start server
	go func() {
		log.Printf("🚀 Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	// initiate graceful shutdown
	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}
	runner.Wait()
	db.Disconnect(context.Background())

	log.Println("✅ Server stopped cleanly")
}
