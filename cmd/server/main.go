package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/KoderSpark/lux-coin-frontend/internal/backend"
	"github.com/KoderSpark/lux-coin-frontend/internal/config"
	"github.com/KoderSpark/lux-coin-frontend/internal/credentials"
	"github.com/KoderSpark/lux-coin-frontend/internal/handlers"
)

func main() {
	// Configure slog as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Backend API client
	api := backend.NewClient(cfg.APIURL)

	// 3. Cookie sessions: credentials (the two bearer tokens) + flash messages
	cookieStore := sessions.NewCookieStore(cfg.SessionKey)
	cookieStore.Options.HttpOnly = true
	cookieStore.Options.Secure = cfg.CookieSecure
	cookieStore.Options.SameSite = http.SameSiteLaxMode
	cookieStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		cookieStore.Options.Domain = cfg.CookieDomain
	}
	creds := credentials.NewStore(cookieStore)

	// 4. Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Handlers
	gateHandler := &handlers.GateHandler{
		API:          api,
		Creds:        creds,
		SessionStore: cookieStore,
		Templates:    templates,
	}
	portalHandler := &handlers.PortalHandler{
		API:          api,
		Creds:        creds,
		SessionStore: cookieStore,
		Templates:    templates,
	}
	adminHandler := &handlers.AdminHandler{
		API:          api,
		Creds:        creds,
		SessionStore: cookieStore,
		Templates:    templates,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate limiters for the public POST routes
	gateLimiter := handlers.NewRateLimiter(10 * time.Second)
	inquiryLimiter := handlers.NewRateLimiter(1 * time.Minute)

	// Public Entry (the "/" pattern also catches unmatched paths)
	mux.HandleFunc("/", gateHandler.Index)
	mux.HandleFunc("POST /validate-code", gateLimiter.Middleware(gateHandler.ValidateCode))
	mux.HandleFunc("/logout", gateHandler.Logout)

	// Invite-gated Portal
	mux.HandleFunc("GET /portal", portalHandler.Protect(portalHandler.Home))
	mux.HandleFunc("GET /portal/listings", portalHandler.Protect(portalHandler.Listings))
	mux.HandleFunc("GET /portal/listings/{id}", portalHandler.Protect(portalHandler.ListingDetail))
	mux.HandleFunc("POST /portal/listings/{id}/inquiry", inquiryLimiter.Middleware(portalHandler.Protect(portalHandler.SubmitInquiry)))

	// Admin Authentication
	mux.HandleFunc("GET /admin/login", adminHandler.LoginGet)
	mux.HandleFunc("POST /admin/login", adminHandler.LoginPost)
	mux.HandleFunc("/admin/logout", adminHandler.Logout)

	// Protected Admin Console
	mux.HandleFunc("GET /admin", adminHandler.Guard(adminHandler.Index))
	mux.HandleFunc("GET /admin/dashboard", adminHandler.Guard(adminHandler.Dashboard))
	mux.HandleFunc("GET /admin/listings", adminHandler.Guard(adminHandler.ListListings))
	mux.HandleFunc("GET /admin/listings/new", adminHandler.Guard(adminHandler.NewListingForm))
	mux.HandleFunc("POST /admin/listings", adminHandler.Guard(adminHandler.CreateListing))
	mux.HandleFunc("GET /admin/listings/{id}/edit", adminHandler.Guard(adminHandler.EditListingForm))
	mux.HandleFunc("POST /admin/listings/{id}", adminHandler.Guard(adminHandler.UpdateListing))
	mux.HandleFunc("POST /admin/listings/{id}/delete", adminHandler.Guard(adminHandler.DeleteListing))
	mux.HandleFunc("POST /admin/listings/{id}/featured", adminHandler.Guard(adminHandler.ToggleFeatured))
	mux.HandleFunc("GET /admin/inquiries", adminHandler.Guard(adminHandler.ListInquiries))
	mux.HandleFunc("POST /admin/inquiries/{id}", adminHandler.Guard(adminHandler.UpdateInquiry))
	mux.HandleFunc("GET /admin/invite-codes", adminHandler.Guard(adminHandler.ListInviteCodes))
	mux.HandleFunc("POST /admin/invite-codes", adminHandler.Guard(adminHandler.GenerateInviteCodes))
	mux.HandleFunc("POST /admin/invite-codes/{id}/toggle", adminHandler.Guard(adminHandler.ToggleInviteCode))
	mux.HandleFunc("POST /admin/invite-codes/{id}/delete", adminHandler.Guard(adminHandler.DeleteInviteCode))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "backend", cfg.APIURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
