/**
 * @description
 * This is the main entry point for the payout backend. Its responsibility is
 * to initialize all components — configuration, the users store, the
 * Razorpay client, the payout service — and serve the HTTP API.
 *
 * Key features:
 * - Loads application configuration from environment variables.
 * - Bootstraps the users file on first run.
 * - Wires up the core workflow with its dependencies (store, provider client).
 * - Starts the HTTP server and implements graceful shutdown.
 *
 * @dependencies
 * - The service's internal packages for config, api, app logic, and storage.
 * - godotenv for local config, chi (via the api package) for routing.
 */
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

	"github.com/joho/godotenv"

	"github.com/SagarAhir/razorpay-claim-money-poc/internal/api"
	"github.com/SagarAhir/razorpay-claim-money-poc/internal/app"
	"github.com/SagarAhir/razorpay-claim-money-poc/internal/config"
	"github.com/SagarAhir/razorpay-claim-money-poc/internal/store"
	"github.com/SagarAhir/razorpay-claim-money-poc/pkg/razorpayclient"
)

func main() {
	// Load .env file for local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	// Bootstrap the users file on first run; never overwrites an existing one.
	repo := store.NewFileRepository(cfg.UsersFile)
	if err := repo.EnsureInitialized(context.Background(), cfg.DefaultUserID); err != nil {
		log.Fatalf("cannot initialize users store: %v", err)
	}
	log.Printf("Users store ready at %s", cfg.UsersFile)

	razorpayClient := razorpayclient.NewClient(cfg.RazorpayAPIBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	payoutService := app.NewPayoutService(repo, razorpayClient, cfg)

	handler := api.NewHandler(payoutService, cfg.DefaultUserID)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %s\n", err)
		}
	}()

	// Wait for termination signal for graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down payout backend...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
