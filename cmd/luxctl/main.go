// luxctl is a small ops tool for the marketplace backend: it logs in with
// admin credentials and batch-generates invite codes without going through
// the web console.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/KoderSpark/lux-coin-frontend/internal/backend"
)

func main() {
	genCmd := flag.NewFlagSet("gen-codes", flag.ExitOnError)
	quantity := genCmd.Int("quantity", 1, "Number of invite codes to generate (max 50)")
	usageLimit := genCmd.Int("usage-limit", 1, "Usage limit per code")
	notes := genCmd.String("notes", "", "Optional note attached to every generated code")

	if len(os.Args) < 2 {
		fmt.Println("expected 'gen-codes' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "gen-codes":
		genCmd.Parse(os.Args[2:])
		if *quantity < 1 || *quantity > 50 {
			fmt.Println("quantity must be between 1 and 50")
			genCmd.PrintDefaults()
			os.Exit(1)
		}
		generateCodes(*quantity, *usageLimit, *notes)
	default:
		fmt.Println("expected 'gen-codes' subcommand")
		os.Exit(1)
	}
}

func generateCodes(quantity, usageLimit int, notes string) {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:5000"
	}
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	api := backend.NewClient(strings.TrimRight(apiURL, "/"))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	token, profile, err := api.AdminLogin(ctx, email, password)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	creds := backend.Credentials{Admin: token}

	codes, err := api.CreateInviteCodes(ctx, creds, quantity, usageLimit, notes)
	if err != nil {
		log.Fatalf("Failed to generate codes: %v", err)
	}

	fmt.Printf("Generated %d codes as %s:\n", len(codes), profile.Email)
	for _, code := range codes {
		fmt.Printf("  %s (limit %d)\n", code.Code, code.UsageLimit)
	}
}
