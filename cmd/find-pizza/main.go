package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jafarshop/fastpizza/internal/config"
	"github.com/jafarshop/fastpizza/internal/restaurant"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-pizza/main.go <name>")
		fmt.Println("Example: go run cmd/find-pizza/main.go \"margherita\"")
		os.Exit(1)
	}

	query := strings.ToLower(os.Args[1])

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := restaurant.NewClient(cfg.Restaurant, logger)

	fmt.Printf("🔍 Searching the menu for: %s\n\n", os.Args[1])

	menu, err := client.GetMenu(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch menu: %v\n", err)
		os.Exit(1)
	}

	found := 0
	for _, item := range menu {
		if !strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		found++

		fmt.Printf("Pizza ID: %d\n", item.ID)
		fmt.Printf("Name: %s\n", item.Name)
		fmt.Printf("Price: %s\n", item.UnitPrice.StringFixed(2))
		if len(item.Ingredients) > 0 {
			fmt.Printf("Ingredients: %s\n", strings.Join(item.Ingredients, ", "))
		}
		if item.SoldOut {
			fmt.Printf("⚠️  Sold out\n")
		}
		fmt.Println()
	}

	if found == 0 {
		fmt.Printf("❌ No pizza matching '%s' among %d menu items.\n", os.Args[1], len(menu))
		os.Exit(1)
	}
	fmt.Printf("✅ %d match(es)\n", found)
}
