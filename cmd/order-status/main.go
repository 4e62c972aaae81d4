package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jafarshop/fastpizza/internal/config"
	"github.com/jafarshop/fastpizza/internal/orderview"
	"github.com/jafarshop/fastpizza/internal/repository/postgres"
	"github.com/jafarshop/fastpizza/internal/restaurant"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/order-status/main.go <order-id>")
		fmt.Println("Example: go run cmd/order-status/main.go \"IIDSAT\"")
		os.Exit(1)
	}

	orderID := os.Args[1]
	ctx := context.Background()

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

	record, err := client.GetOrder(ctx, orderID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch order: %v\n", err)
		os.Exit(1)
	}

	view := orderview.New(*record, time.Now())

	fmt.Printf("Order #%s\n", record.ID)
	fmt.Printf("Customer: %s\n", record.Customer)
	fmt.Printf("Status: %s\n", record.Status.Label())
	if record.Priority {
		fmt.Printf("Priority: yes\n")
	}
	fmt.Printf("Delivery: %s (%s)\n", view.DeliveryMessage(), record.EstimatedDeliveryTime.Local().Format(time.Kitchen))
	fmt.Printf("\nItems:\n")
	for _, item := range record.Cart {
		fmt.Printf("  %dx %s  %s\n", item.Quantity, item.Name, item.TotalPrice().StringFixed(2))
	}
	fmt.Printf("\nPrice pizza: %s\n", record.OrderPrice.StringFixed(2))
	if record.Priority {
		fmt.Printf("Price priority: %s\n", record.PriorityPrice.StringFixed(2))
	}
	fmt.Printf("To pay on delivery: %s\n", view.TotalPayable().StringFixed(2))

	// Audit trail is only kept when a database is configured
	if !cfg.Database.Enabled() {
		return
	}

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	events, err := repos.OrderEvent.ListByOrderID(ctx, orderID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list order events: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nEvents:\n")
	for _, e := range events {
		fmt.Printf("  %s  %s\n", e.CreatedAt.Format(time.RFC3339), e.EventType)
	}
}
