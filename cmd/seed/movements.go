package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/urfave/cli/v2"
)

type inventoryPair struct {
	productID   int64
	warehouseID int64
	quantity    int
}

// runMovementSeeder writes a synthetic outbound movement history for every
// stocked (warehouse, product) pair, spread over the trailing window. The
// generated history is what the alert engine aggregates into velocities.
func runMovementSeeder(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	days := c.Int("days")
	if days <= 0 {
		days = 30
	}
	rng := rand.New(rand.NewSource(c.Int64("rand-seed")))

	pairs, err := loadInventoryPairs(ctx, db)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		log.Println("No inventory rows found; seed master data first")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	total := 0
	for _, pair := range pairs {
		// Leave roughly a quarter of the pairs without sales so the
		// no-velocity exclusion path has data to hit.
		if rng.Intn(4) == 0 {
			continue
		}

		activeDays := 1 + rng.Intn(days)
		for d := 0; d < activeDays; d++ {
			occurredAt := now.AddDate(0, 0, -rng.Intn(days)).Add(-time.Duration(rng.Intn(86400)) * time.Second)
			quantity := -(1 + rng.Intn(5))

			if _, err := tx.ExecContext(ctx,
				`INSERT INTO inventory_movements (product_id, warehouse_id, quantity, movement_type, occurred_at)
				 VALUES ($1, $2, $3, 'out', $4)`,
				pair.productID, pair.warehouseID, quantity, occurredAt,
			); err != nil {
				return fmt.Errorf("failed to insert movement: %w", err)
			}
			total++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Generated %d demo movements across %d inventory pairs\n", total, len(pairs))
	return nil
}

func loadInventoryPairs(ctx context.Context, db *sql.DB) ([]inventoryPair, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT product_id, warehouse_id, quantity_available FROM inventory`)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory pairs: %w", err)
	}
	defer rows.Close()

	var pairs []inventoryPair
	for rows.Next() {
		var pair inventoryPair
		if err := rows.Scan(&pair.productID, &pair.warehouseID, &pair.quantity); err != nil {
			return nil, fmt.Errorf("failed to scan inventory pair: %w", err)
		}
		pairs = append(pairs, pair)
	}

	return pairs, rows.Err()
}
