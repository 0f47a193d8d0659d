package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

// nullIfEmpty returns NULL if the string is empty, otherwise returns the string
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with catalog and demo data",
		Commands: []*cli.Command{
			{
				Name:  "master",
				Usage: "Seed master data (companies, warehouses, products, suppliers, catalog links)",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing master seed CSVs",
						Value:   "./data/seeds/master_data",
						EnvVars: []string{"SEED_DATA_DIR"},
					},
				},
				Action: runMasterSeeder,
			},
			{
				Name:  "movements",
				Usage: "Generate a demo outbound movement history over the trailing window",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.IntFlag{
						Name:  "days",
						Usage: "Number of trailing days to cover",
						Value: 30,
					},
					&cli.Int64Flag{
						Name:  "rand-seed",
						Usage: "Seed for the movement generator",
						Value: 1,
					},
				},
				Action: runMovementSeeder,
			},
			{
				Name:  "all",
				Usage: "Seed master data and demo movements",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing master seed CSVs",
						Value:   "./data/seeds/master_data",
						EnvVars: []string{"SEED_DATA_DIR"},
					},
					&cli.IntFlag{
						Name:  "days",
						Usage: "Number of trailing days to cover",
						Value: 30,
					},
					&cli.Int64Flag{
						Name:  "rand-seed",
						Usage: "Seed for the movement generator",
						Value: 1,
					},
				},
				Action: func(c *cli.Context) error {
					if err := runMasterSeeder(c); err != nil {
						return fmt.Errorf("error running master seed: %w", err)
					}
					if err := runMovementSeeder(c); err != nil {
						return fmt.Errorf("error running movement seed: %w", err)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runMasterSeeder(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	log.Println("Starting database seeding...")

	if err := seedMasterData(ctx, tx, c.String("data-dir")); err != nil {
		return fmt.Errorf("failed to seed master data: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func seedMasterData(ctx context.Context, tx *sql.Tx, dataDir string) error {
	tables := []struct {
		name    string
		columns []string
	}{
		{"companies", []string{"name"}},
		{"warehouses", []string{"company_id", "name", "status"}},
		{"products", []string{"name", "sku", "price", "reorder_level", "is_active"}},
		{"suppliers", []string{"name", "email", "contact_person", "status"}},
		{"supplier_products", []string{"product_id", "supplier_id", "is_active", "is_preferred_supplier", "cost_price", "lead_time_days", "minimum_order_quantity"}},
		{"inventory", []string{"product_id", "warehouse_id", "quantity_available"}},
	}

	for _, table := range tables {
		path := filepath.Join(dataDir, table.name+".csv")
		if err := seedTable(ctx, tx, table.name, table.columns, path); err != nil {
			return fmt.Errorf("failed to seed %s: %w", table.name, err)
		}
	}

	return nil
}

func seedTable(ctx context.Context, tx *sql.Tx, tableName string, columns []string, filePath string) error {
	log.Printf("Seeding %s from %s\n", tableName, filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	headerIndex := make(map[string]int, len(header))
	for i, col := range header {
		headerIndex[col] = i
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING",
		tableName,
		joinColumns(columns),
		joinColumns(placeholders),
	)

	rows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		args := make([]interface{}, len(columns))
		for i, col := range columns {
			idx, ok := headerIndex[col]
			if !ok || idx >= len(record) {
				return fmt.Errorf("column %q missing from %s", col, filePath)
			}
			args[i] = nullIfEmpty(record[idx])
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
		rows++
	}

	log.Printf("Successfully seeded %s (%d rows)\n", tableName, rows)
	return nil
}

func joinColumns(columns []string) string {
	out := ""
	for i, col := range columns {
		if i > 0 {
			out += ", "
		}
		out += col
	}
	return out
}
