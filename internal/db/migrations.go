package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS quotes (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		owner VARCHAR(128) NOT NULL,
		client_name TEXT NOT NULL,
		client_address TEXT NOT NULL,
		client_city TEXT NOT NULL,
		client_tax_id TEXT NOT NULL,
		items JSONB NOT NULL DEFAULT '[]',
		validity_days INT NOT NULL DEFAULT 10,
		payment_terms TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'quotes' AND column_name = 'validity_days') THEN
			ALTER TABLE quotes ADD COLUMN validity_days INT NOT NULL DEFAULT 10;
		END IF;
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'quotes' AND column_name = 'payment_terms') THEN
			ALTER TABLE quotes ADD COLUMN payment_terms TEXT NOT NULL DEFAULT '';
		END IF;
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'quotes' AND column_name = 'owner') THEN
			ALTER TABLE quotes ADD COLUMN owner VARCHAR(128) NOT NULL DEFAULT '';
		END IF;
	END
	$$;`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_owner ON quotes (owner);`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_client_name ON quotes (LOWER(client_name));`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_created_at ON quotes (created_at DESC);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
