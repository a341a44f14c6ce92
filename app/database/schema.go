package database

import (
	"database/sql"

	"github.com/Rushirajkorde/Rent-Edge/app/config"
)

// EnsureSchema creates every table the application needs. All statements are
// idempotent so the bootstrap can run on every start.
func EnsureSchema(db *sql.DB) error {
	logg := config.GetLogger()
	logg.Info("ensuring database schema")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			password_hash TEXT NOT NULL,
			role VARCHAR(10) NOT NULL,
			linked_property_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (email, role)
		)`,
		`CREATE TABLE IF NOT EXISTS properties (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			owner_upi_id TEXT NOT NULL,
			rent_amount BIGINT NOT NULL,
			security_deposit BIGINT NOT NULL,
			due_date DATE NOT NULL,
			property_code VARCHAR(6) NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS tenant_records (
			tenant_id UUID PRIMARY KEY,
			property_id UUID NOT NULL REFERENCES properties(id),
			current_deposit BIGINT NOT NULL,
			last_payment_date TIMESTAMPTZ NOT NULL,
			move_in_date TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS fine_records (
			id UUID PRIMARY KEY,
			tenant_id UUID NOT NULL REFERENCES tenant_records(tenant_id) ON DELETE CASCADE,
			date TIMESTAMPTZ NOT NULL,
			amount_deducted BIGINT NOT NULL,
			days_late INT NOT NULL,
			rent_month TEXT NOT NULL,
			seq BIGSERIAL
		)`,
		`CREATE TABLE IF NOT EXISTS payment_transactions (
			id UUID PRIMARY KEY,
			tenant_id UUID NOT NULL REFERENCES tenant_records(tenant_id) ON DELETE CASCADE,
			date TIMESTAMPTZ NOT NULL,
			amount_paid BIGINT NOT NULL,
			fine_deducted BIGINT NOT NULL,
			rent_month TEXT NOT NULL,
			transaction_ref TEXT NOT NULL,
			seq BIGSERIAL
		)`,
		`CREATE TABLE IF NOT EXISTS maintenance_requests (
			id UUID PRIMARY KEY,
			property_id UUID NOT NULL REFERENCES properties(id),
			tenant_id UUID NOT NULL,
			tenant_name TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'OPEN',
			ai_enhanced BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_properties_owner ON properties(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tenant_records_property ON tenant_records(property_id)`,
		`CREATE INDEX IF NOT EXISTS idx_fine_records_tenant ON fine_records(tenant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_transactions_tenant ON payment_transactions(tenant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_maintenance_property ON maintenance_requests(property_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			logg.WithError(err).Error("schema statement failed")
			return err
		}
	}

	logg.Info("database schema ready")
	return nil
}
