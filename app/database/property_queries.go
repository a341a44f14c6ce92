package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Rushirajkorde/Rent-Edge/app/models"
)

// uniqueViolation is the Postgres error code raised when an insert collides
// with a unique constraint, e.g. a duplicate property code.
const uniqueViolation = "23505"

func InsertProperty(db *sql.DB, prop *models.Property) error {
	query := `INSERT INTO properties (id, owner_id, name, address, owner_upi_id, rent_amount, security_deposit, due_date, property_code)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING created_at`
	err := db.QueryRow(query,
		prop.ID, prop.OwnerID, prop.Name, prop.Address, prop.OwnerUpiID,
		prop.RentAmount, prop.SecurityDeposit, prop.DueDate, prop.PropertyCode,
	).Scan(&prop.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting property: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// failure, wrapped or not. Callers use it to retry property-code generation
// on the rare collision and to surface racing duplicate signups.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

func GetOwnerProperties(db *sql.DB, ownerID string) ([]*models.Property, error) {
	query := `SELECT id, owner_id, name, address, owner_upi_id, rent_amount, security_deposit, due_date, property_code, created_at
			  FROM properties WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := db.Query(query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var props []*models.Property
	for rows.Next() {
		prop := &models.Property{}
		if err := rows.Scan(
			&prop.ID, &prop.OwnerID, &prop.Name, &prop.Address, &prop.OwnerUpiID,
			&prop.RentAmount, &prop.SecurityDeposit, &prop.DueDate, &prop.PropertyCode, &prop.CreatedAt,
		); err != nil {
			return nil, err
		}
		props = append(props, prop)
	}
	return props, rows.Err()
}

func getProperty(ctx context.Context, db *sql.DB, where string, arg any) (*models.Property, error) {
	prop := &models.Property{}
	query := `SELECT id, owner_id, name, address, owner_upi_id, rent_amount, security_deposit, due_date, property_code, created_at
			  FROM properties WHERE ` + where
	err := db.QueryRowContext(ctx, query, arg).Scan(
		&prop.ID, &prop.OwnerID, &prop.Name, &prop.Address, &prop.OwnerUpiID,
		&prop.RentAmount, &prop.SecurityDeposit, &prop.DueDate, &prop.PropertyCode, &prop.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return prop, nil
}

// PropertyStore adapts the property queries to the ledger service's
// PropertyDirectory boundary.
type PropertyStore struct {
	DB *sql.DB
}

func NewPropertyStore(db *sql.DB) *PropertyStore {
	return &PropertyStore{DB: db}
}

func (s *PropertyStore) GetPropertyByID(ctx context.Context, id string) (*models.Property, error) {
	return getProperty(ctx, s.DB, "id = $1", id)
}

func (s *PropertyStore) GetPropertyByCode(ctx context.Context, code string) (*models.Property, error) {
	return getProperty(ctx, s.DB, "property_code = $1", code)
}
