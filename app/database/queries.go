package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Rushirajkorde/Rent-Edge/app/models"
)

// ErrDuplicateUser is returned when a signup collides with an existing email
// or phone.
var ErrDuplicateUser = errors.New("user with this email or phone already exists")

// CreateUser registers an account. Accounts are per role: an owner and a
// payer may share an email, but two accounts in the same role may not. The
// pre-check gives the friendly duplicate message; the unique constraint on
// (email, role) is the real guarantee, so a racing duplicate insert maps to
// ErrDuplicateUser too.
func CreateUser(db *sql.DB, user *models.User) error {
	var exists bool
	query := `SELECT EXISTS (
		SELECT 1 FROM users WHERE (email = $1 OR (phone <> '' AND phone = $2)) AND role = $3
	)`
	if err := db.QueryRow(query, user.Email, user.Phone, string(user.Role)).Scan(&exists); err != nil {
		return fmt.Errorf("checking existing user: %w", err)
	}
	if exists {
		return ErrDuplicateUser
	}

	insert := `INSERT INTO users (id, name, email, phone, password_hash, role)
			   VALUES ($1, $2, $3, $4, $5, $6)
			   RETURNING created_at, updated_at`
	err := db.QueryRow(insert,
		user.ID, user.Name, user.Email, user.Phone, user.PasswordHash, string(user.Role),
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetUserByIdentifier finds a user by email or phone, constrained to a role.
// Mirrors the login contract: the same identifier may exist once per role.
func GetUserByIdentifier(db *sql.DB, identifier string, role models.UserRole) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, email, COALESCE(phone, ''), password_hash, role, linked_property_id, created_at, updated_at
			  FROM users
			  WHERE (email = $1 OR phone = $1) AND role = $2`

	var roleStr string
	err := db.QueryRow(query, identifier, string(role)).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash,
		&roleStr, &user.LinkedPropertyID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = models.UserRole(roleStr)
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, email, COALESCE(phone, ''), password_hash, role, linked_property_id, created_at, updated_at
			  FROM users WHERE id = $1`

	var roleStr string
	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash,
		&roleStr, &user.LinkedPropertyID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = models.UserRole(roleStr)
	return user, nil
}

// UserStore adapts the user queries to the ledger service's UserDirectory
// boundary.
type UserStore struct {
	DB *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{DB: db}
}

func (s *UserStore) SetLinkedProperty(ctx context.Context, userID, propertyID string) error {
	query := `UPDATE users SET linked_property_id = $1, updated_at = $2 WHERE id = $3`
	_, err := s.DB.ExecContext(ctx, query, propertyID, time.Now(), userID)
	return err
}

func (s *UserStore) ClearLinkedProperty(ctx context.Context, userID string) error {
	query := `UPDATE users SET linked_property_id = NULL, updated_at = $1 WHERE id = $2`
	_, err := s.DB.ExecContext(ctx, query, time.Now(), userID)
	return err
}
