package database

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/Rushirajkorde/Rent-Edge/app/models"
)

// TenantWithUser pairs a ledger record with the account that owns it, for
// the owner dashboard listing.
type TenantWithUser struct {
	User   *models.User         `json:"user"`
	Record *models.TenantRecord `json:"record"`
}

// GetTenantsForProperties lists every tenant linked to any of the given
// properties. Histories are left out of the listing; the owner drills into a
// tenant to see them.
func GetTenantsForProperties(db *sql.DB, propertyIDs []string) ([]*TenantWithUser, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}

	query := `SELECT t.tenant_id, t.property_id, t.current_deposit, t.last_payment_date, t.move_in_date,
			  u.id, u.name, u.email, COALESCE(u.phone, ''), u.role, u.created_at, u.updated_at
			  FROM tenant_records t
			  JOIN users u ON u.id = t.tenant_id
			  WHERE t.property_id = ANY($1)
			  ORDER BY t.move_in_date DESC`
	rows, err := db.Query(query, pq.Array(propertyIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*TenantWithUser
	for rows.Next() {
		rec := &models.TenantRecord{}
		user := &models.User{}
		var roleStr string
		if err := rows.Scan(
			&rec.ID, &rec.PropertyID, &rec.CurrentDeposit, &rec.LastPaymentDate, &rec.MoveInDate,
			&user.ID, &user.Name, &user.Email, &user.Phone, &roleStr, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		user.Role = models.UserRole(roleStr)
		tenants = append(tenants, &TenantWithUser{User: user, Record: rec})
	}
	return tenants, rows.Err()
}
