package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Rushirajkorde/Rent-Edge/app/models"
)

func CreateMaintenanceRequest(db *sql.DB, req *models.MaintenanceRequest) error {
	query := `INSERT INTO maintenance_requests (id, property_id, tenant_id, tenant_name, title, description, status, ai_enhanced)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING created_at`
	err := db.QueryRow(query,
		req.ID, req.PropertyID, req.TenantID, req.TenantName,
		req.Title, req.Description, string(req.Status), req.AiEnhanced,
	).Scan(&req.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting maintenance request: %w", err)
	}
	return nil
}

func GetMaintenanceRequests(db *sql.DB, propertyIDs []string) ([]*models.MaintenanceRequest, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}

	query := `SELECT id, property_id, tenant_id, tenant_name, title, description, status, ai_enhanced, created_at
			  FROM maintenance_requests
			  WHERE property_id = ANY($1)
			  ORDER BY created_at DESC`
	rows, err := db.Query(query, pq.Array(propertyIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.MaintenanceRequest
	for rows.Next() {
		req := &models.MaintenanceRequest{}
		var status string
		if err := rows.Scan(
			&req.ID, &req.PropertyID, &req.TenantID, &req.TenantName,
			&req.Title, &req.Description, &status, &req.AiEnhanced, &req.CreatedAt,
		); err != nil {
			return nil, err
		}
		req.Status = models.MaintenanceStatus(status)
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func UpdateMaintenanceStatus(db *sql.DB, requestID string, status models.MaintenanceStatus) error {
	result, err := db.Exec(`UPDATE maintenance_requests SET status = $1 WHERE id = $2`, string(status), requestID)
	if err != nil {
		return fmt.Errorf("updating maintenance status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
