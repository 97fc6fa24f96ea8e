package store

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// --- Maintenance logs ---

func (s *PostgresStore) CreateMaintenanceLog(ctx context.Context, l *MaintenanceLog) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO maintenance_logs (property_id, component, description, cost, serviced_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		l.PropertyID, l.Component, l.Description, l.Cost, l.ServicedAt,
	).Scan(&l.ID)
}

func (s *PostgresStore) GetLogsForProperty(ctx context.Context, propertyID uuid.UUID) ([]*MaintenanceLog, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, property_id, component, description, cost, serviced_at
		FROM maintenance_logs WHERE property_id = $1
		ORDER BY serviced_at ASC`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*MaintenanceLog
	for rows.Next() {
		l := &MaintenanceLog{}
		if err := rows.Scan(&l.ID, &l.PropertyID, &l.Component, &l.Description, &l.Cost, &l.ServicedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// --- Documents ---

func (s *PostgresStore) CreateDocument(ctx context.Context, d *Document) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO documents (tenant_id, doc_type, file_name, subject_name, verified)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, uploaded_at`,
		d.TenantID, d.DocType, d.FileName, d.SubjectName, d.Verified,
	).Scan(&d.ID, &d.UploadedAt)
}

func (s *PostgresStore) GetDocumentsForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Document, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, doc_type, file_name, subject_name, verified, uploaded_at
		FROM documents WHERE tenant_id = $1
		ORDER BY uploaded_at ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		d := &Document{}
		if err := rows.Scan(&d.ID, &d.TenantID, &d.DocType, &d.FileName, &d.SubjectName, &d.Verified, &d.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// --- Inspections ---

func (s *PostgresStore) CreateInspection(ctx context.Context, i *Inspection) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO inspections (unit_id, condition_score, notes, inspected_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		i.UnitID, i.ConditionScore, i.Notes, i.InspectedAt,
	).Scan(&i.ID)
}

func (s *PostgresStore) GetLatestInspection(ctx context.Context, unitID uuid.UUID) (*Inspection, error) {
	i := &Inspection{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, unit_id, condition_score, notes, inspected_at
		FROM inspections WHERE unit_id = $1
		ORDER BY inspected_at DESC LIMIT 1`, unitID,
	).Scan(&i.ID, &i.UnitID, &i.ConditionScore, &i.Notes, &i.InspectedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return i, nil
}

// --- Meter readings ---

func (s *PostgresStore) CreateMeterReading(ctx context.Context, r *MeterReading) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO meter_readings (property_id, meter_type, usage, reading_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		r.PropertyID, r.MeterType, r.Usage, r.ReadingDate,
	).Scan(&r.ID)
}

func (s *PostgresStore) GetReadingsForProperty(ctx context.Context, propertyID uuid.UUID, meterType string) ([]*MeterReading, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, property_id, meter_type, usage, reading_date
		FROM meter_readings WHERE property_id = $1 AND meter_type = $2
		ORDER BY reading_date ASC`, propertyID, meterType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []*MeterReading
	for rows.Next() {
		r := &MeterReading{}
		if err := rows.Scan(&r.ID, &r.PropertyID, &r.MeterType, &r.Usage, &r.ReadingDate); err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// --- Assessments ---

func (s *PostgresStore) CreateAssessment(ctx context.Context, a *Assessment) error {
	factorsJSON, _ := json.Marshal(a.Factors)
	return s.pool.QueryRow(ctx, `
		INSERT INTO assessments (tenant_id, kind, score, category, factors, recommendations)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		a.TenantID, a.Kind, a.Score, a.Category, factorsJSON, a.Recommendations,
	).Scan(&a.ID, &a.CreatedAt)
}

func (s *PostgresStore) GetAssessmentsForTenant(ctx context.Context, tenantID uuid.UUID, kind AssessmentKind) ([]*Assessment, error) {
	query := `
		SELECT id, tenant_id, kind, score, category, factors, recommendations, created_at
		FROM assessments WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	if kind != "" {
		query += ` AND kind = $2`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []*Assessment
	for rows.Next() {
		a := &Assessment{}
		var factorsJSON []byte
		if err := rows.Scan(&a.ID, &a.TenantID, &a.Kind, &a.Score, &a.Category, &factorsJSON, &a.Recommendations, &a.CreatedAt); err != nil {
			return nil, err
		}
		if factorsJSON != nil {
			_ = json.Unmarshal(factorsJSON, &a.Factors)
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

// --- Market / portfolio queries ---

func (s *PostgresStore) GetComparableRents(ctx context.Context, city string, bedrooms int) ([]decimal.Decimal, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.rent
		FROM units u
		JOIN properties p ON p.id = u.property_id
		WHERE p.city = $1 AND u.bedrooms = $2 AND u.occupied
		ORDER BY u.rent ASC`, city, bedrooms)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rents []decimal.Decimal
	for rows.Next() {
		var r decimal.Decimal
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		rents = append(rents, r)
	}
	return rents, rows.Err()
}

func (s *PostgresStore) GetOccupancyRate(ctx context.Context, propertyID uuid.UUID) (float64, error) {
	var total, occupied int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN occupied THEN 1 ELSE 0 END), 0)
		FROM units WHERE property_id = $1`, propertyID,
	).Scan(&total, &occupied)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	return float64(occupied) / float64(total), nil
}

func (s *PostgresStore) GetStats(ctx context.Context) (*PortfolioStats, error) {
	stats := &PortfolioStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM properties),
			(SELECT COUNT(*) FROM units),
			(SELECT COALESCE(SUM(CASE WHEN occupied THEN 1 ELSE 0 END), 0) FROM units),
			(SELECT COUNT(*) FROM maintenance_requests WHERE status IN ('open', 'in_progress')),
			(SELECT COALESCE(AVG(reliability_score), 0) FROM tenants WHERE reliability_score IS NOT NULL),
			(SELECT COALESCE(AVG(move_out_probability), 0) FROM tenants WHERE move_out_probability IS NOT NULL),
			(SELECT COUNT(*) FROM assessments)`,
	).Scan(&stats.TotalProperties, &stats.TotalUnits, &stats.OccupiedUnits,
		&stats.OpenRequests, &stats.AvgReliability, &stats.AvgMoveOutRisk, &stats.AssessmentsTotal)
	return stats, err
}
