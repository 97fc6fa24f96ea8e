package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// --- Properties ---

const propertyColumns = `id, name, address, city, state, zip, year_built, created_at, updated_at`

func (s *PostgresStore) CreateProperty(ctx context.Context, p *Property) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO properties (name, address, city, state, zip, year_built)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Address, p.City, p.State, p.Zip, p.YearBuilt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (s *PostgresStore) GetProperty(ctx context.Context, id uuid.UUID) (*Property, error) {
	p := &Property{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+propertyColumns+`
		FROM properties WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Address, &p.City, &p.State, &p.Zip, &p.YearBuilt, &p.CreatedAt, &p.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostgresStore) ListProperties(ctx context.Context, limit, offset int) ([]*Property, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+propertyColumns+`
		FROM properties ORDER BY created_at ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var props []*Property
	for rows.Next() {
		p := &Property{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.City, &p.State, &p.Zip, &p.YearBuilt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, rows.Err()
}

// --- Units ---

const unitColumns = `id, property_id, number, bedrooms, bathrooms, square_feet,
	rent, amenities, condition_score, occupied, created_at, updated_at`

func (s *PostgresStore) CreateUnit(ctx context.Context, u *Unit) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO units (property_id, number, bedrooms, bathrooms, square_feet,
			rent, amenities, condition_score, occupied)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		u.PropertyID, u.Number, u.Bedrooms, u.Bathrooms, u.SquareFeet,
		u.Rent, u.Amenities, u.ConditionScore, u.Occupied,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (s *PostgresStore) GetUnit(ctx context.Context, id uuid.UUID) (*Unit, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+unitColumns+`
		FROM units WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	units, err := scanUnits(rows)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, nil
	}
	return units[0], nil
}

func (s *PostgresStore) ListUnits(ctx context.Context, propertyID uuid.UUID) ([]*Unit, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+unitColumns+`
		FROM units WHERE property_id = $1 ORDER BY number ASC`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUnits(rows)
}

func (s *PostgresStore) UpdateUnit(ctx context.Context, u *Unit) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE units SET
			number = $2, bedrooms = $3, bathrooms = $4, square_feet = $5,
			rent = $6, amenities = $7, condition_score = $8, occupied = $9,
			updated_at = now()
		WHERE id = $1`,
		u.ID, u.Number, u.Bedrooms, u.Bathrooms, u.SquareFeet,
		u.Rent, u.Amenities, u.ConditionScore, u.Occupied,
	)
	return err
}

func scanUnits(rows pgx.Rows) ([]*Unit, error) {
	var units []*Unit
	for rows.Next() {
		u := &Unit{}
		if err := rows.Scan(
			&u.ID, &u.PropertyID, &u.Number, &u.Bedrooms, &u.Bathrooms, &u.SquareFeet,
			&u.Rent, &u.Amenities, &u.ConditionScore, &u.Occupied, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// --- Tenants ---

const tenantColumns = `id, unit_id, first_name, last_name, email, phone,
	monthly_income, employment_type, employment_months,
	move_in_date, lease_end_date, prior_evictions, years_renting, references_count,
	reliability_score, fraud_risk_score, move_out_probability, satisfaction_score,
	created_at, updated_at`

func (s *PostgresStore) CreateTenant(ctx context.Context, t *Tenant) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO tenants (unit_id, first_name, last_name, email, phone,
			monthly_income, employment_type, employment_months,
			move_in_date, lease_end_date, prior_evictions, years_renting, references_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`,
		t.UnitID, t.FirstName, t.LastName, t.Email, t.Phone,
		t.MonthlyIncome, t.EmploymentType, t.EmploymentMonths,
		t.MoveInDate, t.LeaseEndDate, t.PriorEvictions, t.YearsRenting, t.ReferencesCount,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (s *PostgresStore) GetTenant(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+tenantColumns+`
		FROM tenants WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tenants, err := scanTenants(rows)
	if err != nil {
		return nil, err
	}
	if len(tenants) == 0 {
		return nil, nil
	}
	return tenants[0], nil
}

func (s *PostgresStore) ListTenants(ctx context.Context, filter TenantFilter) ([]*Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.UnitID != nil {
		n++
		query += fmt.Sprintf(" AND unit_id = $%d", n)
		args = append(args, *filter.UnitID)
	}

	query += " ORDER BY last_name ASC, first_name ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTenants(rows)
}

func (s *PostgresStore) UpdateTenant(ctx context.Context, t *Tenant) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE tenants SET
			unit_id = $2, first_name = $3, last_name = $4, email = $5, phone = $6,
			monthly_income = $7, employment_type = $8, employment_months = $9,
			move_in_date = $10, lease_end_date = $11, prior_evictions = $12,
			years_renting = $13, references_count = $14,
			reliability_score = $15, fraud_risk_score = $16,
			move_out_probability = $17, satisfaction_score = $18,
			updated_at = now()
		WHERE id = $1`,
		t.ID, t.UnitID, t.FirstName, t.LastName, t.Email, t.Phone,
		t.MonthlyIncome, t.EmploymentType, t.EmploymentMonths,
		t.MoveInDate, t.LeaseEndDate, t.PriorEvictions,
		t.YearsRenting, t.ReferencesCount,
		t.ReliabilityScore, t.FraudRiskScore,
		t.MoveOutProbability, t.SatisfactionScore,
	)
	return err
}

func scanTenants(rows pgx.Rows) ([]*Tenant, error) {
	var tenants []*Tenant
	for rows.Next() {
		t := &Tenant{}
		var email, phone, employmentType sql.NullString
		if err := rows.Scan(
			&t.ID, &t.UnitID, &t.FirstName, &t.LastName, &email, &phone,
			&t.MonthlyIncome, &employmentType, &t.EmploymentMonths,
			&t.MoveInDate, &t.LeaseEndDate, &t.PriorEvictions, &t.YearsRenting, &t.ReferencesCount,
			&t.ReliabilityScore, &t.FraudRiskScore, &t.MoveOutProbability, &t.SatisfactionScore,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if email.Valid {
			t.Email = email.String
		}
		if phone.Valid {
			t.Phone = phone.String
		}
		if employmentType.Valid {
			t.EmploymentType = employmentType.String
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// --- Payments ---

func (s *PostgresStore) CreatePayment(ctx context.Context, p *Payment) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO payments (tenant_id, amount, due_date, paid_date, status, method)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		p.TenantID, p.Amount, p.DueDate, p.PaidDate, p.Status, p.Method,
	).Scan(&p.ID, &p.CreatedAt)
}

func (s *PostgresStore) GetPaymentsForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Payment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, amount, due_date, paid_date, status, method, created_at
		FROM payments WHERE tenant_id = $1
		ORDER BY due_date ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		p := &Payment{}
		var method sql.NullString
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Amount, &p.DueDate, &p.PaidDate, &p.Status, &method, &p.CreatedAt); err != nil {
			return nil, err
		}
		if method.Valid {
			p.Method = method.String
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// --- Messages ---

func (s *PostgresStore) CreateMessage(ctx context.Context, m *Message) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO messages (tenant_id, direction, body, sent_at, responded_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		m.TenantID, m.Direction, m.Body, m.SentAt, m.RespondedAt,
	).Scan(&m.ID)
}

func (s *PostgresStore) GetMessagesForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, direction, body, sent_at, responded_at
		FROM messages WHERE tenant_id = $1
		ORDER BY sent_at ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		m := &Message{}
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Direction, &m.Body, &m.SentAt, &m.RespondedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// --- Maintenance requests ---

const requestColumns = `id, unit_id, tenant_id, title, description,
	category, priority, estimated_cost_low, estimated_cost_high,
	status, reported_at, resolved_at`

func (s *PostgresStore) CreateMaintenanceRequest(ctx context.Context, r *MaintenanceRequest) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO maintenance_requests (unit_id, tenant_id, title, description,
			category, priority, estimated_cost_low, estimated_cost_high, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, reported_at`,
		r.UnitID, r.TenantID, r.Title, r.Description,
		r.Category, r.Priority, r.EstimatedCostLow, r.EstimatedCostHigh, r.Status,
	).Scan(&r.ID, &r.ReportedAt)
}

func (s *PostgresStore) GetMaintenanceRequest(ctx context.Context, id uuid.UUID) (*MaintenanceRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+requestColumns+`
		FROM maintenance_requests WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reqs, err := scanRequests(rows)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, nil
	}
	return reqs[0], nil
}

func (s *PostgresStore) ListMaintenanceRequests(ctx context.Context, unitID uuid.UUID) ([]*MaintenanceRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+requestColumns+`
		FROM maintenance_requests WHERE unit_id = $1
		ORDER BY reported_at DESC`, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (s *PostgresStore) GetRequestsForTenant(ctx context.Context, tenantID uuid.UUID) ([]*MaintenanceRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+requestColumns+`
		FROM maintenance_requests WHERE tenant_id = $1
		ORDER BY reported_at DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (s *PostgresStore) UpdateMaintenanceRequest(ctx context.Context, r *MaintenanceRequest) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE maintenance_requests SET
			title = $2, description = $3, category = $4, priority = $5,
			estimated_cost_low = $6, estimated_cost_high = $7,
			status = $8, resolved_at = $9
		WHERE id = $1`,
		r.ID, r.Title, r.Description, r.Category, r.Priority,
		r.EstimatedCostLow, r.EstimatedCostHigh,
		r.Status, r.ResolvedAt,
	)
	return err
}

func scanRequests(rows pgx.Rows) ([]*MaintenanceRequest, error) {
	var reqs []*MaintenanceRequest
	for rows.Next() {
		r := &MaintenanceRequest{}
		var description, category, priority sql.NullString
		if err := rows.Scan(
			&r.ID, &r.UnitID, &r.TenantID, &r.Title, &description,
			&category, &priority, &r.EstimatedCostLow, &r.EstimatedCostHigh,
			&r.Status, &r.ReportedAt, &r.ResolvedAt,
		); err != nil {
			return nil, err
		}
		if description.Valid {
			r.Description = description.String
		}
		if category.Valid {
			r.Category = category.String
		}
		if priority.Valid {
			r.Priority = priority.String
		}
		reqs = append(reqs, r)
	}
	return reqs, rows.Err()
}
