// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/contactdesk/internal/core/filterset"
	"github.com/example/contactdesk/internal/ports/secondary"
)

// ContactRepository implements secondary.ContactRepository with SQLite.
type ContactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new SQLite contact repository.
func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = `id, status_id, teleoperator_id, confirmateur_id, first_name, last_name,
	stage_name, email, phone, platform, source, contract_type, collected_amount,
	bonus, payment_method, last_call_at, created_at, updated_at`

// filterColumnSQL maps list filter columns to their SQL expression. Columns
// outside this table are ignored rather than interpolated.
var filterColumnSQL = map[string]string{
	filterset.ColumnStatus:       "c.status_id",
	filterset.ColumnTeleoperator: "c.teleoperator_id",
	filterset.ColumnConfirmateur: "c.confirmateur_id",
	filterset.ColumnPlatform:     "c.platform",
	filterset.ColumnSource:       "c.source",
	filterset.ColumnCreatedAt:    "c.created_at",
	filterset.ColumnUpdatedAt:    "c.updated_at",
	filterset.ColumnLastCallAt:   "c.last_call_at",
	filterset.ColumnEventDate:    "(SELECT max(e.datetime) FROM events e WHERE e.contact_id = c.id)",
}

// orderSQL whitelists the accepted order keys.
var orderSQL = map[string]string{
	"":            "c.created_at DESC",
	"created_at":  "c.created_at ASC",
	"-created_at": "c.created_at DESC",
	"updated_at":  "c.updated_at ASC",
	"-updated_at": "c.updated_at DESC",
	"last_name":   "c.last_name ASC",
	"-last_name":  "c.last_name DESC",
}

// GetByID retrieves a contact by its ID.
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*secondary.ContactRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+strings.ReplaceAll(contactColumns, "\n\t", " ")+" FROM contacts WHERE id = ?", id)

	record, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("contact %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return record, nil
}

// List retrieves one page of contacts matching the query plus the total
// match count across all pages.
func (r *ContactRepository) List(ctx context.Context, query secondary.ContactQuery) ([]*secondary.ContactRecord, int, error) {
	where, args := buildWhere(query)

	var total int
	countQuery := "SELECT COUNT(*) FROM contacts c" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	order, ok := orderSQL[query.Order]
	if !ok {
		order = orderSQL[""]
	}

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM contacts c%s ORDER BY %s LIMIT ? OFFSET ?",
		prefixColumns(contactColumns, "c"), where, order,
	)
	listArgs := append(append([]any{}, args...), pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*secondary.ContactRecord
	for rows.Next() {
		record, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	return contacts, total, nil
}

// UpdateStatus applies the minimal status-change payload.
func (r *ContactRepository) UpdateStatus(ctx context.Context, id, statusID, teleoperatorID string) error {
	query := "UPDATE contacts SET status_id = ?, updated_at = CURRENT_TIMESTAMP"
	args := []any{statusID}
	if teleoperatorID != "" {
		query += ", teleoperator_id = ?"
		args = append(args, teleoperatorID)
	}
	query += " WHERE id = ?"
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	return requireRow(result, id)
}

// UpdateClient applies the client-conversion payload together with the new
// status.
func (r *ContactRepository) UpdateClient(ctx context.Context, id, statusID string, fields secondary.ClientFields) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE contacts SET
			status_id = ?, platform = ?, teleoperator_id = ?, stage_name = ?,
			first_name = ?, email = ?, phone = ?, contract_type = ?, source = ?,
			collected_amount = ?, bonus = ?, payment_method = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		statusID, fields.Platform, fields.TeleoperatorID, fields.StageName,
		fields.FirstName, fields.Email, fields.Phone, fields.ContractType,
		fields.Source, fields.CollectedAmt, fields.Bonus, fields.PaymentMethod, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update client contact: %w", err)
	}
	return requireRow(result, id)
}

// AssignAgent sets or clears one assignee role. An empty userID clears it.
func (r *ContactRepository) AssignAgent(ctx context.Context, id, role, userID string) error {
	var column string
	switch role {
	case "teleoperator":
		column = "teleoperator_id"
	case "confirmateur":
		column = "confirmateur_id"
	default:
		return fmt.Errorf("unknown assignment role: %s", role)
	}

	var value sql.NullString
	if userID != "" {
		value = sql.NullString{String: userID, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE contacts SET %s = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", column),
		value, id,
	)
	if err != nil {
		return fmt.Errorf("failed to assign agent: %w", err)
	}
	return requireRow(result, id)
}

// buildWhere translates the query into a WHERE clause. Filter columns are
// resolved through the whitelist; search matches name, stage name, email and
// phone.
func buildWhere(query secondary.ContactQuery) (string, []any) {
	var clauses []string
	var args []any

	if query.Search != "" {
		like := "%" + query.Search + "%"
		clauses = append(clauses,
			"(c.first_name LIKE ? OR c.last_name LIKE ? OR c.stage_name LIKE ? OR c.email LIKE ? OR c.phone LIKE ?)")
		args = append(args, like, like, like, like, like)
	}

	if query.StatusType != "" {
		clauses = append(clauses,
			"c.status_id IN (SELECT s.id FROM statuses s WHERE s.type = ?)")
		args = append(args, query.StatusType)
	}

	for column, constraint := range query.Columns {
		expr, ok := filterColumnSQL[column]
		if !ok {
			continue
		}
		switch {
		case len(constraint.Values) > 0:
			placeholders := strings.Repeat("?, ", len(constraint.Values))
			clauses = append(clauses, fmt.Sprintf("%s IN (%s)", expr, placeholders[:len(placeholders)-2]))
			for _, v := range constraint.Values {
				args = append(args, v)
			}
		case constraint.From != "" || constraint.To != "":
			if constraint.From != "" {
				clauses = append(clauses, fmt.Sprintf("date(%s) >= date(?)", expr))
				args = append(args, constraint.From)
			}
			if constraint.To != "" {
				clauses = append(clauses, fmt.Sprintf("date(%s) <= date(?)", expr))
				args = append(args, constraint.To)
			}
		case constraint.Text != "":
			clauses = append(clauses, fmt.Sprintf("%s LIKE ?", expr))
			args = append(args, "%"+constraint.Text+"%")
		}
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func prefixColumns(columns, alias string) string {
	parts := strings.Split(strings.ReplaceAll(columns, "\n\t", " "), ", ")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*secondary.ContactRecord, error) {
	var (
		statusID       sql.NullString
		teleoperatorID sql.NullString
		confirmateurID sql.NullString
		stageName      sql.NullString
		contractType   sql.NullString
		collectedAmt   sql.NullString
		bonus          sql.NullString
		paymentMethod  sql.NullString
		lastCallAt     sql.NullTime
		createdAt      time.Time
		updatedAt      sql.NullTime
	)

	record := &secondary.ContactRecord{}
	err := row.Scan(
		&record.ID, &statusID, &teleoperatorID, &confirmateurID,
		&record.FirstName, &record.LastName, &stageName, &record.Email,
		&record.Phone, &record.Platform, &record.Source, &contractType,
		&collectedAmt, &bonus, &paymentMethod, &lastCallAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.StatusID = statusID.String
	record.TeleoperatorID = teleoperatorID.String
	record.ConfirmateurID = confirmateurID.String
	record.StageName = stageName.String
	record.ContractType = contractType.String
	record.CollectedAmt = collectedAmt.String
	record.Bonus = bonus.String
	record.PaymentMethod = paymentMethod.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	if lastCallAt.Valid {
		record.LastCallAt = lastCallAt.Time.Format(time.RFC3339)
	}
	if updatedAt.Valid {
		record.UpdatedAt = updatedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

func requireRow(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("contact %s not found", id)
	}
	return nil
}
