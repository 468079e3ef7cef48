package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"incidentapi/internal/model"
	"incidentapi/internal/repository"
)

// replaceChildren deletes every row of table for the report and inserts n new rows in one transaction.
func (r *ReportPostgres) replaceChildren(ctx context.Context, table, reportID string, n int, insert func(tx *sql.Tx, i int) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE report_id = $1`, reportID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	for i := 0; i < n; i++ {
		if err := insert(tx, i); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func deleteChild(ctx context.Context, db *sql.DB, table, reportID string, sequence int) error {
	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE report_id = $1 AND sequence = $2`, reportID, sequence)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// ListAddenda returns a report's description addenda in sequence order.
func (r *ReportPostgres) ListAddenda(ctx context.Context, reportID string) ([]model.DescriptionAddendum, error) {
	const q = `
		SELECT report_id, sequence, created_by, first_name, last_name, created_at, text
		FROM description_addenda
		WHERE report_id = $1
		ORDER BY sequence
	`
	rows, err := r.db.QueryContext(ctx, q, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DescriptionAddendum, 0)
	for rows.Next() {
		var a model.DescriptionAddendum
		if err := rows.Scan(&a.ReportID, &a.Sequence, &a.CreatedBy, &a.FirstName, &a.LastName, &a.CreatedAt, &a.Text); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *ReportPostgres) ReplaceAddenda(ctx context.Context, reportID string, addenda []model.DescriptionAddendum) error {
	const q = `
		INSERT INTO description_addenda (report_id, sequence, created_by, first_name, last_name, created_at, text)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	return r.replaceChildren(ctx, "description_addenda", reportID, len(addenda), func(tx *sql.Tx, i int) error {
		a := addenda[i]
		_, err := tx.ExecContext(ctx, q, reportID, i, a.CreatedBy, a.FirstName, a.LastName, a.CreatedAt, a.Text)
		return err
	})
}

// appendError reports a sequence taken by a concurrent append as repository.ErrDuplicate.
func appendError(err error) error {
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

// AddStaffInvolvement appends a staff involvement after the report's last sequence.
func (r *ReportPostgres) AddStaffInvolvement(ctx context.Context, s *model.StaffInvolvement) (*model.StaffInvolvement, error) {
	const q = `
		INSERT INTO staff_involvements (report_id, sequence, staff_username, staff_role, comment)
		VALUES ($1, (SELECT COALESCE(MAX(sequence) + 1, 0) FROM staff_involvements WHERE report_id = $1), $2, $3, $4)
		RETURNING report_id, sequence, staff_username, staff_role, comment
	`
	var out model.StaffInvolvement
	var comment sql.NullString
	if err := r.db.QueryRowContext(ctx, q, s.ReportID, s.StaffUsername, s.StaffRole, nullString(s.Comment)).
		Scan(&out.ReportID, &out.Sequence, &out.StaffUsername, &out.StaffRole, &comment); err != nil {
		return nil, appendError(err)
	}
	out.Comment = stringPtr(comment)
	return &out, nil
}

func (r *ReportPostgres) ListStaffInvolvements(ctx context.Context, reportID string) ([]model.StaffInvolvement, error) {
	const q = `
		SELECT report_id, sequence, staff_username, staff_role, comment
		FROM staff_involvements
		WHERE report_id = $1
		ORDER BY sequence
	`
	rows, err := r.db.QueryContext(ctx, q, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.StaffInvolvement, 0)
	for rows.Next() {
		var s model.StaffInvolvement
		var comment sql.NullString
		if err := rows.Scan(&s.ReportID, &s.Sequence, &s.StaffUsername, &s.StaffRole, &comment); err != nil {
			return nil, err
		}
		s.Comment = stringPtr(comment)
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *ReportPostgres) DeleteStaffInvolvement(ctx context.Context, reportID string, sequence int) error {
	return deleteChild(ctx, r.db, "staff_involvements", reportID, sequence)
}

func (r *ReportPostgres) ReplaceStaffInvolvements(ctx context.Context, reportID string, items []model.StaffInvolvement) error {
	const q = `
		INSERT INTO staff_involvements (report_id, sequence, staff_username, staff_role, comment)
		VALUES ($1, $2, $3, $4, $5)
	`
	return r.replaceChildren(ctx, "staff_involvements", reportID, len(items), func(tx *sql.Tx, i int) error {
		s := items[i]
		_, err := tx.ExecContext(ctx, q, reportID, i, s.StaffUsername, s.StaffRole, nullString(s.Comment))
		return err
	})
}

// AddPrisonerInvolvement appends a prisoner involvement after the report's last sequence.
func (r *ReportPostgres) AddPrisonerInvolvement(ctx context.Context, p *model.PrisonerInvolvement) (*model.PrisonerInvolvement, error) {
	const q = `
		INSERT INTO prisoner_involvements (report_id, sequence, prisoner_number, prisoner_role, outcome, comment)
		VALUES ($1, (SELECT COALESCE(MAX(sequence) + 1, 0) FROM prisoner_involvements WHERE report_id = $1), $2, $3, $4, $5)
		RETURNING report_id, sequence, prisoner_number, prisoner_role, outcome, comment
	`
	row := r.db.QueryRowContext(ctx, q, p.ReportID, p.PrisonerNumber, p.PrisonerRole, nullOutcome(p.Outcome), nullString(p.Comment))
	added, err := scanPrisonerInvolvement(row)
	if err != nil {
		return nil, appendError(err)
	}
	return added, nil
}

func nullOutcome(o *model.PrisonerOutcome) sql.NullString {
	if o == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*o), Valid: true}
}

func scanPrisonerInvolvement(row rowScanner) (*model.PrisonerInvolvement, error) {
	var p model.PrisonerInvolvement
	var outcome, comment sql.NullString
	if err := row.Scan(&p.ReportID, &p.Sequence, &p.PrisonerNumber, &p.PrisonerRole, &outcome, &comment); err != nil {
		return nil, err
	}
	if outcome.Valid {
		o := model.PrisonerOutcome(outcome.String)
		p.Outcome = &o
	}
	p.Comment = stringPtr(comment)
	return &p, nil
}

func (r *ReportPostgres) ListPrisonerInvolvements(ctx context.Context, reportID string) ([]model.PrisonerInvolvement, error) {
	const q = `
		SELECT report_id, sequence, prisoner_number, prisoner_role, outcome, comment
		FROM prisoner_involvements
		WHERE report_id = $1
		ORDER BY sequence
	`
	rows, err := r.db.QueryContext(ctx, q, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PrisonerInvolvement, 0)
	for rows.Next() {
		p, err := scanPrisonerInvolvement(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (r *ReportPostgres) DeletePrisonerInvolvement(ctx context.Context, reportID string, sequence int) error {
	return deleteChild(ctx, r.db, "prisoner_involvements", reportID, sequence)
}

func (r *ReportPostgres) ReplacePrisonerInvolvements(ctx context.Context, reportID string, items []model.PrisonerInvolvement) error {
	const q = `
		INSERT INTO prisoner_involvements (report_id, sequence, prisoner_number, prisoner_role, outcome, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	return r.replaceChildren(ctx, "prisoner_involvements", reportID, len(items), func(tx *sql.Tx, i int) error {
		p := items[i]
		_, err := tx.ExecContext(ctx, q, reportID, i, p.PrisonerNumber, p.PrisonerRole, nullOutcome(p.Outcome), nullString(p.Comment))
		return err
	})
}

// AddCorrectionRequest appends a correction request after the report's last sequence.
func (r *ReportPostgres) AddCorrectionRequest(ctx context.Context, c *model.CorrectionRequest) (*model.CorrectionRequest, error) {
	const q = `
		INSERT INTO correction_requests (report_id, sequence, description_of_change, correction_requested_by, correction_requested_at)
		VALUES ($1, (SELECT COALESCE(MAX(sequence) + 1, 0) FROM correction_requests WHERE report_id = $1), $2, $3, $4)
		RETURNING report_id, sequence, description_of_change, correction_requested_by, correction_requested_at
	`
	var out model.CorrectionRequest
	if err := r.db.QueryRowContext(ctx, q, c.ReportID, c.DescriptionOfChange, c.CorrectionRequestedBy, c.CorrectionRequestedAt).
		Scan(&out.ReportID, &out.Sequence, &out.DescriptionOfChange, &out.CorrectionRequestedBy, &out.CorrectionRequestedAt); err != nil {
		return nil, appendError(err)
	}
	return &out, nil
}

func (r *ReportPostgres) ListCorrectionRequests(ctx context.Context, reportID string) ([]model.CorrectionRequest, error) {
	const q = `
		SELECT report_id, sequence, description_of_change, correction_requested_by, correction_requested_at
		FROM correction_requests
		WHERE report_id = $1
		ORDER BY sequence
	`
	rows, err := r.db.QueryContext(ctx, q, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CorrectionRequest, 0)
	for rows.Next() {
		var c model.CorrectionRequest
		if err := rows.Scan(&c.ReportID, &c.Sequence, &c.DescriptionOfChange, &c.CorrectionRequestedBy, &c.CorrectionRequestedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *ReportPostgres) ReplaceCorrectionRequests(ctx context.Context, reportID string, items []model.CorrectionRequest) error {
	const q = `
		INSERT INTO correction_requests (report_id, sequence, description_of_change, correction_requested_by, correction_requested_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	return r.replaceChildren(ctx, "correction_requests", reportID, len(items), func(tx *sql.Tx, i int) error {
		c := items[i]
		_, err := tx.ExecContext(ctx, q, reportID, i, c.DescriptionOfChange, c.CorrectionRequestedBy, c.CorrectionRequestedAt)
		return err
	})
}

func (r *ReportPostgres) AddStatusHistory(ctx context.Context, h *model.StatusHistory) error {
	const q = `INSERT INTO status_history (report_id, status, changed_at, changed_by) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, q, h.ReportID, h.Status, h.ChangedAt, h.ChangedBy)
	return err
}

// ListStatusHistory returns a report's status changes, oldest first.
func (r *ReportPostgres) ListStatusHistory(ctx context.Context, reportID string) ([]model.StatusHistory, error) {
	const q = `
		SELECT report_id, status, changed_at, changed_by
		FROM status_history
		WHERE report_id = $1
		ORDER BY changed_at, id
	`
	rows, err := r.db.QueryContext(ctx, q, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.StatusHistory, 0)
	for rows.Next() {
		var h model.StatusHistory
		if err := rows.Scan(&h.ReportID, &h.Status, &h.ChangedAt, &h.ChangedBy); err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, rows.Err()
}
