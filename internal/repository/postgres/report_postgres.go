package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"incidentapi/internal/model"
	"incidentapi/internal/repository"
)

// ReportPostgres is a PostgreSQL implementation of repository.ReportRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ReportPostgres struct {
	db *sql.DB
}

// NewReportPostgres creates a new ReportPostgres repository.
func NewReportPostgres(db *sql.DB) *ReportPostgres {
	return &ReportPostgres{db: db}
}

var _ repository.ReportRepository = (*ReportPostgres)(nil)

const reportColumns = `id, report_reference, type, status, source, incident_date_and_time, prison_id, title,
		description, reported_by, reported_at, created_at, modified_at, modified_by, modified_in`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*model.Report, error) {
	var r model.Report
	if err := row.Scan(
		&r.ID,
		&r.ReportReference,
		&r.Type,
		&r.Status,
		&r.Source,
		&r.IncidentDateAndTime,
		&r.PrisonID,
		&r.Title,
		&r.Description,
		&r.ReportedBy,
		&r.ReportedAt,
		&r.CreatedAt,
		&r.ModifiedAt,
		&r.ModifiedBy,
		&r.ModifiedIn,
	); err != nil {
		return nil, err
	}
	r.DescriptionAddendums = []model.DescriptionAddendum{}
	return &r, nil
}

// NextReference draws the next value of the report reference sequence.
func (r *ReportPostgres) NextReference(ctx context.Context) (string, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT nextval('report_reference_seq')`).Scan(&n); err != nil {
		return "", err
	}
	return strconv.FormatInt(n, 10), nil
}

// Create inserts a new report row and returns the stored record.
func (r *ReportPostgres) Create(ctx context.Context, rep *model.Report) (*model.Report, error) {
	q := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + reportColumns
	row := r.db.QueryRowContext(ctx, q,
		rep.ID,
		rep.ReportReference,
		rep.Type,
		rep.Status,
		rep.Source,
		rep.IncidentDateAndTime,
		rep.PrisonID,
		rep.Title,
		rep.Description,
		rep.ReportedBy,
		rep.ReportedAt,
		rep.CreatedAt,
		rep.ModifiedAt,
		rep.ModifiedBy,
		rep.ModifiedIn,
	)
	stored, err := scanReport(row)
	if isUniqueViolation(err) {
		return nil, repository.ErrDuplicate
	}
	return stored, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// FindByID fetches a single report by its ID.
func (r *ReportPostgres) FindByID(ctx context.Context, id string) (*model.Report, error) {
	q := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	return scanReport(r.db.QueryRowContext(ctx, q, id))
}

// FindByReference fetches a single report by its reference.
func (r *ReportPostgres) FindByReference(ctx context.Context, reference string) (*model.Report, error) {
	q := `SELECT ` + reportColumns + ` FROM reports WHERE report_reference = $1`
	return scanReport(r.db.QueryRowContext(ctx, q, reference))
}

func reportWhere(f repository.ReportFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(col, v string) {
		if v == "" {
			return
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("prison_id", f.PrisonID)
	add("status", string(f.Status))
	add("type", string(f.Type))
	add("source", string(f.Source))

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns reports using LIMIT/OFFSET pagination and a total count, newest incidents first.
func (r *ReportPostgres) List(ctx context.Context, f repository.ReportFilter, pq repository.PageQuery) (*repository.PageResult[model.Report], error) {
	where, args := reportWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := `SELECT ` + reportColumns + ` FROM reports` + where +
		fmt.Sprintf(` ORDER BY incident_date_and_time DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, qList, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Report]{
		Items: items,
		Total: total,
	}, nil
}

// Update overwrites the mutable columns of a report and returns the stored record.
func (r *ReportPostgres) Update(ctx context.Context, rep *model.Report) (*model.Report, error) {
	q := `
		UPDATE reports
		SET type = $2, status = $3, incident_date_and_time = $4, prison_id = $5, title = $6,
		    description = $7, reported_by = $8, reported_at = $9, modified_at = $10,
		    modified_by = $11, modified_in = $12
		WHERE id = $1
		RETURNING ` + reportColumns
	row := r.db.QueryRowContext(ctx, q,
		rep.ID,
		rep.Type,
		rep.Status,
		rep.IncidentDateAndTime,
		rep.PrisonID,
		rep.Title,
		rep.Description,
		rep.ReportedBy,
		rep.ReportedAt,
		rep.ModifiedAt,
		rep.ModifiedBy,
		rep.ModifiedIn,
	)
	return scanReport(row)
}

// Delete removes a report by ID.
func (r *ReportPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
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
