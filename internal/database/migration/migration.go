package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_sequence_report_reference",
		SQL:  `CREATE SEQUENCE IF NOT EXISTS report_reference_seq START WITH 100000000 INCREMENT BY 1;`,
	},
	{
		Name: "create_table_reports",
		SQL: `CREATE TABLE IF NOT EXISTS reports (
  id                     UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  report_reference       TEXT        NOT NULL UNIQUE,
  type                   TEXT        NOT NULL,
  status                 TEXT        NOT NULL,
  source                 TEXT        NOT NULL,
  incident_date_and_time TIMESTAMP   NOT NULL,
  prison_id              TEXT        NOT NULL,
  title                  TEXT        NOT NULL,
  description            TEXT        NOT NULL,
  reported_by            TEXT        NOT NULL,
  reported_at            TIMESTAMP   NOT NULL,
  created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
  modified_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
  modified_by            TEXT        NOT NULL,
  modified_in            TEXT        NOT NULL
);`,
	},
	{
		Name: "create_table_description_addenda",
		SQL: `CREATE TABLE IF NOT EXISTS description_addenda (
  report_id  UUID      NOT NULL REFERENCES reports (id) ON DELETE CASCADE,
  sequence   INT       NOT NULL CHECK (sequence >= 0),
  created_by TEXT      NOT NULL,
  first_name TEXT      NOT NULL,
  last_name  TEXT      NOT NULL,
  created_at TIMESTAMP NOT NULL,
  text       TEXT      NOT NULL,
  PRIMARY KEY (report_id, sequence)
);`,
	},
	{
		Name: "create_table_staff_involvements",
		SQL: `CREATE TABLE IF NOT EXISTS staff_involvements (
  report_id      UUID NOT NULL REFERENCES reports (id) ON DELETE CASCADE,
  sequence       INT  NOT NULL CHECK (sequence >= 0),
  staff_username TEXT NOT NULL,
  staff_role     TEXT NOT NULL,
  comment        TEXT,
  PRIMARY KEY (report_id, sequence)
);`,
	},
	{
		Name: "create_table_prisoner_involvements",
		SQL: `CREATE TABLE IF NOT EXISTS prisoner_involvements (
  report_id       UUID NOT NULL REFERENCES reports (id) ON DELETE CASCADE,
  sequence        INT  NOT NULL CHECK (sequence >= 0),
  prisoner_number TEXT NOT NULL,
  prisoner_role   TEXT NOT NULL,
  outcome         TEXT,
  comment         TEXT,
  PRIMARY KEY (report_id, sequence)
);`,
	},
	{
		Name: "create_table_correction_requests",
		SQL: `CREATE TABLE IF NOT EXISTS correction_requests (
  report_id               UUID      NOT NULL REFERENCES reports (id) ON DELETE CASCADE,
  sequence                INT       NOT NULL CHECK (sequence >= 0),
  description_of_change   TEXT      NOT NULL,
  correction_requested_by TEXT      NOT NULL,
  correction_requested_at TIMESTAMP NOT NULL,
  PRIMARY KEY (report_id, sequence)
);`,
	},
	{
		Name: "create_table_status_history",
		SQL: `CREATE TABLE IF NOT EXISTS status_history (
  id         BIGSERIAL   PRIMARY KEY,
  report_id  UUID        NOT NULL REFERENCES reports (id) ON DELETE CASCADE,
  status     TEXT        NOT NULL,
  changed_at TIMESTAMPTZ NOT NULL,
  changed_by TEXT        NOT NULL
);`,
	},
	{
		Name: "create_index_reports_prison_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_reports_prison_id ON reports (prison_id);`,
	},
	{
		Name: "create_index_reports_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_reports_status ON reports (status);`,
	},
	{
		Name: "create_index_reports_incident_date_and_time",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_reports_incident_date_and_time ON reports (incident_date_and_time);`,
	},
	{
		Name: "create_index_status_history_report_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_status_history_report_id ON status_history (report_id, changed_at);`,
	},
}

// EnsureMigrated checks if the 'reports' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := "SELECT to_regclass('public.reports') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.String("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("detail", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.String("error_message", err.Error()),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}
