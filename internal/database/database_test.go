package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	_ "time/tzdata"

	"incidentapi/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportsDB() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:               "db",
		Port:               "5432",
		User:               "incidents",
		Password:           "s3cret",
		Name:               "incident_reporting",
		SSLMode:            "disable",
		MaxOpenConns:       10,
		MaxIdleConns:       5,
		ConnMaxLifetimeSec: 300,
		TimeZone:           "Europe/London",
	}
}

// stubOpen makes NewPostgres use db and records the DSN it was given.
func stubOpen(t *testing.T, db *sql.DB, err error) *string {
	t.Helper()
	var dsn string
	orig := sqlOpen
	sqlOpen = func(_, dataSourceName string) (*sql.DB, error) {
		dsn = dataSourceName
		return db, err
	}
	t.Cleanup(func() { sqlOpen = orig })
	return &dsn
}

func TestBuildPostgresDSN_SessionParameters(t *testing.T) {
	dsn, err := BuildPostgresDSN(reportsDB())
	require.NoError(t, err)

	cfg, err := pgconn.ParseConfig(dsn)
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.Host)
	assert.Equal(t, uint16(5432), cfg.Port)
	assert.Equal(t, "incident_reporting", cfg.Database)
	assert.Equal(t, "incidents", cfg.User)
	assert.Equal(t, "s3cret", cfg.Password)
	assert.Equal(t, DefaultApplicationName, cfg.RuntimeParams["application_name"])
	assert.Equal(t, "Europe/London", cfg.RuntimeParams["timezone"])
}

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.DatabaseConfig)
		want    string
		wantErr string
	}{
		{
			name:   "defaults session to UTC and service name",
			mutate: func(c *config.DatabaseConfig) { c.TimeZone = ""; c.Password = "" },
			want:   "postgres://incidents@db:5432/incident_reporting?application_name=incidentapi&sslmode=disable&timezone=UTC",
		},
		{
			name:   "custom application name",
			mutate: func(c *config.DatabaseConfig) { c.ApplicationName = "incidentctl"; c.TimeZone = "UTC"; c.SSLMode = "" },
			want:   "postgres://incidents:s3cret@db:5432/incident_reporting?application_name=incidentctl&timezone=UTC",
		},
		{
			name:    "unknown time zone",
			mutate:  func(c *config.DatabaseConfig) { c.TimeZone = "Mars/Olympus" },
			wantErr: "invalid database time zone",
		},
		{
			name:    "missing host",
			mutate:  func(c *config.DatabaseConfig) { c.Host = "" },
			wantErr: "host, port, user, and name are required",
		},
		{
			name:    "missing database name",
			mutate:  func(c *config.DatabaseConfig) { c.Name = "" },
			wantErr: "host, port, user, and name are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := reportsDB()
			tt.mutate(&c)
			got, err := BuildPostgresDSN(c)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPostgres(t *testing.T) {
	t.Run("opens with session parameters and pings", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		dsn := stubOpen(t, db, nil)

		mock.ExpectPing()

		gotDB, err := NewPostgres(context.Background(), reportsDB())
		require.NoError(t, err)
		assert.Same(t, db, gotDB)
		assert.Contains(t, *dsn, "timezone=Europe%2FLondon")
		assert.Contains(t, *dsn, "application_name=incidentapi")
		assert.Equal(t, 10, gotDB.Stats().MaxOpenConnections)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cancelled startup aborts the ping", func(t *testing.T) {
		db, _, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		gotDB, err := NewPostgres(ctx, reportsDB())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, gotDB)
	})

	t.Run("ping error closes the pool", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db, nil)

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
		mock.ExpectClose()

		gotDB, err := NewPostgres(context.Background(), reportsDB())
		assert.ErrorContains(t, err, "db ping db: connection refused")
		assert.Nil(t, gotDB)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("open error", func(t *testing.T) {
		stubOpen(t, nil, errors.New("open error"))

		gotDB, err := NewPostgres(context.Background(), reportsDB())
		assert.ErrorContains(t, err, "sql open: open error")
		assert.Nil(t, gotDB)
	})

	t.Run("invalid config never opens", func(t *testing.T) {
		dsn := stubOpen(t, nil, errors.New("must not be called"))

		gotDB, err := NewPostgres(context.Background(), config.DatabaseConfig{})
		assert.Error(t, err)
		assert.Nil(t, gotDB)
		assert.Empty(t, *dsn)
	})
}
