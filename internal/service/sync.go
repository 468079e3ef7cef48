package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"incidentapi/internal/events"
	"incidentapi/internal/model"
	"incidentapi/internal/nomis"
	"incidentapi/internal/repository"
	"incidentapi/internal/storage"
)

// IncidentFetcher reads incidents from NOMIS.
type IncidentFetcher interface {
	GetIncident(ctx context.Context, incidentID int64) (*nomis.IncidentResponse, error)
}

// SyncResult is the outcome of applying a NOMIS incident.
type SyncResult struct {
	Report  *model.Report `json:"report"`
	Created bool          `json:"created"`
}

// SyncService keeps reports in step with their NOMIS counterparts.
type SyncService interface {
	// SyncFromNomis upserts the report for a NOMIS incident, replacing its addenda,
	// involvements and correction requests with the NOMIS versions.
	SyncFromNomis(ctx context.Context, in nomis.IncidentResponse) (*SyncResult, error)
	// ReconcileFromNomis fetches an incident from NOMIS and syncs it.
	ReconcileFromNomis(ctx context.Context, incidentID int64) (*SyncResult, error)
}

type syncService struct {
	repo    repository.ReportRepository
	fetcher IncidentFetcher
	store   storage.Storage
	pub     events.Publisher
	log     *zap.Logger
	tracer  trace.Tracer
}

// NewSyncService constructs a SyncService. fetcher and store are optional: without a fetcher
// reconciliation fails with ErrNomisUnavailable, without a store payloads are not archived.
func NewSyncService(repo repository.ReportRepository, fetcher IncidentFetcher, store storage.Storage, pub events.Publisher, log *zap.Logger) SyncService {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &syncService{
		repo:    repo,
		fetcher: fetcher,
		store:   store,
		pub:     pub,
		log:     log,
		tracer:  otel.Tracer("incidentapi/internal/service"),
	}
}

func (s *syncService) SyncFromNomis(ctx context.Context, in nomis.IncidentResponse) (*SyncResult, error) {
	ctx, span := s.tracer.Start(ctx, "nomis.sync", trace.WithAttributes(attribute.Int64("nomis.incident_id", in.IncidentID)))
	defer span.End()

	res, err := s.sync(ctx, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Bool("report.created", res.Created), attribute.String("report.id", res.Report.ID))
	return res, nil
}

func (s *syncService) sync(ctx context.Context, in nomis.IncidentResponse) (*SyncResult, error) {
	if in.IncidentID <= 0 {
		return nil, invalid("incident id is required")
	}
	mapped, err := nomis.MapIncident(in)
	if err != nil {
		return nil, fmt.Errorf("%w: incident %d: %w", ErrInvalidInput, in.IncidentID, err)
	}

	now := nowUTC()
	rep := mapped.Report
	if rep.ModifiedAt.IsZero() {
		rep.ModifiedAt = now
	}

	existing, err := s.repo.FindByReference(ctx, rep.ReportReference)
	created := false
	var stored *model.Report
	switch {
	case errors.Is(err, sql.ErrNoRows):
		created = true
		rep.ID = uuid.New().String()
		rep.CreatedAt = now
		if stored, err = s.repo.Create(ctx, &rep); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, ErrDuplicateReference
			}
			return nil, fmt.Errorf("create report: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("find report: %w", err)
	default:
		rep.ID = existing.ID
		rep.Source = existing.Source
		rep.CreatedAt = existing.CreatedAt
		if stored, err = s.repo.Update(ctx, &rep); err != nil {
			return nil, fmt.Errorf("update report: %w", err)
		}
	}

	if created || existing.Status != stored.Status {
		if err := s.repo.AddStatusHistory(ctx, &model.StatusHistory{
			ReportID:  stored.ID,
			Status:    stored.Status,
			ChangedAt: rep.ModifiedAt,
			ChangedBy: rep.ModifiedBy,
		}); err != nil {
			return nil, fmt.Errorf("add status history: %w", err)
		}
	}

	if err := s.replaceChildren(ctx, stored.ID, mapped); err != nil {
		return nil, err
	}
	stored.DescriptionAddendums = mapped.Report.DescriptionAddendums

	s.archive(ctx, in, now)

	eventType := events.ReportAmended
	if created {
		eventType = events.ReportCreated
	}
	publish(ctx, s.pub, s.log, eventFor(eventType, stored, model.SourceNomis, events.ChangedAnything))

	s.log.Info("nomis incident synced",
		zap.Int64("incident_id", in.IncidentID),
		zap.String("report_id", stored.ID),
		zap.Bool("created", created),
		zap.Int("addenda", len(stored.DescriptionAddendums)),
	)
	return &SyncResult{Report: stored, Created: created}, nil
}

func (s *syncService) replaceChildren(ctx context.Context, reportID string, m *nomis.MappedIncident) error {
	if err := s.repo.ReplaceAddenda(ctx, reportID, m.Report.DescriptionAddendums); err != nil {
		return fmt.Errorf("replace addenda: %w", err)
	}
	if err := s.repo.ReplaceStaffInvolvements(ctx, reportID, m.StaffInvolvements); err != nil {
		return fmt.Errorf("replace staff involvements: %w", err)
	}
	if err := s.repo.ReplacePrisonerInvolvements(ctx, reportID, m.PrisonerInvolvements); err != nil {
		return fmt.Errorf("replace prisoner involvements: %w", err)
	}
	if err := s.repo.ReplaceCorrectionRequests(ctx, reportID, m.CorrectionRequests); err != nil {
		return fmt.Errorf("replace correction requests: %w", err)
	}
	return nil
}

// archive keeps the raw payload for audit. Failures are logged only.
func (s *syncService) archive(ctx context.Context, in nomis.IncidentResponse, at time.Time) {
	if s.store == nil {
		return
	}
	payload, err := json.Marshal(in)
	if err != nil {
		s.log.Warn("nomis payload archive failed", zap.Int64("incident_id", in.IncidentID), zap.Error(err))
		return
	}
	if _, err := storage.Archive(ctx, s.store, in.IncidentID, at, payload); err != nil {
		s.log.Warn("nomis payload archive failed", zap.Int64("incident_id", in.IncidentID), zap.Error(err))
	}
}

func (s *syncService) ReconcileFromNomis(ctx context.Context, incidentID int64) (*SyncResult, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: client not configured", ErrNomisUnavailable)
	}
	in, err := s.fetcher.GetIncident(ctx, incidentID)
	if err != nil {
		if errors.Is(err, nomis.ErrIncidentNotFound) {
			return nil, fmt.Errorf("%w: nomis incident %d", ErrNotFound, incidentID)
		}
		return nil, fmt.Errorf("%w: %w", ErrNomisUnavailable, err)
	}
	return s.SyncFromNomis(ctx, *in)
}
