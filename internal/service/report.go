package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"incidentapi/internal/auth"
	"incidentapi/internal/change"
	"incidentapi/internal/events"
	"incidentapi/internal/model"
	"incidentapi/internal/repository"
)

// CreateReportInput carries the fields a caller supplies for a new report.
type CreateReportInput struct {
	Type                string    `json:"type"`
	IncidentDateAndTime time.Time `json:"incident_date_and_time"`
	PrisonID            string    `json:"prison_id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
}

// UpdateReportInput is a partial update; nil fields are left untouched.
type UpdateReportInput struct {
	Type                *string    `json:"type,omitempty"`
	IncidentDateAndTime *time.Time `json:"incident_date_and_time,omitempty"`
	PrisonID            *string    `json:"prison_id,omitempty"`
	Title               *string    `json:"title,omitempty"`
	Description         *string    `json:"description,omitempty"`
}

// ListReportsInput filters and pages report listings. Empty filters match everything.
type ListReportsInput struct {
	PrisonID string
	Status   string
	Type     string
	Source   string
	Limit    int
	Offset   int
}

// ReportListResult is the service-level DTO for paginated reports.
type ReportListResult struct {
	Items []model.Report `json:"data"`
	Total int            `json:"total"`
}

type StaffInvolvementInput struct {
	StaffUsername string  `json:"staff_username"`
	StaffRole     string  `json:"staff_role"`
	Comment       *string `json:"comment,omitempty"`
}

type PrisonerInvolvementInput struct {
	PrisonerNumber string  `json:"prisoner_number"`
	PrisonerRole   string  `json:"prisoner_role"`
	Outcome        *string `json:"outcome,omitempty"`
	Comment        *string `json:"comment,omitempty"`
}

type CorrectionRequestInput struct {
	DescriptionOfChange string `json:"description_of_change"`
}

// ReportService defines the use cases for incident reports created and managed in this service.
// Mutating operations need a principal in ctx and fail with auth.ErrUnauthenticated otherwise.
type ReportService interface {
	Create(ctx context.Context, in CreateReportInput) (*model.Report, error)
	Get(ctx context.Context, id string) (*model.Report, error)
	GetByReference(ctx context.Context, reference string) (*model.Report, error)
	// List returns reports using limit/offset and a total count.
	List(ctx context.Context, in ListReportsInput) (*ReportListResult, error)
	Update(ctx context.Context, id string, in UpdateReportInput) (*model.Report, error)
	// ChangeStatus moves a report to status. Setting the current status again is Unchanged and has no side effects.
	ChangeStatus(ctx context.Context, id string, status string) (change.Result[*model.Report], error)
	Delete(ctx context.Context, id string) error
	History(ctx context.Context, id string) ([]model.StatusHistory, error)

	AddStaffInvolvement(ctx context.Context, id string, in StaffInvolvementInput) (*model.StaffInvolvement, error)
	ListStaffInvolvements(ctx context.Context, id string) ([]model.StaffInvolvement, error)
	RemoveStaffInvolvement(ctx context.Context, id string, index int) error

	AddPrisonerInvolvement(ctx context.Context, id string, in PrisonerInvolvementInput) (*model.PrisonerInvolvement, error)
	ListPrisonerInvolvements(ctx context.Context, id string) ([]model.PrisonerInvolvement, error)
	RemovePrisonerInvolvement(ctx context.Context, id string, index int) error

	AddCorrectionRequest(ctx context.Context, id string, in CorrectionRequestInput) (*model.CorrectionRequest, error)
	ListCorrectionRequests(ctx context.Context, id string) ([]model.CorrectionRequest, error)
}

type reportService struct {
	repo repository.ReportRepository
	pub  events.Publisher
	log  *zap.Logger
}

// NewReportService constructs a ReportService. A nil publisher drops events.
func NewReportService(repo repository.ReportRepository, pub events.Publisher, log *zap.Logger) ReportService {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &reportService{repo: repo, pub: pub, log: log}
}

func (s *reportService) Create(ctx context.Context, in CreateReportInput) (*model.Report, error) {
	username, err := auth.Username(ctx)
	if err != nil {
		return nil, err
	}
	incidentType, err := model.ParseType(in.Type)
	if err != nil {
		return nil, invalid("%v", err)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title is required")
	}
	if strings.TrimSpace(in.PrisonID) == "" {
		return nil, invalid("prison_id is required")
	}
	if in.IncidentDateAndTime.IsZero() {
		return nil, invalid("incident_date_and_time is required")
	}
	now := nowUTC()
	if in.IncidentDateAndTime.After(now) {
		return nil, invalid("incident_date_and_time is in the future")
	}

	ref, err := s.repo.NextReference(ctx)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.Create(ctx, &model.Report{
		ID:                  uuid.New().String(),
		ReportReference:     ref,
		Type:                incidentType,
		Status:              model.StatusAwaitingAnalysis,
		Source:              model.SourceDPS,
		IncidentDateAndTime: in.IncidentDateAndTime,
		PrisonID:            in.PrisonID,
		Title:               in.Title,
		Description:         in.Description,
		ReportedBy:          username,
		ReportedAt:          now,
		CreatedAt:           now,
		ModifiedAt:          now,
		ModifiedBy:          username,
		ModifiedIn:          model.SourceDPS,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateReference
		}
		return nil, err
	}

	if err := s.repo.AddStatusHistory(ctx, &model.StatusHistory{
		ReportID:  stored.ID,
		Status:    stored.Status,
		ChangedAt: now,
		ChangedBy: username,
	}); err != nil {
		return nil, err
	}

	publish(ctx, s.pub, s.log, eventFor(events.ReportCreated, stored, model.SourceDPS, ""))
	return stored, nil
}

func (s *reportService) Get(ctx context.Context, id string) (*model.Report, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return s.withAddenda(ctx, rep)
}

func (s *reportService) GetByReference(ctx context.Context, reference string) (*model.Report, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, ErrIDRequired
	}
	rep, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, notFound(err)
	}
	return s.withAddenda(ctx, rep)
}

func (s *reportService) withAddenda(ctx context.Context, rep *model.Report) (*model.Report, error) {
	addenda, err := s.repo.ListAddenda(ctx, rep.ID)
	if err != nil {
		return nil, err
	}
	rep.DescriptionAddendums = addenda
	return rep, nil
}

// List returns paginated reports without exposing repository types.
func (s *reportService) List(ctx context.Context, in ListReportsInput) (*ReportListResult, error) {
	limit, offset := in.Limit, in.Offset
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	f := repository.ReportFilter{PrisonID: in.PrisonID}
	var err error
	if in.Status != "" {
		if f.Status, err = model.ParseStatus(in.Status); err != nil {
			return nil, invalid("%v", err)
		}
	}
	if in.Type != "" {
		if f.Type, err = model.ParseType(in.Type); err != nil {
			return nil, invalid("%v", err)
		}
	}
	if in.Source != "" {
		if f.Source, err = model.ParseSource(in.Source); err != nil {
			return nil, invalid("%v", err)
		}
	}

	res, err := s.repo.List(ctx, f, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ReportListResult{Items: res.Items, Total: res.Total}, nil
}

// applyUpdate copies the supplied fields onto rep and reports whether any value differed.
func applyUpdate(rep *model.Report, in UpdateReportInput) (change.Result[*model.Report], error) {
	changed := false
	if in.Type != nil {
		t, err := model.ParseType(*in.Type)
		if err != nil {
			return change.Unchanged(rep), invalid("%v", err)
		}
		changed = changed || t != rep.Type
		rep.Type = t
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return change.Unchanged(rep), invalid("title must not be blank")
		}
		changed = changed || *in.Title != rep.Title
		rep.Title = *in.Title
	}
	if in.PrisonID != nil {
		if strings.TrimSpace(*in.PrisonID) == "" {
			return change.Unchanged(rep), invalid("prison_id must not be blank")
		}
		changed = changed || *in.PrisonID != rep.PrisonID
		rep.PrisonID = *in.PrisonID
	}
	if in.Description != nil {
		changed = changed || *in.Description != rep.Description
		rep.Description = *in.Description
	}
	if in.IncidentDateAndTime != nil {
		if in.IncidentDateAndTime.After(nowUTC()) {
			return change.Unchanged(rep), invalid("incident_date_and_time is in the future")
		}
		changed = changed || !in.IncidentDateAndTime.Equal(rep.IncidentDateAndTime)
		rep.IncidentDateAndTime = *in.IncidentDateAndTime
	}
	if !changed {
		return change.Unchanged(rep), nil
	}
	return change.Changed(rep), nil
}

func (s *reportService) Update(ctx context.Context, id string, in UpdateReportInput) (*model.Report, error) {
	username, err := auth.Username(ctx)
	if err != nil {
		return nil, err
	}
	rep, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	addenda := rep.DescriptionAddendums

	res, err := applyUpdate(rep, in)
	if err != nil {
		return nil, err
	}

	stored := rep
	res.IfChanged(func(r *model.Report) {
		if stored, err = s.touch(ctx, r, username); err != nil {
			return
		}
		stored.DescriptionAddendums = addenda
		publish(ctx, s.pub, s.log, eventFor(events.ReportAmended, stored, model.SourceDPS, events.ChangedBasicReport))
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// touch stamps rep as modified by username in this service and persists it.
func (s *reportService) touch(ctx context.Context, rep *model.Report, username string) (*model.Report, error) {
	rep.ModifiedAt = nowUTC()
	rep.ModifiedBy = username
	rep.ModifiedIn = model.SourceDPS
	stored, err := s.repo.Update(ctx, rep)
	if err != nil {
		return nil, notFound(err)
	}
	return stored, nil
}

func (s *reportService) ChangeStatus(ctx context.Context, id string, status string) (change.Result[*model.Report], error) {
	username, err := auth.Username(ctx)
	if err != nil {
		return change.Result[*model.Report]{}, err
	}
	newStatus, err := model.ParseStatus(status)
	if err != nil {
		return change.Result[*model.Report]{}, invalid("%v", err)
	}
	rep, err := s.Get(ctx, id)
	if err != nil {
		return change.Result[*model.Report]{}, err
	}
	if rep.Status == newStatus {
		return change.Unchanged(rep), nil
	}

	addenda := rep.DescriptionAddendums
	rep.Status = newStatus
	stored, err := s.touch(ctx, rep, username)
	if err != nil {
		return change.Result[*model.Report]{}, err
	}
	stored.DescriptionAddendums = addenda

	if err := s.repo.AddStatusHistory(ctx, &model.StatusHistory{
		ReportID:  stored.ID,
		Status:    newStatus,
		ChangedAt: stored.ModifiedAt,
		ChangedBy: username,
	}); err != nil {
		return change.Result[*model.Report]{}, err
	}

	publish(ctx, s.pub, s.log, eventFor(events.ReportAmended, stored, model.SourceDPS, events.ChangedStatus))
	return change.Changed(stored), nil
}

// Delete removes a report and all its child records.
func (s *reportService) Delete(ctx context.Context, id string) error {
	if _, err := auth.Username(ctx); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	publish(ctx, s.pub, s.log, eventFor(events.ReportDeleted, rep, model.SourceDPS, ""))
	return nil
}

// History returns the report's status changes, oldest first.
func (s *reportService) History(ctx context.Context, id string) ([]model.StatusHistory, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListStatusHistory(ctx, id)
}

func (s *reportService) find(ctx context.Context, id string) (*model.Report, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return rep, nil
}
