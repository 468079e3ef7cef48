package repository

import (
	"context"

	"incidentapi/internal/model"
)

// ReportFilter narrows report listings. Empty fields do not filter.
type ReportFilter struct {
	PrisonID string
	Status   model.Status
	Type     model.Type
	Source   model.Source
}

// ReportRepository defines data access for incident reports and their child records.
// No business logic here; only persistence operations. Missing rows surface as sql.ErrNoRows.
type ReportRepository interface {
	// NextReference allocates a report reference for reports created in this service.
	NextReference(ctx context.Context) (string, error)

	Create(ctx context.Context, r *model.Report) (*model.Report, error)
	FindByID(ctx context.Context, id string) (*model.Report, error)
	FindByReference(ctx context.Context, reference string) (*model.Report, error)
	List(ctx context.Context, f ReportFilter, pq PageQuery) (*PageResult[model.Report], error)
	// Update overwrites the report's scalar fields. It returns sql.ErrNoRows if the report does not exist.
	Update(ctx context.Context, r *model.Report) (*model.Report, error)
	// Delete removes a report and, through cascades, all its child records.
	// It returns sql.ErrNoRows if the report does not exist.
	Delete(ctx context.Context, id string) error

	ListAddenda(ctx context.Context, reportID string) ([]model.DescriptionAddendum, error)
	ReplaceAddenda(ctx context.Context, reportID string, addenda []model.DescriptionAddendum) error

	AddStaffInvolvement(ctx context.Context, s *model.StaffInvolvement) (*model.StaffInvolvement, error)
	ListStaffInvolvements(ctx context.Context, reportID string) ([]model.StaffInvolvement, error)
	DeleteStaffInvolvement(ctx context.Context, reportID string, sequence int) error
	ReplaceStaffInvolvements(ctx context.Context, reportID string, items []model.StaffInvolvement) error

	AddPrisonerInvolvement(ctx context.Context, p *model.PrisonerInvolvement) (*model.PrisonerInvolvement, error)
	ListPrisonerInvolvements(ctx context.Context, reportID string) ([]model.PrisonerInvolvement, error)
	DeletePrisonerInvolvement(ctx context.Context, reportID string, sequence int) error
	ReplacePrisonerInvolvements(ctx context.Context, reportID string, items []model.PrisonerInvolvement) error

	AddCorrectionRequest(ctx context.Context, c *model.CorrectionRequest) (*model.CorrectionRequest, error)
	ListCorrectionRequests(ctx context.Context, reportID string) ([]model.CorrectionRequest, error)
	ReplaceCorrectionRequests(ctx context.Context, reportID string, items []model.CorrectionRequest) error

	AddStatusHistory(ctx context.Context, h *model.StatusHistory) error
	ListStatusHistory(ctx context.Context, reportID string) ([]model.StatusHistory, error)
}
