package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"incidentapi/internal/model"
	"incidentapi/internal/repository"
)

type MockReportRepository struct {
	mock.Mock
}

var _ repository.ReportRepository = (*MockReportRepository)(nil)

func (m *MockReportRepository) NextReference(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockReportRepository) Create(ctx context.Context, r *model.Report) (*model.Report, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id string) (*model.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) FindByReference(ctx context.Context, reference string) (*model.Report, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) List(ctx context.Context, f repository.ReportFilter, pq repository.PageQuery) (*repository.PageResult[model.Report], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Report]), args.Error(1)
}

func (m *MockReportRepository) Update(ctx context.Context, r *model.Report) (*model.Report, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReportRepository) ListAddenda(ctx context.Context, reportID string) ([]model.DescriptionAddendum, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DescriptionAddendum), args.Error(1)
}

func (m *MockReportRepository) ReplaceAddenda(ctx context.Context, reportID string, addenda []model.DescriptionAddendum) error {
	args := m.Called(ctx, reportID, addenda)
	return args.Error(0)
}

func (m *MockReportRepository) AddStaffInvolvement(ctx context.Context, s *model.StaffInvolvement) (*model.StaffInvolvement, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StaffInvolvement), args.Error(1)
}

func (m *MockReportRepository) ListStaffInvolvements(ctx context.Context, reportID string) ([]model.StaffInvolvement, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StaffInvolvement), args.Error(1)
}

func (m *MockReportRepository) DeleteStaffInvolvement(ctx context.Context, reportID string, sequence int) error {
	args := m.Called(ctx, reportID, sequence)
	return args.Error(0)
}

func (m *MockReportRepository) ReplaceStaffInvolvements(ctx context.Context, reportID string, items []model.StaffInvolvement) error {
	args := m.Called(ctx, reportID, items)
	return args.Error(0)
}

func (m *MockReportRepository) AddPrisonerInvolvement(ctx context.Context, p *model.PrisonerInvolvement) (*model.PrisonerInvolvement, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PrisonerInvolvement), args.Error(1)
}

func (m *MockReportRepository) ListPrisonerInvolvements(ctx context.Context, reportID string) ([]model.PrisonerInvolvement, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PrisonerInvolvement), args.Error(1)
}

func (m *MockReportRepository) DeletePrisonerInvolvement(ctx context.Context, reportID string, sequence int) error {
	args := m.Called(ctx, reportID, sequence)
	return args.Error(0)
}

func (m *MockReportRepository) ReplacePrisonerInvolvements(ctx context.Context, reportID string, items []model.PrisonerInvolvement) error {
	args := m.Called(ctx, reportID, items)
	return args.Error(0)
}

func (m *MockReportRepository) AddCorrectionRequest(ctx context.Context, c *model.CorrectionRequest) (*model.CorrectionRequest, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CorrectionRequest), args.Error(1)
}

func (m *MockReportRepository) ListCorrectionRequests(ctx context.Context, reportID string) ([]model.CorrectionRequest, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CorrectionRequest), args.Error(1)
}

func (m *MockReportRepository) ReplaceCorrectionRequests(ctx context.Context, reportID string, items []model.CorrectionRequest) error {
	args := m.Called(ctx, reportID, items)
	return args.Error(0)
}

func (m *MockReportRepository) AddStatusHistory(ctx context.Context, h *model.StatusHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockReportRepository) ListStatusHistory(ctx context.Context, reportID string) ([]model.StatusHistory, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StatusHistory), args.Error(1)
}
