package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"incidentapi/internal/change"
	"incidentapi/internal/model"
	"incidentapi/internal/nomis"
	"incidentapi/internal/service"
)

type MockReportService struct {
	mock.Mock
}

var _ service.ReportService = (*MockReportService)(nil)

func (m *MockReportService) Create(ctx context.Context, in service.CreateReportInput) (*model.Report, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) Get(ctx context.Context, id string) (*model.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) GetByReference(ctx context.Context, reference string) (*model.Report, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) List(ctx context.Context, in service.ListReportsInput) (*service.ReportListResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportListResult), args.Error(1)
}

func (m *MockReportService) Update(ctx context.Context, id string, in service.UpdateReportInput) (*model.Report, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) ChangeStatus(ctx context.Context, id string, status string) (change.Result[*model.Report], error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return change.Result[*model.Report]{}, args.Error(1)
	}
	return args.Get(0).(change.Result[*model.Report]), args.Error(1)
}

func (m *MockReportService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReportService) History(ctx context.Context, id string) ([]model.StatusHistory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StatusHistory), args.Error(1)
}

func (m *MockReportService) AddStaffInvolvement(ctx context.Context, id string, in service.StaffInvolvementInput) (*model.StaffInvolvement, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StaffInvolvement), args.Error(1)
}

func (m *MockReportService) ListStaffInvolvements(ctx context.Context, id string) ([]model.StaffInvolvement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StaffInvolvement), args.Error(1)
}

func (m *MockReportService) RemoveStaffInvolvement(ctx context.Context, id string, index int) error {
	args := m.Called(ctx, id, index)
	return args.Error(0)
}

func (m *MockReportService) AddPrisonerInvolvement(ctx context.Context, id string, in service.PrisonerInvolvementInput) (*model.PrisonerInvolvement, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PrisonerInvolvement), args.Error(1)
}

func (m *MockReportService) ListPrisonerInvolvements(ctx context.Context, id string) ([]model.PrisonerInvolvement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PrisonerInvolvement), args.Error(1)
}

func (m *MockReportService) RemovePrisonerInvolvement(ctx context.Context, id string, index int) error {
	args := m.Called(ctx, id, index)
	return args.Error(0)
}

func (m *MockReportService) AddCorrectionRequest(ctx context.Context, id string, in service.CorrectionRequestInput) (*model.CorrectionRequest, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CorrectionRequest), args.Error(1)
}

func (m *MockReportService) ListCorrectionRequests(ctx context.Context, id string) ([]model.CorrectionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CorrectionRequest), args.Error(1)
}

type MockSyncService struct {
	mock.Mock
}

var _ service.SyncService = (*MockSyncService)(nil)

func (m *MockSyncService) SyncFromNomis(ctx context.Context, in nomis.IncidentResponse) (*service.SyncResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncResult), args.Error(1)
}

func (m *MockSyncService) ReconcileFromNomis(ctx context.Context, incidentID int64) (*service.SyncResult, error) {
	args := m.Called(ctx, incidentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncResult), args.Error(1)
}
