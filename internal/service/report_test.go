package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"incidentapi/internal/auth"
	"incidentapi/internal/events"
	eventMocks "incidentapi/internal/events/mocks"
	"incidentapi/internal/model"
	"incidentapi/internal/repository"
	repoMocks "incidentapi/internal/repository/mocks"
)

const testReportID = "11111111-1111-1111-1111-111111111111"

func userCtx() context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{Username: "JSMITH"})
}

func newReport() *model.Report {
	at := time.Date(2024, 6, 7, 10, 0, 0, 0, time.UTC)
	return &model.Report{
		ID:                  testReportID,
		ReportReference:     "100000001",
		Type:                model.TypeAssault,
		Status:              model.StatusAwaitingAnalysis,
		Source:              model.SourceDPS,
		IncidentDateAndTime: at,
		PrisonID:            "MDI",
		Title:               "Assault on B wing",
		Description:         "Two prisoners fought",
		ReportedBy:          "JSMITH",
		ReportedAt:          at,
		CreatedAt:           at,
		ModifiedAt:          at,
		ModifiedBy:          "JSMITH",
		ModifiedIn:          model.SourceDPS,
	}
}

func eventOf(t events.EventType, what events.WhatChanged) interface{} {
	return mock.MatchedBy(func(e events.Event) bool {
		return e.EventType == t && e.AdditionalInformation.WhatChanged == what && e.AdditionalInformation.ID == testReportID
	})
}

func TestReportService_Create(t *testing.T) {
	ctx := userCtx()
	valid := CreateReportInput{
		Type:                "ASSAULT",
		IncidentDateAndTime: time.Date(2024, 6, 7, 10, 0, 0, 0, time.UTC),
		PrisonID:            "MDI",
		Title:               "Assault on B wing",
		Description:         "Two prisoners fought",
	}

	tests := []struct {
		name       string
		ctx        context.Context
		in         func() CreateReportInput
		setupMocks func(mRepo *repoMocks.MockReportRepository, mPub *eventMocks.MockPublisher)
		wantErr    error
	}{
		{
			name: "happy path",
			ctx:  ctx,
			in:   func() CreateReportInput { return valid },
			setupMocks: func(mRepo *repoMocks.MockReportRepository, mPub *eventMocks.MockPublisher) {
				mRepo.On("NextReference", ctx).Return("100000001", nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(r *model.Report) bool {
					return r.ID != "" && r.ReportReference == "100000001" &&
						r.Status == model.StatusAwaitingAnalysis && r.Source == model.SourceDPS &&
						r.Type == model.TypeAssault && r.ReportedBy == "JSMITH" && r.ModifiedIn == model.SourceDPS
				})).Return(newReport(), nil)
				mRepo.On("AddStatusHistory", ctx, mock.MatchedBy(func(h *model.StatusHistory) bool {
					return h.ReportID == testReportID && h.Status == model.StatusAwaitingAnalysis && h.ChangedBy == "JSMITH"
				})).Return(nil)
				mPub.On("Publish", ctx, eventOf(events.ReportCreated, "")).Return(nil)
			},
		},
		{
			name: "publish failure does not fail the request",
			ctx:  ctx,
			in:   func() CreateReportInput { return valid },
			setupMocks: func(mRepo *repoMocks.MockReportRepository, mPub *eventMocks.MockPublisher) {
				mRepo.On("NextReference", ctx).Return("100000001", nil)
				mRepo.On("Create", ctx, mock.Anything).Return(newReport(), nil)
				mRepo.On("AddStatusHistory", ctx, mock.Anything).Return(nil)
				mPub.On("Publish", ctx, mock.Anything).Return(errors.New("broker down"))
			},
		},
		{
			name:       "unauthenticated",
			ctx:        context.Background(),
			in:         func() CreateReportInput { return valid },
			setupMocks: func(*repoMocks.MockReportRepository, *eventMocks.MockPublisher) {},
			wantErr:    auth.ErrUnauthenticated,
		},
		{
			name: "unknown type",
			ctx:  ctx,
			in: func() CreateReportInput {
				in := valid
				in.Type = "ALIENS"
				return in
			},
			setupMocks: func(*repoMocks.MockReportRepository, *eventMocks.MockPublisher) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name: "missing title",
			ctx:  ctx,
			in: func() CreateReportInput {
				in := valid
				in.Title = "  "
				return in
			},
			setupMocks: func(*repoMocks.MockReportRepository, *eventMocks.MockPublisher) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name: "incident in the future",
			ctx:  ctx,
			in: func() CreateReportInput {
				in := valid
				in.IncidentDateAndTime = time.Now().Add(24 * time.Hour)
				return in
			},
			setupMocks: func(*repoMocks.MockReportRepository, *eventMocks.MockPublisher) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name: "duplicate reference",
			ctx:  ctx,
			in:   func() CreateReportInput { return valid },
			setupMocks: func(mRepo *repoMocks.MockReportRepository, mPub *eventMocks.MockPublisher) {
				mRepo.On("NextReference", ctx).Return("100000001", nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
			},
			wantErr: ErrDuplicateReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockReportRepository)
			mPub := new(eventMocks.MockPublisher)
			tt.setupMocks(mRepo, mPub)
			svc := NewReportService(mRepo, mPub, nil)

			got, err := svc.Create(tt.ctx, tt.in())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testReportID, got.ID)
			}
			mRepo.AssertExpectations(t)
			mPub.AssertExpectations(t)
		})
	}
}

func TestReportService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("loads addenda", func(t *testing.T) {
		mRepo := new(repoMocks.MockReportRepository)
		addenda := []model.DescriptionAddendum{{Sequence: 0, LastName: "STARK", FirstName: "TONY", Text: "more"}}
		mRepo.On("FindByID", ctx, testReportID).Return(newReport(), nil)
		mRepo.On("ListAddenda", ctx, testReportID).Return(addenda, nil)

		got, err := NewReportService(mRepo, nil, nil).Get(ctx, testReportID)

		require.NoError(t, err)
		assert.Equal(t, addenda, got.DescriptionAddendums)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockReportRepository)
		mRepo.On("FindByID", ctx, testReportID).Return(nil, sql.ErrNoRows)

		_, err := NewReportService(mRepo, nil, nil).Get(ctx, testReportID)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := NewReportService(new(repoMocks.MockReportRepository), nil, nil).Get(ctx, "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("id that is not a uuid", func(t *testing.T) {
		mRepo := new(repoMocks.MockReportRepository)
		_, err := NewReportService(mRepo, nil, nil).Get(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrNotFound)
		mRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestReportService_GetByReference(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockReportRepository)
	mRepo.On("FindByReference", ctx, "100000001").Return(newReport(), nil)
	mRepo.On("ListAddenda", ctx, testReportID).Return([]model.DescriptionAddendum{}, nil)

	got, err := NewReportService(mRepo, nil, nil).GetByReference(ctx, "100000001")

	require.NoError(t, err)
	assert.Equal(t, testReportID, got.ID)
}

func TestReportService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		in        ListReportsInput
		wantQuery repository.PageQuery
		wantF     repository.ReportFilter
		wantErr   error
	}{
		{
			name:      "defaults",
			in:        ListReportsInput{Limit: 0, Offset: -5},
			wantQuery: repository.PageQuery{Limit: 10, Offset: 0},
		},
		{
			name:      "filters",
			in:        ListReportsInput{PrisonID: "MDI", Status: "CLOSED", Type: "FIRE", Source: "NOMIS", Limit: 20, Offset: 40},
			wantQuery: repository.PageQuery{Limit: 20, Offset: 40},
			wantF: repository.ReportFilter{
				PrisonID: "MDI",
				Status:   model.StatusClosed,
				Type:     model.TypeFire,
				Source:   model.SourceNomis,
			},
		},
		{
			name:    "unknown status",
			in:      ListReportsInput{Status: "OPEN"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown source",
			in:      ListReportsInput{Source: "PAPER"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockReportRepository)
			if tt.wantErr == nil {
				mRepo.On("List", ctx, tt.wantF, tt.wantQuery).
					Return(&repository.PageResult[model.Report]{Items: []model.Report{*newReport()}, Total: 1}, nil)
			}

			res, err := NewReportService(mRepo, nil, nil).List(ctx, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, res.Total)
			assert.Len(t, res.Items, 1)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestReportService_Update(t *testing.T) {
	ctx := userCtx()
	strPtr := func(s string) *string { return &s }

	t.Run("changed fields are stored and announced", func(t *testing.T) {
		mRepo := new(repoMocks.MockReportRepository)
		mPub := new(eventMocks.MockPublisher)
		mRepo.On("FindByID", ctx, testReportID).Return(newReport(), nil)
		mRepo.On("ListAddenda", ctx, testReportID).Return([]model.DescriptionAddendum{}, nil)
		updated := newReport()
		updated.Title = "Fight on B wing"
		mRepo.On("Update", ctx, mock.MatchedBy(func(r *model.Report) bool {
			return r.Title == "Fight on B wing" && r.ModifiedBy == "JSMITH" && r.ModifiedIn == model.SourceDPS
		})).Return(updated, nil)
		mPub.On("Publish", ctx, eventOf(events.ReportAmended, events.ChangedBasicReport)).Return(nil)

		got, err := NewReportService(mRepo, mPub, nil).Update(ctx, testReportID, UpdateReportInput{Title: strPtr("Fight on B wing")})

		require.NoError(t, err)
		assert.Equal(t, "Fight on B wing", got.Title)
		mRepo.AssertExpectations(t)
		mPub.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("failed write is not announced", func(t *testing.T) {
		mRepo := new(repoMocks.MockReportRepository)
		mPub := new(eventMocks.MockPublisher)
		mRepo.On("FindByID", ctx, testReportID).Return(newReport(), nil)
		mRepo.On("ListAddenda", ctx, testReportID).Return([]model.DescriptionAddendum{}, nil)
		mRepo.On("Update", ctx, mock.Anything).Return(nil, errors.New("connection reset"))

		got, err := NewReportService(mRepo, mPub, nil).Update(ctx, testReportID, UpdateReportInput{Title: strPtr("Fight on B wing")})

		assert.EqualError(t, err, "connection reset")
		assert.Nil(t, got)
		mPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("same values are not written", func(t *testing.T) {
		mRepo := new(repoMocks.MockReportRepository)
		mPub := new(eventMocks.MockPublisher)
		mRepo.On("FindByID", ctx, testReportID).Return(newReport(), nil)
		mRepo.On("ListAddenda", ctx, testReportID).Return([]model.DescriptionAddendum{}, nil)

		got, err := NewReportService(mRepo, mPub, nil).Update(ctx, testReportID, UpdateReportInput{PrisonID: strPtr("MDI")})

		require.NoError(t, err)
		assert.Equal(t, "MDI", got.PrisonID)
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		mPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("blank title", func(t *testing.T) {
		mRepo := new(repoMocks.MockReportRepository)
		mRepo.On("FindByID", ctx, testReportID).Return(newReport(), nil)
		mRepo.On("ListAddenda", ctx, testReportID).Return([]model.DescriptionAddendum{}, nil)

		_, err := NewReportService(mRepo, nil, nil).Update(ctx, testReportID, UpdateReportInput{Title: strPtr("")})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := NewReportService(new(repoMocks.MockReportRepository), nil, nil).
			Update(context.Background(), testReportID, UpdateReportInput{Title: strPtr("x")})
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})
}

func TestApplyUpdate(t *testing.T) {
	incidentType := "FIRE"
	res, err := applyUpdate(newReport(), UpdateReportInput{Type: &incidentType})
	require.NoError(t, err)
	assert.True(t, res.IsChanged())
	assert.Equal(t, model.TypeFire, res.Value().Type)

	same := newReport().IncidentDateAndTime
	res, err = applyUpdate(newReport(), UpdateReportInput{IncidentDateAndTime: &same})
	require.NoError(t, err)
	assert.False(t, res.IsChanged())

	bad := "ALIENS"
	_, err = applyUpdate(newReport(), UpdateReportInput{Type: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReportService_ChangeStatus(t *testing.T) {
	ctx := userCtx()

	t.Run("new status", func(t *testing.T) {
		mRepo := new(repoMocks.MockReportRepository)
		mPub := new(eventMocks.MockPublisher)
		mRepo.On("FindByID", ctx, testReportID).Return(newReport(), nil)
		mRepo.On("ListAddenda", ctx, testReportID).Return([]model.DescriptionAddendum{}, nil)
		closed := newReport()
		closed.Status = model.StatusClosed
		mRepo.On("Update", ctx, mock.MatchedBy(func(r *model.Report) bool {
			return r.Status == model.StatusClosed
		})).Return(closed, nil)
		mRepo.On("AddStatusHistory", ctx, mock.MatchedBy(func(h *model.StatusHistory) bool {
			return h.Status == model.StatusClosed && h.ChangedBy == "JSMITH"
		})).Return(nil)
		mPub.On("Publish", ctx, eventOf(events.ReportAmended, events.ChangedStatus)).Return(nil)

		res, err := NewReportService(mRepo, mPub, nil).ChangeStatus(ctx, testReportID, "CLOSED")

		require.NoError(t, err)
		assert.True(t, res.IsChanged())
		assert.Equal(t, model.StatusClosed, res.Value().Status)
		mRepo.AssertExpectations(t)
		mPub.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("history failure is not announced", func(t *testing.T) {
		mRepo := new(repoMocks.MockReportRepository)
		mPub := new(eventMocks.MockPublisher)
		mRepo.On("FindByID", ctx, testReportID).Return(newReport(), nil)
		mRepo.On("ListAddenda", ctx, testReportID).Return([]model.DescriptionAddendum{}, nil)
		mRepo.On("Update", ctx, mock.Anything).Return(newReport(), nil)
		mRepo.On("AddStatusHistory", ctx, mock.Anything).Return(errors.New("connection reset"))

		_, err := NewReportService(mRepo, mPub, nil).ChangeStatus(ctx, testReportID, "CLOSED")

		assert.EqualError(t, err, "connection reset")
		mPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("current status is unchanged", func(t *testing.T) {
		mRepo := new(repoMocks.MockReportRepository)
		mPub := new(eventMocks.MockPublisher)
		mRepo.On("FindByID", ctx, testReportID).Return(newReport(), nil)
		mRepo.On("ListAddenda", ctx, testReportID).Return([]model.DescriptionAddendum{}, nil)

		res, err := NewReportService(mRepo, mPub, nil).ChangeStatus(ctx, testReportID, "AWAITING_ANALYSIS")

		require.NoError(t, err)
		assert.False(t, res.IsChanged())
		mRepo.AssertNotCalled(t, "AddStatusHistory", mock.Anything, mock.Anything)
		mPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := NewReportService(new(repoMocks.MockReportRepository), nil, nil).ChangeStatus(ctx, testReportID, "OPEN")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestReportService_Delete(t *testing.T) {
	ctx := userCtx()

	tests := []struct {
		name       string
		setupMocks func(mRepo *repoMocks.MockReportRepository, mPub *eventMocks.MockPublisher)
		wantErr    error
	}{
		{
			name: "happy path",
			setupMocks: func(mRepo *repoMocks.MockReportRepository, mPub *eventMocks.MockPublisher) {
				mRepo.On("FindByID", ctx, testReportID).Return(newReport(), nil)
				mRepo.On("Delete", ctx, testReportID).Return(nil)
				mPub.On("Publish", ctx, eventOf(events.ReportDeleted, "")).Return(nil)
			},
		},
		{
			name: "not found",
			setupMocks: func(mRepo *repoMocks.MockReportRepository, mPub *eventMocks.MockPublisher) {
				mRepo.On("FindByID", ctx, testReportID).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "repository error",
			setupMocks: func(mRepo *repoMocks.MockReportRepository, mPub *eventMocks.MockPublisher) {
				mRepo.On("FindByID", ctx, testReportID).Return(newReport(), nil)
				mRepo.On("Delete", ctx, testReportID).Return(errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockReportRepository)
			mPub := new(eventMocks.MockPublisher)
			tt.setupMocks(mRepo, mPub)

			err := NewReportService(mRepo, mPub, nil).Delete(ctx, testReportID)

			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
			mRepo.AssertExpectations(t)
			mPub.AssertExpectations(t)
		})
	}
}

func TestReportService_History(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockReportRepository)
	history := []model.StatusHistory{{Status: model.StatusAwaitingAnalysis, ChangedBy: "JSMITH"}}
	mRepo.On("FindByID", ctx, testReportID).Return(newReport(), nil)
	mRepo.On("ListStatusHistory", ctx, testReportID).Return(history, nil)

	got, err := NewReportService(mRepo, nil, nil).History(ctx, testReportID)

	require.NoError(t, err)
	assert.Equal(t, history, got)
}
