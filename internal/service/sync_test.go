package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"incidentapi/internal/events"
	eventMocks "incidentapi/internal/events/mocks"
	"incidentapi/internal/model"
	"incidentapi/internal/nomis"
	repoMocks "incidentapi/internal/repository/mocks"
	"incidentapi/internal/storage"
	storeMocks "incidentapi/internal/storage/mocks"
)

func nomisIncident() nomis.IncidentResponse {
	title := "Fight in the exercise yard"
	description := "Two prisoners fought" +
		"User:STARK,TONY Date:07-JUN-2024 12:13Seen by healthcare" +
		"User:BANNER,BRUCE Date:08/06/2024 09:00Moved to segregation"
	outcome := nomis.CodeDescription{Code: "POR"}
	return nomis.IncidentResponse{
		IncidentID:       112414323,
		Title:            &title,
		Description:      &description,
		Prison:           nomis.CodeDescription{Code: "BXI"},
		Status:           nomis.CodeDescription{Code: "AWAN"},
		Type:             "ASSAULTS3",
		IncidentDateTime: nomis.LocalDateTime{Time: time.Date(2024, 6, 6, 10, 30, 0, 0, time.UTC)},
		ReportingStaff:   nomis.Staff{Username: "FSTARK"},
		ReportedDateTime: nomis.LocalDateTime{Time: time.Date(2024, 6, 6, 11, 0, 0, 0, time.UTC)},
		CreatedBy:        "FSTARK",
		StaffParties: []nomis.StaffParty{
			{Staff: nomis.Staff{Username: "JBLOGGS"}, SequenceNumber: 1, Role: nomis.CodeDescription{Code: "FOS"}},
		},
		OffenderParties: []nomis.OffenderParty{
			{Offender: nomis.Offender{OffenderNo: "A1234AA"}, SequenceNumber: 1, Role: nomis.CodeDescription{Code: "VICT"}, Outcome: &outcome},
		},
	}
}

func expectReplaceChildren(mRepo *repoMocks.MockReportRepository, reportID string) {
	mRepo.On("ReplaceAddenda", mock.Anything, reportID, mock.MatchedBy(func(a []model.DescriptionAddendum) bool {
		return len(a) == 2 && a[0].LastName == "STARK" && a[1].Text == "Moved to segregation"
	})).Return(nil)
	mRepo.On("ReplaceStaffInvolvements", mock.Anything, reportID, mock.MatchedBy(func(s []model.StaffInvolvement) bool {
		return len(s) == 1 && s[0].StaffRole == model.StaffRoleFirstOnScene
	})).Return(nil)
	mRepo.On("ReplacePrisonerInvolvements", mock.Anything, reportID, mock.Anything).Return(nil)
	mRepo.On("ReplaceCorrectionRequests", mock.Anything, reportID, mock.Anything).Return(nil)
}

func TestSyncService_SyncFromNomis_Create(t *testing.T) {
	mRepo := new(repoMocks.MockReportRepository)
	mStore := new(storeMocks.MockStorage)
	mPub := new(eventMocks.MockPublisher)

	mRepo.On("FindByReference", mock.Anything, "112414323").Return(nil, sql.ErrNoRows)
	mRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Report) bool {
		return r.ID != "" && r.Source == model.SourceNomis && r.Description == "Two prisoners fought" &&
			r.Type == model.TypeAssault && r.PrisonID == "BXI"
	})).Return(func() *model.Report {
		r := newReport()
		r.ReportReference = "112414323"
		r.Source = model.SourceNomis
		return r
	}(), nil)
	mRepo.On("AddStatusHistory", mock.Anything, mock.MatchedBy(func(h *model.StatusHistory) bool {
		return h.Status == model.StatusAwaitingAnalysis && h.ChangedBy == "FSTARK"
	})).Return(nil)
	expectReplaceChildren(mRepo, testReportID)
	mStore.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "nomis/112414323/") && strings.HasSuffix(key, ".json")
	}), mock.Anything, mock.Anything).Return(func(_ context.Context, key string, r io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
		b, _ := io.ReadAll(r)
		return storage.ObjectInfo{Key: key, Size: int64(len(b))}
	}, nil)
	mPub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.EventType == events.ReportCreated && e.AdditionalInformation.Source == model.SourceNomis
	})).Return(nil)

	svc := NewSyncService(mRepo, nil, mStore, mPub, nil)
	res, err := svc.SyncFromNomis(context.Background(), nomisIncident())

	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Len(t, res.Report.DescriptionAddendums, 2)
	mRepo.AssertExpectations(t)
	mStore.AssertExpectations(t)
	mPub.AssertExpectations(t)
}

func TestSyncService_SyncFromNomis_Update(t *testing.T) {
	mRepo := new(repoMocks.MockReportRepository)
	mPub := new(eventMocks.MockPublisher)

	existing := newReport()
	existing.ReportReference = "112414323"
	mRepo.On("FindByReference", mock.Anything, "112414323").Return(existing, nil)
	mRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *model.Report) bool {
		return r.ID == testReportID && r.Source == model.SourceDPS && r.ModifiedIn == model.SourceNomis
	})).Return(existing, nil)
	expectReplaceChildren(mRepo, testReportID)
	mPub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.EventType == events.ReportAmended && e.AdditionalInformation.WhatChanged == events.ChangedAnything
	})).Return(nil)

	res, err := NewSyncService(mRepo, nil, nil, mPub, nil).SyncFromNomis(context.Background(), nomisIncident())

	require.NoError(t, err)
	assert.False(t, res.Created)
	mRepo.AssertNotCalled(t, "AddStatusHistory", mock.Anything, mock.Anything)
	mRepo.AssertExpectations(t)
	mPub.AssertExpectations(t)
}

func TestSyncService_SyncFromNomis_StatusChangeIsRecorded(t *testing.T) {
	mRepo := new(repoMocks.MockReportRepository)

	existing := newReport()
	existing.Status = model.StatusInAnalysis
	updated := newReport()
	mRepo.On("FindByReference", mock.Anything, "112414323").Return(existing, nil)
	mRepo.On("Update", mock.Anything, mock.Anything).Return(updated, nil)
	mRepo.On("AddStatusHistory", mock.Anything, mock.MatchedBy(func(h *model.StatusHistory) bool {
		return h.Status == model.StatusAwaitingAnalysis
	})).Return(nil)
	expectReplaceChildren(mRepo, testReportID)

	_, err := NewSyncService(mRepo, nil, nil, nil, nil).SyncFromNomis(context.Background(), nomisIncident())

	require.NoError(t, err)
	mRepo.AssertExpectations(t)
}

func TestSyncService_SyncFromNomis_Errors(t *testing.T) {
	t.Run("unmapped code", func(t *testing.T) {
		in := nomisIncident()
		in.Status.Code = "ZZZ"

		_, err := NewSyncService(new(repoMocks.MockReportRepository), nil, nil, nil, nil).SyncFromNomis(context.Background(), in)

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, nomis.ErrUnmappedCode)
	})

	t.Run("missing incident id", func(t *testing.T) {
		in := nomisIncident()
		in.IncidentID = 0

		_, err := NewSyncService(new(repoMocks.MockReportRepository), nil, nil, nil, nil).SyncFromNomis(context.Background(), in)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("replace failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockReportRepository)
		mRepo.On("FindByReference", mock.Anything, "112414323").Return(newReport(), nil)
		mRepo.On("Update", mock.Anything, mock.Anything).Return(newReport(), nil)
		mRepo.On("AddStatusHistory", mock.Anything, mock.Anything).Return(nil).Maybe()
		mRepo.On("ReplaceAddenda", mock.Anything, testReportID, mock.Anything).Return(errors.New("db fail"))

		_, err := NewSyncService(mRepo, nil, nil, nil, nil).SyncFromNomis(context.Background(), nomisIncident())

		assert.EqualError(t, err, "replace addenda: db fail")
	})

	t.Run("archive failure is ignored", func(t *testing.T) {
		mRepo := new(repoMocks.MockReportRepository)
		mStore := new(storeMocks.MockStorage)
		mRepo.On("FindByReference", mock.Anything, "112414323").Return(newReport(), nil)
		mRepo.On("Update", mock.Anything, mock.Anything).Return(newReport(), nil)
		expectReplaceChildren(mRepo, testReportID)
		mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, errors.New("bucket gone"))

		res, err := NewSyncService(mRepo, nil, mStore, nil, nil).SyncFromNomis(context.Background(), nomisIncident())

		require.NoError(t, err)
		assert.NotNil(t, res.Report)
		mStore.AssertExpectations(t)
	})
}

type fakeFetcher struct {
	incident *nomis.IncidentResponse
	err      error
}

func (f fakeFetcher) GetIncident(context.Context, int64) (*nomis.IncidentResponse, error) {
	return f.incident, f.err
}

func TestSyncService_ReconcileFromNomis(t *testing.T) {
	ctx := context.Background()

	t.Run("no client", func(t *testing.T) {
		_, err := NewSyncService(new(repoMocks.MockReportRepository), nil, nil, nil, nil).ReconcileFromNomis(ctx, 1)
		assert.ErrorIs(t, err, ErrNomisUnavailable)
	})

	t.Run("incident missing in nomis", func(t *testing.T) {
		svc := NewSyncService(new(repoMocks.MockReportRepository), fakeFetcher{err: nomis.ErrIncidentNotFound}, nil, nil, nil)
		_, err := svc.ReconcileFromNomis(ctx, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("nomis error", func(t *testing.T) {
		svc := NewSyncService(new(repoMocks.MockReportRepository), fakeFetcher{err: errors.New("timeout")}, nil, nil, nil)
		_, err := svc.ReconcileFromNomis(ctx, 1)
		assert.ErrorIs(t, err, ErrNomisUnavailable)
		assert.ErrorContains(t, err, "timeout")
	})

	t.Run("fetches and syncs", func(t *testing.T) {
		in := nomisIncident()
		mRepo := new(repoMocks.MockReportRepository)
		mRepo.On("FindByReference", mock.Anything, "112414323").Return(newReport(), nil)
		mRepo.On("Update", mock.Anything, mock.Anything).Return(newReport(), nil)
		expectReplaceChildren(mRepo, testReportID)

		res, err := NewSyncService(mRepo, fakeFetcher{incident: &in}, nil, nil, nil).ReconcileFromNomis(ctx, in.IncidentID)

		require.NoError(t, err)
		assert.Equal(t, testReportID, res.Report.ID)
	})
}
