package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"incidentapi/internal/auth"
	"incidentapi/internal/events"
	"incidentapi/internal/model"
	"incidentapi/internal/repository"
)

var (
	// ErrInvolvementNotFound is returned when no child record exists at the requested index.
	ErrInvolvementNotFound = errors.New("involvement not found")
	// ErrConcurrentAppend is returned when concurrent writers keep taking the next sequence.
	ErrConcurrentAppend = errors.New("report was changed concurrently, retry the request")
)

// appendChild runs add, retrying once if another writer took the next sequence first.
func appendChild[T any](add func() (T, error)) (T, error) {
	added, err := add()
	if errors.Is(err, repository.ErrDuplicate) {
		added, err = add()
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return added, ErrConcurrentAppend
	}
	return added, err
}

// amend marks the report as modified by the caller and announces which part changed.
func (s *reportService) amend(ctx context.Context, rep *model.Report, username string, what events.WhatChanged) error {
	stored, err := s.touch(ctx, rep, username)
	if err != nil {
		return err
	}
	publish(ctx, s.pub, s.log, eventFor(events.ReportAmended, stored, model.SourceDPS, what))
	return nil
}

func (s *reportService) AddStaffInvolvement(ctx context.Context, id string, in StaffInvolvementInput) (*model.StaffInvolvement, error) {
	username, err := auth.Username(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.StaffUsername) == "" {
		return nil, invalid("staff_username is required")
	}
	role, err := model.ParseStaffRole(in.StaffRole)
	if err != nil {
		return nil, invalid("%v", err)
	}
	rep, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	added, err := appendChild(func() (*model.StaffInvolvement, error) {
		return s.repo.AddStaffInvolvement(ctx, &model.StaffInvolvement{
			ReportID:      rep.ID,
			StaffUsername: in.StaffUsername,
			StaffRole:     role,
			Comment:       in.Comment,
		})
	})
	if err != nil {
		return nil, err
	}
	if err := s.amend(ctx, rep, username, events.ChangedStaffInvolvement); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *reportService) ListStaffInvolvements(ctx context.Context, id string) ([]model.StaffInvolvement, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListStaffInvolvements(ctx, id)
}

func (s *reportService) RemoveStaffInvolvement(ctx context.Context, id string, index int) error {
	username, err := auth.Username(ctx)
	if err != nil {
		return err
	}
	rep, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteStaffInvolvement(ctx, rep.ID, index); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvolvementNotFound
		}
		return err
	}
	return s.amend(ctx, rep, username, events.ChangedStaffInvolvement)
}

func (s *reportService) AddPrisonerInvolvement(ctx context.Context, id string, in PrisonerInvolvementInput) (*model.PrisonerInvolvement, error) {
	username, err := auth.Username(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.PrisonerNumber) == "" {
		return nil, invalid("prisoner_number is required")
	}
	role, err := model.ParsePrisonerRole(in.PrisonerRole)
	if err != nil {
		return nil, invalid("%v", err)
	}
	var outcome *model.PrisonerOutcome
	if in.Outcome != nil {
		o, err := model.ParsePrisonerOutcome(*in.Outcome)
		if err != nil {
			return nil, invalid("%v", err)
		}
		outcome = &o
	}
	rep, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	added, err := appendChild(func() (*model.PrisonerInvolvement, error) {
		return s.repo.AddPrisonerInvolvement(ctx, &model.PrisonerInvolvement{
			ReportID:       rep.ID,
			PrisonerNumber: in.PrisonerNumber,
			PrisonerRole:   role,
			Outcome:        outcome,
			Comment:        in.Comment,
		})
	})
	if err != nil {
		return nil, err
	}
	if err := s.amend(ctx, rep, username, events.ChangedPrisonerInvolvement); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *reportService) ListPrisonerInvolvements(ctx context.Context, id string) ([]model.PrisonerInvolvement, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListPrisonerInvolvements(ctx, id)
}

func (s *reportService) RemovePrisonerInvolvement(ctx context.Context, id string, index int) error {
	username, err := auth.Username(ctx)
	if err != nil {
		return err
	}
	rep, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeletePrisonerInvolvement(ctx, rep.ID, index); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvolvementNotFound
		}
		return err
	}
	return s.amend(ctx, rep, username, events.ChangedPrisonerInvolvement)
}

func (s *reportService) AddCorrectionRequest(ctx context.Context, id string, in CorrectionRequestInput) (*model.CorrectionRequest, error) {
	username, err := auth.Username(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.DescriptionOfChange) == "" {
		return nil, invalid("description_of_change is required")
	}
	rep, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	requestedAt := nowUTC()
	added, err := appendChild(func() (*model.CorrectionRequest, error) {
		return s.repo.AddCorrectionRequest(ctx, &model.CorrectionRequest{
			ReportID:              rep.ID,
			DescriptionOfChange:   in.DescriptionOfChange,
			CorrectionRequestedBy: username,
			CorrectionRequestedAt: requestedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	if err := s.amend(ctx, rep, username, events.ChangedCorrectionRequests); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *reportService) ListCorrectionRequests(ctx context.Context, id string) ([]model.CorrectionRequest, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListCorrectionRequests(ctx, id)
}
