// Package service implements the incident reporting use cases on top of the repository,
// the event publisher and the NOMIS client.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"incidentapi/internal/events"
	"incidentapi/internal/model"
)

var (
	ErrIDRequired         = errors.New("id is required")
	ErrNotFound           = errors.New("report not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateReference = errors.New("report reference already exists")
	ErrNomisUnavailable   = errors.New("nomis unavailable")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// notFound translates a repository miss into ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// checkID rejects empty IDs. IDs that are not UUIDs cannot exist and are reported as missing.
func checkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrIDRequired
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return nil
}

func nowUTC() time.Time { return time.Now().UTC() }

// publish hands an event to the broker. Failures are logged and never fail the caller.
func publish(ctx context.Context, pub events.Publisher, log *zap.Logger, e events.Event) {
	if err := pub.Publish(ctx, e); err != nil {
		log.Warn("event publish failed",
			zap.String("event_type", string(e.EventType)),
			zap.String("report_id", e.AdditionalInformation.ID),
			zap.Error(err),
		)
	}
}

func eventFor(t events.EventType, r *model.Report, source model.Source, what events.WhatChanged) events.Event {
	return events.New(t, r, source, what, nowUTC())
}
