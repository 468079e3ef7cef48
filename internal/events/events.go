// Package events publishes incident report domain events to downstream consumers.
package events

import (
	"context"
	"time"

	"incidentapi/internal/model"
)

type EventType string

const (
	ReportCreated EventType = "incident.report.created"
	ReportAmended EventType = "incident.report.amended"
	ReportDeleted EventType = "incident.report.deleted"
)

// WhatChanged narrows an amended event to the part of the report that changed.
type WhatChanged string

const (
	ChangedAnything            WhatChanged = "ANYTHING"
	ChangedBasicReport         WhatChanged = "BASIC_REPORT"
	ChangedStatus              WhatChanged = "STATUS"
	ChangedStaffInvolvement    WhatChanged = "STAFF_INVOLVEMENT"
	ChangedPrisonerInvolvement WhatChanged = "PRISONER_INVOLVEMENT"
	ChangedCorrectionRequests  WhatChanged = "CORRECTION_REQUESTS"
)

const eventVersion = 1

var descriptions = map[EventType]string{
	ReportCreated: "An incident report has been created",
	ReportAmended: "An incident report has been amended",
	ReportDeleted: "An incident report has been deleted",
}

type Event struct {
	EventType             EventType             `json:"eventType"`
	Version               int                   `json:"version"`
	Description           string                `json:"description"`
	OccurredAt            time.Time             `json:"occurredAt"`
	AdditionalInformation AdditionalInformation `json:"additionalInformation"`
}

type AdditionalInformation struct {
	ID              string       `json:"id"`
	ReportReference string       `json:"reportReference"`
	Source          model.Source `json:"source"`
	WhatChanged     WhatChanged  `json:"whatChanged,omitempty"`
}

// New builds an event about report r. source is the system the change was made in.
func New(t EventType, r *model.Report, source model.Source, what WhatChanged, at time.Time) Event {
	return Event{
		EventType:   t,
		Version:     eventVersion,
		Description: descriptions[t],
		OccurredAt:  at,
		AdditionalInformation: AdditionalInformation{
			ID:              r.ID,
			ReportReference: r.ReportReference,
			Source:          source,
			WhatChanged:     what,
		},
	}
}

// Publisher delivers domain events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
