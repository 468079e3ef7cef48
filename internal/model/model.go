// Package model contains the domain records of the incident reporting service.
// Models carry JSON tags only; persistence mapping lives in the repository layer.
package model

import "time"

// Report is an incident report as held by this service.
type Report struct {
	ID                   string                `json:"id"`
	ReportReference      string                `json:"report_reference"`
	Type                 Type                  `json:"type"`
	Status               Status                `json:"status"`
	Source               Source                `json:"source"`
	IncidentDateAndTime  time.Time             `json:"incident_date_and_time"`
	PrisonID             string                `json:"prison_id"`
	Title                string                `json:"title"`
	Description          string                `json:"description"`
	DescriptionAddendums []DescriptionAddendum `json:"description_addendums"`
	ReportedBy           string                `json:"reported_by"`
	ReportedAt           time.Time             `json:"reported_at"`
	CreatedAt            time.Time             `json:"created_at"`
	ModifiedAt           time.Time             `json:"modified_at"`
	ModifiedBy           string                `json:"modified_by"`
	ModifiedIn           Source                `json:"modified_in"`
}

// DescriptionAddendum is a timestamped block of text appended to a report description.
// CreatedAt has minute precision and no meaningful timezone.
type DescriptionAddendum struct {
	ReportID  string    `json:"-"`
	Sequence  int       `json:"sequence"`
	CreatedBy string    `json:"created_by"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	Text      string    `json:"text"`
}

type StaffInvolvement struct {
	ReportID      string    `json:"-"`
	Sequence      int       `json:"sequence"`
	StaffUsername string    `json:"staff_username"`
	StaffRole     StaffRole `json:"staff_role"`
	Comment       *string   `json:"comment,omitempty"`
}

type PrisonerInvolvement struct {
	ReportID       string           `json:"-"`
	Sequence       int              `json:"sequence"`
	PrisonerNumber string           `json:"prisoner_number"`
	PrisonerRole   PrisonerRole     `json:"prisoner_role"`
	Outcome        *PrisonerOutcome `json:"outcome,omitempty"`
	Comment        *string          `json:"comment,omitempty"`
}

// CorrectionRequest asks the reporting officer to amend a submitted report.
type CorrectionRequest struct {
	ReportID              string    `json:"-"`
	Sequence              int       `json:"sequence"`
	DescriptionOfChange   string    `json:"description_of_change"`
	CorrectionRequestedBy string    `json:"correction_requested_by"`
	CorrectionRequestedAt time.Time `json:"correction_requested_at"`
}

// StatusHistory records one status transition of a report.
type StatusHistory struct {
	ReportID  string    `json:"-"`
	Status    Status    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by"`
}
