package nomis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// IncidentResponse is an incident as returned by the NOMIS prison API.
type IncidentResponse struct {
	IncidentID           int64           `json:"incidentId"`
	QuestionnaireID      int64           `json:"questionnaireId"`
	Title                *string         `json:"title"`
	Description          *string         `json:"description"`
	Prison               CodeDescription `json:"prison"`
	Status               CodeDescription `json:"status"`
	Type                 string          `json:"type"`
	LockedResponse       bool            `json:"lockedResponse"`
	IncidentDateTime     LocalDateTime   `json:"incidentDateTime"`
	ReportingStaff       Staff           `json:"reportingStaff"`
	ReportedDateTime     LocalDateTime   `json:"reportedDateTime"`
	CreateDateTime       *LocalDateTime  `json:"createDateTime,omitempty"`
	CreatedBy            string          `json:"createdBy"`
	LastModifiedDateTime *LocalDateTime  `json:"lastModifiedDateTime,omitempty"`
	LastModifiedBy       *string         `json:"lastModifiedBy,omitempty"`
	StaffParties         []StaffParty    `json:"staffParties"`
	OffenderParties      []OffenderParty `json:"offenderParties"`
	Requirements         []Requirement   `json:"requirements"`
}

type CodeDescription struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type Staff struct {
	Username  string `json:"username"`
	StaffID   int64  `json:"staffId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type StaffParty struct {
	Staff          Staff           `json:"staff"`
	SequenceNumber int             `json:"sequenceNumber"`
	Role           CodeDescription `json:"role"`
	Comment        *string         `json:"comment"`
}

type Offender struct {
	OffenderNo string `json:"offenderNo"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
}

type OffenderParty struct {
	Offender       Offender         `json:"offender"`
	SequenceNumber int              `json:"sequenceNumber"`
	Role           CodeDescription  `json:"role"`
	Outcome        *CodeDescription `json:"outcome"`
	Comment        *string          `json:"comment"`
}

// Requirement is a NOMIS request for the report to be corrected.
type Requirement struct {
	Comment        *string       `json:"comment"`
	Date           LocalDateTime `json:"date"`
	StaffReporting Staff         `json:"staffReporting"`
	PrisonID       string        `json:"prisonId"`
	SequenceNumber int           `json:"sequenceNumber"`
}

// LocalDateTime is a zone-less NOMIS timestamp. Dates without a time decode to midnight.
type LocalDateTime struct {
	time.Time
}

var localDateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func (t *LocalDateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, layout := range localDateTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid local date-time %q", s)
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format("2006-01-02T15:04:05"))
}
