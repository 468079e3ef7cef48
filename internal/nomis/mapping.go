package nomis

import (
	"fmt"
	"strconv"

	"incidentapi/internal/model"
)

// MappedIncident is a NOMIS incident converted to this service's records.
type MappedIncident struct {
	Report               model.Report
	StaffInvolvements    []model.StaffInvolvement
	PrisonerInvolvements []model.PrisonerInvolvement
	CorrectionRequests   []model.CorrectionRequest
}

// Reference returns the report reference this service uses for a NOMIS incident.
func Reference(incidentID int64) string {
	return strconv.FormatInt(incidentID, 10)
}

// MapIncident converts a NOMIS incident. The description is split into the original text and
// its addenda; any unmapped code fails the whole conversion.
func MapIncident(in IncidentResponse) (*MappedIncident, error) {
	status, err := StatusFromCode(in.Status.Code)
	if err != nil {
		return nil, err
	}
	incidentType, err := TypeFromCode(in.Type)
	if err != nil {
		return nil, err
	}

	// reports.description is NOT NULL; an absent NOMIS description is stored as empty text.
	description, addenda := SplitDescription(in.Description)
	report := model.Report{
		ReportReference:      Reference(in.IncidentID),
		Type:                 incidentType,
		Status:               status,
		Source:               model.SourceNomis,
		IncidentDateAndTime:  in.IncidentDateTime.Time,
		PrisonID:             in.Prison.Code,
		Title:                deref(in.Title),
		Description:          deref(description),
		DescriptionAddendums: addenda,
		ReportedBy:           in.ReportingStaff.Username,
		ReportedAt:           in.ReportedDateTime.Time,
		ModifiedBy:           in.CreatedBy,
		ModifiedIn:           model.SourceNomis,
	}
	if in.LastModifiedBy != nil {
		report.ModifiedBy = *in.LastModifiedBy
	}
	if in.LastModifiedDateTime != nil {
		report.ModifiedAt = in.LastModifiedDateTime.Time
	} else if in.CreateDateTime != nil {
		report.ModifiedAt = in.CreateDateTime.Time
	}

	out := &MappedIncident{
		Report:               report,
		StaffInvolvements:    make([]model.StaffInvolvement, 0, len(in.StaffParties)),
		PrisonerInvolvements: make([]model.PrisonerInvolvement, 0, len(in.OffenderParties)),
		CorrectionRequests:   make([]model.CorrectionRequest, 0, len(in.Requirements)),
	}

	for i, p := range in.StaffParties {
		role, err := StaffRoleFromCode(p.Role.Code)
		if err != nil {
			return nil, fmt.Errorf("staff party %d: %w", p.SequenceNumber, err)
		}
		out.StaffInvolvements = append(out.StaffInvolvements, model.StaffInvolvement{
			Sequence:      i,
			StaffUsername: p.Staff.Username,
			StaffRole:     role,
			Comment:       p.Comment,
		})
	}

	for i, p := range in.OffenderParties {
		role, err := PrisonerRoleFromCode(p.Role.Code)
		if err != nil {
			return nil, fmt.Errorf("offender party %d: %w", p.SequenceNumber, err)
		}
		involvement := model.PrisonerInvolvement{
			Sequence:       i,
			PrisonerNumber: p.Offender.OffenderNo,
			PrisonerRole:   role,
			Comment:        p.Comment,
		}
		if p.Outcome != nil {
			outcome, err := OutcomeFromCode(p.Outcome.Code)
			if err != nil {
				return nil, fmt.Errorf("offender party %d: %w", p.SequenceNumber, err)
			}
			involvement.Outcome = &outcome
		}
		out.PrisonerInvolvements = append(out.PrisonerInvolvements, involvement)
	}

	for i, r := range in.Requirements {
		out.CorrectionRequests = append(out.CorrectionRequests, model.CorrectionRequest{
			Sequence:              i,
			DescriptionOfChange:   deref(r.Comment),
			CorrectionRequestedBy: r.StaffReporting.Username,
			CorrectionRequestedAt: r.Date.Time,
		})
	}

	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
