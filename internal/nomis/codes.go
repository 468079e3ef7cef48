package nomis

import (
	"errors"
	"fmt"

	"incidentapi/internal/model"
)

// ErrUnmappedCode matches every UnmappedCodeError.
var ErrUnmappedCode = errors.New("unmapped nomis code")

// UnmappedCodeError is returned when a NOMIS code has no counterpart in this service.
type UnmappedCodeError struct {
	Kind string
	Code string
}

func (e *UnmappedCodeError) Error() string {
	return fmt.Sprintf("unmapped nomis %s code %q", e.Kind, e.Code)
}

func (e *UnmappedCodeError) Is(target error) bool { return target == ErrUnmappedCode }

func StatusFromCode(code string) (model.Status, error) {
	switch code {
	case "AWAN":
		return model.StatusAwaitingAnalysis, nil
	case "INAN":
		return model.StatusInAnalysis, nil
	case "INREQ":
		return model.StatusInformationRequired, nil
	case "INAME":
		return model.StatusInformationAmended, nil
	case "CLOSE":
		return model.StatusClosed, nil
	case "PIU":
		return model.StatusPostIncidentUpdate, nil
	case "IUP":
		return model.StatusIncidentUpdated, nil
	case "DUP":
		return model.StatusDuplicate, nil
	}
	return "", &UnmappedCodeError{Kind: "status", Code: code}
}

func StatusCode(s model.Status) (string, error) {
	switch s {
	case model.StatusAwaitingAnalysis:
		return "AWAN", nil
	case model.StatusInAnalysis:
		return "INAN", nil
	case model.StatusInformationRequired:
		return "INREQ", nil
	case model.StatusInformationAmended:
		return "INAME", nil
	case model.StatusClosed:
		return "CLOSE", nil
	case model.StatusPostIncidentUpdate:
		return "PIU", nil
	case model.StatusIncidentUpdated:
		return "IUP", nil
	case model.StatusDuplicate:
		return "DUP", nil
	}
	return "", &UnmappedCodeError{Kind: "status", Code: string(s)}
}

var typeCodes = map[string]model.Type{
	"ABSCOND":    model.TypeAbsconder,
	"ASSAULTS3":  model.TypeAssault,
	"ATT_ESC_E":  model.TypeAttemptedEscape,
	"BOMB":       model.TypeBombThreat,
	"DISORDER1":  model.TypeDisorder,
	"DAMAGE":     model.TypeDamage,
	"DEATH":      model.TypeDeathInCustody,
	"DEATH_NI":   model.TypeDeathOther,
	"DRONE1":     model.TypeDroneSighting,
	"ESCAPE_EST": model.TypeEscapeFromCustody,
	"FIND6":      model.TypeFind,
	"FIRE":       model.TypeFire,
	"BARRICADE":  model.TypeBarricade,
	"MISC":       model.TypeMiscellaneous,
	"SELF_HARM":  model.TypeSelfHarm,
	"TRF3":       model.TypeTemporaryRelease,
	"TOOL_LOSS":  model.TypeToolLoss,
}

func TypeFromCode(code string) (model.Type, error) {
	if t, ok := typeCodes[code]; ok {
		return t, nil
	}
	return "", &UnmappedCodeError{Kind: "type", Code: code}
}

func TypeCode(t model.Type) (string, error) {
	for code, candidate := range typeCodes {
		if candidate == t {
			return code, nil
		}
	}
	return "", &UnmappedCodeError{Kind: "type", Code: string(t)}
}

var staffRoleCodes = map[string]model.StaffRole{
	"AI":    model.StaffRoleActivelyInvolved,
	"AO":    model.StaffRoleAuthorisingOfficer,
	"CRH":   model.StaffRoleCRHead,
	"CRS":   model.StaffRoleCRSupervisor,
	"DEC":   model.StaffRoleDeceased,
	"FOS":   model.StaffRoleFirstOnScene,
	"HC":    model.StaffRoleHealthcare,
	"HOST":  model.StaffRoleHostage,
	"INPOS": model.StaffRoleInPossession,
	"NEG":   model.StaffRoleNegotiator,
	"PAS":   model.StaffRolePresentAtScene,
	"SUSIN": model.StaffRoleSuspectedInvolved,
	"VICT":  model.StaffRoleVictim,
	"WIT":   model.StaffRoleWitness,
}

func StaffRoleFromCode(code string) (model.StaffRole, error) {
	if r, ok := staffRoleCodes[code]; ok {
		return r, nil
	}
	return "", &UnmappedCodeError{Kind: "staff role", Code: code}
}

func StaffRoleCode(r model.StaffRole) (string, error) {
	for code, candidate := range staffRoleCodes {
		if candidate == r {
			return code, nil
		}
	}
	return "", &UnmappedCodeError{Kind: "staff role", Code: string(r)}
}

var prisonerRoleCodes = map[string]model.PrisonerRole{
	"ABS":     model.PrisonerRoleAbsconder,
	"ACTINV":  model.PrisonerRoleActiveInvolvement,
	"ASSIAL":  model.PrisonerRoleAssailant,
	"ASSIST":  model.PrisonerRoleAssistedStaff,
	"DECEA":   model.PrisonerRoleDeceased,
	"ESC":     model.PrisonerRoleEscapee,
	"FIGHT":   model.PrisonerRoleFighter,
	"HOST":    model.PrisonerRoleHostage,
	"IMPED":   model.PrisonerRoleImpededStaff,
	"INPOSS":  model.PrisonerRoleInPossession,
	"PERP":    model.PrisonerRolePerpetrator,
	"PRESENT": model.PrisonerRolePresentAtScene,
	"SUSASS":  model.PrisonerRoleSuspectedAssailant,
	"VICT":    model.PrisonerRoleVictim,
}

func PrisonerRoleFromCode(code string) (model.PrisonerRole, error) {
	if r, ok := prisonerRoleCodes[code]; ok {
		return r, nil
	}
	return "", &UnmappedCodeError{Kind: "prisoner role", Code: code}
}

func PrisonerRoleCode(r model.PrisonerRole) (string, error) {
	for code, candidate := range prisonerRoleCodes {
		if candidate == r {
			return code, nil
		}
	}
	return "", &UnmappedCodeError{Kind: "prisoner role", Code: string(r)}
}

var outcomeCodes = map[string]model.PrisonerOutcome{
	"ACCT":  model.OutcomeACCT,
	"CBP":   model.OutcomeChargedByPolice,
	"CON":   model.OutcomeConvicted,
	"CORIN": model.OutcomeCoronerInformed,
	"DEA":   model.OutcomeDeath,
	"FCHRG": model.OutcomeFurtherCharges,
	"ILOC":  model.OutcomeLocalInvestigation,
	"NKI":   model.OutcomeNextOfKinInformed,
	"POR":   model.OutcomePlacedOnReport,
	"IPOL":  model.OutcomePoliceInvestigation,
	"RMND":  model.OutcomeRemandedInCustody,
	"HELTH": model.OutcomeSeenHealthcare,
	"OTH":   model.OutcomeSeenIMB,
	"TRN":   model.OutcomeTransfer,
	"TRL":   model.OutcomeTrial,
}

func OutcomeFromCode(code string) (model.PrisonerOutcome, error) {
	if o, ok := outcomeCodes[code]; ok {
		return o, nil
	}
	return "", &UnmappedCodeError{Kind: "outcome", Code: code}
}

func OutcomeCode(o model.PrisonerOutcome) (string, error) {
	for code, candidate := range outcomeCodes {
		if candidate == o {
			return code, nil
		}
	}
	return "", &UnmappedCodeError{Kind: "outcome", Code: string(o)}
}

// Lookup resolves a NOMIS code of the named kind to this service's value, for tooling.
func Lookup(kind, code string) (string, error) {
	switch kind {
	case "status":
		v, err := StatusFromCode(code)
		return string(v), err
	case "type":
		v, err := TypeFromCode(code)
		return string(v), err
	case "staff-role":
		v, err := StaffRoleFromCode(code)
		return string(v), err
	case "prisoner-role":
		v, err := PrisonerRoleFromCode(code)
		return string(v), err
	case "outcome":
		v, err := OutcomeFromCode(code)
		return string(v), err
	}
	return "", fmt.Errorf("unknown code kind %q", kind)
}

// ReverseLookup resolves a value of this service to its NOMIS code of the named kind.
func ReverseLookup(kind, value string) (string, error) {
	switch kind {
	case "status":
		return StatusCode(model.Status(value))
	case "type":
		return TypeCode(model.Type(value))
	case "staff-role":
		return StaffRoleCode(model.StaffRole(value))
	case "prisoner-role":
		return PrisonerRoleCode(model.PrisonerRole(value))
	case "outcome":
		return OutcomeCode(model.PrisonerOutcome(value))
	}
	return "", fmt.Errorf("unknown code kind %q", kind)
}
