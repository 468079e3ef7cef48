package model

import "fmt"

type Status string

const (
	StatusAwaitingAnalysis    Status = "AWAITING_ANALYSIS"
	StatusInAnalysis          Status = "IN_ANALYSIS"
	StatusInformationRequired Status = "INFORMATION_REQUIRED"
	StatusInformationAmended  Status = "INFORMATION_AMENDED"
	StatusClosed              Status = "CLOSED"
	StatusPostIncidentUpdate  Status = "POST_INCIDENT_UPDATE"
	StatusIncidentUpdated     Status = "INCIDENT_UPDATED"
	StatusDuplicate           Status = "DUPLICATE"
)

// Statuses lists every report status.
var Statuses = []Status{
	StatusAwaitingAnalysis,
	StatusInAnalysis,
	StatusInformationRequired,
	StatusInformationAmended,
	StatusClosed,
	StatusPostIncidentUpdate,
	StatusIncidentUpdated,
	StatusDuplicate,
}

func (s Status) Valid() bool { return contains(Statuses, s) }

// ParseStatus validates an API-supplied status name.
func ParseStatus(v string) (Status, error) { return parse(Statuses, "status", v) }

type Type string

const (
	TypeAbsconder         Type = "ABSCONDER"
	TypeAssault           Type = "ASSAULT"
	TypeAttemptedEscape   Type = "ATTEMPTED_ESCAPE_FROM_CUSTODY"
	TypeBombThreat        Type = "BOMB_THREAT"
	TypeDisorder          Type = "DISORDER"
	TypeDamage            Type = "DAMAGE"
	TypeDeathInCustody    Type = "DEATH_PRISONER"
	TypeDeathOther        Type = "DEATH_OTHER"
	TypeDroneSighting     Type = "DRONE_SIGHTING"
	TypeEscapeFromCustody Type = "ESCAPE_FROM_CUSTODY"
	TypeFind              Type = "FIND"
	TypeFire              Type = "FIRE"
	TypeBarricade         Type = "BARRICADE"
	TypeMiscellaneous     Type = "MISCELLANEOUS"
	TypeSelfHarm          Type = "SELF_HARM"
	TypeTemporaryRelease  Type = "TEMPORARY_RELEASE_FAILURE"
	TypeToolLoss          Type = "TOOL_LOSS"
)

// Types lists every incident type.
var Types = []Type{
	TypeAbsconder,
	TypeAssault,
	TypeAttemptedEscape,
	TypeBombThreat,
	TypeDisorder,
	TypeDamage,
	TypeDeathInCustody,
	TypeDeathOther,
	TypeDroneSighting,
	TypeEscapeFromCustody,
	TypeFind,
	TypeFire,
	TypeBarricade,
	TypeMiscellaneous,
	TypeSelfHarm,
	TypeTemporaryRelease,
	TypeToolLoss,
}

func (t Type) Valid() bool { return contains(Types, t) }

func ParseType(v string) (Type, error) { return parse(Types, "type", v) }

// Source identifies the system a report was created or last modified in.
type Source string

const (
	SourceDPS   Source = "DPS"
	SourceNomis Source = "NOMIS"
)

var Sources = []Source{SourceDPS, SourceNomis}

func (s Source) Valid() bool { return contains(Sources, s) }

func ParseSource(v string) (Source, error) { return parse(Sources, "source", v) }

type StaffRole string

const (
	StaffRoleActivelyInvolved   StaffRole = "ACTIVELY_INVOLVED"
	StaffRoleAuthorisingOfficer StaffRole = "AUTHORISING_OFFICER"
	StaffRoleCRHead             StaffRole = "CR_HEAD"
	StaffRoleCRSupervisor       StaffRole = "CR_SUPERVISOR"
	StaffRoleDeceased           StaffRole = "DECEASED"
	StaffRoleFirstOnScene       StaffRole = "FIRST_ON_SCENE"
	StaffRoleHealthcare         StaffRole = "HEALTHCARE"
	StaffRoleHostage            StaffRole = "HOSTAGE"
	StaffRoleInPossession       StaffRole = "IN_POSSESSION"
	StaffRoleNegotiator         StaffRole = "NEGOTIATOR"
	StaffRolePresentAtScene     StaffRole = "PRESENT_AT_SCENE"
	StaffRoleSuspectedInvolved  StaffRole = "SUSPECTED_INVOLVEMENT"
	StaffRoleVictim             StaffRole = "VICTIM"
	StaffRoleWitness            StaffRole = "WITNESS"
)

var StaffRoles = []StaffRole{
	StaffRoleActivelyInvolved,
	StaffRoleAuthorisingOfficer,
	StaffRoleCRHead,
	StaffRoleCRSupervisor,
	StaffRoleDeceased,
	StaffRoleFirstOnScene,
	StaffRoleHealthcare,
	StaffRoleHostage,
	StaffRoleInPossession,
	StaffRoleNegotiator,
	StaffRolePresentAtScene,
	StaffRoleSuspectedInvolved,
	StaffRoleVictim,
	StaffRoleWitness,
}

func (r StaffRole) Valid() bool { return contains(StaffRoles, r) }

func ParseStaffRole(v string) (StaffRole, error) { return parse(StaffRoles, "staff role", v) }

type PrisonerRole string

const (
	PrisonerRoleAbsconder          PrisonerRole = "ABSCONDER"
	PrisonerRoleActiveInvolvement  PrisonerRole = "ACTIVE_INVOLVEMENT"
	PrisonerRoleAssailant          PrisonerRole = "ASSAILANT"
	PrisonerRoleAssistedStaff      PrisonerRole = "ASSISTED_STAFF"
	PrisonerRoleDeceased           PrisonerRole = "DECEASED"
	PrisonerRoleEscapee            PrisonerRole = "ESCAPE"
	PrisonerRoleFighter            PrisonerRole = "FIGHTER"
	PrisonerRoleHostage            PrisonerRole = "HOSTAGE"
	PrisonerRoleImpededStaff       PrisonerRole = "IMPEDED_STAFF"
	PrisonerRoleInPossession       PrisonerRole = "IN_POSSESSION"
	PrisonerRolePerpetrator        PrisonerRole = "PERPETRATOR"
	PrisonerRolePresentAtScene     PrisonerRole = "PRESENT_AT_SCENE"
	PrisonerRoleSuspectedAssailant PrisonerRole = "SUSPECTED_ASSAILANT"
	PrisonerRoleVictim             PrisonerRole = "VICTIM"
)

var PrisonerRoles = []PrisonerRole{
	PrisonerRoleAbsconder,
	PrisonerRoleActiveInvolvement,
	PrisonerRoleAssailant,
	PrisonerRoleAssistedStaff,
	PrisonerRoleDeceased,
	PrisonerRoleEscapee,
	PrisonerRoleFighter,
	PrisonerRoleHostage,
	PrisonerRoleImpededStaff,
	PrisonerRoleInPossession,
	PrisonerRolePerpetrator,
	PrisonerRolePresentAtScene,
	PrisonerRoleSuspectedAssailant,
	PrisonerRoleVictim,
}

func (r PrisonerRole) Valid() bool { return contains(PrisonerRoles, r) }

func ParsePrisonerRole(v string) (PrisonerRole, error) { return parse(PrisonerRoles, "prisoner role", v) }

type PrisonerOutcome string

const (
	OutcomeACCT                PrisonerOutcome = "ACCT"
	OutcomeChargedByPolice     PrisonerOutcome = "CHARGED_BY_POLICE"
	OutcomeConvicted           PrisonerOutcome = "CONVICTED"
	OutcomeCoronerInformed     PrisonerOutcome = "CORONER_INFORMED"
	OutcomeDeath               PrisonerOutcome = "DEATH"
	OutcomeFurtherCharges      PrisonerOutcome = "FURTHER_CHARGES"
	OutcomeLocalInvestigation  PrisonerOutcome = "LOCAL_INVESTIGATION"
	OutcomeNextOfKinInformed   PrisonerOutcome = "NEXT_OF_KIN_INFORMED"
	OutcomePlacedOnReport      PrisonerOutcome = "PLACED_ON_REPORT"
	OutcomePoliceInvestigation PrisonerOutcome = "POLICE_INVESTIGATION"
	OutcomeRemandedInCustody   PrisonerOutcome = "REMAND"
	OutcomeSeenHealthcare      PrisonerOutcome = "SEEN_HEALTHCARE"
	OutcomeSeenIMB             PrisonerOutcome = "SEEN_IMB"
	OutcomeTransfer            PrisonerOutcome = "TRANSFER"
	OutcomeTrial               PrisonerOutcome = "TRIAL"
)

var PrisonerOutcomes = []PrisonerOutcome{
	OutcomeACCT,
	OutcomeChargedByPolice,
	OutcomeConvicted,
	OutcomeCoronerInformed,
	OutcomeDeath,
	OutcomeFurtherCharges,
	OutcomeLocalInvestigation,
	OutcomeNextOfKinInformed,
	OutcomePlacedOnReport,
	OutcomePoliceInvestigation,
	OutcomeRemandedInCustody,
	OutcomeSeenHealthcare,
	OutcomeSeenIMB,
	OutcomeTransfer,
	OutcomeTrial,
}

func (o PrisonerOutcome) Valid() bool { return contains(PrisonerOutcomes, o) }

func ParsePrisonerOutcome(v string) (PrisonerOutcome, error) {
	return parse(PrisonerOutcomes, "prisoner outcome", v)
}

// InvalidCodeError reports an API value outside a closed set.
type InvalidCodeError struct {
	Kind  string
	Value string
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Kind, e.Value)
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func parse[T ~string](set []T, kind, v string) (T, error) {
	if contains(set, T(v)) {
		return T(v), nil
	}
	return "", &InvalidCodeError{Kind: kind, Value: v}
}
