package types

type ServiceMode string

// Ride Dashboard - Trip request filtering, KPI breakdowns and the analytics assistant
// Loan Dashboard - Driver loan portfolio: issued, paid and outstanding amounts
const (
	RideDashboard ServiceMode = "ride-dashboard"
	LoanDashboard ServiceMode = "loan-dashboard"
)

func (m ServiceMode) String() string {
	return string(m)
}

// Enum для роли пользователя
type UserRole string

func (r UserRole) String() string {
	return string(r)
}

const (
	ViewerRole UserRole = "VIEWER"
	AdminRole  UserRole = "ADMIN"
)

// Role of a conversation turn author.
type TurnRole string

const (
	UserTurn      TurnRole = "user"
	AssistantTurn TurnRole = "assistant"
)

// Where an answer came from.
type AnswerSource string

const (
	SourceRemote AnswerSource = "remote"
	SourceLocal  AnswerSource = "local"
)
