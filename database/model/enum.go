package model

// Role is a staff permission level. Only RoleAdmin unlocks user management and
// approval actions.
type Role string

const (
	RoleJuniorInvestigator Role = "junior_investigator"
	RoleInvestigator       Role = "investigator"
	RoleDutyInvestigator   Role = "duty_investigator"
	RoleSeniorInvestigator Role = "senior_investigator"
	RoleDeputyHead         Role = "deputy_head"
	RoleAdmin              Role = "admin"
)

// Roles lists every role in ascending order of seniority.
var Roles = []Role{
	RoleJuniorInvestigator,
	RoleInvestigator,
	RoleDutyInvestigator,
	RoleSeniorInvestigator,
	RoleDeputyHead,
	RoleAdmin,
}

var roleLabels = map[Role]string{
	RoleJuniorInvestigator: "Мл. следователь",
	RoleInvestigator:       "Следователь",
	RoleDutyInvestigator:   "Дежурный следователь",
	RoleSeniorInvestigator: "Ст. следователь",
	RoleDeputyHead:         "Зам. отделения",
	RoleAdmin:              "Начальник отделения",
}

func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the human readable title of the role, or the raw value for
// roles unknown to this build.
func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// ParseRole converts form input into a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

type FeedbackStatus string

const (
	FeedbackNew        FeedbackStatus = "new"
	FeedbackInProgress FeedbackStatus = "in_progress"
	FeedbackDone       FeedbackStatus = "done"
)

var FeedbackStatuses = []FeedbackStatus{FeedbackNew, FeedbackInProgress, FeedbackDone}

var feedbackStatusLabels = map[FeedbackStatus]string{
	FeedbackNew:        "Новое",
	FeedbackInProgress: "В работе",
	FeedbackDone:       "Закрыто",
}

func (s FeedbackStatus) Valid() bool {
	_, ok := feedbackStatusLabels[s]
	return ok
}

func (s FeedbackStatus) Label() string {
	if label, ok := feedbackStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Decision is the shared pending/approved/rejected lifecycle of applications,
// reviews and documents.
type Decision string

const (
	Pending  Decision = "pending"
	Approved Decision = "approved"
	Rejected Decision = "rejected"
)

var decisionLabels = map[Decision]string{
	Pending:  "На рассмотрении",
	Approved: "Одобрено",
	Rejected: "Отклонено",
}

func (d Decision) Valid() bool {
	_, ok := decisionLabels[d]
	return ok
}

func (d Decision) Label() string {
	if label, ok := decisionLabels[d]; ok {
		return label
	}
	return string(d)
}

// Final reports whether no further transition is allowed.
func (d Decision) Final() bool {
	return d == Approved || d == Rejected
}

// CanTransition allows pending -> approved and pending -> rejected only.
func (d Decision) CanTransition(to Decision) bool {
	return d == Pending && to.Final()
}

type (
	ApplicationStatus = Decision
	ReviewStatus      = Decision
	DocumentStatus    = Decision
)
