package domain

// SubjectKind differentiates seeker, agent and admin tokens.
type SubjectKind string

const (
	SubjectKindSeeker SubjectKind = "SEEKER"
	SubjectKindAgent  SubjectKind = "AGENT"
	SubjectKindAdmin  SubjectKind = "ADMIN"
)

// Principal is the resolved identity of the caller for one request.
// Exactly one of the role pointers is populated, decided once at token
// verification time and never re-inferred later.
type Principal struct {
	Kind   SubjectKind
	Seeker *Seeker
	Agent  *Agent
	Admin  *Admin
}

// SubjectID returns the identifier of whichever variant is populated.
func (p *Principal) SubjectID() string {
	switch p.Kind {
	case SubjectKindSeeker:
		if p.Seeker != nil {
			return p.Seeker.ID
		}
	case SubjectKindAgent:
		if p.Agent != nil {
			return p.Agent.ID
		}
	case SubjectKindAdmin:
		if p.Admin != nil {
			return p.Admin.ID
		}
	}
	return ""
}
