package domain

// TargetType names the kind of entity a bookmark points at
type TargetType string

const (
	TargetJob     TargetType = "job"
	TargetCompany TargetType = "company"
)

// BookmarkTarget is either a JobTarget or a CompanyTarget
type BookmarkTarget interface {
	Type() TargetType
	TargetID() int64
	isBookmarkTarget()
}

type JobTarget struct {
	ID int64
}

func (t JobTarget) Type() TargetType { return TargetJob }
func (t JobTarget) TargetID() int64 { return t.ID }
func (JobTarget) isBookmarkTarget() {}

type CompanyTarget struct {
	ID int64
}

func (t CompanyTarget) Type() TargetType { return TargetCompany }
func (t CompanyTarget) TargetID() int64 { return t.ID }
func (CompanyTarget) isBookmarkTarget() {}

// ParseBookmarkTarget validates a raw (type, id) pair
func ParseBookmarkTarget(kind string, id int64) (BookmarkTarget, error) {
	if id <= 0 {
		return nil, NewValidation("targetId must be a positive integer").With("targetId", id)
	}

	switch TargetType(kind) {
	case TargetJob:
		return JobTarget{ID: id}, nil
	case TargetCompany:
		return CompanyTarget{ID: id}, nil
	default:
		return nil, NewValidation("targetType must be one of job, company").
			With("targetType", kind).
			With("allowed", []TargetType{TargetJob, TargetCompany})
	}
}

// ParseTargetType validates an optional list filter; empty means all
func ParseTargetType(kind string) (TargetType, error) {
	switch TargetType(kind) {
	case "", TargetJob, TargetCompany:
		return TargetType(kind), nil
	default:
		return "", NewValidation("type must be one of job, company").With("type", kind)
	}
}
