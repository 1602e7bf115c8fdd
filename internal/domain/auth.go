package domain

// SubjectType differentiates users vs administrators.
type SubjectType string

const (
	SubjectTypeUser  SubjectType = "USER"
	SubjectTypeAdmin SubjectType = "ADMIN"
)

// Actor records who triggered a change.
type Actor struct {
	Type SubjectType
	ID   int64
}
