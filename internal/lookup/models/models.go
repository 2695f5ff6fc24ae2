package models

import "mymyunsw/pkg/domain"

// StudentRecord is a person enrolled as a student.
type StudentRecord struct {
	ID         int64      `json:"id"`
	ZID        domain.ZID `json:"zid"`
	FamilyName string     `json:"family_name"`
	GivenNames string     `json:"given_names"`
}

// FullName renders "Given Family", skipping empty parts.
func (s StudentRecord) FullName() string {
	switch {
	case s.GivenNames == "":
		return s.FamilyName
	case s.FamilyName == "":
		return s.GivenNames
	default:
		return s.GivenNames + " " + s.FamilyName
	}
}

// ProgramRecord is a degree program.
type ProgramRecord struct {
	ID   int64              `json:"id"`
	Code domain.ProgramCode `json:"code"`
	Name string             `json:"name"`
}

// StreamRecord is a stream (major) within a program.
type StreamRecord struct {
	ID   int64             `json:"id"`
	Code domain.StreamCode `json:"code"`
	Name string            `json:"name"`
}
