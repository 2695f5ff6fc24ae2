package lookup

import "mymyunsw/pkg/domain"

// StepKind names one point lookup.
type StepKind string

const (
	StepStudent StepKind = "student"
	StepProgram StepKind = "program"
	StepStream  StepKind = "stream"
)

// Step is a single lookup in a plan.
type Step struct {
	Kind StepKind
	Key  string
}

// Plan lists the lookups to run before the main query, most general first.
// The student step is always present.
type Plan struct {
	Student domain.ZID
	Program domain.ProgramCode
	Stream  domain.StreamCode
}

// ResolveOptionalChain builds the plan for a zID and its optional program and
// stream codes. Empty codes are treated as not supplied.
func ResolveOptionalChain(zid domain.ZID, program domain.ProgramCode, stream domain.StreamCode) Plan {
	return Plan{Student: zid, Program: program, Stream: stream}
}

// Steps returns the lookups in execution order.
func (p Plan) Steps() []Step {
	steps := []Step{{Kind: StepStudent, Key: p.Student.String()}}
	if !p.Program.IsZero() {
		steps = append(steps, Step{Kind: StepProgram, Key: p.Program.String()})
	}
	if !p.Stream.IsZero() {
		steps = append(steps, Step{Kind: StepStream, Key: p.Stream.String()})
	}
	return steps
}
