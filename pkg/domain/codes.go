package domain

// ProgramCode, StreamCode, SubjectCode and FilterExpr are opaque tokens.
// The database is the only authority on whether they exist; no format is
// enforced here.
type (
	ProgramCode string
	StreamCode  string
	SubjectCode string
	FilterExpr  string
)

// ParseProgramCode wraps a raw program code. An empty string means absent.
func ParseProgramCode(s string) ProgramCode { return ProgramCode(s) }

// ParseStreamCode wraps a raw stream code. An empty string means absent.
func ParseStreamCode(s string) StreamCode { return StreamCode(s) }

// ParseSubjectCode wraps a raw subject code.
func ParseSubjectCode(s string) SubjectCode { return SubjectCode(s) }

// ParseFilterExpr wraps a raw filter expression.
func ParseFilterExpr(s string) FilterExpr { return FilterExpr(s) }

func (c ProgramCode) String() string { return string(c) }
func (c StreamCode) String() string  { return string(c) }
func (c SubjectCode) String() string { return string(c) }
func (f FilterExpr) String() string  { return string(f) }

// IsZero reports whether the program code was not supplied.
func (c ProgramCode) IsZero() bool { return c == "" }

// IsZero reports whether the stream code was not supplied.
func (c StreamCode) IsZero() bool { return c == "" }
