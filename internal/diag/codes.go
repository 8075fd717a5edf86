package diag

import "fmt"

// Code identifies a diagnostic class. Codes are grouped by pipeline
// phase in blocks of a thousand so a reader can tell at a glance where
// a diagnostic was produced.
type Code uint16

const (
	// 1000..1999: syntax tree intake.
	TreMissingBody       Code = 1001
	TreEmptyHeaderKey    Code = 1002
	TreInvalidExpression Code = 1003
	TreInvalidStatement  Code = 1004

	// 2000..2999: declaration gathering.
	DecMissingTitle           Code = 2001
	DecDuplicateNode          Code = 2002
	DecDuplicateVariable      Code = 2003
	DecConflictingDeclaration Code = 2004
	DecInvalidInitializer     Code = 2005

	// 3000..3999: string table assembly.
	StrImplicitLineID  Code = 3001
	StrDuplicateLineID Code = 3002

	// 4000..4999: code generation.
	GenUnknownFunction     Code = 4001
	GenWrongArgumentCount  Code = 4002
	GenUnsupportedOperator Code = 4003
	GenTypeMismatch        Code = 4004
	GenUndeclaredVariable  Code = 4005

	// 5000..5999: file input and output.
	IOLoadFileError  Code = 5001
	IODecodeError    Code = 5002
	IOWriteFileError Code = 5003
	IOCacheError     Code = 5004
)

var codeDescription = map[Code]string{
	TreMissingBody:       "node has no body",
	TreEmptyHeaderKey:    "header key is empty",
	TreInvalidExpression: "malformed expression",
	TreInvalidStatement:  "malformed statement",

	DecMissingTitle:           "node has no title header",
	DecDuplicateNode:          "duplicate node title",
	DecDuplicateVariable:      "duplicate variable declaration",
	DecConflictingDeclaration: "declaration conflicts with an existing one",
	DecInvalidInitializer:     "initializer does not match the declared type",

	StrImplicitLineID:  "line has no #line: tag",
	StrDuplicateLineID: "duplicate line id",

	GenUnknownFunction:     "unknown function",
	GenWrongArgumentCount:  "wrong number of arguments",
	GenUnsupportedOperator: "operator is not defined for this type",
	GenTypeMismatch:        "mismatched types",
	GenUndeclaredVariable:  "variable was never declared",

	IOLoadFileError:  "cannot read file",
	IODecodeError:    "cannot decode syntax tree",
	IOWriteFileError: "cannot write file",
	IOCacheError:     "artifact cache failure",
}

// ID renders a stable machine-readable identifier such as "GEN4003".
func (c Code) ID() string {
	switch {
	case c >= 1000 && c < 2000:
		return fmt.Sprintf("TRE%04d", uint16(c))
	case c >= 2000 && c < 3000:
		return fmt.Sprintf("DEC%04d", uint16(c))
	case c >= 3000 && c < 4000:
		return fmt.Sprintf("STR%04d", uint16(c))
	case c >= 4000 && c < 5000:
		return fmt.Sprintf("GEN%04d", uint16(c))
	case c >= 5000 && c < 6000:
		return fmt.Sprintf("IO%04d", uint16(c))
	default:
		return fmt.Sprintf("UNK%04d", uint16(c))
	}
}

// Title returns the short human description for the code.
func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return "unknown diagnostic"
}

func (c Code) String() string {
	return fmt.Sprintf("%s: %s", c.ID(), c.Title())
}
