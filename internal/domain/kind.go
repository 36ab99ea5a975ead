package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a symbol carries a kind outside NodeKind.
// The source analyzer broke its contract and the run cannot continue.
var ErrUnknownKind = errors.New("unknown symbol kind")

// NodeKind is the kind of a summarized source symbol
type NodeKind int

const (
	KindClass NodeKind = iota
	KindFunction
	KindEnum
	KindInterface
	KindType
	KindMethod
)

var kindNames = map[NodeKind]string{
	KindClass:     "class",
	KindFunction:  "function",
	KindEnum:      "enum",
	KindInterface: "interface",
	KindType:      "type",
	KindMethod:    "method",
}

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k NodeKind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Label is the heading label used when rendering a section, e.g. "Class".
func (k NodeKind) Label() string {
	switch k {
	case KindClass:
		return "Class"
	case KindFunction:
		return "Function"
	case KindEnum:
		return "Enum"
	case KindInterface:
		return "Interface"
	case KindType:
		return "Type"
	case KindMethod:
		return "Method"
	default:
		return ""
	}
}

// Precedence orders top-level sections within a file: classes first, then
// functions, enums, interfaces and types. Methods sort after everything; at
// top level they are methods of a type that is not a struct of the same file.
func (k NodeKind) Precedence() int {
	switch k {
	case KindClass:
		return 0
	case KindFunction:
		return 1
	case KindEnum:
		return 2
	case KindInterface:
		return 3
	case KindType:
		return 4
	default:
		return 5
	}
}

// IsTypeLike reports whether k is only summarized when type summaries are enabled.
func (k NodeKind) IsTypeLike() bool {
	return k == KindEnum || k == KindInterface || k == KindType
}

// ParseNodeKind converts a lowercase kind name to a NodeKind.
func ParseNodeKind(s string) (NodeKind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k NodeKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *NodeKind) UnmarshalText(text []byte) error {
	parsed, err := ParseNodeKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
