package types

import "fmt"

// TypeProperties describes a type variant: its user-facing name, a
// short description, and the methods callable on its values. Methods
// are keyed by bare method name; use CanonicalMethodName to build the
// library key.
type TypeProperties struct {
	Name        string
	Description string
	Methods     map[string]FunctionType
}

// Properties resolves the variant to its description. The mapping is
// pure and total over the closed set; undefined types get an empty
// table under the name "undefined".
func (t Type) Properties() TypeProperties {
	switch t.Kind {
	case KindAny:
		return TypeProperties{
			Name:        "Any",
			Description: "Any type.",
			Methods:     anyMethods(),
		}
	case KindBoolean:
		return TypeProperties{
			Name:        "Boolean",
			Description: "Boolean values.",
			Methods:     booleanMethods(),
		}
	case KindNumber:
		return TypeProperties{
			Name:        "Number",
			Description: "Numbers.",
			Methods:     numberMethods(),
		}
	case KindString:
		return TypeProperties{
			Name:        "String",
			Description: "Strings.",
			Methods:     stringMethods(),
		}
	case KindFunction:
		desc := "A function."
		if t.Func != nil {
			desc = fmt.Sprintf("A function of signature %s.", t.Func.Format())
		}
		return TypeProperties{
			Name:        "Function",
			Description: desc,
			Methods:     map[string]FunctionType{},
		}
	default:
		return TypeProperties{
			Name:        "undefined",
			Description: "A value whose type has not been determined yet.",
			Methods:     map[string]FunctionType{},
		}
	}
}
