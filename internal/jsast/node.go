package jsast

// NodeID indexes a node in a Tree's node table.
type NodeID int32

// NoNode marks a missing parent or field.
const NoNode NodeID = -1

// Kind is the set of node kinds the extraction passes care about.
// Every other grammar type maps to KindOther.
type Kind uint8

const (
	KindOther Kind = iota
	KindProgram
	KindIdentifier
	KindMemberExpression
	KindCallExpression
	KindArguments
	KindTemplateLiteral
	KindTemplateSubstitution
	KindArrayExpression
	KindSpreadElement
	KindComment
	KindParenthesized
)

var kindNames = map[Kind]string{
	KindOther:                "Other",
	KindProgram:              "Program",
	KindIdentifier:           "Identifier",
	KindMemberExpression:     "MemberExpression",
	KindCallExpression:       "CallExpression",
	KindArguments:            "Arguments",
	KindTemplateLiteral:      "TemplateLiteral",
	KindTemplateSubstitution: "TemplateSubstitution",
	KindArrayExpression:      "ArrayExpression",
	KindSpreadElement:        "SpreadElement",
	KindComment:              "Comment",
	KindParenthesized:        "Parenthesized",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Other"
}

// Tree-sitter grammar node types.
const (
	tsProgram              = "program"
	tsIdentifier           = "identifier"
	tsPropertyIdentifier   = "property_identifier"
	tsMemberExpression     = "member_expression"
	tsSubscriptExpression  = "subscript_expression"
	tsParenthesized        = "parenthesized_expression"
	tsCallExpression       = "call_expression"
	tsArguments            = "arguments"
	tsTemplateString       = "template_string"
	tsTemplateSubstitution = "template_substitution"
	tsArray                = "array"
	tsSpreadElement        = "spread_element"
	tsComment              = "comment"
)

func kindOf(nodeType string) Kind {
	switch nodeType {
	case tsProgram:
		return KindProgram
	case tsIdentifier, tsPropertyIdentifier:
		return KindIdentifier
	case tsMemberExpression, tsSubscriptExpression:
		return KindMemberExpression
	case tsCallExpression:
		return KindCallExpression
	case tsArguments:
		return KindArguments
	case tsTemplateString:
		return KindTemplateLiteral
	case tsTemplateSubstitution:
		return KindTemplateSubstitution
	case tsArray:
		return KindArrayExpression
	case tsSpreadElement:
		return KindSpreadElement
	case tsComment:
		return KindComment
	case tsParenthesized:
		return KindParenthesized
	default:
		return KindOther
	}
}

// fieldsByType maps, per node type, the names Tree.Field answers to onto
// grammar field names. A computed access a[b] stores its index as the
// property, so both member forms read the same way.
var fieldsByType = map[string]map[string]string{
	tsCallExpression:      {FieldFunction: "function", FieldArguments: "arguments"},
	tsMemberExpression:    {FieldObject: "object", FieldProperty: "property"},
	tsSubscriptExpression: {FieldObject: "object", FieldProperty: "index"},
}

// Field names understood by Tree.Field.
const (
	FieldFunction  = "function"
	FieldArguments = "arguments"
	FieldObject    = "object"
	FieldProperty  = "property"
)

// Node is one entry of the node table. Parent and Children are indexes into
// the same table, so a Tree holds no pointer cycles.
type Node struct {
	Kind Kind
	// Type is the raw grammar type, e.g. "call_expression".
	Type string
	// Start and End are byte offsets into the parsed source.
	Start, End int
	// Line is the 1-based start line, zero when locations are disabled.
	Line     int
	Column   int
	Parent   NodeID
	Children []NodeID

	fields      map[string]NodeID
	replacement *string
}
