package model

// ConditionalOperator is the closed set of operators a visibility rule
// may apply to its dependency's answer.
type ConditionalOperator string

// Supported conditional operators.
const (
	OpEquals        ConditionalOperator = "equals"
	OpNotEquals     ConditionalOperator = "not_equals"
	OpContains      ConditionalOperator = "contains"
	OpNotContains   ConditionalOperator = "not_contains"
	OpGreaterThan   ConditionalOperator = "greater_than"
	OpLessThan      ConditionalOperator = "less_than"
	OpIsAnswered    ConditionalOperator = "is_answered"
	OpIsNotAnswered ConditionalOperator = "is_not_answered"
)

// knownOperators is the membership set for ConditionalOperator.Valid.
var knownOperators = map[ConditionalOperator]struct{}{
	OpEquals:        {},
	OpNotEquals:     {},
	OpContains:      {},
	OpNotContains:   {},
	OpGreaterThan:   {},
	OpLessThan:      {},
	OpIsAnswered:    {},
	OpIsNotAnswered: {},
}

// Valid reports whether op is a recognized operator.
func (op ConditionalOperator) Valid() bool {
	_, ok := knownOperators[op]
	return ok
}

// ConditionalRule gates a question's visibility on another question's
// answer. A question's full rule set combines with AND semantics.
//
// Rules are written as positive conditions; setting ShowWhen to false
// inverts the result, expressing "hide when the condition holds".
type ConditionalRule struct {
	// DependsOn is the id of the question whose answer is inspected.
	DependsOn string              `json:"depends_on" yaml:"depends_on"`
	Operator  ConditionalOperator `json:"operator" yaml:"operator"`

	// Value is the comparison operand. Unused by is_answered and
	// is_not_answered.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// ShowWhen controls polarity; true shows the question when the
	// condition holds, false hides it.
	ShowWhen bool `json:"show_when" yaml:"show_when"`
}
