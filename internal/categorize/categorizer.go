// Package categorize assigns a category label to a parsed transaction.
package categorize

// Categorizer maps a merchant name to a category label.
type Categorizer interface {
	Categorize(merchant string) string
}

// Constant labels every transaction with the same configured category.
// It is the default until a rule-based categorizer replaces it; swapping
// implementations does not touch the aggregation code.
type Constant struct {
	Label string
}

// DefaultLabel is used when no category label is configured.
const DefaultLabel = "Variable expense"

func NewConstant(label string) *Constant {
	if label == "" {
		label = DefaultLabel
	}
	return &Constant{Label: label}
}

func (c *Constant) Categorize(string) string { return c.Label }
