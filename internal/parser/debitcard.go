package parser

import "regexp"

func init() { Register(&DebitCard{}) }

// DebitCard matches the bank's debit-card purchase notification, e.g.
//
//	"You purchased $1.234,56 at SUPERMARKET with debit card ending 1234"
//
// The amount keeps the bank's locale formatting ("." thousands, "," decimal);
// normalization happens downstream.
type DebitCard struct{}

var debitCardRe = regexp.MustCompile(`(?i)purchased\s+\$\s*([0-9.,]+)\s+at\s+(.+?)\s+with\s+debit`)

func (p *DebitCard) Name() string { return "debitcard" }

func (p *DebitCard) Parse(body string) (RawFields, bool) {
	m := debitCardRe.FindStringSubmatch(body)
	if m == nil {
		return RawFields{}, false
	}
	return RawFields{Amount: m[1], Merchant: m[2]}, true
}
