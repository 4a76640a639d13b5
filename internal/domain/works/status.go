package works

import "strings"

type Status string

// Persisted values match the catalog's existing documents.
const (
	StatusAvailable Status = "disponivel"
	StatusOnOrder   Status = "encomenda"
	StatusSold      Status = "vendido"
)

var statusAliases = map[string]Status{
	"disponivel": StatusAvailable,
	"available":  StatusAvailable,
	"encomenda":  StatusOnOrder,
	"on-order":   StatusOnOrder,
	"vendido":    StatusSold,
	"sold":       StatusSold,
}

// ParseStatus accepts the persisted value or its English alias, case-insensitively.
func ParseStatus(s string) (Status, error) {
	st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", invalid("status", "must be one of available, on-order, sold")
	}
	return st, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOnOrder, StatusSold:
		return true
	}
	return false
}

// Label is the customer-facing name shown on the detail page.
func (s Status) Label() string {
	switch s {
	case StatusAvailable:
		return "Pronta Entrega"
	case StatusOnOrder:
		return "Sob Encomenda"
	case StatusSold:
		return "Vendido"
	default:
		return string(s)
	}
}
