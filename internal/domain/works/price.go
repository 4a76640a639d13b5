package works

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// ParsePrice reads a price typed by the admin. A comma is accepted as decimal separator ("12,50").
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalid("price", "is required")
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, invalid("price", "must be a number")
	}
	if err := checkPrice(v); err != nil {
		return 0, err
	}
	return v, nil
}

// DisplayPrice is the public price line. Sold pieces show no price.
func DisplayPrice(a Artwork) string {
	if a.Status == StatusSold {
		return "Acervo Privado"
	}
	return brl.Sprintf("R$ %.2f", a.Price)
}
