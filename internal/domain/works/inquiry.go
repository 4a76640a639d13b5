package works

import (
	"fmt"
	"net/url"
	"strings"
)

// InquiryURL builds the WhatsApp link a visitor follows to ask about a piece.
// Sold pieces have no inquiry link.
func InquiryURL(phone string, a Artwork, pageURL string) (string, bool) {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if phone == "" || a.Status == StatusSold {
		return "", false
	}
	text := fmt.Sprintf("Olá! Gostaria de conversar sobre a peça \"%s\".", a.Title)
	if pageURL != "" {
		text += "\n\nLink: " + pageURL
	}
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(text), true
}
