package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/Kerhoff/giftlists/internal/models"
)

// TextOverview writes one line per list: owner and number of presents.
func TextOverview(w io.Writer, lists []models.GiftList) error {
	if len(lists) == 0 {
		_, err := io.WriteString(w, "No gift lists.\n")
		return err
	}

	var b strings.Builder
	b.WriteString("🎁 Gift lists\n\n")
	for i, list := range lists {
		fmt.Fprintf(&b, "%d. %s (%d presents)\n", i+1, list.Owner, len(list.Presents))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// TextList writes the presents of one list in display order with the same
// price and suggestion rules as the HTML view.
func (r *Renderer) TextList(w io.Writer, list models.GiftList) error {
	var b strings.Builder
	fmt.Fprintf(&b, "🎁 %s", list.Owner)
	if list.Title != "" && list.Title != list.Owner {
		fmt.Fprintf(&b, " · %s", list.Title)
	}
	b.WriteString("\n")
	if list.URL != "" {
		b.WriteString(list.URL + "\n")
	}
	b.WriteString("\n")

	if len(list.Presents) == 0 {
		b.WriteString("No presents.\n")
	}
	for i, p := range list.Presents {
		fmt.Fprintf(&b, "%d. %s · %s · preference %s\n", i+1, p.Title, p.Price.Label(r.currency), p.PreferenceLabel())
		if p.Description != "" {
			fmt.Fprintf(&b, "   %s\n", p.Description)
		}
		if p.HasSuggestion() {
			fmt.Fprintf(&b, "   Suggestion: %s\n", p.LinkSuggestion)
		}
		if p.DetailsLink != "" {
			fmt.Fprintf(&b, "   Details: %s\n", p.DetailsLink)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// FindList returns the list whose owner matches name, ignoring case.
func FindList(lists []models.GiftList, name string) (models.GiftList, bool) {
	for _, list := range lists {
		if strings.EqualFold(list.Owner, strings.TrimSpace(name)) {
			return list, true
		}
	}
	return models.GiftList{}, false
}
