package models

import (
	"strconv"
	"strings"
)

// NoSuggestion is the link_suggestion value meaning the owner gave no link.
const NoSuggestion = "Pas de lien de suggestion"

// ListCollection is the top-level payload served by the lists endpoint
type ListCollection struct {
	NumberOfLists int        `json:"number_of_lists,omitempty"`
	Lists         []GiftList `json:"lists"`
}

// GiftList represents one person's wish list
type GiftList struct {
	Owner          string    `json:"owner"`
	Title          string    `json:"title"`
	URL            string    `json:"url,omitempty"`
	CoverImageURL  string    `json:"cover_image_url,omitempty"`
	WelcomeMessage string    `json:"welcome_message,omitempty"`
	Presents       []Present `json:"presents"`
}

// Present represents a single giftable item in a wish list
type Present struct {
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
	Price          Price   `json:"price"`
	Preference     float64 `json:"preference,omitempty"`
	LinkSuggestion string  `json:"link_suggestion,omitempty"`
	DetailsLink    string  `json:"details_link,omitempty"`
}

// HasSuggestion reports whether the present carries a usable suggestion link
func (p *Present) HasSuggestion() bool {
	s := strings.TrimSpace(p.LinkSuggestion)
	return s != "" && !strings.EqualFold(s, NoSuggestion) && !strings.EqualFold(s, "no suggestion")
}

// PreferenceLabel formats the preference weight, 0 when unset
func (p *Present) PreferenceLabel() string {
	return strconv.FormatFloat(p.Preference, 'f', -1, 64)
}
