// Package transform turns decoded gift lists into their display order.
package transform

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Kerhoff/giftlists/internal/models"
)

// Normalizer sorts lists by owner using the collation rules of one locale.
type Normalizer struct {
	tag language.Tag
}

// NewNormalizer creates a Normalizer for the given BCP 47 locale.
func NewNormalizer(locale string) (*Normalizer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid collation locale %q: %w", locale, err)
	}
	return &Normalizer{tag: tag}, nil
}

// Normalize validates lists and returns a sorted copy: owners ascending in
// collation order, and each list's presents by preference descending. Both
// sorts are stable. The input slice is left untouched.
func (n *Normalizer) Normalize(lists []models.GiftList) ([]models.GiftList, error) {
	if err := validate(lists); err != nil {
		return nil, err
	}

	// collate.Collator keeps scratch buffers, so each call gets its own.
	c := collate.New(n.tag)

	out := slices.Clone(lists)
	if out == nil {
		out = []models.GiftList{}
	}
	slices.SortStableFunc(out, func(a, b models.GiftList) int {
		return c.CompareString(a.Owner, b.Owner)
	})

	for i := range out {
		out[i].Presents = SortPresents(out[i].Presents)
	}
	return out, nil
}

// SortPresents returns a copy of presents ordered by preference, highest
// first. A missing preference weighs 0.
func SortPresents(presents []models.Present) []models.Present {
	sorted := slices.Clone(presents)
	if sorted == nil {
		return []models.Present{}
	}
	slices.SortStableFunc(sorted, func(a, b models.Present) int {
		return cmp.Compare(b.Preference, a.Preference)
	})
	return sorted
}

func validate(lists []models.GiftList) error {
	var result *multierror.Error
	for i, list := range lists {
		if strings.TrimSpace(list.Owner) == "" {
			result = multierror.Append(result, fmt.Errorf("list %d has no owner", i))
		}
		for j, p := range list.Presents {
			if strings.TrimSpace(p.Title) == "" {
				result = multierror.Append(result, fmt.Errorf("list %d (%s): present %d has no title", i, list.Owner, j))
			}
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", models.ErrSchema, err)
	}
	return nil
}
