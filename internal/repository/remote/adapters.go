package remote

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Kerhoff/giftlists/internal/models"
	"github.com/Kerhoff/giftlists/internal/repository"
)

const (
	// ShapeLists is the {"lists": [...]} payload of the lists API
	ShapeLists = "lists"
	// ShapeFamilies is the legacy flat [{"nom": ..., "cadeaux": [...]}] payload
	ShapeFamilies = "families"
)

// AdapterFor returns the payload adapter registered under shape.
func AdapterFor(shape string) (repository.PayloadAdapter, error) {
	switch shape {
	case ShapeLists:
		return ListsAdapter{}, nil
	case ShapeFamilies:
		return FamiliesAdapter{}, nil
	default:
		return nil, fmt.Errorf("unknown payload shape %q", shape)
	}
}

// ListsAdapter decodes {"number_of_lists": n, "lists": [...]}.
type ListsAdapter struct{}

func (ListsAdapter) Name() string { return ShapeLists }

func (ListsAdapter) Decode(body []byte) ([]models.GiftList, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", repository.ErrDecode)
	}

	var payload struct {
		Lists json.RawMessage `json:"lists"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: top level is not an object: %v", models.ErrSchema, err)
	}

	raw := bytes.TrimSpace(payload.Lists)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: missing lists field", models.ErrSchema)
	}
	if raw[0] != '[' {
		return nil, fmt.Errorf("%w: lists is not an array", models.ErrSchema)
	}

	var lists []models.GiftList
	if err := json.Unmarshal(raw, &lists); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSchema, err)
	}
	return lists, nil
}

// FamiliesAdapter decodes the legacy array of families, each with a name
// ("nom") and a list of plain present titles ("cadeaux").
type FamiliesAdapter struct{}

type family struct {
	Name     string   `json:"nom"`
	Presents []string `json:"cadeaux"`
}

func (FamiliesAdapter) Name() string { return ShapeFamilies }

func (FamiliesAdapter) Decode(body []byte) ([]models.GiftList, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", repository.ErrDecode)
	}

	trimmed := bytes.TrimSpace(body)
	if trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected an array of families", models.ErrSchema)
	}

	var families []family
	if err := json.Unmarshal(trimmed, &families); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSchema, err)
	}

	lists := make([]models.GiftList, 0, len(families))
	for _, f := range families {
		list := models.GiftList{
			Owner:    f.Name,
			Title:    f.Name,
			Presents: make([]models.Present, 0, len(f.Presents)),
		}
		for _, title := range f.Presents {
			list.Presents = append(list.Presents, models.Present{Title: title})
		}
		lists = append(lists, list)
	}
	return lists, nil
}
