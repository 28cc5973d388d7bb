package repository

import (
	"context"
	"errors"

	"github.com/Kerhoff/giftlists/internal/models"
)

// ListRepository defines how gift lists are retrieved
type ListRepository interface {
	FetchLists(ctx context.Context) ([]models.GiftList, error)
}

// PayloadAdapter turns a raw response body into gift lists. Each endpoint
// shape has its own adapter.
type PayloadAdapter interface {
	Name() string
	Decode(body []byte) ([]models.GiftList, error)
}

var (
	// ErrTransport reports a request that never produced a response
	ErrTransport = errors.New("lists request failed")
	// ErrStatus reports a non-2xx response
	ErrStatus = errors.New("lists endpoint returned an error status")
	// ErrDecode reports a body that is not valid JSON for the expected shape
	ErrDecode = errors.New("lists response could not be decoded")
)
