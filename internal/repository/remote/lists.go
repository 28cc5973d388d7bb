package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/giftlists/internal/models"
	"github.com/Kerhoff/giftlists/internal/repository"
)

// maxBodySize caps how much of a response is read.
const maxBodySize = 8 << 20

// Options configures the remote list repository
type Options struct {
	Endpoint  string
	UserAgent string
	Timeout   time.Duration
}

type listRepository struct {
	client  *http.Client
	opts    Options
	adapter repository.PayloadAdapter
	logger  *logrus.Logger
}

// NewListRepository creates a repository that reads gift lists from an HTTP
// endpoint and decodes them with the given payload adapter.
func NewListRepository(opts Options, adapter repository.PayloadAdapter, logger *logrus.Logger) repository.ListRepository {
	return &listRepository{
		client:  &http.Client{Timeout: opts.Timeout},
		opts:    opts,
		adapter: adapter,
		logger:  logger,
	}
}

func (r *listRepository) FetchLists(ctx context.Context) ([]models.GiftList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.opts.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", repository.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.opts.UserAgent != "" {
		req.Header.Set("User-Agent", r.opts.UserAgent)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repository.ErrTransport, err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			r.logger.WithError(closeErr).Warn("failed to close lists response body")
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", repository.ErrStatus, res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %w", repository.ErrTransport, err)
	}

	r.logger.WithFields(logrus.Fields{
		"endpoint": r.opts.Endpoint,
		"bytes":    len(body),
		"shape":    r.adapter.Name(),
	}).Debug("Fetched lists payload")

	return r.adapter.Decode(body)
}
