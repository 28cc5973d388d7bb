package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/giftlists/internal/metrics"
	"github.com/Kerhoff/giftlists/internal/models"
	"github.com/Kerhoff/giftlists/internal/repository"
	"github.com/Kerhoff/giftlists/internal/transform"
	"github.com/Kerhoff/giftlists/internal/view"
)

// Load outcomes, used as log field and metric label.
const (
	OutcomeSuccess   = "success"
	OutcomeTransport = "transport"
	OutcomeStatus    = "status"
	OutcomeDecode    = "decode"
	OutcomeSchema    = "schema"
	OutcomeUnknown   = "unknown"
)

// Service runs the fetch, normalize and publish pipeline into the display
// region.
type Service struct {
	logger     *logrus.Logger
	Lists      repository.ListRepository
	Normalizer *transform.Normalizer
	Region     *view.Region
	metrics    *metrics.Metrics
	timeout    time.Duration
	inflight   sync.WaitGroup
}

// New creates a new Service with all required dependencies.
func New(logger *logrus.Logger,
	lists repository.ListRepository,
	normalizer *transform.Normalizer,
	region *view.Region,
	m *metrics.Metrics,
	timeout time.Duration,
) *Service {
	return &Service{
		logger: logger, Lists: lists, Normalizer: normalizer,
		Region: region, metrics: m, timeout: timeout,
	}
}

// Load shows the loading indicator, fetches and normalizes the lists and
// publishes them. Any failure replaces the region with the error message;
// the returned error keeps the cause. Calling Load again resets the region.
// The fetch is bounded by the configured timeout.
func (s *Service) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	s.Region.ShowLoading()

	lists, err := s.Lists.FetchLists(ctx)
	if err == nil {
		lists, err = s.Normalizer.Normalize(lists)
	}

	outcome := Classify(err)
	elapsed := time.Since(start)
	s.metrics.ObserveLoad(outcome, elapsed, len(lists))

	entry := s.logger.WithFields(logrus.Fields{
		"outcome":  outcome,
		"duration": elapsed.String(),
	})

	if err != nil {
		s.Region.ShowError()
		entry.WithError(err).Warn("Failed to load gift lists")
		return fmt.Errorf("failed to load gift lists: %w", err)
	}

	s.Region.ShowLists(lists)
	entry.WithField("lists", len(lists)).Info("Gift lists loaded")
	return nil
}

// Refresh starts a Load in the background. The region shows the loading
// indicator before Refresh returns. Refreshes are not coordinated: the last
// one to finish wins.
func (s *Service) Refresh() {
	s.Region.ShowLoading()
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		_ = s.Load(context.Background())
	}()
}

// Wait blocks until every background refresh has finished.
func (s *Service) Wait() {
	s.inflight.Wait()
}

// Classify maps a pipeline error onto its outcome label.
func Classify(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, repository.ErrTransport),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return OutcomeTransport
	case errors.Is(err, repository.ErrStatus):
		return OutcomeStatus
	case errors.Is(err, repository.ErrDecode):
		return OutcomeDecode
	case errors.Is(err, models.ErrSchema):
		return OutcomeSchema
	default:
		return OutcomeUnknown
	}
}
