package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/malynka/internal/domain/models"
	"github.com/mamadbah2/malynka/internal/service/reporting"
	"github.com/mamadbah2/malynka/pkg/clients/whatsapp"
)

// DigestSource computes the weekly digest.
type DigestSource interface {
	WeeklyDigest(ctx context.Context, now time.Time) (reporting.Digest, error)
}

// StatsArchive stores digests for later review.
type StatsArchive interface {
	AppendStats(ctx context.Context, start, end time.Time, summary models.StatsSummary) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	spec      string
	location  *time.Location
	source    DigestSource
	archive   StatsArchive
	messenger whatsapp.Client
	recipient string
	logger    *zap.Logger
	now       func() time.Time
}

// Options wires the optional digest sinks. Nil sinks are skipped.
type Options struct {
	Spec      string
	Location  *time.Location
	Archive   StatsArchive
	Messenger whatsapp.Client
	Recipient string
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(source DigestSource, opts Options, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(opts.Location)),
		spec:      opts.Spec,
		location:  opts.Location,
		source:    source,
		archive:   opts.Archive,
		messenger: opts.Messenger,
		recipient: opts.Recipient,
		logger:    logger,
		now:       time.Now,
	}
}

// Start registers the weekly digest and starts the cron loop.
// Without an archive or a messenger there is nothing to deliver and no job
// is registered.
func (s *Scheduler) Start() error {
	if !s.hasSinks() {
		s.logger.Info("weekly digest disabled: no sheets archive or whatsapp recipient configured")
		return nil
	}

	s.logger.Info("starting scheduler", zap.String("spec", s.spec))

	if _, err := s.cron.AddFunc(s.spec, s.sendWeeklyDigest); err != nil {
		return fmt.Errorf("schedule weekly digest %q: %w", s.spec, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) hasSinks() bool {
	return s.archive != nil || s.messenger != nil
}

func (s *Scheduler) sendWeeklyDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.RunWeeklyDigest(ctx); err != nil {
		s.logger.Error("weekly digest failed", zap.Error(err))
	}
}

// RunWeeklyDigest computes the digest and pushes it to every configured sink.
// Sink failures are logged; the first one is returned after all sinks ran.
func (s *Scheduler) RunWeeklyDigest(ctx context.Context) error {
	s.logger.Info("generating weekly digest")

	digest, err := s.source.WeeklyDigest(ctx, s.now())
	if err != nil {
		return fmt.Errorf("compute weekly digest: %w", err)
	}

	var firstErr error
	if s.archive != nil {
		if err := s.archive.AppendStats(ctx, digest.Window.Start, digest.Window.End, digest.Summary); err != nil {
			s.logger.Error("failed to archive weekly digest", zap.Error(err))
			firstErr = err
		}
	}

	if s.messenger != nil {
		_, err := s.messenger.SendTextMessage(ctx, whatsapp.SendTextMessageRequest{
			To:   s.recipient,
			Body: reporting.FormatDigest(digest, s.location),
		})
		if err != nil {
			s.logger.Error("failed to send weekly digest", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		} else {
			s.logger.Info("weekly digest sent", zap.String("to", s.recipient))
		}
	}

	return firstErr
}
