package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/observability"
)

// TitleProgressAlert heads the notification sent to administrators scoring
// below the alert threshold.
const TitleProgressAlert = "Progress Alert"

// Scorer computes progress for every eligible administrator.
type Scorer interface {
	ScoreAll(ctx context.Context) ([]domain.AdminProgress, error)
}

// AdminNotifier delivers an in-app notification to an administrator.
type AdminNotifier interface {
	NotifyAdministrator(ctx context.Context, adminID int64, title, message string) (*domain.Notification, error)
}

// ProgressSweep scores administrators and alerts the ones below threshold.
type ProgressSweep struct {
	scorer    Scorer
	notifier  AdminNotifier
	threshold float64
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewProgressSweep builds a sweep. A threshold of 0 disables alerts.
func NewProgressSweep(scorer Scorer, notifier AdminNotifier, threshold float64, metrics *observability.Metrics, logger *zap.Logger) *ProgressSweep {
	return &ProgressSweep{scorer: scorer, notifier: notifier, threshold: threshold, metrics: metrics, logger: logger}
}

// Run performs one sweep and returns the number of alerts sent.
func (s *ProgressSweep) Run(ctx context.Context) (int, error) {
	scores, err := s.scorer.ScoreAll(ctx)
	if err != nil {
		return 0, err
	}
	alerts := 0
	for _, p := range scores {
		s.logger.Info("progress score",
			zap.Int64("admin_id", p.AdminID),
			zap.String("department", p.DepartmentName),
			zap.Float64("score", p.Score))
		if s.threshold <= 0 || p.Score >= s.threshold {
			continue
		}
		if _, err := s.notifier.NotifyAdministrator(ctx, p.AdminID, TitleProgressAlert, AlertMessage(p.Score, s.threshold)); err != nil {
			s.logger.Warn("progress alert failed", zap.Int64("admin_id", p.AdminID), zap.Error(err))
			continue
		}
		alerts++
	}
	s.metrics.RecordSweep(alerts)
	return alerts, nil
}

// AlertMessage is the body of a progress alert.
func AlertMessage(score, threshold float64) string {
	return fmt.Sprintf("Your progress score is %.1f, below the threshold %.1f.", score, threshold)
}

// StartProgressScheduler runs the sweep on the configured 5-field cron
// schedule until ctx is cancelled. An empty schedule disables it.
func StartProgressScheduler(ctx context.Context, cfg config.ProgressConfig, sweep *ProgressSweep, logger *zap.Logger) error {
	schedule := strings.TrimSpace(cfg.Schedule)
	if schedule == "" {
		logger.Info("progress sweep disabled (PROGRESS_SCHEDULE not set)")
		return nil
	}
	sched, err := ParseSchedule(schedule)
	if err != nil {
		return fmt.Errorf("invalid PROGRESS_SCHEDULE %q: %w", schedule, err)
	}
	logger.Info("progress sweep scheduled", zap.String("cron", schedule), zap.Float64("threshold", cfg.AlertThreshold))

	go func() {
		for {
			now := time.Now()
			next := sched.Next(now)
			logger.Debug("next progress sweep", zap.Time("at", next))

			timer := time.NewTimer(next.Sub(now))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			alerts, err := sweep.Run(ctx)
			if err != nil {
				logger.Warn("progress sweep failed", zap.Error(err))
				continue
			}
			logger.Info("progress sweep complete", zap.Int("alerts", alerts))
		}
	}()
	return nil
}

// ParseSchedule parses a standard 5-field cron expression
// (minute hour day-of-month month day-of-week).
func ParseSchedule(expr string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return parser.Parse(expr)
}
