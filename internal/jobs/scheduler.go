// Package jobs manages background tasks (cron): the Monday goals recap
// and the periodic Twitch webhook resync.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"lgt-bot/internal/common"
	"lgt-bot/internal/config"
	"lgt-bot/internal/features/goals"
	"lgt-bot/internal/features/twitch"
)

// Scheduler runs the background jobs.
type Scheduler struct {
	cron          *cron.Cron
	cfg           *config.Config
	goalsService  *goals.Service
	twitchService *twitch.Service
	announce      func(channelID, text string)
}

// NewScheduler creates the scheduler in the configured timezone.
func NewScheduler(
	cfg *config.Config,
	goalsService *goals.Service,
	twitchService *twitch.Service,
	announce func(channelID, text string),
) *Scheduler {
	loc := common.LoadLocation(cfg.AppTimezone)
	return &Scheduler{
		cron:          cron.New(cron.WithLocation(loc)),
		cfg:           cfg,
		goalsService:  goalsService,
		twitchService: twitchService,
		announce:      announce,
	}
}

// Start schedules and launches all background jobs.
func (s *Scheduler) Start(ctx context.Context) {
	// Monday 09:00 — recap of last week's goals.
	if s.cfg.FeatureGoalsEnabled && s.cfg.GoalsChannelID != "" {
		s.cron.AddFunc("0 9 * * 1", func() {
			log.Info("[CRON] Weekly goals recap")
			recap, err := s.goalsService.WeeklyRecap(ctx)
			if err != nil {
				log.WithError(err).Error("[CRON] Recap failed")
				return
			}
			if recap == "" {
				log.Info("[CRON] No goals last week, skipping recap")
				return
			}
			s.announce(s.cfg.GoalsChannelID, recap)
		})
	}

	// Every 6 hours — reconcile EventSub webhooks with the database.
	if s.cfg.FeatureTwitchEnabled {
		s.cron.AddFunc("0 */6 * * *", func() {
			log.Debug("[CRON] Twitch webhook sync")
			if err := s.twitchService.Sync(ctx); err != nil {
				log.WithError(err).Error("[CRON] Twitch sync failed")
			}
		})
	}

	s.cron.Start()
	log.WithField("timezone", s.cfg.AppTimezone).Info("Scheduler started")
}

// Stop stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Scheduler stopped")
}
