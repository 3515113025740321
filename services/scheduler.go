// services/scheduler.go
package services

import (
	"time"

	"community-wins-system/pkg/logger"

	"github.com/go-co-op/gocron/v2"
)

// StartSnapshotScheduler captures the top of the leaderboard on a fixed
// interval. Capture failures are logged and the job keeps running.
func (s *LeaderboardService) StartSnapshotScheduler(interval time.Duration, topN int) {
	if interval <= 0 {
		interval = time.Hour
	}
	if topN <= 0 {
		topN = defaultLeaderboardLimit
	}

	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			batchID, err := s.Snapshot(topN)
			if err != nil {
				logger.Errorf("[Scheduler] leaderboard snapshot failed: %v", err)
				return
			}
			logger.Infof("✅ Leaderboard snapshot captured: %s", batchID)
		}),
	)
}
