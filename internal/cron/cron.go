package cron

import (
	"context"
	"log"
	"time"
)

// AuditPruner deletes audit logs older than the given number of days.
type AuditPruner interface {
	CleanupOldLogs(days int) error
}

// StartCleanupTask prunes the audit trail once on startup and then daily
// until ctx is cancelled.
func StartCleanupTask(ctx context.Context, pruner AuditPruner, retentionDays int) {
	if retentionDays <= 0 {
		log.Println("[cron] audit cleanup disabled")
		return
	}
	go func() {
		log.Printf("[cron] starting audit cleanup task (retention: %d days)", retentionDays)
		runCleanup(pruner, retentionDays)

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runCleanup(pruner, retentionDays)
			}
		}
	}()
}

func runCleanup(pruner AuditPruner, retentionDays int) {
	if err := pruner.CleanupOldLogs(retentionDays); err != nil {
		log.Printf("[cron] failed to cleanup old audit logs: %v", err)
		return
	}
	log.Println("[cron] audit log cleanup completed")
}
