package initializers

import (
	"context"
	"time"

	"cinepass-auth/internals/config"
	"cinepass-auth/internals/stores"

	"github.com/sirupsen/logrus"
)

// StartCodeCleanup runs a background janitor that hard-deletes expired
// verification codes. Reads already treat expired rows as absent, so the
// sweep only keeps the table from growing. User records are never purged.
func StartCodeCleanup(log *logrus.Logger) {
	cleanupInterval := config.GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 30, true)
	ticker := time.NewTicker(time.Duration(cleanupInterval) * time.Minute)

	codeStore := stores.NewCodeStore(DB)

	go func() {
		for range ticker.C {
			purged, err := codeStore.DeleteExpired(context.Background())
			if err != nil {
				log.WithError(err).Error("Janitor: failed to purge expired verification codes")
				continue
			}
			if purged > 0 {
				log.Infof("Janitor: purged %d expired verification codes", purged)
			}
		}
	}()
}
