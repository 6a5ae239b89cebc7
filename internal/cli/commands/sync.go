package commands

import (
	"fmt"

	"gamepanel/internal/logger"
	"gamepanel/internal/session"
	syncer "gamepanel/internal/sync"

	"github.com/spf13/cobra"
)

// SyncCommand creates the one-shot reconciliation command
func SyncCommand(reconciler *syncer.Reconciler, sessions session.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the cached service mirror with the provider",
		Long: `Sync pulls the authoritative service list from the provider, creates or
updates the cached row for every service, and removes cached rows whose
service no longer exists upstream.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := sessions.Current(ctx)
			if err != nil {
				return err
			}

			result, err := reconciler.SyncUser(ctx, sess)
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			logger.WithFields(logger.Fields{
				"synced":  len(result.Synced),
				"deleted": len(result.Deleted),
			}).Info("✓ Sync completed")

			for _, itemErr := range result.Errors {
				logger.WithFields(logger.Fields{
					"service": itemErr.ServiceID,
					"error":   itemErr.Err,
				}).Warn("Service could not be mirrored")
			}

			if len(result.Errors) > 0 {
				return fmt.Errorf("synced %d services, %d failed", len(result.Synced), len(result.Errors))
			}
			return nil
		},
	}
}
