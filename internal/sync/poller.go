package sync

import (
	"context"
	"sync"
	"time"

	"gamepanel/internal/constants"
	"gamepanel/internal/logger"
	"gamepanel/internal/session"
)

// Subscription is the handle of a running periodic reconciliation. The
// owner that acquired it must call Stop when its view goes away; after
// Stop returns no further pass will start.
type Subscription struct {
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Stop cancels the subscription and waits for the poll loop to exit
func (s *Subscription) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	<-s.done
}

// Done is closed once the poll loop has exited
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// StartPolling runs an immediate reconciliation pass and then repeats on
// the given interval until Stop is called or the context is cancelled.
// Passes may race with manual refreshes; that is safe because the
// underlying upsert is idempotent.
func (r *Reconciler) StartPolling(ctx context.Context, sess *session.Session, interval time.Duration) *Subscription {
	if interval <= 0 {
		interval = constants.DefaultSyncInterval
	}

	sub := &Subscription{
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(sub.done)

		r.runPass(ctx, sess)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.runPass(ctx, sess)
			case <-sub.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return sub
}

// Resync runs one pass outside the polling loop, reporting failures
// through the logger. It is the post-action refresh hook.
func (r *Reconciler) Resync(ctx context.Context, sess *session.Session) {
	r.runPass(ctx, sess)
}

// runPass executes one pass and logs the outcome
func (r *Reconciler) runPass(ctx context.Context, sess *session.Session) {
	result, err := r.SyncUser(ctx, sess)
	if err != nil {
		logger.WithError(err).WithField("user_id", sess.UserID).Warn("Periodic sync failed")
		return
	}

	if len(result.Errors) > 0 {
		logger.WithFields(logger.Fields{
			"user_id":  sess.UserID,
			"synced":   len(result.Synced),
			"deleted":  len(result.Deleted),
			"failures": len(result.Errors),
		}).Warn("Periodic sync completed with failures")
		return
	}

	logger.WithFields(logger.Fields{
		"user_id": sess.UserID,
		"synced":  len(result.Synced),
		"deleted": len(result.Deleted),
	}).Debug("Periodic sync completed")
}
