// Package sync reconciles the provider's authoritative service list into
// the local cache
package sync

import (
	"context"

	"gamepanel/internal/db"
	"gamepanel/internal/errors"
	"gamepanel/internal/interfaces"
	"gamepanel/internal/logger"
	"gamepanel/internal/session"
)

// ItemError records the failure of a single service during a batch
type ItemError struct {
	ServiceID string
	Err       error
}

// Result summarizes one reconciliation pass
type Result struct {
	Synced  []db.UserService
	Deleted []string
	Errors  []ItemError
}

// Reconciler pulls the remote service list and converges the cache onto it.
// The remote list always wins: cached rows are created or updated from it,
// and rows whose service no longer appears upstream are removed. Passes are
// safe to run concurrently because the upsert is idempotent.
type Reconciler struct {
	gw       interfaces.ServiceGateway
	cache    interfaces.ServiceCache
	reporter interfaces.Reporter
}

// NewReconciler creates a reconciler over the given gateway and cache
func NewReconciler(gw interfaces.ServiceGateway, cache interfaces.ServiceCache, reporter interfaces.Reporter) *Reconciler {
	if reporter == nil {
		reporter = LogReporter{}
	}
	return &Reconciler{
		gw:       gw,
		cache:    cache,
		reporter: reporter,
	}
}

// SyncUser runs one reconciliation pass for the session's user. A failure
// to fetch the remote list aborts the pass; a failure on any single cache
// row is reported and the batch continues. With no configured API key the
// pass is a no-op and no gateway call is made.
func (r *Reconciler) SyncUser(ctx context.Context, sess *session.Session) (*Result, error) {
	if !sess.HasAPIKey() {
		return nil, errors.APIKeyRequired()
	}

	services, err := r.gw.ListServices(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	seen := make(map[string]bool, len(services))

	for i := range services {
		svc := &services[i]
		seen[svc.ID] = true

		record := &db.UserService{
			UserID:      sess.UserID,
			ServiceID:   svc.ID,
			ServiceType: svc.NormalizedType(),
			ServiceName: svc.DisplayName(),
			Status:      string(svc.NormalizedStatus()),
		}

		if err := r.cache.Upsert(ctx, record); err != nil {
			perr := errors.PersistenceError("upsert", err)
			r.reporter.Report(ctx, "sync.upsert", perr, map[string]interface{}{
				"user_id":    sess.UserID,
				"service_id": svc.ID,
			})
			result.Errors = append(result.Errors, ItemError{ServiceID: svc.ID, Err: perr})
			continue
		}

		result.Synced = append(result.Synced, *record)
	}

	// Second pass: cached rows not present upstream belong to services that
	// were cancelled or hidden on the provider side. Remove them so the
	// dashboard converges on the authoritative list.
	cached, err := r.cache.ListByUser(ctx, sess.UserID)
	if err != nil {
		perr := errors.PersistenceError("list", err)
		r.reporter.Report(ctx, "sync.list", perr, map[string]interface{}{
			"user_id": sess.UserID,
		})
		result.Errors = append(result.Errors, ItemError{Err: perr})
		return result, nil
	}

	for _, row := range cached {
		if seen[row.ServiceID] {
			continue
		}
		if err := r.cache.Delete(ctx, sess.UserID, row.ServiceID); err != nil {
			perr := errors.PersistenceError("delete", err)
			r.reporter.Report(ctx, "sync.delete", perr, map[string]interface{}{
				"user_id":    sess.UserID,
				"service_id": row.ServiceID,
			})
			result.Errors = append(result.Errors, ItemError{ServiceID: row.ServiceID, Err: perr})
			continue
		}
		result.Deleted = append(result.Deleted, row.ServiceID)
	}

	return result, nil
}

// RecordStatus writes an observed status into the cache without a full
// pass, used after single-service status probes. Failures are reported,
// not returned: status display degrades to the next full pass.
func (r *Reconciler) RecordStatus(ctx context.Context, sess *session.Session, serviceID, status string) {
	if err := r.cache.UpdateStatus(ctx, sess.UserID, serviceID, status); err != nil {
		r.reporter.Report(ctx, "sync.update_status", errors.PersistenceError("update_status", err), map[string]interface{}{
			"user_id":    sess.UserID,
			"service_id": serviceID,
		})
	}
}

// LogReporter reports batch item failures through the structured logger
type LogReporter struct{}

// Report logs one isolated failure with its context fields
func (LogReporter) Report(ctx context.Context, operation string, err error, fields map[string]interface{}) {
	entry := logger.WithContext(ctx).WithField("operation", operation)
	for k, v := range fields {
		entry = entry.WithField(k, v)
	}
	entry.WithError(err).Error("Sync item failed")
}
