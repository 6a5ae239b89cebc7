// Package actions serializes user-triggered service lifecycle actions.
// Within one service id actions are strictly ordered: while one is in
// flight, further submits are rejected, never queued or duplicated.
// Different service ids proceed independently.
package actions

import (
	"context"
	"sync"

	"gamepanel/internal/errors"
	"gamepanel/internal/interfaces"
	"gamepanel/internal/logger"
	"gamepanel/internal/session"
	"gamepanel/internal/validation"
)

// Action identifies a lifecycle operation on a service
type Action string

const (
	ActionStart     Action = "start"
	ActionStop      Action = "stop"
	ActionRestart   Action = "restart"
	ActionReinstall Action = "reinstall"
	ActionHide      Action = "hide"
)

// Valid reports whether the action is one the coordinator can dispatch
func (a Action) Valid() bool {
	switch a {
	case ActionStart, ActionStop, ActionRestart, ActionReinstall, ActionHide:
		return true
	}
	return false
}

// Destructive reports whether the action requires explicit confirmation
func (a Action) Destructive() bool {
	return a == ActionReinstall || a == ActionHide
}

// Options carries the additional input of destructive actions
type Options struct {
	// Confirmed must be true for destructive actions; it models the
	// user clicking through the confirmation dialog.
	Confirmed bool
	// OSID selects the image for a reinstall
	OSID string
	// Password is the new root password for a reinstall
	Password string
}

// Syncer refreshes the cached mirror after an action completes
type Syncer interface {
	Resync(ctx context.Context, sess *session.Session)
}

// Coordinator tracks at most one in-flight action per service id
type Coordinator struct {
	gw     interfaces.ServiceGateway
	syncer Syncer

	mu      sync.Mutex
	pending map[string]Action
}

// NewCoordinator creates an action coordinator over the given gateway.
// syncer may be nil, in which case no post-action refresh happens.
func NewCoordinator(gw interfaces.ServiceGateway, syncer Syncer) *Coordinator {
	return &Coordinator{
		gw:      gw,
		syncer:  syncer,
		pending: make(map[string]Action),
	}
}

// Pending returns the in-flight action for a service, if any
func (c *Coordinator) Pending(serviceID string) (Action, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.pending[serviceID]
	return a, ok
}

// Submit validates, serializes and dispatches one action. It blocks until
// the provider responds. Exactly one outbound call is made per accepted
// submit; a rejected submit makes none.
func (c *Coordinator) Submit(ctx context.Context, sess *session.Session, serviceID string, action Action, opts Options) error {
	if !sess.HasAPIKey() {
		return errors.APIKeyRequired()
	}

	if !action.Valid() {
		return errors.ValidationFailed("action", string(action), "unknown action")
	}

	if err := validation.ServiceID(serviceID); err != nil {
		return err
	}

	if err := validateOptions(action, opts); err != nil {
		return err
	}

	if err := c.acquire(serviceID, action); err != nil {
		return err
	}
	defer c.release(serviceID)

	err := c.dispatch(ctx, serviceID, action, opts)

	entry := logger.WithFields(logger.Fields{
		"user_id":    sess.UserID,
		"service_id": serviceID,
		"action":     string(action),
	})
	if err != nil {
		entry.WithError(err).Warn("Service action failed")
	} else {
		entry.Info("Service action completed")
	}

	// Refresh the mirror in both outcomes so the dashboard shows the
	// provider's view of what actually happened.
	if c.syncer != nil {
		c.syncer.Resync(ctx, sess)
	}

	return err
}

// acquire marks the service as having an in-flight action, rejecting if
// one is already pending
func (c *Coordinator) acquire(serviceID string, action Action) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pending, ok := c.pending[serviceID]; ok {
		return errors.ActionAlreadyPending(serviceID, string(pending))
	}

	c.pending[serviceID] = action
	return nil
}

// release returns the service to idle
func (c *Coordinator) release(serviceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, serviceID)
}

// dispatch issues the single gateway call for the action
func (c *Coordinator) dispatch(ctx context.Context, serviceID string, action Action, opts Options) error {
	switch action {
	case ActionStart:
		return c.gw.StartService(ctx, serviceID)
	case ActionStop:
		return c.gw.StopService(ctx, serviceID)
	case ActionRestart:
		return c.gw.RestartService(ctx, serviceID)
	case ActionReinstall:
		return c.gw.ReinstallService(ctx, serviceID, opts.OSID, opts.Password)
	case ActionHide:
		return c.gw.HideService(ctx, serviceID)
	}
	return errors.ValidationFailed("action", string(action), "unknown action")
}

// validateOptions checks the extra input of destructive actions before
// anything is marked pending or dispatched
func validateOptions(action Action, opts Options) error {
	if action.Destructive() && !opts.Confirmed {
		return errors.ValidationFailed("confirmed", "false", "destructive action requires confirmation")
	}

	if action == ActionReinstall {
		if err := validation.OSID(opts.OSID); err != nil {
			return err
		}
		if err := validation.ReinstallPassword(opts.Password); err != nil {
			return err
		}
	}

	return nil
}
