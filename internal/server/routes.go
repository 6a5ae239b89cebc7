package server

import (
	"net/http"
	"time"

	"gamepanel/internal/actions"
	"gamepanel/internal/constants"
	"gamepanel/internal/errors"
	"gamepanel/internal/gateway"
	"gamepanel/internal/logger"
	"gamepanel/internal/validation"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Health check
	s.echo.GET("/health", s.handleHealth)

	// API group
	api := s.echo.Group("/api")

	// Services
	services := api.Group("/services")
	services.GET("", s.handleListServices)
	services.GET("/:id", s.handleGetService)
	services.GET("/:id/os", s.handleListOperatingSystems)
	services.GET("/:id/ips", s.handleListIPAllocations)
	services.POST("/:id/start", s.handleStartService)
	services.POST("/:id/stop", s.handleStopService)
	services.POST("/:id/restart", s.handleRestartService)
	services.POST("/:id/reinstall", s.handleReinstallService)
	services.POST("/:id/hide", s.handleHideService)
	services.POST("/:id/extend", s.handleExtendService)
	services.POST("/:id/backup", s.handleCreateBackup)
}

// handleHealth godoc
// @Summary Health check
// @Description Check if the dashboard API and its database are healthy
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (s *Server) handleHealth(c echo.Context) error {
	uptime := time.Since(s.startTime)

	dbStatus := "unhealthy"
	var schemaVersion uint
	if dbInstance, err := s.getDB(); err == nil {
		if err := dbInstance.HealthCheck(c.Request().Context()); err == nil {
			dbStatus = "healthy"
		}
		// Best-effort; absent on databases set up without the migration table
		schemaVersion, _ = dbInstance.GetCurrentVersion(c.Request().Context())
	}

	sessionState := SessionStateConfigurationRequired
	if sess, err := s.currentSession(c); err == nil && sess.HasAPIKey() {
		sessionState = SessionStateReady
	}

	return c.JSON(http.StatusOK, HealthResponse{
		Status:        "healthy",
		Version:       constants.Version,
		Uptime:        uptime.Round(time.Second).String(),
		Database:      dbStatus,
		SchemaVersion: schemaVersion,
		Session:       sessionState,
	})
}

// handleListServices godoc
// @Summary List services
// @Description List the user's services from the cached mirror, optionally refreshing from the provider first
// @Tags services
// @Accept json
// @Produce json
// @Param refresh query string false "Set to 1 to reconcile with the provider before listing"
// @Success 200 {object} ServicesResponse
// @Failure 500 {object} errors.HTTPErrorResponse
// @Router /api/services [get]
func (s *Server) handleListServices(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := s.currentSession(c)
	if err != nil {
		return errors.HandleError(c, err)
	}

	resp := ServicesResponse{State: SessionStateReady}
	if !sess.HasAPIKey() {
		resp.State = SessionStateConfigurationRequired
	}

	// A refresh is best-effort when the credential is missing: the cached
	// rows are still served so the dashboard degrades instead of failing.
	if c.QueryParam("refresh") == "1" && sess.HasAPIKey() {
		result, err := s.reconciler.SyncUser(ctx, sess)
		if err != nil {
			return errors.HandleError(c, err)
		}
		resp.Refreshed = true
		resp.SyncFailures = len(result.Errors)
	}

	rows, err := s.cache.ListByUser(ctx, sess.UserID)
	if err != nil {
		return errors.HandleError(c, errors.PersistenceError("list", err))
	}

	resp.Services = make([]ServiceSummary, 0, len(rows))
	for _, row := range rows {
		summary := ServiceSummary{
			ID:        row.ServiceID,
			Name:      row.ServiceName,
			Type:      row.ServiceType,
			Status:    row.Status,
			UpdatedAt: row.UpdatedAt,
		}
		if pending, ok := s.coordinator.Pending(row.ServiceID); ok {
			summary.PendingAction = string(pending)
		}
		resp.Services = append(resp.Services, summary)
	}
	resp.Total = len(resp.Services)

	return c.JSON(http.StatusOK, resp)
}

// handleGetService godoc
// @Summary Get service detail
// @Description Fetch the live detail view of one service from the provider
// @Tags services
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} ServiceDetailResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 404 {object} errors.HTTPErrorResponse
// @Failure 409 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/services/{id} [get]
func (s *Server) handleGetService(c echo.Context) error {
	ctx := c.Request().Context()
	serviceID := c.Param("id")

	if err := validation.ServiceID(serviceID); err != nil {
		return errors.HandleError(c, err)
	}

	sess, err := s.currentSession(c)
	if err != nil {
		return errors.HandleError(c, err)
	}
	if !sess.HasAPIKey() {
		return errors.HandleError(c, errors.APIKeyRequired())
	}

	detail, cached := s.detailCache.Get(serviceID)
	if !cached {
		detail, err = s.gateway.GetServiceDetail(ctx, serviceID)
		if err != nil {
			return errors.HandleError(c, err)
		}
		s.detailCache.Set(serviceID, detail)
	}

	// The status probe is best-effort. The detail view stays useful with a
	// stale status, so a probe failure degrades to the mirrored value.
	status := string(gateway.StatusUnknown)
	if live, err := s.gateway.GetServiceStatus(ctx, serviceID); err == nil {
		status = string(live)
		s.reconciler.RecordStatus(ctx, sess, serviceID, status)
	} else {
		logger.WithError(err).WithField("service_id", serviceID).Debug("Status probe failed")
		if row, rerr := s.cache.Get(ctx, sess.UserID, serviceID); rerr == nil {
			status = row.Status
		}
	}

	return c.JSON(http.StatusOK, ServiceDetailResponse{
		Service: detail.Service,
		Product: detail.Product,
		Status:  status,
		Cached:  cached,
	})
}

// handleListOperatingSystems godoc
// @Summary List installable images
// @Description List the operating system images available for reinstalling a service
// @Tags services
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} OSListResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 409 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/services/{id}/os [get]
func (s *Server) handleListOperatingSystems(c echo.Context) error {
	ctx := c.Request().Context()
	serviceID := c.Param("id")

	if err := validation.ServiceID(serviceID); err != nil {
		return errors.HandleError(c, err)
	}

	sess, err := s.currentSession(c)
	if err != nil {
		return errors.HandleError(c, err)
	}
	if !sess.HasAPIKey() {
		return errors.HandleError(c, errors.APIKeyRequired())
	}

	oses, err := s.gateway.ListOperatingSystems(ctx, serviceID)
	if err != nil {
		return errors.HandleError(c, err)
	}

	return c.JSON(http.StatusOK, OSListResponse{
		OperatingSystems: oses,
		Total:            len(oses),
	})
}

// handleListIPAllocations godoc
// @Summary List IP allocations
// @Description List the IPv4 and IPv6 allocations of a service
// @Tags services
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} IPListResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 409 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/services/{id}/ips [get]
func (s *Server) handleListIPAllocations(c echo.Context) error {
	ctx := c.Request().Context()
	serviceID := c.Param("id")

	if err := validation.ServiceID(serviceID); err != nil {
		return errors.HandleError(c, err)
	}

	sess, err := s.currentSession(c)
	if err != nil {
		return errors.HandleError(c, err)
	}
	if !sess.HasAPIKey() {
		return errors.HandleError(c, errors.APIKeyRequired())
	}

	ips, err := s.gateway.ListIPAllocations(ctx, serviceID)
	if err != nil {
		return errors.HandleError(c, err)
	}

	return c.JSON(http.StatusOK, IPListResponse{
		IPv4: ips.IPv4,
		IPv6: ips.IPv6,
	})
}

// handleStartService godoc
// @Summary Start a service
// @Description Submit a start action for a service
// @Tags actions
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 409 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/services/{id}/start [post]
func (s *Server) handleStartService(c echo.Context) error {
	return s.submitAction(c, actions.ActionStart)
}

// handleStopService godoc
// @Summary Stop a service
// @Description Submit a stop action for a service
// @Tags actions
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 409 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/services/{id}/stop [post]
func (s *Server) handleStopService(c echo.Context) error {
	return s.submitAction(c, actions.ActionStop)
}

// handleRestartService godoc
// @Summary Restart a service
// @Description Submit a restart action for a service
// @Tags actions
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 409 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/services/{id}/restart [post]
func (s *Server) handleRestartService(c echo.Context) error {
	return s.submitAction(c, actions.ActionRestart)
}

// handleReinstallService godoc
// @Summary Reinstall a service
// @Description Submit a reinstall with a new image and root password; requires confirmation
// @Tags actions
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body ActionRequest true "Reinstall parameters"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 409 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/services/{id}/reinstall [post]
func (s *Server) handleReinstallService(c echo.Context) error {
	return s.submitAction(c, actions.ActionReinstall)
}

// handleHideService godoc
// @Summary Hide a service
// @Description Hide a service from the provider's list; requires confirmation
// @Tags actions
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body ActionRequest true "Confirmation"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 409 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/services/{id}/hide [post]
func (s *Server) handleHideService(c echo.Context) error {
	return s.submitAction(c, actions.ActionHide)
}

// submitAction parses the shared action request shape and hands it to the
// coordinator, which owns validation and per-service serialization
func (s *Server) submitAction(c echo.Context, action actions.Action) error {
	ctx := c.Request().Context()
	serviceID := c.Param("id")

	sess, err := s.currentSession(c)
	if err != nil {
		return errors.HandleError(c, err)
	}

	var req ActionRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest("Invalid request body", err.Error())
	}

	opts := actions.Options{
		Confirmed: req.Confirmed,
		OSID:      req.OSID,
		Password:  req.Password,
	}

	if err := s.coordinator.Submit(ctx, sess, serviceID, action, opts); err != nil {
		return errors.HandleError(c, err)
	}

	// The provider's view of the service just changed, so a cached detail
	// must not outlive the action.
	s.detailCache.Delete(serviceID)

	return c.JSON(http.StatusOK, ActionResponse{
		Message: "Service action completed",
		ID:      serviceID,
		Action:  string(action),
	})
}

// handleExtendService godoc
// @Summary Extend a service
// @Description Extend the runtime of a service by a number of days
// @Tags actions
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body ExtendRequest true "Extension duration"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 409 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/services/{id}/extend [post]
func (s *Server) handleExtendService(c echo.Context) error {
	ctx := c.Request().Context()
	serviceID := c.Param("id")

	if err := validation.ServiceID(serviceID); err != nil {
		return errors.HandleError(c, err)
	}

	sess, err := s.currentSession(c)
	if err != nil {
		return errors.HandleError(c, err)
	}
	if !sess.HasAPIKey() {
		return errors.HandleError(c, errors.APIKeyRequired())
	}

	var req ExtendRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest("Invalid request body", err.Error())
	}
	if req.DurationDays <= 0 {
		return errors.HandleError(c, errors.ValidationFailed("duration_days", "", "must be positive"))
	}

	if err := s.gateway.ExtendService(ctx, serviceID, req.DurationDays); err != nil {
		return errors.HandleError(c, err)
	}

	s.detailCache.Delete(serviceID)

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Service extended"})
}

// handleCreateBackup godoc
// @Summary Create a backup
// @Description Trigger a backup of a service on the provider side
// @Tags actions
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 409 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/services/{id}/backup [post]
func (s *Server) handleCreateBackup(c echo.Context) error {
	ctx := c.Request().Context()
	serviceID := c.Param("id")

	if err := validation.ServiceID(serviceID); err != nil {
		return errors.HandleError(c, err)
	}

	sess, err := s.currentSession(c)
	if err != nil {
		return errors.HandleError(c, err)
	}
	if !sess.HasAPIKey() {
		return errors.HandleError(c, errors.APIKeyRequired())
	}

	if err := s.gateway.CreateBackup(ctx, serviceID); err != nil {
		return errors.HandleError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Backup requested"})
}
