// Package http exposes the coordination core's REST API. It coordinates
// between HTTP handlers and application use cases; all domain rules live in
// the command and query handlers.
package http

import (
	"errors"
	"net/http"

	"expeditor/internal/core/application/usecases/commands"
	"expeditor/internal/core/application/usecases/queries"
	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/kitchenitem"
	"expeditor/internal/core/ports"
	"expeditor/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers for the coordination API.
type Server struct {
	// Command handlers
	claimItemHandler     commands.ClaimItemCommandHandler
	enterOvenHandler     commands.EnterOvenCommandHandler
	markItemReadyHandler commands.MarkItemReadyCommandHandler
	dispatchGroupHandler commands.DispatchGroupCommandHandler
	requeuePrintHandler  commands.RequeuePrintJobCommandHandler

	// Query handlers
	sectorQueueHandler queries.GetSectorQueueQueryHandler
	pendingJobsHandler queries.GetPendingPrintJobsQueryHandler

	presence ports.PresenceTracker
	metrics  http.Handler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	claimItemHandler commands.ClaimItemCommandHandler,
	enterOvenHandler commands.EnterOvenCommandHandler,
	markItemReadyHandler commands.MarkItemReadyCommandHandler,
	dispatchGroupHandler commands.DispatchGroupCommandHandler,
	requeuePrintHandler commands.RequeuePrintJobCommandHandler,
	sectorQueueHandler queries.GetSectorQueueQueryHandler,
	pendingJobsHandler queries.GetPendingPrintJobsQueryHandler,
	presence ports.PresenceTracker,
	metrics http.Handler,
) *Server {
	return &Server{
		claimItemHandler:     claimItemHandler,
		enterOvenHandler:     enterOvenHandler,
		markItemReadyHandler: markItemReadyHandler,
		dispatchGroupHandler: dispatchGroupHandler,
		requeuePrintHandler:  requeuePrintHandler,
		sectorQueueHandler:   sectorQueueHandler,
		pendingJobsHandler:   pendingJobsHandler,
		presence:             presence,
		metrics:              metrics,
	}
}

// RegisterRoutes wires the API routes onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/items/:id/claim", s.ClaimItem)
	api.POST("/items/:id/oven", s.EnterOven)
	api.POST("/items/:id/ready", s.MarkItemReady)
	api.GET("/sectors/:id/queue", s.GetSectorQueue)
	api.GET("/print-jobs/pending", s.GetPendingPrintJobs)
	api.POST("/print-jobs/:id/requeue", s.RequeuePrintJob)
	api.POST("/groups/:id/dispatch", s.DispatchGroup)
	api.POST("/presence/heartbeat", s.Heartbeat)
	api.DELETE("/presence", s.RemovePresence)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(s.metrics))
}

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// operatorRequest is the body of the item lifecycle endpoints.
type operatorRequest struct {
	UserID string `json:"userId"`
}

// presenceRequest is the body of the heartbeat and removal endpoints.
type presenceRequest struct {
	SectorID string `json:"sectorId"`
	UserID   string `json:"userId"`
}

// ClaimItem handles POST /api/v1/items/:id/claim.
func (s *Server) ClaimItem(ctx echo.Context) error {
	itemID, userID, err := itemOperatorIDs(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewClaimItemCommand(itemID, userID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.claimItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// EnterOven handles POST /api/v1/items/:id/oven.
func (s *Server) EnterOven(ctx echo.Context) error {
	itemID, userID, err := itemOperatorIDs(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewEnterOvenCommand(itemID, userID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.enterOvenHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkItemReady handles POST /api/v1/items/:id/ready.
func (s *Server) MarkItemReady(ctx echo.Context) error {
	itemID, userID, err := itemOperatorIDs(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewMarkItemReadyCommand(itemID, userID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.markItemReadyHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetSectorQueue handles GET /api/v1/sectors/:id/queue.
func (s *Server) GetSectorQueue(ctx echo.Context) error {
	sectorID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetSectorQueueQuery(sectorID)
	if err != nil {
		return badRequest(ctx, err)
	}

	items, err := s.sectorQueueHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, items)
}

// GetPendingPrintJobs handles GET /api/v1/print-jobs/pending.
func (s *Server) GetPendingPrintJobs(ctx echo.Context) error {
	query := queries.NewGetPendingPrintJobsQuery()

	jobs, err := s.pendingJobsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, jobs)
}

// RequeuePrintJob handles POST /api/v1/print-jobs/:id/requeue.
func (s *Server) RequeuePrintJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRequeuePrintJobCommand(jobID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.requeuePrintHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// DispatchGroup handles POST /api/v1/groups/:id/dispatch.
func (s *Server) DispatchGroup(ctx echo.Context) error {
	groupID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewDispatchGroupCommand(groupID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.dispatchGroupHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Heartbeat handles POST /api/v1/presence/heartbeat.
func (s *Server) Heartbeat(ctx echo.Context) error {
	sectorID, userID, err := presenceIDs(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.presence.Heartbeat(ctx.Request().Context(), sectorID, userID); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemovePresence handles DELETE /api/v1/presence.
func (s *Server) RemovePresence(ctx echo.Context) error {
	sectorID, userID, err := presenceIDs(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.presence.Remove(ctx.Request().Context(), sectorID, userID); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// itemOperatorIDs parses the item ID path parameter and operator body.
func itemOperatorIDs(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	itemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	var body operatorRequest
	if err = ctx.Bind(&body); err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	userID, err := kernel.UUIDFromString(body.UserID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	return itemID, userID, nil
}

// presenceIDs parses the sector and user identifiers from the body.
func presenceIDs(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	var body presenceRequest
	if err := ctx.Bind(&body); err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	sectorID, err := kernel.UUIDFromString(body.SectorID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	userID, err := kernel.UUIDFromString(body.UserID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	return sectorID, userID, nil
}

// badRequest writes a 400 response for malformed input.
func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// domainError maps domain and application errors onto HTTP statuses.
// Concurrency losses and claim contention are conflicts the client retries;
// presence gating is a permission failure; validation failures are the
// client's fault.
func domainError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConcurrencyConflict),
		errors.Is(err, kitchenitem.ErrItemAlreadyClaimed),
		errors.Is(err, kitchenitem.ErrItemNotClaimed):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
