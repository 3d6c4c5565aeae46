package http

import (
	"errors"
	"net/http"
	"time"

	"cementops/internal/core/application/usecases/commands"
	"cementops/internal/core/application/usecases/queries"
	"cementops/internal/core/domain/model/delivery"
	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/services"
	"cementops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP API for dispatch planning.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createDeliveryHandler commands.CreateDeliveryCommandHandler
	updateDeliveryHandler commands.UpdateDeliveryCommandHandler
	cancelDeliveryHandler commands.CancelDeliveryCommandHandler
	deleteDeliveryHandler commands.DeleteDeliveryCommandHandler

	// Query handlers
	generateScheduleHandler   queries.GenerateScheduleQueryHandler
	getDeliveryBoardHandler   queries.GetDeliveryBoardQueryHandler
	validateAssignmentHandler queries.ValidateAssignmentQueryHandler

	dailyLimit kernel.Tonnage
}

// NewServer creates a new HTTP server with the required command and query handlers.
// The daily limit is the production ceiling used for schedule proposals.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	updateDeliveryHandler commands.UpdateDeliveryCommandHandler,
	cancelDeliveryHandler commands.CancelDeliveryCommandHandler,
	deleteDeliveryHandler commands.DeleteDeliveryCommandHandler,
	generateScheduleHandler queries.GenerateScheduleQueryHandler,
	getDeliveryBoardHandler queries.GetDeliveryBoardQueryHandler,
	validateAssignmentHandler queries.ValidateAssignmentQueryHandler,
	dailyLimit kernel.Tonnage,
) *Server {
	return &Server{
		createDeliveryHandler:     createDeliveryHandler,
		updateDeliveryHandler:     updateDeliveryHandler,
		cancelDeliveryHandler:     cancelDeliveryHandler,
		deleteDeliveryHandler:     deleteDeliveryHandler,
		generateScheduleHandler:   generateScheduleHandler,
		getDeliveryBoardHandler:   getDeliveryBoardHandler,
		validateAssignmentHandler: validateAssignmentHandler,
		dailyLimit:                dailyLimit,
	}
}

// RegisterRoutes binds all API routes onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/deliveries", s.CreateDelivery)
	api.PATCH("/deliveries/:id", s.UpdateDelivery)
	api.POST("/deliveries/:id/cancel", s.CancelDelivery)
	api.DELETE("/deliveries/:id", s.DeleteDelivery)

	api.POST("/assignments/validate", s.ValidateAssignment)
	api.GET("/schedule/proposal", s.GenerateSchedule)
	api.GET("/deliveries/board", s.GetDeliveryBoard)
}

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Code      int                `json:"code"`
	Message   string             `json:"message"`
	Conflicts []ConflictResponse `json:"conflicts,omitempty"`
}

// ConflictResponse describes one order already held by another active mission.
type ConflictResponse struct {
	OrderID    string `json:"orderId"`
	ClientName string `json:"clientName"`
	Product    string `json:"product"`
	Quantity   string `json:"quantity"`
	DeliveryID string `json:"deliveryId"`
	Status     string `json:"status"`
	Date       string `json:"date"`
}

// CreateDeliveryRequest is the body of POST /deliveries.
type CreateDeliveryRequest struct {
	OrderIDs      []string `json:"orderIds"`
	TruckID       *string  `json:"truckId,omitempty"`
	ScheduledDate string   `json:"scheduledDate"`
	ScheduledTime string   `json:"scheduledTime,omitempty"`
	Destination   string   `json:"destination"`
	Notes         string   `json:"notes,omitempty"`
	Actor         string   `json:"actor"`
}

// UpdateDeliveryRequest is the body of PATCH /deliveries/:id.
// Absent fields leave the current value untouched.
type UpdateDeliveryRequest struct {
	OrderIDs      *[]string `json:"orderIds,omitempty"`
	TruckID       *string   `json:"truckId,omitempty"`
	RemoveTruck   bool      `json:"removeTruck,omitempty"`
	ScheduledDate *string   `json:"scheduledDate,omitempty"`
	ScheduledTime *string   `json:"scheduledTime,omitempty"`
	Destination   *string   `json:"destination,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	Status        *string   `json:"status,omitempty"`
	StatusNote    string    `json:"statusNote,omitempty"`
	Actor         string    `json:"actor"`
}

// CancelDeliveryRequest is the body of POST /deliveries/:id/cancel.
type CancelDeliveryRequest struct {
	Actor string `json:"actor"`
	Note  string `json:"note,omitempty"`
}

// ValidateAssignmentRequest is the body of POST /assignments/validate.
type ValidateAssignmentRequest struct {
	OrderIDs  []string `json:"orderIds"`
	TruckID   *string  `json:"truckId,omitempty"`
	Excluding *string  `json:"excluding,omitempty"`
}

// CreateDelivery handles POST /api/v1/deliveries - creates a new delivery mission.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var req CreateDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderIDs, err := parseUUIDs(req.OrderIDs)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	truckID, err := parseOptionalUUID(req.TruckID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	scheduledDate, err := parseDate(req.ScheduledDate)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(deliveryID, orderIDs, truckID,
		scheduledDate, req.ScheduledTime, req.Destination, req.Notes, req.Actor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": deliveryID.String()})
}

// UpdateDelivery handles PATCH /api/v1/deliveries/:id - patches an existing mission.
func (s *Server) UpdateDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var req UpdateDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	patch, err := buildPatch(req)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateDeliveryCommand(deliveryID, patch, req.Actor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.updateDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var req CancelDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, req.Actor, req.Note)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteDelivery handles DELETE /api/v1/deliveries/:id.
func (s *Server) DeleteDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	cmd, err := commands.NewDeleteDeliveryCommand(deliveryID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.deleteDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ValidateAssignment handles POST /api/v1/assignments/validate - previews an
// assignment without persisting anything.
func (s *Server) ValidateAssignment(ctx echo.Context) error {
	var req ValidateAssignmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderIDs, err := parseUUIDs(req.OrderIDs)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	truckID, err := parseOptionalUUID(req.TruckID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	excluding, err := parseOptionalUUID(req.Excluding)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewValidateAssignmentQuery(orderIDs, truckID, excluding)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.validateAssignmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"used": result.Used.String()})
}

// ScheduleOrderResponse is one order slot inside a proposed truck load.
type ScheduleOrderResponse struct {
	OrderID       string `json:"orderId"`
	ClientName    string `json:"clientName"`
	Product       string `json:"product"`
	Quantity      string `json:"quantity"`
	RequestedDate string `json:"requestedDate"`
	RequestedTime string `json:"requestedTime,omitempty"`
}

// TruckScheduleResponse is one truck's proposed load.
type TruckScheduleResponse struct {
	TruckID     string                  `json:"truckId"`
	PlateNumber string                  `json:"plateNumber"`
	DriverName  string                  `json:"driverName"`
	Capacity    string                  `json:"capacity"`
	Load        string                  `json:"load"`
	Orders      []ScheduleOrderResponse `json:"orders"`
}

// ScheduleStatsResponse summarizes a schedule proposal.
type ScheduleStatsResponse struct {
	DailyLimit           string `json:"dailyLimit"`
	TotalPendingOrders   int    `json:"totalPendingOrders"`
	TotalPendingQuantity string `json:"totalPendingQuantity"`
	ScheduledOrders      int    `json:"scheduledOrders"`
	ScheduledQuantity    string `json:"scheduledQuantity"`
	TrucksUtilized       int    `json:"trucksUtilized"`
	TotalTrucks          int    `json:"totalTrucks"`
	TotalCapacity        string `json:"totalCapacity"`
}

// ScheduleProposalResponse is the body of GET /schedule/proposal.
type ScheduleProposalResponse struct {
	Trucks []TruckScheduleResponse `json:"trucks"`
	Stats  ScheduleStatsResponse   `json:"stats"`
}

// GenerateSchedule handles GET /api/v1/schedule/proposal - computes a schedule
// proposal for the pending backlog. Nothing is persisted.
func (s *Server) GenerateSchedule(ctx echo.Context) error {
	query, err := queries.NewGenerateScheduleQuery(s.dailyLimit)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	proposal, err := s.generateScheduleHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	trucks := make([]TruckScheduleResponse, len(proposal.Trucks))
	for i, load := range proposal.Trucks {
		orders := make([]ScheduleOrderResponse, len(load.Orders))
		for j, slot := range load.Orders {
			orders[j] = ScheduleOrderResponse{
				OrderID:       slot.OrderID.String(),
				ClientName:    slot.ClientName,
				Product:       slot.ProductName,
				Quantity:      slot.Quantity.String(),
				RequestedDate: slot.RequestedDate,
				RequestedTime: slot.RequestedTime,
			}
		}
		trucks[i] = TruckScheduleResponse{
			TruckID:     load.TruckID.String(),
			PlateNumber: load.PlateNumber,
			DriverName:  load.DriverName,
			Capacity:    load.Capacity.String(),
			Load:        load.Load.String(),
			Orders:      orders,
		}
	}

	return ctx.JSON(http.StatusOK, ScheduleProposalResponse{
		Trucks: trucks,
		Stats: ScheduleStatsResponse{
			DailyLimit:           proposal.Stats.DailyLimit.String(),
			TotalPendingOrders:   proposal.Stats.TotalPendingOrders,
			TotalPendingQuantity: proposal.Stats.TotalPendingQuantity.String(),
			ScheduledOrders:      proposal.Stats.ScheduledOrders,
			ScheduledQuantity:    proposal.Stats.ScheduledQuantity.String(),
			TrucksUtilized:       proposal.Stats.TrucksUtilized,
			TotalTrucks:          proposal.Stats.TotalTrucks,
			TotalCapacity:        proposal.Stats.TotalCapacity.String(),
		},
	})
}

// BoardRowResponse is one aggregated row of the delivery board.
type BoardRowResponse struct {
	DeliveryID    string   `json:"deliveryId"`
	Status        string   `json:"status"`
	TruckLabel    string   `json:"truckLabel,omitempty"`
	Destination   string   `json:"destination"`
	Clients       string   `json:"clients"`
	Products      []string `json:"products"`
	TotalQuantity string   `json:"totalQuantity"`
	Date          string   `json:"date"`
	Time          string   `json:"time,omitempty"`
}

// GetDeliveryBoard handles GET /api/v1/deliveries/board - returns aggregated
// board rows sorted by the requested key (order, time or client).
func (s *Server) GetDeliveryBoard(ctx echo.Context) error {
	sortKey := services.SortKey(ctx.QueryParam("sort"))
	if sortKey == "" {
		sortKey = services.SortByOrder
	}

	query, err := queries.NewGetDeliveryBoardQuery(sortKey)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	rows, err := s.getDeliveryBoardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]BoardRowResponse, len(rows))
	for i, row := range rows {
		response[i] = BoardRowResponse{
			DeliveryID:    row.DeliveryID.String(),
			Status:        row.Status,
			TruckLabel:    row.TruckLabel,
			Destination:   row.Destination,
			Clients:       row.Clients,
			Products:      row.Products,
			TotalQuantity: row.TotalQuantity.String(),
			Date:          row.Date,
			Time:          row.Time,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// buildPatch converts the transport-level update request into a domain patch.
func buildPatch(req UpdateDeliveryRequest) (commands.DeliveryPatch, error) {
	patch := commands.DeliveryPatch{
		RemoveTruck:   req.RemoveTruck,
		ScheduledTime: req.ScheduledTime,
		Destination:   req.Destination,
		Notes:         req.Notes,
		StatusNote:    req.StatusNote,
	}

	if req.OrderIDs != nil {
		ids, err := parseUUIDs(*req.OrderIDs)
		if err != nil {
			return commands.DeliveryPatch{}, err
		}
		patch.OrderIDs = &ids
	}

	truckID, err := parseOptionalUUID(req.TruckID)
	if err != nil {
		return commands.DeliveryPatch{}, err
	}
	patch.TruckID = truckID

	if req.ScheduledDate != nil {
		date, err := parseDate(*req.ScheduledDate)
		if err != nil {
			return commands.DeliveryPatch{}, err
		}
		patch.ScheduledDate = &date
	}

	if req.Status != nil {
		status, err := delivery.StatusFromString(*req.Status)
		if err != nil {
			return commands.DeliveryPatch{}, err
		}
		patch.Status = &status
	}

	return patch, nil
}

// writeDomainError maps use case errors onto HTTP responses. Conflict detail
// is carried through so the client can show which deliveries hold the orders.
func writeDomainError(ctx echo.Context, err error) error {
	var assignedErr *services.AlreadyAssignedError
	if errors.As(err, &assignedErr) {
		conflicts := make([]ConflictResponse, len(assignedErr.Conflicts))
		for i, c := range assignedErr.Conflicts {
			conflicts[i] = ConflictResponse{
				OrderID:    c.OrderID.String(),
				ClientName: c.ClientName,
				Product:    c.ProductName,
				Quantity:   c.Quantity.String(),
				DeliveryID: c.DeliveryID.String(),
				Status:     c.Status.String(),
				Date:       c.Schedule.DateString(),
			}
		}
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:      http.StatusConflict,
			Message:   err.Error(),
			Conflicts: conflicts,
		})
	}

	var capacityErr *services.CapacityExceededError
	switch {
	case errors.As(err, &capacityErr):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, delivery.ErrInvalidTransition),
		errors.Is(err, delivery.ErrTruckRequiredForDispatch),
		errors.Is(err, commands.ErrDeliveryInFlight):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrEmptySelection),
		errors.Is(err, delivery.ErrScheduleInPast),
		errors.Is(err, delivery.ErrDuplicateOrder):
		return badRequest(ctx, err.Error())
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func parseUUIDs(raw []string) ([]kernel.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseOptionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("scheduledDate", err)
	}
	return date, nil
}
