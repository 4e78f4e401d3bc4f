package table

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"baize/infras/otel"
	sessionDto "baize/internal/domains/session/model/dto"
	sessionService "baize/internal/domains/session/service"
	"baize/internal/domains/table/model"
	"baize/internal/domains/table/model/dto"
	"baize/internal/domains/table/service"
	"baize/shared"
	"baize/shared/constant"
	gDto "baize/shared/dto"
	"baize/shared/validator"
	"baize/transport/http/response"
)

type Handler struct {
	service  service.Table
	sessions sessionService.Session
	otel     otel.Otel
}

func New(service service.Table, sessions sessionService.Session, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		sessions: sessions,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tables", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTable)
		routerGroup.Get("/", handler.GetTables)
		routerGroup.Get("/{id}", handler.GetTableByID)
		routerGroup.Patch("/{id}", handler.UpdateTable)
		routerGroup.Delete("/{id}", handler.DeleteTable)
		routerGroup.Put("/{id}/status", handler.UpdateTableStatus)
	})
}

// CreateTable handles the creation of a new billiard table.
// @Summary Create a new table
// @Description Create a new billiard table with number, type and hourly rate.
// @Tags Table
// @Accept json
// @Produce json
// @Param request body dto.CreateTableRequest true "Table details"
// @Success 201 {object} response.Envelope[any] "Table created successfully"
// @Failure 400 {object} response.Envelope[any]
// @Failure 409 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/tables [post]
// @Security BearerAuth
func (handler *Handler) CreateTable(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTable")
	defer scope.End()

	req := dto.CreateTableRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create table")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Table created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Table created successfully")
}

// GetTables retrieves all tables based on query parameters.
// @Summary Get all tables
// @Description Retrieve all tables with optional filtering and pagination.
// @Tags Table
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (available, occupied, reserved, maintenance)"
// @Param table_type query string false "Filter by table type (pool, snooker, billiard)"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Envelope[dto.GetTablesResponse] "List of tables"
// @Failure 400 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/tables [get]
func (handler *Handler) GetTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTables")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if tableType := r.URL.Query().Get(model.FieldTableType); tableType != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTableType,
			Operator: gDto.FilterOperatorEq,
			Value:    tableType,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	tables, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tables")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tables retrieved successfully")

	response.WithJSON(w, http.StatusOK, tables)
}

// GetTableByID retrieves a table by its ID.
// @Summary Get a table by ID
// @Description Retrieve a table by its unique identifier.
// @Tags Table
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} response.Envelope[dto.TableResponse] "Table details"
// @Failure 404 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/tables/{id} [get]
func (handler *Handler) GetTableByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTableByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	table, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get table by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table retrieved successfully")

	response.WithJSON(w, http.StatusOK, table)
}

// UpdateTable updates an existing table by its ID.
// @Summary Update a table by ID
// @Description Update number, type or hourly rate of an existing table.
// @Tags Table
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body dto.UpdateTableRequest true "Fields to update"
// @Success 200 {object} response.Envelope[any] "Table updated successfully"
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/tables/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTableRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update table")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Table updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Table updated successfully")
}

// UpdateTableStatus changes the status of a table.
// @Summary Change table status
// @Description Apply a status change. Setting occupied starts a session, setting available on an occupied table stops it, the rest are administrative overrides.
// @Tags Table
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body dto.UpdateTableStatusRequest true "Target status"
// @Success 200 {object} response.Envelope[any] "Table status updated"
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any]
// @Failure 409 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/tables/{id}/status [put]
// @Security BearerAuth
func (handler *Handler) UpdateTableStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTableStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTableStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	current, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get table")

		response.WithError(w, err)

		return
	}

	// Occupied is owned by the session lifecycle, so those two transitions
	// route through the session service instead of a bare column update.
	switch {
	case req.Status == constant.TableStatusOccupied:
		session, err := handler.sessions.Start(ctx, id, sessionDto.StartSessionRequest{UserID: req.UserID})
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to start session via status change")

			response.WithError(w, err)

			return
		}

		response.WithJSON(w, http.StatusOK, session)

		return
	case current.Status == constant.TableStatusOccupied && req.Status == constant.TableStatusAvailable:
		session, err := handler.sessions.Stop(ctx, id)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to stop session via status change")

			response.WithError(w, err)

			return
		}

		response.WithJSON(w, http.StatusOK, session)

		return
	}

	if err := handler.service.UpdateStatus(ctx, id, req.Status); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update table status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Table status updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Table status updated successfully")
}

// DeleteTable deactivates a table by its ID.
// @Summary Delete a table by ID
// @Description Soft-delete a table. Refused while a session is running on it.
// @Tags Table
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} response.Envelope[any] "Table deleted successfully"
// @Failure 404 {object} response.Envelope[any]
// @Failure 409 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/tables/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete table")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Table deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Table deleted successfully")
}
