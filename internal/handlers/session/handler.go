package session

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"baize/infras/otel"
	"baize/internal/domains/session/model"
	"baize/internal/domains/session/model/dto"
	"baize/internal/domains/session/service"
	"baize/shared/constant"
	gDto "baize/shared/dto"
	"baize/shared/validator"
	"baize/transport/http/response"
)

type Handler struct {
	service service.Session
	otel    otel.Otel
}

func New(service service.Session, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/tables/{id}/start", handler.StartSession)
	router.Post("/tables/{id}/end", handler.StopSession)
	router.Get("/tables/{id}/session", handler.GetActiveSession)

	router.Route("/sessions", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSessions)
		routerGroup.Get("/{id}", handler.GetSessionByID)
	})
}

// StartSession opens a session on a table.
// @Summary Start a session
// @Description Start billing on a table. The table must be available or reserved.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body dto.StartSessionRequest false "Operator override"
// @Success 201 {object} response.Envelope[dto.SessionResponse] "Session started"
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any]
// @Failure 409 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/tables/{id}/start [post]
// @Security BearerAuth
func (handler *Handler) StartSession(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartSession")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.StartSessionRequest{}

	// The body is optional, the operator defaults to the caller.
	if request.ContentLength > 0 {
		if err := validator.Validate(request.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(writer, err)

			return
		}
	}

	session, err := handler.service.Start(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start session")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Session started successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, session)
}

// StopSession closes the running session on a table and bills it.
// @Summary Stop a session
// @Description Close the running session on a table and compute the total.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} response.Envelope[dto.SessionResponse] "Session closed with total"
// @Failure 404 {object} response.Envelope[any]
// @Failure 409 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/tables/{id}/end [post]
// @Security BearerAuth
func (handler *Handler) StopSession(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StopSession")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	session, err := handler.service.Stop(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to stop session")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Session stopped successfully by user " + user)

	response.WithJSON(writer, http.StatusOK, session)
}

// GetActiveSession returns the running session on a table with accrued cost.
// @Summary Get the active session on a table
// @Description Retrieve the running session and the cost accrued so far.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} response.Envelope[dto.SessionResponse] "Active session"
// @Failure 404 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/tables/{id}/session [get]
func (handler *Handler) GetActiveSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveSession")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	session, err := handler.service.Active(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Active session retrieved successfully")

	response.WithJSON(w, http.StatusOK, session)
}

// GetSessions retrieves session history based on query parameters.
// @Summary Get all sessions
// @Description Retrieve session history with optional filtering and pagination.
// @Tags Session
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param table_id query string false "Filter by table ID"
// @Param user_id query string false "Filter by operator ID"
// @Param status query string false "Filter by status (active, closed)"
// @Param from query string false "Filter by start date (YYYY-MM-DD)"
// @Param to query string false "Filter by end date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope[dto.GetSessionsResponse] "List of sessions"
// @Failure 400 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/sessions [get]
func (handler *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSessions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if tableID := r.URL.Query().Get(model.FieldTableID); tableID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTableID,
			Operator: gDto.FilterOperatorEq,
			Value:    tableID,
			Table:    model.TableName,
		})
	}

	if userID := r.URL.Query().Get(model.FieldUserID); userID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    userID,
			Table:    model.TableName,
		})
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if from := r.URL.Query().Get("from"); from != constant.Empty {
		if fromDate, err := time.Parse(constant.DateOnlyFormat, from); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				ArgName:  "start_time_from",
				Field:    model.FieldStartTime,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    fromDate,
				Table:    model.TableName,
			})
		}
	}

	if to := r.URL.Query().Get("to"); to != constant.Empty {
		if toDate, err := time.Parse(constant.DateOnlyFormat, to); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				ArgName:  "start_time_to",
				Field:    model.FieldStartTime,
				Operator: gDto.FilterOperatorLessEq,
				Value:    toDate.AddDate(0, 0, 1),
				Table:    model.TableName,
			})
		}
	}

	sessions, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sessions")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Sessions retrieved successfully")

	response.WithJSON(w, http.StatusOK, sessions)
}

// GetSessionByID retrieves a session by its ID.
// @Summary Get a session by ID
// @Description Retrieve a session by its unique identifier.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope[dto.SessionResponse] "Session details"
// @Failure 404 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/sessions/{id} [get]
func (handler *Handler) GetSessionByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSessionByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	session, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get session by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Session retrieved successfully")

	response.WithJSON(w, http.StatusOK, session)
}
