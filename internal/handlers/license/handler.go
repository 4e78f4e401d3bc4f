package license

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"baize/infras/otel"
	"baize/internal/domains/license/model"
	"baize/internal/domains/license/model/dto"
	"baize/internal/domains/license/service"
	"baize/shared/constant"
	gDto "baize/shared/dto"
	"baize/shared/validator"
	"baize/transport/http/response"
)

type Handler struct {
	service service.License
	otel    otel.Otel
}

func New(service service.License, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/licenses", func(routerGroup chi.Router) {
		routerGroup.Post("/register", handler.RegisterLicense)
		routerGroup.Get("/", handler.GetLicenses)
		routerGroup.Get("/{id}", handler.GetLicenseByID)
		routerGroup.Patch("/{id}/process", handler.ProcessLicense)
	})
}

// RegisterLicense takes a registration lead from a prospective operator.
// @Summary Register a license lead
// @Description Submit a license registration. The lead starts out pending with no access until an operator processes it. No authentication required.
// @Tags License
// @Accept json
// @Produce json
// @Param request body dto.RegisterLicenseRequest true "Registration payload"
// @Success 201 {object} response.Envelope[dto.LicenseResponse] "Lead registered"
// @Failure 400 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/licenses/register [post]
func (handler *Handler) RegisterLicense(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RegisterLicense")
	defer scope.End()

	req := dto.RegisterLicenseRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	license, err := handler.service.Register(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register license")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("License lead registered successfully")

	response.WithJSON(writer, http.StatusCreated, license)
}

// GetLicenses retrieves license registrations based on query parameters.
// @Summary Get all license registrations
// @Description Retrieve license registrations with optional filtering and pagination.
// @Tags License
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param email query string false "Filter by registrant email"
// @Success 200 {object} response.Envelope[dto.GetLicensesResponse] "List of license registrations"
// @Failure 400 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/licenses [get]
// @Security BearerAuth
func (handler *Handler) GetLicenses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLicenses")
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

	if email := r.URL.Query().Get(model.FieldEmail); email != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorEq,
			Value:    email,
			Table:    model.TableName,
		})
	}

	licenses, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get licenses")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Licenses retrieved successfully")

	response.WithJSON(w, http.StatusOK, licenses)
}

// GetLicenseByID retrieves a license registration.
// @Summary Get a license registration by ID
// @Description Retrieve a license registration by its unique identifier.
// @Tags License
// @Accept json
// @Produce json
// @Param id path string true "License registration ID"
// @Success 200 {object} response.Envelope[dto.LicenseResponse] "License registration"
// @Failure 404 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/licenses/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetLicenseByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLicenseByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	license, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get license")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("License retrieved successfully")

	response.WithJSON(w, http.StatusOK, license)
}

// ProcessLicense approves or rejects a pending registration.
// @Summary Process a license registration
// @Description Approve or reject a pending license registration. A registration can only be processed once.
// @Tags License
// @Accept json
// @Produce json
// @Param id path string true "License registration ID"
// @Param request body dto.ProcessLicenseRequest true "Decision payload"
// @Success 200 {object} response.Envelope[dto.LicenseResponse] "License registration processed"
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any]
// @Failure 409 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/licenses/{id}/process [patch]
// @Security BearerAuth
func (handler *Handler) ProcessLicense(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ProcessLicense")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ProcessLicenseRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	license, err := handler.service.Process(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to process license")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("License processed successfully by user " + user)

	response.WithJSON(w, http.StatusOK, license)
}
