package sale

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"baize/infras/otel"
	"baize/internal/domains/sale/model"
	"baize/internal/domains/sale/model/dto"
	"baize/internal/domains/sale/service"
	"baize/shared/constant"
	gDto "baize/shared/dto"
	"baize/shared/validator"
	"baize/transport/http/response"
)

type Handler struct {
	service service.Sale
	otel    otel.Otel
}

func New(service service.Sale, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/sales", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSale)
		routerGroup.Get("/", handler.GetSales)
		routerGroup.Get("/{id}", handler.GetSaleByID)
	})
}

// CreateSale records a point-of-sale transaction.
// @Summary Record a sale
// @Description Record a sale with its line items. Prices are resolved server-side and stock is decremented atomically.
// @Tags Sale
// @Accept json
// @Produce json
// @Param request body dto.CreateSaleRequest true "Sale payload"
// @Success 201 {object} response.Envelope[dto.SaleResponse] "Sale recorded"
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any]
// @Failure 409 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/sales [post]
// @Security BearerAuth
func (handler *Handler) CreateSale(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSale")
	defer scope.End()

	req := dto.CreateSaleRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	sale, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create sale")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Sale recorded successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, sale)
}

// GetSales retrieves sales based on query parameters.
// @Summary Get all sales
// @Description Retrieve sales with optional filtering and pagination.
// @Tags Sale
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param user_id query string false "Filter by operator ID"
// @Param payment_method query string false "Filter by payment method (cash, card, transfer)"
// @Param from query string false "Filter by sale date (YYYY-MM-DD)"
// @Param to query string false "Filter by sale date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope[dto.GetSalesResponse] "List of sales"
// @Failure 400 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/sales [get]
// @Security BearerAuth
func (handler *Handler) GetSales(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSales")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if userID := r.URL.Query().Get(model.FieldUserID); userID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    userID,
			Table:    model.TableName,
		})
	}

	if paymentMethod := r.URL.Query().Get(model.FieldPaymentMethod); paymentMethod != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPaymentMethod,
			Operator: gDto.FilterOperatorEq,
			Value:    paymentMethod,
			Table:    model.TableName,
		})
	}

	if from := r.URL.Query().Get("from"); from != constant.Empty {
		if fromDate, err := time.Parse(constant.DateOnlyFormat, from); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				ArgName:  "created_at_from",
				Field:    model.FieldCreatedAt,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    fromDate,
				Table:    model.TableName,
			})
		}
	}

	if to := r.URL.Query().Get("to"); to != constant.Empty {
		if toDate, err := time.Parse(constant.DateOnlyFormat, to); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				ArgName:  "created_at_to",
				Field:    model.FieldCreatedAt,
				Operator: gDto.FilterOperatorLessEq,
				Value:    toDate.AddDate(0, 0, 1),
				Table:    model.TableName,
			})
		}
	}

	sales, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sales")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Sales retrieved successfully")

	response.WithJSON(w, http.StatusOK, sales)
}

// GetSaleByID retrieves a sale with its line items.
// @Summary Get a sale by ID
// @Description Retrieve a sale and its line items by its unique identifier.
// @Tags Sale
// @Accept json
// @Produce json
// @Param id path string true "Sale ID"
// @Success 200 {object} response.Envelope[dto.SaleResponse] "Sale with items"
// @Failure 404 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/sales/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetSaleByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSaleByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	sale, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sale")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Sale retrieved successfully")

	response.WithJSON(w, http.StatusOK, sale)
}
