package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"baize/infras/otel"
	"baize/internal/domains/product/model"
	"baize/internal/domains/product/model/dto"
	"baize/internal/domains/product/service"
	"baize/shared"
	"baize/shared/constant"
	gDto "baize/shared/dto"
	"baize/shared/validator"
	"baize/transport/http/response"
)

type Handler struct {
	service service.Product
	otel    otel.Otel
}

func New(service service.Product, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/products", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateProduct)
		routerGroup.Get("/", handler.GetProducts)
		routerGroup.Get("/low-stock", handler.GetLowStockProducts)
		routerGroup.Get("/{id}", handler.GetProductByID)
		routerGroup.Patch("/{id}", handler.UpdateProduct)
		routerGroup.Delete("/{id}", handler.DeleteProduct)
		routerGroup.Post("/{id}/stock", handler.AdjustStock)
		routerGroup.Get("/{id}/movements", handler.GetMovements)
	})
}

// CreateProduct handles the creation of a new product.
// @Summary Create a new product
// @Description Create a new product with optional image upload.
// @Tags Product
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Product name"
// @Param category formData string true "Category (food, drink, equipment, other)"
// @Param price formData number true "Unit price"
// @Param stock formData integer false "Initial stock"
// @Param min_stock formData integer false "Low stock threshold"
// @Param image formData file false "Product image"
// @Success 201 {object} response.Envelope[any] "Product created successfully"
// @Failure 400 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/products [post]
// @Security BearerAuth
func (handler *Handler) CreateProduct(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateProduct")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateProductRequest{
		Name:     request.FormValue("name"),
		Category: request.FormValue("category"),
	}

	if priceStr := request.FormValue("price"); priceStr != constant.Empty {
		if price, err := shared.ConvertStringToFloat(priceStr); err == nil {
			req.Price = price
		}
	}

	if stockStr := request.FormValue("stock"); stockStr != constant.Empty {
		if stock, err := shared.ConvertStringToInt(stockStr); err == nil {
			req.Stock = stock
		}
	}

	if minStockStr := request.FormValue("min_stock"); minStockStr != constant.Empty {
		if minStock, err := shared.ConvertStringToInt(minStockStr); err == nil {
			req.MinStock = minStock
		}
	}

	file, fileHeader, err := request.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create product")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Product created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Product created successfully")
}

// GetProducts retrieves all products based on query parameters.
// @Summary Get all products
// @Description Retrieve all products with optional filtering and pagination.
// @Tags Product
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param category query string false "Filter by category (food, drink, equipment, other)"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Envelope[dto.GetProductsResponse] "List of products"
// @Failure 400 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/products [get]
func (handler *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProducts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if name := r.URL.Query().Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if category := r.URL.Query().Get(model.FieldCategory); category != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Operator: gDto.FilterOperatorEq,
			Value:    category,
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

	products, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get products")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Products retrieved successfully")

	response.WithJSON(w, http.StatusOK, products)
}

// GetLowStockProducts lists products at or below their minimum stock.
// @Summary Get low stock products
// @Description Retrieve active products whose stock is at or below the minimum threshold.
// @Tags Product
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Envelope[dto.GetProductsResponse] "Low stock products"
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/products/low-stock [get]
// @Security BearerAuth
func (handler *Handler) GetLowStockProducts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLowStockProducts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	products, err := handler.service.LowStock(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get low stock products")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Low stock products retrieved successfully")

	response.WithJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a product by its ID.
// @Summary Get a product by ID
// @Description Retrieve a product by its unique identifier.
// @Tags Product
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Envelope[dto.ProductResponse] "Product details"
// @Failure 404 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/products/{id} [get]
func (handler *Handler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProductByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	product, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get product by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Product retrieved successfully")

	response.WithJSON(w, http.StatusOK, product)
}

// UpdateProduct updates an existing product by its ID.
// @Summary Update a product by ID
// @Description Update the details of an existing product, optionally replacing its image.
// @Tags Product
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Param name formData string false "Product name"
// @Param category formData string false "Category (food, drink, equipment, other)"
// @Param price formData number false "Unit price"
// @Param min_stock formData integer false "Low stock threshold"
// @Param active formData boolean false "Active status"
// @Param image formData file false "Product image"
// @Success 200 {object} response.Envelope[any] "Product updated successfully"
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/products/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProduct")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateProductRequest{
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
	}

	if priceStr := r.FormValue("price"); priceStr != constant.Empty {
		if price, err := shared.ConvertStringToFloat(priceStr); err == nil {
			req.Price = &price
		}
	}

	if minStockStr := r.FormValue("min_stock"); minStockStr != constant.Empty {
		if minStock, err := shared.ConvertStringToInt(minStockStr); err == nil {
			req.MinStock = &minStock
		}
	}

	if activeStr := r.FormValue("active"); activeStr != constant.Empty {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update product")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Product updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Product updated successfully")
}

// DeleteProduct deactivates a product by its ID.
// @Summary Delete a product by ID
// @Description Soft-delete a product. Sale history keeps referencing it.
// @Tags Product
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Envelope[any] "Product deleted successfully"
// @Failure 404 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/products/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProduct")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete product")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Product deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Product deleted successfully")
}

// AdjustStock applies a manual stock movement to a product.
// @Summary Adjust product stock
// @Description Apply a restock or adjustment movement. Stock can never go negative.
// @Tags Product
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body dto.AdjustStockRequest true "Movement details"
// @Success 200 {object} response.Envelope[any] "Stock adjusted successfully"
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any]
// @Failure 409 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/products/{id}/stock [post]
// @Security BearerAuth
func (handler *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdjustStock")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.AdjustStockRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AdjustStock(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to adjust stock")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Stock adjusted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Stock adjusted successfully")
}

// GetMovements lists the inventory movements of a product.
// @Summary Get product movements
// @Description Retrieve the stock movement history of a product.
// @Tags Product
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Envelope[dto.GetMovementsResponse] "Movement history"
// @Failure 404 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/products/{id}/movements [get]
// @Security BearerAuth
func (handler *Handler) GetMovements(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMovements")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	movements, err := handler.service.GetMovements(ctx, id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get movements")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Movements retrieved successfully")

	response.WithJSON(w, http.StatusOK, movements)
}
