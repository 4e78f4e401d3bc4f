package router

import (
	"github.com/go-chi/chi/v5"

	"baize/internal/handlers/auth"
	"baize/internal/handlers/license"
	"baize/internal/handlers/product"
	"baize/internal/handlers/report"
	"baize/internal/handlers/sale"
	"baize/internal/handlers/session"
	"baize/internal/handlers/table"
	"baize/internal/handlers/user"
	"baize/transport/http/middleware"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Table   table.Handler
	Session session.Handler
	Product product.Handler
	Sale    sale.Handler
	Report  report.Handler
	User    user.Handler
	License license.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AppMiddleware.Tracing)
		routerGroup.Use(r.AppMiddleware.RateLimit())
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Table.Router(routerGroup)
		r.DomainHandlers.Session.Router(routerGroup)
		r.DomainHandlers.Product.Router(routerGroup)
		r.DomainHandlers.Sale.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.License.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
		AuthRole:       authRole,
	}
}
