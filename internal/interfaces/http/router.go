package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/solarsync-api/internal/application/analytics"
	"github.com/jhoicas/solarsync-api/internal/application/auth"
	"github.com/jhoicas/solarsync-api/internal/application/identity"
	"github.com/jhoicas/solarsync-api/internal/application/leads"
	"github.com/jhoicas/solarsync-api/internal/application/subscription"
	"github.com/jhoicas/solarsync-api/internal/application/usecase"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	Resolver       *identity.Resolver
	LeadUC         *leads.LeadUseCase
	SubscriptionUC *subscription.SubscriptionUseCase
	PlanUC         *subscription.PlanUseCase
	CompanyUC      *usecase.CompanyUseCase
	ProductUC      *usecase.ProductUseCase
	ReviewUC       *usecase.ReviewUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Token válido + identidad resuelta desde la base.
	authn := AuthMiddleware(deps.JWTSecret)
	ident := IdentityMiddleware(deps.Resolver)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authn, ident, authHandler.Me)

	// Directorio (público)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies := api.Group("/companies")
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)

	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	reviewHandler := NewReviewHandler(deps.ReviewUC)
	reviews := api.Group("/reviews")
	reviews.Post("/", authn, ident, reviewHandler.Submit)
	reviews.Get("/:productId", reviewHandler.ListByProduct)

	// Leads (protegido; los casos de uso aplican rol y pertenencia)
	leadHandler := NewLeadHandler(deps.LeadUC)
	leadGroup := api.Group("/leads", authn, ident)
	leadGroup.Post("/", leadHandler.Create)
	leadGroup.Get("/mine", leadHandler.ListMine)
	leadGroup.Get("/received", leadHandler.ListReceived)
	leadGroup.Get("/:id", leadHandler.GetByID)
	leadGroup.Put("/:id/status", leadHandler.UpdateStatus)

	subHandler := NewSubscriptionHandler(deps.SubscriptionUC, deps.PlanUC)
	subs := api.Group("/subscriptions", authn, ident)
	subs.Get("/current", subHandler.Current)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := api.Group("/dashboard", authn, ident)
	dashboard.Get("/analytics", dashboardHandler.GetAnalytics)

	// Administración: solo rol admin
	admin := api.Group("/admin", authn, ident, RequireRole(entity.RoleAdmin))
	admin.Get("/plans", subHandler.ListPlans)
	admin.Post("/plans", subHandler.CreatePlan)
	admin.Put("/subscriptions", subHandler.Assign)
	admin.Get("/subscriptions/:companyId", subHandler.History)
	admin.Delete("/subscriptions/:companyId", subHandler.Cancel)
	admin.Get("/companies", subHandler.Companies)
}
