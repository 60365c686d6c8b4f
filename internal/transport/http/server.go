package http

import (
	"github.com/gin-gonic/gin"

	appsvc "showcase/internal/app"
	"showcase/internal/bootstrap"
	"showcase/internal/config"
	"showcase/internal/model"
	"showcase/internal/repository"
	cataloguerepo "showcase/internal/repository/catalogue"
	galleryrepo "showcase/internal/repository/gallery"
	"showcase/internal/transport/http/handler"
	"showcase/internal/transport/http/middleware"
	"showcase/web"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(app.Logger), gin.Recovery())
	router.SetHTMLTemplate(web.Templates())

	authService := appsvc.NewAuthService(app.Accounts(), app.Sessions, app.Activity)
	adminService := appsvc.NewAdminService(
		repository.NewSchemaInspector(app.DB),
		repository.NewActivityRepository(app.DB),
	)
	view := handler.View{
		AppName: app.Config.App.Name,
		Variant: app.Config.App.Variant,
		Logger:  app.Logger,
	}
	cookie := middleware.SessionCookie{
		Name:   app.Config.Auth.CookieName,
		Secure: app.Config.Auth.CookieSecure,
		MaxAge: int(app.Sessions.TTL().Seconds()),
	}

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	router.Use(middleware.LoadSession(authService, cookie, app.Logger))

	authHandler := handler.NewAuthHandler(authService, cookie, view)
	router.GET("/login", authHandler.LoginPage)
	router.POST("/login", authHandler.Login)
	router.GET("/register", authHandler.RegisterPage)
	router.POST("/register", authHandler.Register)
	router.GET("/logout", middleware.RequireLogin(), authHandler.Logout)

	if app.Config.App.Variant == config.VariantCatalogue {
		registerCatalogueRoutes(router, app, adminService, view)
	} else {
		registerGalleryRoutes(router, app, adminService, view)
	}
	return router
}

func registerGalleryRoutes(router *gin.Engine, app *bootstrap.App, adminService *appsvc.AdminService, view handler.View) {
	galleryService := appsvc.NewGalleryService(
		galleryrepo.NewImageRepository(app.DB),
		galleryrepo.NewUserRepository(app.DB),
		app.Activity,
	)
	galleryHandler := handler.NewGalleryHandler(galleryService, adminService, view)

	router.GET("/", galleryHandler.Explore)
	router.GET("/api/images_html", galleryHandler.ImagesHTML)
	router.GET("/load_images", galleryHandler.LoadImages)

	member := router.Group("/")
	member.Use(middleware.RequireLogin())
	member.GET("/profile", galleryHandler.Profile)
	member.POST("/profile/items/:id", galleryHandler.SaveToProfile)
	member.GET("/admin", galleryHandler.AdminPage)
	member.POST("/admin", galleryHandler.CreateImage)
	member.GET("/schema", galleryHandler.Schema)
}

func registerCatalogueRoutes(router *gin.Engine, app *bootstrap.App, adminService *appsvc.AdminService, view handler.View) {
	catalogueService := appsvc.NewCatalogueService(
		cataloguerepo.NewGameRepository(app.DB),
		cataloguerepo.NewUserRepository(app.DB),
		cataloguerepo.NewProfileRepository(app.DB),
		cataloguerepo.NewLookupRepository(app.DB),
		app.Activity,
	)
	catalogueHandler := handler.NewCatalogueHandler(catalogueService, adminService, view)

	router.GET("/", catalogueHandler.Explore)
	router.GET("/api/carousel-images", catalogueHandler.Carousel)

	member := router.Group("/")
	member.Use(middleware.RequireLogin())
	member.GET("/profile", catalogueHandler.Profile)
	member.POST("/profile/items/:id", catalogueHandler.AddToProfile)

	admin := router.Group("/admin")
	admin.Use(middleware.RequireRole(model.RoleAdmin, view.Forbidden))
	admin.GET("", catalogueHandler.AdminPage)
	admin.POST("", catalogueHandler.CreateGame)
}
