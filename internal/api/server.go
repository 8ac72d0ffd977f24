package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/poketrade/marketplace-api/docs"
	v1 "github.com/poketrade/marketplace-api/internal/api/handler/v1"
	"github.com/poketrade/marketplace-api/internal/api/middleware"
	"github.com/poketrade/marketplace-api/internal/config"
	"github.com/poketrade/marketplace-api/internal/pkg/chatbot"
	"github.com/poketrade/marketplace-api/internal/pkg/pokeapi"
	"github.com/poketrade/marketplace-api/internal/repository"
	"github.com/poketrade/marketplace-api/internal/repository/dao"
	"github.com/poketrade/marketplace-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userSvc := s.initUserService(db)
	authHandler := s.initAuthHandler(db)
	userHandler := v1.NewUserHandler(userSvc)
	marketplaceHandler := s.initMarketplaceHandler(db)
	tradeHandler := s.initTradeHandler(db)
	notificationHandler := s.initNotificationHandler(db)
	adminHandler := s.initAdminHandler(db)
	chatHandler := s.initChatHandler()
	s.MountHandlers(userSvc, authHandler, userHandler, marketplaceHandler,
		tradeHandler, notificationHandler, adminHandler, chatHandler)

	return s
}

func (s *Server) initUserService(db *gorm.DB) *service.UserService {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	pokemonRepo := repository.NewPokemonRepository(dao.NewPokemonDAO(db), dao.NewListingDAO(db))

	return service.NewUserService(userRepo, pokemonRepo)
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	pokemonRepo := repository.NewPokemonRepository(dao.NewPokemonDAO(db), dao.NewListingDAO(db))
	species := pokeapi.NewClient(s.Config.PokeAPI.BaseURL)
	svc := service.NewAuthService(userRepo, pokemonRepo, species)

	return v1.NewAuthHandler(s.Config.API, svc)
}

func (s *Server) initMarketplaceHandler(db *gorm.DB) *v1.MarketplaceHandler {
	marketplaceRepo := repository.NewMarketplaceRepository(dao.NewListingDAO(db))
	tradeRepo := repository.NewTradeRepository(dao.NewTradeDAO(db))
	svc := service.NewMarketplaceService(marketplaceRepo, tradeRepo)
	pokemonRepo := repository.NewPokemonRepository(dao.NewPokemonDAO(db), dao.NewListingDAO(db))
	tradeSvc := service.NewTradeService(tradeRepo, pokemonRepo)

	return v1.NewMarketplaceHandler(svc, tradeSvc)
}

func (s *Server) initTradeHandler(db *gorm.DB) *v1.TradeHandler {
	tradeRepo := repository.NewTradeRepository(dao.NewTradeDAO(db))
	pokemonRepo := repository.NewPokemonRepository(dao.NewPokemonDAO(db), dao.NewListingDAO(db))
	svc := service.NewTradeService(tradeRepo, pokemonRepo)
	moderationSvc := s.initModerationService(db)

	return v1.NewTradeHandler(svc, moderationSvc)
}

func (s *Server) initNotificationHandler(db *gorm.DB) *v1.NotificationHandler {
	repo := repository.NewNotificationRepository(dao.NewNotificationDAO(db))
	svc := service.NewNotificationService(repo)

	return v1.NewNotificationHandler(svc)
}

func (s *Server) initModerationService(db *gorm.DB) *service.ModerationService {
	marketplaceRepo := repository.NewMarketplaceRepository(dao.NewListingDAO(db))
	reportRepo := repository.NewReportRepository(dao.NewReportDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	tradeRepo := repository.NewTradeRepository(dao.NewTradeDAO(db))

	return service.NewModerationService(marketplaceRepo, reportRepo, userRepo, tradeRepo)
}

func (s *Server) initAdminHandler(db *gorm.DB) *v1.AdminHandler {
	return v1.NewAdminHandler(s.initModerationService(db))
}

func (s *Server) initChatHandler() *v1.ChatHandler {
	provider := chatbot.NewClient(s.Config.OpenAI.APIKey, s.Config.OpenAI.Model)
	svc := service.NewChatService(provider)
	handler := v1.NewChatHandler(svc)
	go handler.Run()

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	userSvc *service.UserService,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	marketplaceHandler *v1.MarketplaceHandler,
	tradeHandler *v1.TradeHandler,
	notificationHandler *v1.NotificationHandler,
	adminHandler *v1.AdminHandler,
	chatHandler *v1.ChatHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/users/:userID", userHandler.HandleGetUser)
		authenticated.GET("/users/username/:username", userHandler.HandleGetProfile)

		authenticated.GET("/pokemon", userHandler.HandleGetMyPokemon)
		authenticated.GET("/pokemon/:pokemonID", userHandler.HandleGetPokemon)
		authenticated.POST("/pokemon/:pokemonID/listings/money", marketplaceHandler.HandleCreateMoneyListing)
		authenticated.POST("/pokemon/:pokemonID/listings/barter", marketplaceHandler.HandleCreateBarterListing)
		authenticated.DELETE("/pokemon/:pokemonID/listings", marketplaceHandler.HandleCancelListing)
		authenticated.POST("/pokemon/:pokemonID/buy", marketplaceHandler.HandleBuyPokemon)

		authenticated.GET("/marketplace", marketplaceHandler.HandleBrowse)
		authenticated.GET("/marketplace/featured", marketplaceHandler.HandleFeatured)
		authenticated.GET("/marketplace/history", marketplaceHandler.HandleGetHistory)

		authenticated.POST("/trades", tradeHandler.HandleCreateTrade)
		authenticated.GET("/trades/incoming", tradeHandler.HandleGetIncoming)
		authenticated.GET("/trades/incoming/:pokemonID", tradeHandler.HandleGetIncomingForPokemon)
		authenticated.GET("/trades/:tradeID", tradeHandler.HandleGetTrade)
		authenticated.POST("/trades/:tradeID/respond", tradeHandler.HandleRespondTrade)
		authenticated.POST("/trades/:tradeID/report", tradeHandler.HandleReportListing)

		authenticated.GET("/notifications", notificationHandler.HandleGetNotifications)
		authenticated.POST("/notifications/read", notificationHandler.HandleMarkAllRead)

		authenticated.POST("/chat", chatHandler.HandleChat)
		authenticated.GET("/chat/ws", chatHandler.HandleWebSocket)
	}

	admin := s.Router.Group(basePath+"/admin",
		middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT(),
		middleware.RequireStaff(userSvc))
	{
		admin.GET("/dashboard", adminHandler.HandleDashboard)
		admin.GET("/reports", adminHandler.HandleGetReports)
		admin.PUT("/reports/:reportID", adminHandler.HandleResolveReport)
		admin.POST("/trades/:tradeType/:tradeID", adminHandler.HandleModerateListing)
		admin.GET("/activity", adminHandler.HandleGetActivity)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Pokémon Marketplace API"
	docs.SwaggerInfo.Description = "REST API for trading Pokémon with money or barter."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
