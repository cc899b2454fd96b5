package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"presentation-service/internal/auth"
	"presentation-service/internal/config"
	"presentation-service/internal/db"
	"presentation-service/internal/handlers"
	"presentation-service/internal/mailer"
	"presentation-service/internal/middleware"
	"presentation-service/internal/observability"
	"presentation-service/internal/rabbitmq"
	"presentation-service/internal/repositories"
	"presentation-service/internal/telemetry"
	"presentation-service/internal/ws"
)

const serviceName = "presentation-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	database, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	shutdownTracing, err := observability.SetupTracing(context.Background(), serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("tracing shutdown failed: %v", err)
		}
	}()

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer publisher.Close()

	audit := telemetry.NewAuditEmitter(publisher, "audit_logs.presentations", serviceName, cfg.Environment)
	mail := mailer.NewMailer(cfg.SMTPAddr, cfg.SMTPFrom)

	userRepo := repositories.NewUserRepo(database)
	roomRepo := repositories.NewRoomRepo(database)
	docRepo := repositories.NewDocumentRepo(database)
	recRepo := repositories.NewRecordingRepo(database)
	presRepo := repositories.NewPresentationRepo(database)
	questionRepo := repositories.NewQuestionRepo(database)

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	hub := ws.NewHub()
	relay := ws.NewRelay(hub, presRepo, questionRepo)
	relayWS := ws.NewRelayWebSocketHandler(hub, relay, publisher)

	authHandler := handlers.NewAuthHandler(userRepo, issuer, audit)
	userHandler := handlers.NewUserHandler(userRepo, mail, audit, cfg.ClientDomain)
	roomHandler := handlers.NewRoomHandler(roomRepo, userRepo, audit)
	docHandler := handlers.NewDocumentHandler(docRepo, audit)
	recHandler := handlers.NewRecordingHandler(recRepo, roomRepo, audit)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.HTTPMetricsMiddleware())

	authMiddleware := middleware.AuthMiddleware(issuer)
	adminOnly := middleware.RequireAdmin()

	api := router.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/activate", authHandler.Activate)

	user := api.Group("/user", authMiddleware)
	user.GET("/current", userHandler.Current)
	user.PUT("/update", userHandler.Update)
	user.POST("/list", userHandler.ListByIDs)
	user.POST("/send-verification", userHandler.SendVerification)

	admin := api.Group("/admin", authMiddleware, adminOnly)
	admin.GET("/users", userHandler.AdminList)
	admin.PUT("/users/:user_id", userHandler.AdminUpdate)
	admin.DELETE("/users/:user_id", userHandler.AdminDelete)
	admin.POST("/users/:user_id/reset-password", userHandler.AdminResetPassword)

	room := api.Group("/room", authMiddleware)
	room.POST("/create", roomHandler.Create)
	room.PUT("/update", roomHandler.Update)
	room.POST("/add-user", roomHandler.AddUser)
	room.POST("/role", roomHandler.ChangeRole)
	room.POST("/remove-user", roomHandler.RemoveUser)
	room.GET("/detail/:room_id", roomHandler.Detail)
	room.POST("/list", roomHandler.List)
	room.DELETE("/:room_id", roomHandler.Delete)

	document := api.Group("/document", authMiddleware)
	document.POST("/create", docHandler.Create)
	document.POST("/list", docHandler.List)
	document.PUT("/:pres_id", docHandler.Update)
	document.DELETE("/:pres_id", docHandler.Delete)

	record := api.Group("/record", authMiddleware)
	record.POST("/create", recHandler.Create)
	record.POST("/list", recHandler.List)
	record.PUT("/update", recHandler.Update)
	record.DELETE("/:room_id/:record_id", recHandler.Delete)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws/presentation", relayWS.Handle)

	handlers.RegisterDebugRoutes(router, audit, cfg.DebugRoutes)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
