// File: petcare/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petcare/config"
	"petcare/cron"
	"petcare/database"
	appointmentRepo "petcare/database/repository/appointment"
	conversationRepo "petcare/database/repository/conversation"
	"petcare/handlers"
	"petcare/middleware"
	"petcare/routes"
	apptdialogue "petcare/services/appointment"
	"petcare/services/chat"
	ai "petcare/services/intelligence"
	"petcare/services/slots"
	"petcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	// Redis backs slot holds, the generic cache, and the reminder queue.
	// With no address configured every consumer falls back to an in-process
	// alternative below.
	useRedis := config.AppConfig.RedisAddr != ""
	if useRedis {
		utils.InitRedis()
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	convRepo := conversationRepo.NewMongoConversationRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()

	// services.
	hours := slots.BusinessHours{
		Open:  config.AppConfig.ClinicOpenHour,
		Close: config.AppConfig.ClinicCloseHour,
	}
	holdTTL := time.Duration(config.AppConfig.SlotHoldTTLMin) * time.Minute
	var slotManager slots.Manager
	if useRedis {
		slotManager = slots.NewRedisSlotManager(
			utils.GetSlotCacheClient(),
			holdTTL,
			hours,
			config.AppConfig.SlotSuggestionCount,
		)
	} else {
		logger.Sugar().Warn("main: no Redis address configured, keeping slot holds in memory")
		memManager := slots.NewMemorySlotManager(holdTTL, hours, config.AppConfig.SlotSuggestionCount)
		cron.InitHoldSweeper(memManager, time.Minute)
		slotManager = memManager
	}

	var classifier ai.Classifier
	if config.AppConfig.GeminiAPIKey != "" {
		geminiClassifier, err := ai.NewGeminiClassifier(
			config.AppConfig.GeminiAPIKey,
			time.Duration(config.AppConfig.AITimeoutSec)*time.Second,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Gemini classifier: %v", err)
		}
		classifier = geminiClassifier
	} else {
		logger.Sugar().Warn("main: no Gemini API key configured, using local keyword classifier")
		classifier = ai.NewLocalClassifier()
	}

	var reminderScheduler apptdialogue.ReminderScheduler
	if useRedis {
		reminderScheduler = cron.NewAsynqReminderScheduler()
	} else {
		logger.Sugar().Warn("main: appointment reminders disabled without Redis")
	}
	dialogueService := &apptdialogue.DefaultDialogueService{
		Slots:        slotManager,
		Appointments: apptRepo,
		Reminders:    reminderScheduler,
	}

	chatService := &chat.DefaultChatService{
		Repo:          convRepo,
		Classifier:    classifier,
		Dialogue:      dialogueService,
		HistoryWindow: config.AppConfig.HistoryWindow,
	}

	chatHandler := handlers.NewChatHandler(chatService)
	apptHandler := handlers.NewAppointmentHandler(apptRepo)

	// Register routes.
	routes.RegisterRoutes(router, chatHandler, apptHandler)

	// Background workers and monitoring.
	var redisClients []*redis.Client
	if useRedis {
		cron.InitReminderWorker()
		redisClients = []*redis.Client{utils.GetCacheClient(), utils.GetSlotCacheClient()}
	}
	utils.StartHealthMonitor(redisClients, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
