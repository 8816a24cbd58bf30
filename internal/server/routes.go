package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/xpanvictor/quickpost/docs"
	"github.com/xpanvictor/quickpost/internal/domains/conversation"
	"github.com/xpanvictor/quickpost/internal/domains/jobposting"
	"github.com/xpanvictor/quickpost/internal/domains/user"
	"github.com/xpanvictor/quickpost/internal/domains/voice"
	"github.com/xpanvictor/quickpost/internal/gazetteer"
	"github.com/xpanvictor/quickpost/internal/handlers"
	"github.com/xpanvictor/quickpost/internal/handlers/websocket"
	"github.com/xpanvictor/quickpost/pkg/Logger"
)

type Dependencies struct {
	Logger            *Logger.Logger
	Gazetteer         *gazetteer.Gazetteer
	UserService       user.UserService
	JobPostingService jobposting.JobPostingService
	VoiceService      voice.VoiceService
	TTS               websocket.Synthesizer
	// SessionRepo may be nil; conversations then cannot be resumed.
	SessionRepo    conversation.SessionRepository
	Conversation   conversation.Config
	SessionTimeout time.Duration
}

// InitializeRoutes mounts every route on r and returns the websocket handler
// so the caller can close live conversations on shutdown.
func InitializeRoutes(r *gin.Engine, dep Dependencies) *websocket.WebSocketHandler {
	r.Use(handlers.CORSMiddleware())
	r.Use(handlers.RequestLoggerMiddleware(dep.Logger))
	r.Use(handlers.ErrorHandlerMiddleware(dep.Logger))

	r.GET("/", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"message": "Server healthy"}) })
	r.GET("/health", health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	handlers.NewUserHandler(dep.UserService, dep.Logger).RegisterUserRoutes(api)
	handlers.NewJobPostingHandler(dep.JobPostingService, dep.UserService, dep.Logger).RegisterJobPostingRoutes(api)
	handlers.NewVoiceHandler(dep.VoiceService, dep.Logger).RegisterVoiceRoutes(api)
	handlers.NewGazetteerHandler(dep.Gazetteer).RegisterGazetteerRoutes(api)

	wsHandler := websocket.NewWebSocketHandler(
		dep.Logger,
		dep.Gazetteer,
		dep.TTS,
		dep.SessionRepo,
		dep.Conversation,
		dep.SessionTimeout,
	)
	wsHandler.RegisterRoutes(r)

	return wsHandler
}

// health reports liveness
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} handlers.HealthResponse
// @Router /health [get]
func health(c *gin.Context) {
	c.JSON(http.StatusOK, handlers.HealthResponse{Status: "ok"})
}
