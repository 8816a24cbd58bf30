package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/xpanvictor/quickpost/internal/config"
	"github.com/xpanvictor/quickpost/internal/domains/conversation"
	"github.com/xpanvictor/quickpost/internal/domains/jobposting"
	"github.com/xpanvictor/quickpost/internal/domains/user"
	"github.com/xpanvictor/quickpost/internal/domains/voice"
	"github.com/xpanvictor/quickpost/internal/gazetteer"
	"github.com/xpanvictor/quickpost/internal/matching"
	convoRepo "github.com/xpanvictor/quickpost/internal/repository/conversation"
	extractionRepo "github.com/xpanvictor/quickpost/internal/repository/extraction"
	jobPostingRepo "github.com/xpanvictor/quickpost/internal/repository/jobposting"
	userRepo "github.com/xpanvictor/quickpost/internal/repository/user"
	"github.com/xpanvictor/quickpost/internal/server"
	"github.com/xpanvictor/quickpost/pkg/Logger"
	"github.com/xpanvictor/quickpost/pkg/io/stt/whisper"
	"github.com/xpanvictor/quickpost/pkg/io/tts/piper"
	"gorm.io/gorm"
)

// App represents the application with all its dependencies
type App struct {
	Config    *config.Settings
	Logger    *Logger.Logger
	DB        *gorm.DB
	RC        *redis.Client
	Gazetteer *gazetteer.Gazetteer
	// repos
	UserRepo       user.UserRepository
	JobPostingRepo jobposting.JobPostingRepository
	SessionRepo    conversation.SessionRepository
	ServerDeps     server.Dependencies
}

// NewApp creates a new application instance with all dependencies properly wired
func NewApp(ctx context.Context, cfg *config.Settings, logger *Logger.Logger, db *gorm.DB, rc *redis.Client) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		RC:     rc,
	}

	if err := app.setupDependencies(ctx); err != nil {
		return nil, err
	}

	return app, nil
}

// setupDependencies initializes all application dependencies
func (a *App) setupDependencies(ctx context.Context) error {
	// 1. Reference data
	if err := a.setupGazetteer(); err != nil {
		return err
	}
	ids := serviceIDs(a.Gazetteer)

	// 2. Repositories
	a.UserRepo = userRepo.NewGormUserRepo(a.DB)
	a.JobPostingRepo = jobPostingRepo.NewGormJobPostingRepo(a.DB)
	var cache voice.Cache
	if a.RC != nil {
		cache = extractionRepo.NewRedisCache(a.RC)
		a.SessionRepo = convoRepo.NewRedisSessionRepo(a.RC, a.Config.Conversation.SessionTTL)
	} else {
		a.Logger.Warn("redis not configured: extraction cache and conversation resume are disabled")
	}

	// 3. Voice pipeline
	extractor, err := NewExtractorFactory(a.Config.Extraction, a.Gazetteer, a.Logger).CreateExtractor(ctx)
	if err != nil {
		return err
	}
	transcriber := whisper.NewWhisperClient(a.Config.Voice.STTURL, a.Config.Voice.Timeout, a.Logger)
	languages := make([]voice.LanguageCode, 0, len(a.Config.Voice.Languages))
	for _, l := range a.Config.Voice.Languages {
		languages = append(languages, voice.LanguageCode(l))
	}
	voiceService := voice.NewVoiceService(transcriber, extractor, cache, voice.Options{
		Languages:     languages,
		ServiceIDs:    ids,
		CacheTTL:      a.Config.Extraction.CacheTTL,
		MaxAudioBytes: a.Config.Voice.MaxAudioKB * 1024,
	}, a.Logger)

	tts := piper.New(a.Config.Voice.TTSURL)
	tts.Voice = a.Config.Voice.TTSVoice
	tts.Voices = a.Config.Voice.TTSVoices
	tts.Timeout = a.Config.Voice.Timeout

	// JWT settings from config
	jwtSecret := a.Config.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		a.Logger.Warn("JWT secret not configured, using default (not secure for production)")
	}

	tokenTTLHours := a.Config.Auth.TokenTTLHours
	if tokenTTLHours == 0 {
		tokenTTLHours = 24 // default 24 hours
	}
	tokenTTL := time.Duration(tokenTTLHours) * time.Hour

	// 4. Services
	a.ServerDeps = server.Dependencies{
		Logger:            a.Logger,
		Gazetteer:         a.Gazetteer,
		UserService:       user.NewUserService(a.UserRepo, a.Logger, jwtSecret, tokenTTL),
		JobPostingService: jobposting.NewJobPostingService(a.JobPostingRepo, ids, a.Logger),
		VoiceService:      voiceService,
		TTS:               tts,
		SessionRepo:       a.SessionRepo,
		Conversation:      a.conversationConfig(),
		SessionTimeout:    a.Config.Conversation.IdleTimeout,
	}

	return nil
}

func (a *App) setupGazetteer() error {
	if a.Config.Gazetteer.Path == "" {
		a.Gazetteer = gazetteer.Default()
		return nil
	}
	g, err := gazetteer.LoadFile(a.Config.Gazetteer.Path)
	if err != nil {
		return fmt.Errorf("failed to load gazetteer override: %w", err)
	}
	a.Logger.Infof("loaded gazetteer from %s: %d states, %d services", a.Config.Gazetteer.Path, len(g.States), len(g.Services))
	a.Gazetteer = g
	return nil
}

func (a *App) conversationConfig() conversation.Config {
	c := a.Config.Conversation
	return conversation.Config{
		Thresholds: matching.Thresholds{
			Accept:  c.AcceptThreshold,
			Confirm: c.ConfirmThreshold,
		},
		AdvanceDelay:  c.AdvanceDelay,
		SpeechTimeout: c.SpeechTimeout,
		ListenTimeout: c.ListenTimeout,
		MaxRetries:    c.MaxRetries,
	}
}

// GetServerDependencies returns the server dependencies
func (a *App) GetServerDependencies() server.Dependencies {
	return a.ServerDeps
}

func serviceIDs(g *gazetteer.Gazetteer) []string {
	ids := make([]string, 0, len(g.Services))
	for _, s := range g.Services {
		ids = append(ids, s.ID)
	}
	return ids
}
