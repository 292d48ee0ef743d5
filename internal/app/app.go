package app

import (
	"context"
	"fmt"
	"log"

	"moodscribe/internal/capture"
	"moodscribe/internal/config"
	"moodscribe/internal/handler"
	"moodscribe/internal/journal"
	"moodscribe/internal/llm"
	"moodscribe/internal/mood"
	"moodscribe/internal/server"
	"moodscribe/internal/speech"
)

type App struct {
	server *server.Server
	llm    llm.Client
	store  *journal.PostgresStore // nil when running in memory
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Model client
	var cli llm.Client
	var speechCli llm.SpeechClient
	if cfg.Gemini.Offline {
		fake := llm.NewFakeClient()
		cli, speechCli = fake, fake
		log.Printf("llm: offline mode, using fake client")
	} else {
		gem, err := llm.NewGeminiClient(ctx, cfg.Gemini.Model, cfg.Gemini.SpeechModel)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
		}
		cli, speechCli = gem, gem
	}

	// Mood set
	set := mood.DefaultSet()
	if len(cfg.MoodSet) > 0 {
		set = mood.NewSet(cfg.MoodSet)
	}

	// Entry store
	var store journal.Store
	var pg *journal.PostgresStore
	if cfg.DatabaseURL != "" {
		pg, err = journal.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open entry store: %w", err)
		}
		store = pg
		log.Printf("journal store: postgres")
	} else {
		store = journal.NewMemoryStore()
		log.Printf("journal store: in-memory (no DATABASE_URL)")
	}

	// Orchestrator and gateways
	classifier := mood.NewClassifier(cli, set)
	suggester := mood.NewSuggester(cli)
	orch := journal.NewOrchestrator(classifier, suggester, store)
	orch.LoadHistory(ctx)

	if cfg.Capture.Enabled {
		cs, err := capture.NewS3Store(capture.S3Config{
			Endpoint:  cfg.Capture.Endpoint,
			Region:    cfg.Capture.Region,
			AccessKey: cfg.Capture.AccessKey,
			SecretKey: cfg.Capture.SecretKey,
			Bucket:    cfg.Capture.Bucket,
			UseSSL:    cfg.Capture.UseSSL,
		})
		if err != nil {
			log.Printf("capture store disabled: %v", err)
		} else {
			orch.AttachCaptureStore(cs)
			log.Printf("capture store: s3 bucket=%s endpoint=%s", cfg.Capture.Bucket, cfg.Capture.Endpoint)
		}
	}

	speechSvc, err := speech.New(speechCli, cfg.Gemini.SpeechVoice)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech service: %w", err)
	}

	// Routing & Server
	mux := server.NewMux(
		handler.NewJournalHandler(orch),
		handler.NewSpeechHandler(speechSvc),
		handler.NewEventsHandler(orch),
	)
	srv := server.New(cfg.Port, mux)

	return &App{server: srv, llm: cli, store: pg}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.llm.Close(); err != nil {
		log.Printf("llm close: %v", err)
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Printf("store close: %v", err)
		}
	}
	return a.server.Shutdown(ctx)
}
