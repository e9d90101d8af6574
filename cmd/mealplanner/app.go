package main

import (
	"context"
	"fmt"
	"io"

	"github.com/easeaico/adk-meal-planner/internal/config"
	"github.com/easeaico/adk-meal-planner/internal/inventory"
	"github.com/easeaico/adk-meal-planner/internal/memory"
	"github.com/easeaico/adk-meal-planner/internal/notify"
	"github.com/easeaico/adk-meal-planner/internal/pipeline"
	"github.com/easeaico/adk-meal-planner/internal/tools"
	"go.uber.org/zap"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

// initializePipeline creates and wires all components of a planner run.
func initializePipeline(ctx context.Context, cfg config.Config, out io.Writer) (*pipeline.Pipeline, func(), error) {
	inv, err := newInventory(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	prefs := memory.NewPreferences(store,
		memory.WithRetention(cfg.InventoryDays),
		memory.WithLogger(logger.Named("memory")),
	)

	var notifier notify.Notifier
	if dryRun {
		notifier = notify.NewConsole(out)
	} else {
		notifier = notify.NewDiscord(cfg.WebhookURL, nil, logger.Named("notify"))
	}

	agentTools, err := tools.BuildTools(tools.NewHandler(inv, prefs, notifier, logger.Named("tools")))
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to build tools: %w", err)
	}

	// Create LLM model using ADK's gemini wrapper
	llmModel, err := gemini.NewModel(ctx, cfg.Model, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to create LLM model: %w", err)
	}

	p, err := pipeline.New(pipeline.Config{
		Model:    llmModel,
		Tools:    agentTools,
		Days:     cfg.InventoryDays,
		Category: cfg.InventoryCategory,
		Logger:   logger.Named("pipeline"),
	})
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}

	logger.Info("meal planner initialized",
		zap.String("model", cfg.Model),
		zap.String("store", cfg.StoreType),
		zap.Bool("dry_run", dryRun),
	)
	return p, cleanup, nil
}

// newInventory picks the local workbook when configured, Google Sheets otherwise.
func newInventory(ctx context.Context, cfg config.Config) (*inventory.Inventory, error) {
	var src inventory.Source
	if cfg.WorkbookPath != "" {
		src = inventory.NewWorkbookSource(cfg.WorkbookPath, cfg.WorkbookSheet)
	} else {
		logger.Info("connecting to Google Sheet", zap.String("sheet_id", cfg.SheetID), zap.String("range", cfg.SheetRange))
		sheets, err := inventory.NewSheetsSource(ctx, cfg.ServiceAccountFile, cfg.SheetID, cfg.SheetRange)
		if err != nil {
			return nil, err
		}
		src = sheets
	}

	filter := inventory.Filter{Days: cfg.InventoryDays, Category: cfg.InventoryCategory}
	return inventory.New(src, filter, logger.Named("inventory")), nil
}

// openStore opens the preference backend selected by STORE_TYPE.
func openStore(ctx context.Context, cfg config.Config) (memory.Store, error) {
	switch cfg.StoreType {
	case config.StoreSQLite:
		store, err := memory.NewSQLiteStore(ctx, cfg.MemoryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite store: %w", err)
		}
		if err := store.InitSchema(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	case config.StorePostgres:
		store, err := memory.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := store.InitSchema(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	default:
		return memory.NewFileStore(cfg.MemoryPath), nil
	}
}
