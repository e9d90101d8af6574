package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/easeaico/adk-meal-planner/internal/memory"
	"github.com/easeaico/adk-meal-planner/internal/notify"
	"go.uber.org/zap"
)

// InventoryReader reports the recent grocery inventory as text.
type InventoryReader interface {
	Recent(ctx context.Context) (string, error)
}

// PreferenceService is the subset of memory.Preferences the tools use.
type PreferenceService interface {
	Load(ctx context.Context) (*memory.Record, error)
	RecordChoice(ctx context.Context, name string, date time.Time) (*memory.Record, error)
	Now() time.Time
	Retention() int
}

// Handler provides implementations for all agent tools.
type Handler struct {
	inventory InventoryReader
	prefs     PreferenceService
	notifier  notify.Notifier
	logger    *zap.Logger
}

// NewHandler creates a new tool handler with the given dependencies.
func NewHandler(inv InventoryReader, prefs PreferenceService, notifier notify.Notifier, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		inventory: inv,
		prefs:     prefs,
		notifier:  notifier,
		logger:    logger,
	}
}

// FetchGroceries returns the recent inventory lines.
func (h *Handler) FetchGroceries(ctx context.Context) GroceryResult {
	h.logger.Debug("executing tool", zap.String("tool", FetchGroceriesTool))

	text, err := h.inventory.Recent(ctx)
	if err != nil {
		return GroceryResult{Success: false, Error: err.Error()}
	}
	return GroceryResult{Success: true, Inventory: text}
}

// ReadMemoryBank returns the preference record with the names chosen recently.
func (h *Handler) ReadMemoryBank(ctx context.Context) MemoryBankResult {
	h.logger.Debug("executing tool", zap.String("tool", ReadMemoryBankTool))

	r, err := h.prefs.Load(ctx)
	if err != nil {
		return MemoryBankResult{Success: false, Error: err.Error()}
	}

	// Show only the window the planner must respect, without writing.
	view := *r
	view.History = append([]memory.Choice(nil), r.History...)
	view.Prune(h.prefs.Now(), h.prefs.Retention())

	return MemoryBankResult{
		Success:        true,
		Favorites:      view.Favorites,
		Dislikes:       view.Dislikes,
		RecentChoices:  view.History,
		ForbiddenMeals: view.RecentNames(),
	}
}

// RecordChoice stores the chosen meal under today's date.
func (h *Handler) RecordChoice(ctx context.Context, args RecordChoiceArgs) RecordChoiceResult {
	h.logger.Debug("executing tool", zap.String("tool", RecordChoiceTool), zap.String("meal", args.MealName))

	if args.MealName == "" {
		return RecordChoiceResult{Success: false, Error: "meal_name is required"}
	}
	r, err := h.prefs.RecordChoice(ctx, args.MealName, h.prefs.Now())
	if err != nil {
		return RecordChoiceResult{Success: false, Error: err.Error()}
	}
	return RecordChoiceResult{
		Success: true,
		Data:    fmt.Sprintf("Recorded %q. %d meals in the last %d days.", args.MealName, len(r.History), h.prefs.Retention()),
	}
}

// SendNotification delivers the final message.
func (h *Handler) SendNotification(ctx context.Context, args NotificationArgs) NotificationResult {
	h.logger.Debug("executing tool", zap.String("tool", SendNotificationTool))

	if args.Message == "" {
		return NotificationResult{Success: false, Error: "message is required"}
	}
	status, err := h.notifier.Send(ctx, args.Message)
	if err != nil {
		return NotificationResult{Success: false, Error: err.Error()}
	}
	if status == 0 {
		return NotificationResult{Success: true, Data: "Notification printed (dry run)."}
	}
	return NotificationResult{
		Success:    status >= 200 && status < 300,
		StatusCode: status,
		Data:       fmt.Sprintf("Notification sent. Status: %d", status),
	}
}
