// Package tools defines the ADK function tools the planner agents call to
// reach the grocery sheet, the preference record and the webhook.
package tools

import (
	"fmt"

	"github.com/easeaico/adk-meal-planner/internal/memory"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

// Tool names as seen by the model.
const (
	FetchGroceriesTool   = "fetch_recent_grocery_data"
	ReadMemoryBankTool   = "read_memory_bank"
	RecordChoiceTool     = "record_meal_choice"
	SendNotificationTool = "send_discord_notification"
)

// --- Tool Input/Output Structs ---

// NoArgs is the input of tools that take no parameters.
type NoArgs struct{}

// GroceryResult is the output for fetch_recent_grocery_data.
type GroceryResult struct {
	Success   bool   `json:"success"`
	Inventory string `json:"inventory,omitempty"`
	Error     string `json:"error,omitempty"`
}

// MemoryBankResult is the output for read_memory_bank.
type MemoryBankResult struct {
	Success        bool            `json:"success"`
	Favorites      []string        `json:"favorites,omitempty"`
	Dislikes       []string        `json:"dislikes,omitempty"`
	RecentChoices  []memory.Choice `json:"last_14_days_suggestions,omitempty"`
	ForbiddenMeals []string        `json:"forbidden_meals,omitempty"`
	Error          string          `json:"error,omitempty"`
}

// RecordChoiceArgs is the input for record_meal_choice.
type RecordChoiceArgs struct {
	MealName string `json:"meal_name" jsonschema:"Name of the single meal that was chosen"`
}

// RecordChoiceResult is the output for record_meal_choice.
type RecordChoiceResult struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NotificationArgs is the input for send_discord_notification.
type NotificationArgs struct {
	Message string `json:"message" jsonschema:"Formatted Discord message announcing the meal"`
}

// NotificationResult is the output for send_discord_notification.
type NotificationResult struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code,omitempty"`
	Data       string `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Set groups the tools by pipeline stage.
type Set struct {
	Inventory []tool.Tool // KitchenManager
	Decision  []tool.Tool // DecisionMaker
}

// BuildTools creates all agent tools backed by h.
func BuildTools(h *Handler) (*Set, error) {
	fetch, err := functiontool.New(functiontool.Config{
		Name:        FetchGroceriesTool,
		Description: "Reads the grocery spreadsheet and lists the items of the tracked category bought recently, one per line.",
	}, func(ctx tool.Context, _ NoArgs) (GroceryResult, error) {
		return h.FetchGroceries(ctx), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s tool: %w", FetchGroceriesTool, err)
	}

	readMemory, err := functiontool.New(functiontool.Config{
		Name:        ReadMemoryBankTool,
		Description: "Reads the family memory bank: favorites, dislikes and the meals suggested in the last 14 days.",
	}, func(ctx tool.Context, _ NoArgs) (MemoryBankResult, error) {
		return h.ReadMemoryBank(ctx), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s tool: %w", ReadMemoryBankTool, err)
	}

	record, err := functiontool.New(functiontool.Config{
		Name:        RecordChoiceTool,
		Description: "Saves the chosen meal to the memory bank so it is not suggested again within 14 days.",
	}, func(ctx tool.Context, args RecordChoiceArgs) (RecordChoiceResult, error) {
		return h.RecordChoice(ctx, args), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s tool: %w", RecordChoiceTool, err)
	}

	send, err := functiontool.New(functiontool.Config{
		Name:        SendNotificationTool,
		Description: "Sends the final meal plan message to the family Discord channel.",
	}, func(ctx tool.Context, args NotificationArgs) (NotificationResult, error) {
		return h.SendNotification(ctx, args), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s tool: %w", SendNotificationTool, err)
	}

	return &Set{
		Inventory: []tool.Tool{fetch, readMemory},
		Decision:  []tool.Tool{record, send},
	}, nil
}
