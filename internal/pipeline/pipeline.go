// Package pipeline wires the three planner agents into a sequential ADK
// workflow and runs it once per invocation.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/easeaico/adk-meal-planner/internal/tools"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/agent/workflowagents/sequentialagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

// Agent and application names.
const (
	AppName           = "meal_planner"
	UserID            = "family"
	WorkflowName      = "MealPlanner"
	KitchenAgentName  = "KitchenManager"
	ChefAgentName     = "CreativeChef"
	DecisionAgentName = "DecisionMaker"
)

// DefaultPrompt starts a planning run.
const DefaultPrompt = "Check the fridge and plan tomorrow's lunch."

// Config holds the dependencies of the workflow.
type Config struct {
	Model    model.LLM
	Tools    *tools.Set
	Days     int
	Category string
	Logger   *zap.Logger
}

// Pipeline is the KitchenManager -> CreativeChef -> DecisionMaker workflow.
type Pipeline struct {
	root   agent.Agent
	logger *zap.Logger
}

// New builds the three stage agents and the sequential workflow around them.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Model == nil {
		return nil, errors.New("pipeline: model is required")
	}
	if cfg.Tools == nil {
		return nil, errors.New("pipeline: tools are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	data := newPromptData(cfg.Days, cfg.Category)
	kitchenPrompt, err := render(kitchenPromptTmpl, data)
	if err != nil {
		return nil, err
	}
	chefPrompt, err := render(chefPromptTmpl, data)
	if err != nil {
		return nil, err
	}
	decisionPrompt, err := render(decisionPromptTmpl, data)
	if err != nil {
		return nil, err
	}

	kitchen, err := llmagent.New(llmagent.Config{
		Name:        KitchenAgentName,
		Description: "Reads the grocery sheet and memory bank and reports the kitchen state.",
		Model:       cfg.Model,
		Instruction: kitchenPrompt,
		Tools:       cfg.Tools.Inventory,
		OutputKey:   KitchenStateKey,

		DisallowTransferToParent: true,
		DisallowTransferToPeers:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s agent: %w", KitchenAgentName, err)
	}

	chef, err := llmagent.New(llmagent.Config{
		Name:        ChefAgentName,
		Description: "Proposes three lunch options from the kitchen state.",
		Model:       cfg.Model,
		Instruction: chefPrompt,
		OutputKey:   MealOptionsKey,

		DisallowTransferToParent: true,
		DisallowTransferToPeers:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s agent: %w", ChefAgentName, err)
	}

	decider, err := llmagent.New(llmagent.Config{
		Name:        DecisionAgentName,
		Description: "Picks one lunch option, records it and notifies the family.",
		Model:       cfg.Model,
		Instruction: decisionPrompt,
		Tools:       cfg.Tools.Decision,
		OutputKey:   DecisionKey,

		DisallowTransferToParent: true,
		DisallowTransferToPeers:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s agent: %w", DecisionAgentName, err)
	}

	root, err := sequentialagent.New(sequentialagent.Config{
		AgentConfig: agent.Config{
			Name:        WorkflowName,
			Description: "Plans tomorrow's lunch from recent groceries and family preferences.",
			SubAgents:   []agent.Agent{kitchen, chef, decider},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	return &Pipeline{root: root, logger: logger}, nil
}

// Agent returns the root workflow agent, e.g. for the ADK launcher.
func (p *Pipeline) Agent() agent.Agent {
	return p.root
}

// Run executes the workflow once in a fresh in-memory session and returns the
// decision stage's final text. Any stage error aborts the run.
func (p *Pipeline) Run(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		prompt = DefaultPrompt
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        AppName,
		Agent:          p.root,
		SessionService: sessions,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create runner: %w", err)
	}

	sessionID := uuid.NewString()
	if _, err := sessions.Create(ctx, &session.CreateRequest{
		AppName:   AppName,
		UserID:    UserID,
		SessionID: sessionID,
	}); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	logger := p.logger.With(zap.String("session", sessionID))
	logger.Info("meal planner started", zap.String("prompt", prompt))

	var decision string
	msg := genai.NewContentFromText(prompt, genai.RoleUser)
	for ev, err := range r.Run(ctx, UserID, sessionID, msg, agent.RunConfig{}) {
		if err != nil {
			return "", fmt.Errorf("meal planner run failed: %w", err)
		}
		if ev == nil || ev.Partial {
			continue
		}
		for _, call := range functionCalls(ev.Content) {
			logger.Info("tool called", zap.String("agent", ev.Author), zap.String("tool", call))
		}
		text := contentText(ev.Content)
		if text == "" {
			continue
		}
		logger.Info("stage output", zap.String("agent", ev.Author), zap.Int("length", len(text)))
		logger.Debug("stage text", zap.String("agent", ev.Author), zap.String("text", text))
		if ev.Author == DecisionAgentName {
			decision = text
		}
	}

	if decision == "" {
		return "", fmt.Errorf("%s produced no output", DecisionAgentName)
	}
	logger.Info("meal planner finished")
	return decision, nil
}

// contentText joins the non-thought text parts of c.
func contentText(c *genai.Content) string {
	if c == nil {
		return ""
	}
	var texts []string
	for _, part := range c.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		texts = append(texts, part.Text)
	}
	return strings.TrimSpace(strings.Join(texts, ""))
}

func functionCalls(c *genai.Content) []string {
	if c == nil {
		return nil
	}
	var names []string
	for _, part := range c.Parts {
		if part != nil && part.FunctionCall != nil {
			names = append(names, part.FunctionCall.Name)
		}
	}
	return names
}
