package pipeline

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/easeaico/adk-meal-planner/internal/tools"
)

// Session state keys written by each stage. ADK substitutes {key} in the
// next stage's instruction with the stored value.
const (
	KitchenStateKey = "kitchen_state"
	MealOptionsKey  = "meal_options"
	DecisionKey     = "final_decision"
)

type promptData struct {
	Days         int
	Category     string
	FetchTool    string
	MemoryTool   string
	RecordTool   string
	NotifyTool   string
	KitchenState string
	MealOptions  string
}

var kitchenPromptTmpl = template.Must(template.New("kitchen").Parse(`
You are the **Inventory & Context Manager**.
Your goal is to inspect the real grocery data and the meal history.

1. **Get Real Inventory:** Call ` + "`{{.FetchTool}}`" + ` to see which "{{.Category}}" items were bought in the last {{.Days}} days.
2. **Check Memory:** Call ` + "`{{.MemoryTool}}`" + ` to see favorites, dislikes and what was suggested in the last {{.Days}} days.
3. **Report:** Output a 'Kitchen State' summary with these sections:
   - AVAILABLE ITEMS: exactly the items returned by the inventory tool.
   - FORBIDDEN MEALS: the meals suggested in the last {{.Days}} days.
   - DISLIKES: the family dislikes.
   - FAVORITES: the family favorites.
If the inventory tool reports that nothing was found, say so plainly under AVAILABLE ITEMS.
`))

var chefPromptTmpl = template.Must(template.New("chef").Parse(`
You are the **Creative Chef**.
This is the Kitchen State reported by the Kitchen Manager:

{{.KitchenState}}

Your goal is to generate **3 distinct Lunch Options**.

**Constraint Checklist:**
1. MUST use at least one item listed under AVAILABLE ITEMS.
2. MUST NOT be a FORBIDDEN MEAL (recently eaten) or a DISLIKE.
3. If a FAVORITE matches the available ingredients, prioritize it.

Output format:
1. [Meal Name] - [Main Ingredient] - [Reason]
2. [Meal Name] - [Main Ingredient] - [Reason]
3. [Meal Name] - [Main Ingredient] - [Reason]
`))

var decisionPromptTmpl = template.Must(template.New("decision").Parse(`
You are the **Final Decision Maker**.
These are the Creative Chef's options:

{{.MealOptions}}

Pick the SINGLE best lunch option from the list.

**Action:**
1. Choose the meal that uses the most perishable ingredient or is a family favorite.
2. Call ` + "`{{.RecordTool}}`" + ` with the chosen meal name so it is not repeated for {{.Days}} days.
3. Call ` + "`{{.NotifyTool}}`" + ` to send the final decision.
4. **Crucial:** Format the message beautifully for Discord (use bolding and emojis).
Finish by replying with the exact message you sent.
`))

func newPromptData(days int, category string) promptData {
	return promptData{
		Days:       days,
		Category:   category,
		FetchTool:  tools.FetchGroceriesTool,
		MemoryTool: tools.ReadMemoryBankTool,
		RecordTool: tools.RecordChoiceTool,
		NotifyTool: tools.SendNotificationTool,
		// Left as ADK placeholders, filled from session state at run time.
		KitchenState: "{" + KitchenStateKey + "}",
		MealOptions:  "{" + MealOptionsKey + "}",
	}
}

func render(tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
