package llm

// ModelCost holds USD pricing per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
// OpenRouter IDs ("vendor/model") are looked up by their model part.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	for i := len(modelID) - 1; i >= 0; i-- {
		if modelID[i] == '/' {
			return LookupCost(modelID[i+1:])
		}
	}
	return nil
}

// modelCosts covers the models reachable through the friendly names and
// their common neighbours. Unlisted models show as unknown in stats.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4-5":   {5, 25},

	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},

	"gemini-2.5-flash":       {0.3, 2.5},
	"gemini-2.5-flash-lite":  {0.1, 0.4},
	"gemini-2.5-pro":         {1.25, 10},
	"gemini-3-flash-preview": {0.5, 3},
	"gemini-3-pro-preview":   {2, 12},
}
