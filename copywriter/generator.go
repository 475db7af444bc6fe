package copywriter

import (
	"errors"

	"go.uber.org/zap"
)

// Cost-control knobs: low randomness, capped output, one repair per post.
const (
	defaultModel         = "gpt-4o-mini"
	temperature          = 0.2
	maxOutputTokensBrief = 1024
	maxOutputTokensPost  = 1024
	defaultRepairBudget  = 1
)

// Generator runs the brief and post calls against one provider client.
// Create it once at process start; it is reused for all runs and carries
// no per-run state.
type Generator struct {
	llm          LLMClient
	logger       *zap.Logger
	repairBudget int
}

func NewGenerator(llm LLMClient, logger *zap.Logger) (*Generator, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{llm: llm, logger: logger, repairBudget: defaultRepairBudget}, nil
}

// SetRepairBudget overrides the number of corrective calls allowed per
// post. Zero disables repair entirely.
func (g *Generator) SetRepairBudget(n int) {
	if n < 0 {
		n = 0
	}
	g.repairBudget = n
}
