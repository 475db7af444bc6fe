package copywriter

import (
	"context"
	"errors"
)

// ScriptedLLM replays canned responses in order and records every prompt
// it saw. Useful for tests and offline dry runs without an API key.
type ScriptedLLM struct {
	Responses []string
	Err       error
	Calls     []Prompt
}

func (m *ScriptedLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	m.Calls = append(m.Calls, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", errors.New("scripted llm: no responses left")
	}
	r := m.Responses[0]
	m.Responses = m.Responses[1:]
	return r, nil
}
