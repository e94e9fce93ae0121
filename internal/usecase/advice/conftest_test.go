package advice

import "context"

// --- Mocks ---

type mockGenerator struct {
	systems []string
	prompts []string
	text    string
	err     error
}

func (m *mockGenerator) Generate(_ context.Context, system, prompt string) (string, error) {
	m.systems = append(m.systems, system)
	m.prompts = append(m.prompts, prompt)
	return m.text, m.err
}
