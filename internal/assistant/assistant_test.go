package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	reply string
	err   error
	seen  string
}

func (s *stubLLM) Complete(_ context.Context, _, prompt string) (string, error) {
	s.seen = prompt
	return s.reply, s.err
}

func TestFirstTurnPromptsLanguageSelection(t *testing.T) {
	a := New(nil)
	resp := a.Respond(context.Background(), Request{Message: "Hi"})

	assert.Equal(t, "language_selection", resp.IntentDetected)
	require.Len(t, resp.QuickButtons, 3)
	for _, b := range resp.QuickButtons {
		assert.Equal(t, ActionLanguage, b.Action)
	}
	assert.NotEmpty(t, resp.SessionID, "a session id is minted when the client sends none")
}

func TestLanguageSelectionSetsLanguage(t *testing.T) {
	a := New(nil)
	first := a.Respond(context.Background(), Request{Message: "Hi", SessionID: "s1"})

	second := a.Respond(context.Background(), Request{
		Message:   "English",
		SessionID: "s1",
		Context:   first.Context,
	})
	assert.Equal(t, "language_set", second.IntentDetected)
	assert.Equal(t, "english", second.LanguageUsed)
	assert.Equal(t, "english", second.Context["language"])
}

func TestEmergencyIntent(t *testing.T) {
	a := New(nil)
	resp := a.Respond(context.Background(), Request{
		Message:            "Help! I'm in danger",
		SessionID:          "s2",
		LanguagePreference: "english",
	})

	assert.Equal(t, "emergency", resp.IntentDetected)
	assert.Contains(t, resp.Response, "100")
	assert.NotEmpty(t, resp.SafetyTip)

	actions := map[string]bool{}
	var sosButton *Button
	for i, b := range resp.QuickButtons {
		actions[b.Action] = true
		if b.Action == ActionSOS {
			sosButton = &resp.QuickButtons[i]
		}
	}
	assert.True(t, actions[ActionCall])
	require.NotNil(t, sosButton)
	assert.True(t, sosButton.Confirm, "SOS from chat requires confirmation")
}

func TestReportingIntent(t *testing.T) {
	a := New(nil)
	resp := a.Respond(context.Background(), Request{
		Message:            "my phone was stolen, how do I report a theft?",
		SessionID:          "s3",
		LanguagePreference: "english",
	})

	assert.Equal(t, "reporting", resp.IntentDetected)
	require.NotEmpty(t, resp.QuickButtons)
	assert.Equal(t, ActionNavigate, resp.QuickButtons[0].Action)
}

func TestContextReplacedWholesale(t *testing.T) {
	a := New(nil)
	resp := a.Respond(context.Background(), Request{
		Message:            "safety tips please",
		SessionID:          "s4",
		LanguagePreference: "english",
		Context:            map[string]interface{}{"stale_key": "stale", "language": "english"},
	})

	// the reply context is rebuilt by the server, not merged
	_, hasStale := resp.Context["stale_key"]
	assert.False(t, hasStale)
	assert.Equal(t, "safety_info", resp.Context["last_intent"])
}

func TestTranscriptRecordsTurnsInOrder(t *testing.T) {
	a := New(nil)
	a.Respond(context.Background(), Request{Message: "hello", SessionID: "s5", LanguagePreference: "english"})
	a.Respond(context.Background(), Request{Message: "show me the map", SessionID: "s5", LanguagePreference: "english"})

	turns := a.Transcript("s5")
	require.Len(t, turns, 4)
	assert.Equal(t, "user", turns[0].Role)
	assert.Equal(t, "hello", turns[0].Content)
	assert.Equal(t, "assistant", turns[1].Role)
	assert.Equal(t, "show me the map", turns[2].Content)
}

func TestFreeTextUsesLLMWhenConfigured(t *testing.T) {
	llm := &stubLLM{reply: "The library closes at 10 PM; avoid the unlit shortcut behind it."}
	a := New(llm)

	resp := a.Respond(context.Background(), Request{
		Message:            "is the library area fine at night?",
		SessionID:          "s6",
		LanguagePreference: "english",
	})
	assert.Equal(t, "general", resp.IntentDetected)
	assert.Equal(t, llm.reply, resp.Response)
	assert.Equal(t, "is the library area fine at night?", llm.seen)
}

func TestFreeTextLLMFailureFallsBack(t *testing.T) {
	a := New(&stubLLM{err: errors.New("timeout")})
	resp := a.Respond(context.Background(), Request{
		Message:            "what's the canteen menu",
		SessionID:          "s7",
		LanguagePreference: "english",
	})
	assert.Equal(t, "general", resp.IntentDetected)
	assert.Contains(t, resp.Response, "rephrase")
}
