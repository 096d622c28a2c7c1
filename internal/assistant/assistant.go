// Package assistant implements the voice/chat endpoint: intent routing over
// a per-session transcript, a closed action set for quick buttons, and an
// LLM fallback for free text. The conversation context object is owned by
// the server and replaced wholesale on every turn; clients echo it back
// unchanged.
package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Actions a quick button can carry. This set is closed; clients dispatch
// these verbatim.
const (
	ActionNavigate = "navigate"
	ActionCall     = "call"
	ActionSOS      = "sos"
	ActionLanguage = "language"
	ActionNone     = "none"
)

// Languages offered at the start of a conversation.
var languages = []string{"english", "tamil", "hindi"}

// LLM produces a free-text reply when no intent matches. Satisfied by
// predictor.OpenAILLM.
type LLM interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Button is one quick-reply chip or action button.
type Button struct {
	Label   string `json:"label"`
	Action  string `json:"action"`
	Value   string `json:"value,omitempty"`
	Confirm bool   `json:"confirm,omitempty"`
}

// Request is one user turn.
type Request struct {
	Message            string                 `json:"message"`
	SessionID          string                 `json:"session_id"`
	LanguagePreference string                 `json:"language_preference,omitempty"`
	Context            map[string]interface{} `json:"conversation_context,omitempty"`
}

// Response is the assistant's turn. Context replaces whatever the client
// held before.
type Response struct {
	Response       string                 `json:"response"`
	IntentDetected string                 `json:"intent_detected"`
	LanguageUsed   string                 `json:"language_used"`
	QuickButtons   []Button               `json:"quick_buttons"`
	SafetyTip      string                 `json:"safety_tip,omitempty"`
	SessionID      string                 `json:"session_id"`
	Context        map[string]interface{} `json:"conversation_context"`
}

// Turn is one transcript entry.
type Turn struct {
	Role    string    `json:"role"` // "user" or "assistant"
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Assistant routes turns. Transcripts live in an expiring in-memory cache
// keyed by session id.
type Assistant struct {
	llm      LLM // nil disables the free-text fallback
	sessions *gocache.Cache
}

func New(llm LLM) *Assistant {
	return &Assistant{
		llm:      llm,
		sessions: gocache.New(30*time.Minute, 10*time.Minute),
	}
}

// Transcript returns the ordered turns recorded for a session.
func (a *Assistant) Transcript(sessionID string) []Turn {
	if v, ok := a.sessions.Get(sessionID); ok {
		return v.([]Turn)
	}
	return nil
}

func (a *Assistant) record(sessionID string, turns ...Turn) {
	existing := a.Transcript(sessionID)
	a.sessions.Set(sessionID, append(existing, turns...), gocache.DefaultExpiration)
}

// Respond handles one user turn.
func (a *Assistant) Respond(ctx context.Context, req Request) Response {
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	language := resolveLanguage(req)
	msg := strings.ToLower(strings.TrimSpace(req.Message))

	resp := Response{SessionID: req.SessionID, LanguageUsed: language}

	switch {
	case language == "" && !isLanguageChoice(msg):
		resp.IntentDetected = "language_selection"
		resp.Response = "Hi! I'm Echo, your campus safety assistant. Which language would you like to continue in?"
		for _, lang := range languages {
			resp.QuickButtons = append(resp.QuickButtons, Button{
				Label: capitalize(lang), Action: ActionLanguage, Value: lang,
			})
		}

	case isLanguageChoice(msg):
		language = languageFromMessage(msg)
		resp.LanguageUsed = language
		resp.IntentDetected = "language_set"
		resp.Response = "Great, let's continue. How can I help you stay safe on campus today?"
		resp.QuickButtons = defaultButtons()

	case containsAny(msg, "help", "danger", "emergency", "sos", "unsafe", "attack", "following me"):
		resp.IntentDetected = "emergency"
		resp.Response = "If you are in immediate danger, call the Police at 100 or Campus Security at 044-2741-9999 right now. I can also trigger an SOS alert to your trusted contacts."
		resp.SafetyTip = "Move toward a well-lit, populated area and stay on the line with security."
		resp.QuickButtons = []Button{
			{Label: "Call Police (100)", Action: ActionCall, Value: "100"},
			{Label: "Call Campus Security", Action: ActionCall, Value: "044-2741-9999"},
			{Label: "Trigger SOS", Action: ActionSOS, Confirm: true},
		}

	case containsAny(msg, "report", "theft", "stolen", "drug", "harass"):
		resp.IntentDetected = "reporting"
		resp.Response = "You can file an incident report with a title, description, category and location. Reports can be anonymous. Want me to take you there?"
		resp.QuickButtons = []Button{
			{Label: "Open Report Form", Action: ActionNavigate, Value: "/dashboard", Confirm: true},
			{Label: "View Crime Map", Action: ActionNavigate, Value: "/map"},
		}

	case containsAny(msg, "map", "heatmap", "where"):
		resp.IntentDetected = "navigation"
		resp.Response = "The crime map shows recent incidents with a heat layer and category filters."
		resp.QuickButtons = []Button{{Label: "Open Map", Action: ActionNavigate, Value: "/map"}}

	case containsAny(msg, "safety", "tip", "advice"):
		resp.IntentDetected = "safety_info"
		resp.Response = "Here's a campus safety tip for you."
		resp.SafetyTip = "Travel in groups after dark and keep your trusted contacts up to date — they receive your SOS alerts."
		resp.QuickButtons = defaultButtons()

	case isGreeting(msg):
		resp.IntentDetected = "greeting"
		resp.Response = "Hello! I can help you report incidents, check the crime map, or reach emergency contacts. What do you need?"
		resp.QuickButtons = defaultButtons()

	default:
		resp.IntentDetected = "general"
		resp.Response = a.freeTextReply(ctx, req.Message)
		resp.QuickButtons = defaultButtons()
	}

	// context is replaced wholesale every turn
	resp.Context = map[string]interface{}{
		"language":    resp.LanguageUsed,
		"last_intent": resp.IntentDetected,
		"turns":       len(a.Transcript(req.SessionID)) + 2,
	}

	a.record(req.SessionID,
		Turn{Role: "user", Content: req.Message, At: time.Now()},
		Turn{Role: "assistant", Content: resp.Response, At: time.Now()},
	)
	return resp
}

func (a *Assistant) freeTextReply(ctx context.Context, message string) string {
	const fallback = "I can help with reporting incidents, the crime map, predictions and SOS alerts. Could you rephrase that?"
	if a.llm == nil {
		return fallback
	}
	reply, err := a.llm.Complete(ctx,
		"You are Echo, a concise campus safety assistant for SRM KTR. Answer in at most three sentences and only about campus safety.",
		message)
	if err != nil {
		logrus.WithError(err).Warn("assistant: llm fallback failed")
		return fallback
	}
	return reply
}

func defaultButtons() []Button {
	return []Button{
		{Label: "Report Incident", Action: ActionNavigate, Value: "/dashboard"},
		{Label: "View Map", Action: ActionNavigate, Value: "/map"},
		{Label: "SOS", Action: ActionSOS, Confirm: true},
	}
}

func resolveLanguage(req Request) string {
	if req.LanguagePreference != "" {
		return req.LanguagePreference
	}
	if req.Context != nil {
		if lang, ok := req.Context["language"].(string); ok && lang != "" {
			return lang
		}
	}
	return ""
}

func isLanguageChoice(msg string) bool {
	return languageFromMessage(msg) != ""
}

func languageFromMessage(msg string) string {
	for _, lang := range languages {
		if msg == lang {
			return lang
		}
	}
	return ""
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func isGreeting(msg string) bool {
	for _, g := range []string{"hi", "hello", "hey", "vanakkam", "namaste", "good morning", "good evening"} {
		if msg == g || strings.HasPrefix(msg, g+" ") || strings.HasPrefix(msg, g+"!") {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
