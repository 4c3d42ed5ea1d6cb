package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/nuckecy/sidekick/core/bridge"
	"github.com/nuckecy/sidekick/core/knowledge"
	"github.com/nuckecy/sidekick/core/providers"
)

// ============================================================================
// Configuration
// ============================================================================

// Config bounds a conversation session.
type Config struct {
	// MaxHistoryTurns is how many prior turns accompany an outgoing
	// generation request. Truncation happens at request-build time only;
	// the retained transcript is never shortened.
	MaxHistoryTurns int `yaml:"max_history_turns"`

	// MaxResults caps keyword-mode search results.
	MaxResults int `yaml:"max_results"`
}

// DefaultConfig returns the session bounds used by the plugin UI.
func DefaultConfig() Config {
	return Config{
		MaxHistoryTurns: 6,
		MaxResults:      5,
	}
}

// Validate checks config bounds.
func (c Config) Validate() error {
	if c.MaxHistoryTurns <= 0 {
		return fmt.Errorf("max history turns must be positive, got %d", c.MaxHistoryTurns)
	}

	if c.MaxResults <= 0 {
		return fmt.Errorf("max results must be positive, got %d", c.MaxResults)
	}

	return nil
}

// ============================================================================
// Session
// ============================================================================

// ErrBusy is returned when a turn arrives while another is in flight.
// Sends are rejected, never queued or cancelled.
var ErrBusy = errors.New("a turn is already in flight")

// ErrEmptyQuery is returned for whitespace-only input.
var ErrEmptyQuery = errors.New("empty query")

const (
	unreachableNotice = "Unable to reach AI. Here's what I found:"

	noResultsReply = "I couldn't find specific criteria for that query. " +
		"Try asking about a specific topic like \"contrast\", \"focus\", or \"touch targets\". " +
		"You can also ask about a specific SC number like \"SC 1.4.3\"."
)

// Session orchestrates one conversation: it owns the append-only transcript
// and the provider-facing history, and routes each turn through canned
// replies, the matcher, and (when a credential is configured) the active
// generation provider. A session degrades to keyword-only search when no
// provider or key is set.
type Session struct {
	matcher  *knowledge.Matcher
	provider providers.Provider
	host     bridge.Host
	apiKey   string
	config   Config

	busy atomic.Bool

	mu       sync.Mutex
	messages []Message
	history  []providers.Turn
}

// NewSession creates a session in keyword-only mode.
func NewSession(matcher *knowledge.Matcher, config Config) (*Session, error) {
	if matcher == nil {
		return nil, fmt.Errorf("session requires a matcher")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}

	return &Session{
		matcher: matcher,
		config:  config,
	}, nil
}

// UseProvider switches the session into AI mode. An empty key switches it
// back to keyword-only mode.
func (s *Session) UseProvider(provider providers.Provider, apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.provider = provider
	s.apiKey = apiKey
}

// AttachHost connects the canvas runtime, enabling selection-context
// prefixes and component placement. A nil host detaches.
func (s *Session) AttachHost(host bridge.Host) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.host = host
}

// Messages returns a copy of the display transcript.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Reset clears the transcript and the provider-facing history.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	s.history = nil
}

// HandleTurn processes one user query end to end and returns the bot reply
// that was appended to the transcript. Provider failures degrade to matched
// criteria or an explanatory message rather than an error; only rejected
// sends (busy, empty input) error out.
func (s *Session) HandleTurn(ctx context.Context, query string) (Message, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Message{}, ErrEmptyQuery
	}

	if !s.busy.CompareAndSwap(false, true) {
		return Message{}, ErrBusy
	}
	defer s.busy.Store(false)

	s.append(newMessage(RoleUser, query, nil))

	if reply, ok := metaReplies[strings.ToLower(query)]; ok {
		return s.appendBot(reply, nil), nil
	}

	prompt := s.matcher.BuildPrompt(query)

	provider, apiKey := s.generation()
	if provider == nil || apiKey == "" {
		return s.keywordTurn(query), nil
	}

	return s.aiTurn(ctx, query, prompt, provider, apiKey), nil
}

// ===== //

func (s *Session) aiTurn(ctx context.Context, query string, prompt knowledge.Prompt, provider providers.Provider, apiKey string) Message {
	userText := s.selectionPrefix(ctx) + query
	window := s.historyWindow()

	reply, err := provider.Send(ctx, userText, prompt.System, window, apiKey)
	if err != nil {
		if len(prompt.Matched) > 0 {
			return s.appendBot(unreachableNotice, prompt.Matched)
		}

		return s.appendBot(fmt.Sprintf(
			"AI error: %s. Try rephrasing your question or check your API key in settings.", err,
		), nil)
	}

	s.recordExchange(query, reply)

	if response, placement, ok := parseActionReply(reply); ok {
		reply = response
		s.placeComponent(ctx, placement)
	}

	if len(prompt.Matched) > 0 {
		return s.appendBot(reply, prompt.Matched)
	}
	return s.appendBot(reply, nil)
}

func (s *Session) keywordTurn(query string) Message {
	results := s.matcher.Search(query, s.config.MaxResults)
	if len(results) == 0 {
		return s.appendBot(noResultsReply, nil)
	}

	cards := make([]*knowledge.Criterion, len(results))
	for i, r := range results {
		cards[i] = r.Criterion
	}

	return s.appendBot(fmt.Sprintf("Found %d relevant success criteria:", len(cards)), cards)
}

// selectionPrefix summarizes the current canvas selection as a one-line
// bracketed prefix for the outgoing user message. The system prompt is
// never touched; this is the caller side of the prompt assembler's
// boundary contract. Host errors and empty selections yield no prefix.
func (s *Session) selectionPrefix(ctx context.Context) string {
	s.mu.Lock()
	host := s.host
	s.mu.Unlock()

	if host == nil {
		return ""
	}

	snap, _, err := host.GetSelection(ctx)
	if err != nil || snap == nil {
		return ""
	}

	return fmt.Sprintf("[Figma selection: %s (%s, %dx%d)] ", snap.Name, snap.Type, snap.Width, snap.Height)
}

func (s *Session) placeComponent(ctx context.Context, placement *bridge.PlaceComponentPayload) {
	s.mu.Lock()
	host := s.host
	s.mu.Unlock()

	if host == nil {
		return
	}

	// Placement is best effort: the reply text still reaches the user
	// even when the canvas rejects the instantiation.
	if err := host.PlaceComponent(ctx, *placement); err != nil {
		_ = host.Notify(ctx, fmt.Sprintf("Could not place %s: %s", placement.ComponentName, err))
	}
}

func (s *Session) generation() (providers.Provider, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.provider, s.apiKey
}

// historyWindow copies the last MaxHistoryTurns turns for an outgoing
// request. The current query is not yet part of the history.
func (s *Session) historyWindow() []providers.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := len(s.history) - s.config.MaxHistoryTurns
	if start < 0 {
		start = 0
	}

	window := make([]providers.Turn, len(s.history)-start)
	copy(window, s.history[start:])
	return window
}

// recordExchange appends the completed turn pair to the provider-facing
// history. The history stores the plain query, without the selection
// prefix.
func (s *Session) recordExchange(query, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history,
		providers.Turn{Role: providers.RoleUser, Text: query},
		providers.Turn{Role: providers.RoleAssistant, Text: reply},
	)
}

func (s *Session) append(msg Message) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)
	return msg
}

func (s *Session) appendBot(text string, cards []*knowledge.Criterion) Message {
	return s.append(newMessage(RoleBot, text, cards))
}
