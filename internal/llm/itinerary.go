package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
)

const (
	SystemPrompt = "You are a knowledgeable travel planner with expertise in creating detailed travel itineraries."
	Currency     = "INR"
	Temperature  = 0.7
	MaxTokens    = 2048
)

// ErrorKind classifies why an itinerary could not be generated.
type ErrorKind string

const (
	KindAuth      ErrorKind = "auth"
	KindTransport ErrorKind = "transport"
	KindUpstream  ErrorKind = "upstream"
	KindMalformed ErrorKind = "malformed"
	KindInternal  ErrorKind = "internal"
)

// GenerationError is the failure half of an Itinerary.
type GenerationError struct {
	Kind ErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Itinerary is either generated text or a GenerationError, never both. Text
// is the model's answer verbatim, even when blank.
type Itinerary struct {
	Text string
	Err  *GenerationError
}

func (it Itinerary) OK() bool {
	return it.Err == nil
}

// Display returns something renderable in every case.
func (it Itinerary) Display() string {
	if it.Err != nil {
		return "Error generating itinerary: " + userMessage(it.Err)
	}
	return it.Text
}

func userMessage(e *GenerationError) string {
	switch e.Kind {
	case KindAuth:
		return "the itinerary service rejected our credentials."
	case KindTransport:
		return "the itinerary service could not be reached."
	case KindMalformed:
		return "the itinerary service returned an unexpected response."
	default:
		return "the itinerary service is unavailable right now."
	}
}

// TripPrompt carries the trip parameters the prompt is built from.
type TripPrompt struct {
	Source      string
	Destination string
	StartDate   string
	EndDate     string
	Days        int
}

// BuildPrompt renders the user prompt for p.
func BuildPrompt(p TripPrompt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a personalized trip itinerary for a %d-day trip from %s to %s ", p.Days, p.Source, p.Destination)
	fmt.Fprintf(&b, "on %s to %s, with an optimum budget (Currency: %s).\n\n", p.StartDate, p.EndDate, Currency)
	b.WriteString("Please include:\n")
	b.WriteString("- Day-wise breakdown of activities\n")
	b.WriteString("- Popular tourist attractions to visit\n")
	b.WriteString("- Recommended local restaurants and cuisine\n")
	fmt.Fprintf(&b, "- Estimated costs for activities and meals (in %s)\n", Currency)
	b.WriteString("- Travel tips specific to the destination\n")
	b.WriteString("- Best modes of local transport\n")
	return b.String()
}

// Completer is the chat call the generator depends on.
type Completer interface {
	Complete(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error)
}

// Generator turns a trip into itinerary text.
type Generator struct {
	completer Completer
	logger    *slog.Logger
}

func NewGenerator(completer Completer, logger *slog.Logger) *Generator {
	return &Generator{completer: completer, logger: logger}
}

// Generate never returns an error and never panics: failures come back as
// Itinerary.Err and are logged here.
func (g *Generator) Generate(ctx context.Context, p TripPrompt) (it Itinerary) {
	defer func() {
		if r := recover(); r != nil {
			it = g.fail(p, KindInternal, fmt.Errorf("panic: %v", r))
		}
	}()

	text, err := g.completer.Complete(ctx, []Message{
		{Role: "system", Content: SystemPrompt},
		{Role: "user", Content: BuildPrompt(p)},
	}, Temperature, MaxTokens)
	if err != nil {
		return g.fail(p, classify(err), err)
	}
	return Itinerary{Text: text}
}

func (g *Generator) fail(p TripPrompt, kind ErrorKind, err error) Itinerary {
	g.logger.Error("Itinerary generation failed",
		"kind", kind,
		"source", p.Source,
		"destination", p.Destination,
		"days", p.Days,
		"error", err,
	)
	return Itinerary{Err: &GenerationError{Kind: kind, Err: err}}
}

func classify(err error) ErrorKind {
	var apiErr *openai.Error
	switch {
	case errors.As(err, &apiErr):
		if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
			return KindAuth
		}
		return KindUpstream
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformed
	default:
		return KindTransport
	}
}
