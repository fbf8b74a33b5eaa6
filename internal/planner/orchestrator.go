package planner

import (
	"context"
	"log/slog"
	"time"

	"TravelPlanner_WebProject/internal/llm"
	"TravelPlanner_WebProject/internal/weather"
)

// Stage is reported to an Observer as a plan advances.
type Stage string

const (
	StageValidating          Stage = "validating"
	StageFetchingWeather     Stage = "fetching_weather"
	StageGeneratingItinerary Stage = "generating_itinerary"
	StageDone                Stage = "done"
)

// Observer receives stage transitions. It may be nil.
type Observer func(Stage)

type WeatherFetcher interface {
	Fetch(ctx context.Context, location, startDate, endDate string) (*weather.Forecast, error)
}

type ItineraryGenerator interface {
	Generate(ctx context.Context, p llm.TripPrompt) llm.Itinerary
}

// Recorder is the metrics sink. *metrics.Metrics satisfies it.
type Recorder interface {
	ObserveExternal(service, outcome string, d time.Duration)
	PlanOutcome(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveExternal(string, string, time.Duration) {}
func (nopRecorder) PlanOutcome(string)                            {}

// Plan is what the dashboard renders.
type Plan struct {
	Trip      Trip
	Forecast  *weather.Forecast
	Itinerary llm.Itinerary
}

type Orchestrator struct {
	weather   WeatherFetcher
	generator ItineraryGenerator
	recorder  Recorder
	logger    *slog.Logger
}

type Option func(*Orchestrator)

func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.recorder = r
		}
	}
}

func New(w WeatherFetcher, g ItineraryGenerator, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		weather:   w,
		generator: g,
		recorder:  nopRecorder{},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Plan validates f, fetches the destination weather and then generates the
// itinerary. Weather always completes before generation starts; a weather
// failure rejects the plan and generation is skipped. The returned error is
// always a *Rejection.
func (o *Orchestrator) Plan(ctx context.Context, f Form, observe Observer) (*Plan, error) {
	notify := func(s Stage) {
		if observe != nil {
			observe(s)
		}
	}

	notify(StageValidating)
	trip, err := ParseTrip(f)
	if err != nil {
		rej := err.(*Rejection)
		o.recorder.PlanOutcome(string(rej.Reason))
		o.logger.Info("Trip request rejected", "reason", rej.Reason, "error", rej.Err)
		return nil, rej
	}

	notify(StageFetchingWeather)
	start := time.Now()
	forecast, err := o.weather.Fetch(ctx, trip.Destination, trip.StartDate(), trip.EndDate())
	if err != nil {
		o.recorder.ObserveExternal("weather", "error", time.Since(start))
		o.recorder.PlanOutcome(string(WeatherUnavailable))
		o.logger.Error("Weather fetch failed",
			"call", "weather",
			"destination", trip.Destination,
			"start", trip.StartDate(),
			"end", trip.EndDate(),
			"error", err,
		)
		return nil, reject(WeatherUnavailable, err)
	}
	o.recorder.ObserveExternal("weather", "ok", time.Since(start))

	notify(StageGeneratingItinerary)
	start = time.Now()
	itinerary := o.generator.Generate(ctx, llm.TripPrompt{
		Source:      trip.Source,
		Destination: trip.Destination,
		StartDate:   trip.StartDate(),
		EndDate:     trip.EndDate(),
		Days:        trip.Days,
	})
	outcome := "ok"
	if !itinerary.OK() {
		outcome = "error"
	}
	o.recorder.ObserveExternal("itinerary", outcome, time.Since(start))
	o.recorder.PlanOutcome("success")

	notify(StageDone)
	o.logger.Info("Trip planned",
		"source", trip.Source,
		"destination", trip.Destination,
		"days", trip.Days,
		"itinerary_ok", itinerary.OK(),
	)
	return &Plan{Trip: trip, Forecast: forecast, Itinerary: itinerary}, nil
}
