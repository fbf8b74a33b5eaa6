package planner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TravelPlanner_WebProject/internal/llm"
	"TravelPlanner_WebProject/internal/weather"
)

type weatherCall struct {
	location, start, end string
}

type fakeWeather struct {
	calls    []weatherCall
	err      error
	forecast *weather.Forecast
	events   *[]string
}

func (f *fakeWeather) Fetch(_ context.Context, location, start, end string) (*weather.Forecast, error) {
	f.calls = append(f.calls, weatherCall{location, start, end})
	if f.events != nil {
		*f.events = append(*f.events, "weather")
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.forecast != nil {
		return f.forecast, nil
	}
	return &weather.Forecast{ResolvedAddress: location}, nil
}

type fakeGenerator struct {
	prompts []llm.TripPrompt
	result  llm.Itinerary
	events  *[]string
}

func (f *fakeGenerator) Generate(_ context.Context, p llm.TripPrompt) llm.Itinerary {
	f.prompts = append(f.prompts, p)
	if f.events != nil {
		*f.events = append(*f.events, "itinerary")
	}
	if f.result.Text == "" && f.result.Err == nil {
		var b strings.Builder
		for d := 1; d <= p.Days; d++ {
			fmt.Fprintf(&b, "Day %d: explore %s\n", d, p.Destination)
		}
		return llm.Itinerary{Text: b.String()}
	}
	return f.result
}

type fakeRecorder struct {
	external []string
	outcomes []string
}

func (r *fakeRecorder) ObserveExternal(service, outcome string, _ time.Duration) {
	r.external = append(r.external, service+":"+outcome)
}

func (r *fakeRecorder) PlanOutcome(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func goaForm() Form {
	return Form{Source: "Mumbai", Destination: "Goa", StartDate: "2025-03-01", EndDate: "2025-03-04"}
}

func TestParseTrip(t *testing.T) {
	tests := []struct {
		name     string
		form     Form
		wantDays int
		reason   Reason
	}{
		{name: "example trip", form: goaForm(), wantDays: 3},
		{name: "same day", form: Form{"Pune", "Lonavala", "2025-05-10", "2025-05-10"}, wantDays: 0},
		{name: "across month", form: Form{"Delhi", "Manali", "2025-01-30", "2025-02-02"}, wantDays: 3},
		{name: "leap day", form: Form{"Delhi", "Jaipur", "2024-02-28", "2024-03-01"}, wantDays: 2},
		{name: "before the epoch", form: Form{"Delhi", "Agra", "1969-12-30", "1970-01-02"}, wantDays: 3},
		{name: "centuries long", form: Form{"Delhi", "Agra", "1700-01-01", "2025-01-01"}, wantDays: 118704},
		{name: "millennia long", form: Form{"Delhi", "Agra", "0001-01-01", "9999-12-31"}, wantDays: 3652058},
		{name: "missing source", form: Form{"", "Goa", "2025-03-01", "2025-03-04"}, reason: MissingField},
		{name: "blank destination", form: Form{"Mumbai", "  ", "2025-03-01", "2025-03-04"}, reason: MissingField},
		{name: "missing return", form: Form{"Mumbai", "Goa", "2025-03-01", ""}, reason: MissingField},
		{name: "bad start", form: Form{"Mumbai", "Goa", "01/03/2025", "2025-03-04"}, reason: BadDate},
		{name: "bad end", form: Form{"Mumbai", "Goa", "2025-03-01", "2025-02-30"}, reason: BadDate},
		{name: "inverted", form: Form{"Mumbai", "Goa", "2025-03-04", "2025-03-01"}, reason: InvertedRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip, err := ParseTrip(tt.form)
			if tt.reason != "" {
				var rej *Rejection
				require.True(t, errors.As(err, &rej))
				assert.Equal(t, tt.reason, rej.Reason)
				assert.NotEmpty(t, rej.Notice)
				assert.ErrorIs(t, err, ErrRejected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDays, trip.Days)
		})
	}
}

func TestPlanExampleTrip(t *testing.T) {
	wx := &fakeWeather{}
	gen := &fakeGenerator{}
	rec := &fakeRecorder{}
	var stages []Stage
	o := New(wx, gen, discard(), WithRecorder(rec))

	plan, err := o.Plan(context.Background(), goaForm(), func(s Stage) { stages = append(stages, s) })
	require.NoError(t, err)

	assert.Equal(t, 3, plan.Trip.Days)
	require.Len(t, wx.calls, 1)
	assert.Equal(t, weatherCall{"Goa", "2025-03-01", "2025-03-04"}, wx.calls[0])

	require.Len(t, gen.prompts, 1)
	assert.Equal(t, llm.TripPrompt{
		Source:      "Mumbai",
		Destination: "Goa",
		StartDate:   "2025-03-01",
		EndDate:     "2025-03-04",
		Days:        3,
	}, gen.prompts[0])
	assert.Contains(t, llm.BuildPrompt(gen.prompts[0]), "3-day trip")

	require.True(t, plan.Itinerary.OK())
	assert.Equal(t, 3, strings.Count(plan.Itinerary.Display(), "Day "))
	assert.Equal(t, "Goa", plan.Forecast.ResolvedAddress)

	assert.Equal(t, []Stage{StageValidating, StageFetchingWeather, StageGeneratingItinerary, StageDone}, stages)
	assert.Equal(t, []string{"weather:ok", "itinerary:ok"}, rec.external)
	assert.Equal(t, []string{"success"}, rec.outcomes)
}

func TestPlanSameDayProceeds(t *testing.T) {
	wx := &fakeWeather{}
	gen := &fakeGenerator{result: llm.Itinerary{Text: "Day trip"}}
	o := New(wx, gen, discard())

	plan, err := o.Plan(context.Background(), Form{"Pune", "Lonavala", "2025-05-10", "2025-05-10"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, plan.Trip.Days)
	assert.Len(t, wx.calls, 1)
	require.Len(t, gen.prompts, 1)
	assert.Equal(t, 0, gen.prompts[0].Days)
}

func TestPlanRejectsBeforeExternalCalls(t *testing.T) {
	for _, form := range []Form{
		{"Mumbai", "Goa", "2025-03-04", "2025-03-01"},
		{"Mumbai", "Goa", "tomorrow", "2025-03-01"},
		{"Mumbai", "", "2025-03-01", "2025-03-04"},
	} {
		wx := &fakeWeather{}
		gen := &fakeGenerator{}
		rec := &fakeRecorder{}
		o := New(wx, gen, discard(), WithRecorder(rec))

		plan, err := o.Plan(context.Background(), form, nil)

		assert.Nil(t, plan)
		assert.ErrorIs(t, err, ErrRejected)
		assert.Empty(t, wx.calls)
		assert.Empty(t, gen.prompts)
		assert.Empty(t, rec.external)
		assert.Len(t, rec.outcomes, 1)
	}
}

func TestPlanWeatherFailureSkipsGeneration(t *testing.T) {
	wxErr := &weather.ServiceError{Location: "Goa", StatusCode: 500}
	wx := &fakeWeather{err: wxErr}
	gen := &fakeGenerator{}
	rec := &fakeRecorder{}
	o := New(wx, gen, discard(), WithRecorder(rec))

	plan, err := o.Plan(context.Background(), goaForm(), nil)

	assert.Nil(t, plan)
	var rej *Rejection
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, WeatherUnavailable, rej.Reason)
	assert.Equal(t, "Error fetching weather data. Please try again.", rej.Notice)
	assert.ErrorIs(t, err, weather.ErrServiceUnavailable)
	assert.Empty(t, gen.prompts)
	assert.Equal(t, []string{"weather:error"}, rec.external)
	assert.Equal(t, []string{string(WeatherUnavailable)}, rec.outcomes)
}

func TestPlanGenerationFailureStillRenders(t *testing.T) {
	wx := &fakeWeather{}
	gen := &fakeGenerator{result: llm.Itinerary{Err: &llm.GenerationError{Kind: llm.KindAuth, Err: errors.New("401")}}}
	rec := &fakeRecorder{}
	o := New(wx, gen, discard(), WithRecorder(rec))

	plan, err := o.Plan(context.Background(), goaForm(), nil)
	require.NoError(t, err)

	assert.False(t, plan.Itinerary.OK())
	assert.NotEmpty(t, plan.Itinerary.Display())
	assert.Equal(t, []string{"weather:ok", "itinerary:error"}, rec.external)
}

func TestPlanOrdersWeatherBeforeItinerary(t *testing.T) {
	var events []string
	o := New(&fakeWeather{events: &events}, &fakeGenerator{events: &events}, discard())

	_, err := o.Plan(context.Background(), goaForm(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"weather", "itinerary"}, events)
}
