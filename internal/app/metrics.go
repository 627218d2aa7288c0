package app

import (
	"context"

	"github.com/metinatakli/movie-favorites/internal/favorites"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/metinatakli/movie-favorites/internal/app"

type appMetrics struct {
	actions      metric.Int64Counter
	registration metric.Registration
}

// newMetrics registers the favorites instruments on provider, or on the global
// provider when nil. Until InitTelemetry installs one the global provider
// records nothing.
func (app *Application) newMetrics(provider metric.MeterProvider) (*appMetrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}

	meter := provider.Meter(meterName)

	actions, err := meter.Int64Counter(
		"favorites.actions",
		metric.WithDescription("Actions dispatched to the liked movies store"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return nil, err
	}

	liked, err := meter.Int64ObservableGauge(
		"favorites.liked",
		metric.WithDescription("Movies currently liked"),
		metric.WithUnit("{movie}"),
	)
	if err != nil {
		return nil, err
	}

	registration, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(liked, int64(len(app.favorites.State().LikedMovies)))
		return nil
	}, liked)
	if err != nil {
		return nil, err
	}

	return &appMetrics{
		actions:      actions,
		registration: registration,
	}, nil
}

// close stops the liked gauge from observing this application.
func (m *appMetrics) close() error {
	return m.registration.Unregister()
}

// dispatch sends the action to the store, counts it by kind and returns the
// state the action produced.
func (app *Application) dispatch(ctx context.Context, action favorites.Action) favorites.State {
	state := app.favorites.Dispatch(ctx, action)

	app.metrics.actions.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(action.Kind()))))

	return state
}
