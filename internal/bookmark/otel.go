package bookmark

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/tLat87/SpiritLands/internal/bookmark"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
