package influx

import (
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/tLat87/SpiritLands/pkg/core"
)

// Measurement names of usage events.
const (
	MeasurementCommand  = "command"
	MeasurementBookmark = "bookmark"
	MeasurementQuiz     = "quiz"
)

// CommandPoint records that a CLI command ran.
func CommandPoint(name string, kind core.Kind, took time.Duration, at time.Time) *influxdb2_write.Point {
	return influxdb2_write.NewPoint(
		MeasurementCommand,
		map[string]string{"command": name, "kind": string(kind)},
		map[string]any{"duration_ms": took.Milliseconds()},
		at,
	)
}

// BookmarkPoint records a bookmark toggle.
func BookmarkPoint(kind core.Kind, id string, bookmarked bool, at time.Time) *influxdb2_write.Point {
	return influxdb2_write.NewPoint(
		MeasurementBookmark,
		map[string]string{"kind": string(kind), "id": id},
		map[string]any{"bookmarked": bookmarked},
		at,
	)
}

// QuizPoint records a finished quiz.
func QuizPoint(score, total int, percent float64, at time.Time) *influxdb2_write.Point {
	return influxdb2_write.NewPoint(
		MeasurementQuiz,
		nil,
		map[string]any{"score": score, "total": total, "percent": percent},
		at,
	)
}
