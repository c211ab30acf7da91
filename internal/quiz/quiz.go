// Package quiz runs multiple-choice quizzes over the bundled catalog.
package quiz

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/aircraft.yaml
var aircraftData []byte

var (
	// ErrInvalidOption is returned when an answer index is out of range.
	ErrInvalidOption = errors.New("invalid answer option")
	// ErrAlreadyAnswered is returned when the current question was answered.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrCompleted is returned when answering after the last question.
	ErrCompleted = errors.New("quiz completed")
)

// Question is one multiple-choice question.
type Question struct {
	ID          int      `yaml:"id" json:"id"`
	Text        string   `yaml:"question" json:"question"`
	Options     []string `yaml:"options" json:"options"`
	Correct     int      `yaml:"correct" json:"correct"`
	Explanation string   `yaml:"explanation" json:"explanation"`
}

// Quiz is a titled, validated question set.
type Quiz struct {
	Title     string     `yaml:"title"`
	Questions []Question `yaml:"questions"`
}

// Load decodes and validates a YAML quiz document.
func Load(data []byte) (*Quiz, error) {
	var q Quiz
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("failed to decode quiz: %w", err)
	}
	if len(q.Questions) == 0 {
		return nil, errors.New("quiz has no questions")
	}
	seen := make(map[int]struct{}, len(q.Questions))
	for _, qu := range q.Questions {
		if _, dup := seen[qu.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d", qu.ID)
		}
		seen[qu.ID] = struct{}{}
		if qu.Text == "" {
			return nil, fmt.Errorf("question %d has no text", qu.ID)
		}
		if len(qu.Options) < 2 {
			return nil, fmt.Errorf("question %d needs at least two options", qu.ID)
		}
		if qu.Correct < 0 || qu.Correct >= len(qu.Options) {
			return nil, fmt.Errorf("question %d: correct answer %d out of range", qu.ID, qu.Correct)
		}
	}
	return &q, nil
}

var (
	aircraftOnce sync.Once
	aircraftQuiz *Quiz
)

// Aircraft returns the bundled aircraft quiz.
func Aircraft() *Quiz {
	aircraftOnce.Do(func() {
		q, err := Load(aircraftData)
		if err != nil {
			panic(fmt.Sprintf("bundled aircraft quiz: %v", err))
		}
		aircraftQuiz = q
	})
	return aircraftQuiz
}

// Rating is the verdict shown for a final percentage.
func Rating(percent float64) string {
	switch {
	case percent >= 90:
		return "Aviation Expert!"
	case percent >= 70:
		return "Great Knowledge!"
	case percent >= 50:
		return "Good Effort!"
	default:
		return "Keep Learning!"
	}
}
