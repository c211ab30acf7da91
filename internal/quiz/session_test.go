package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_AllCorrect(t *testing.T) {
	s := NewSession(Aircraft())

	for {
		q, _ := s.Current()
		correct, err := s.Answer(q.Correct)
		require.NoError(t, err)
		assert.True(t, correct)
		if !s.Next() {
			break
		}
	}

	assert.True(t, s.Completed())
	assert.Equal(t, 8, s.Score())
	assert.Equal(t, 100.0, s.Percentage())
	assert.Equal(t, "Aviation Expert!", Rating(s.Percentage()))
	assert.False(t, s.Next(), "next after completion stays false")

	_, err := s.Answer(0)
	assert.ErrorIs(t, err, ErrCompleted)
}

func TestSession_AnswerOnce(t *testing.T) {
	s := NewSession(Aircraft())

	correct, err := s.Answer(3)
	require.NoError(t, err)
	assert.False(t, correct)

	_, err = s.Answer(0)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.Zero(t, s.Score(), "second answer is not counted")

	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, 3, sel)
}

func TestSession_InvalidOption(t *testing.T) {
	s := NewSession(Aircraft())

	for _, opt := range []int{-1, 4} {
		_, err := s.Answer(opt)
		assert.ErrorIs(t, err, ErrInvalidOption)
	}

	_, ok := s.Selected()
	assert.False(t, ok, "invalid options are not recorded")
}

func TestSession_PartialScoreAndRestart(t *testing.T) {
	s := NewSession(Aircraft())

	// Answer the first five correctly, the rest wrong: 5/8 = 62.5%.
	for i := 0; ; i++ {
		q, pos := s.Current()
		assert.Equal(t, i, pos)
		opt := q.Correct
		if i >= 5 {
			opt = (q.Correct + 1) % len(q.Options)
		}
		_, err := s.Answer(opt)
		require.NoError(t, err)
		if !s.Next() {
			break
		}
	}

	assert.Equal(t, 5, s.Score())
	assert.Equal(t, 62.5, s.Percentage())
	assert.Equal(t, "Good Effort!", Rating(s.Percentage()))

	s.Restart()
	_, pos := s.Current()
	assert.Zero(t, pos)
	assert.Zero(t, s.Score())
	assert.False(t, s.Completed())
	assert.Equal(t, 8, s.Len())
}
