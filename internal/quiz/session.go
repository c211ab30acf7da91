package quiz

// Session walks through a quiz one question at a time. It is not safe for
// concurrent use.
type Session struct {
	quiz      *Quiz
	current   int
	score     int
	answered  bool
	selected  int
	completed bool
}

// NewSession starts q at its first question.
func NewSession(q *Quiz) *Session {
	return &Session{quiz: q, selected: -1}
}

// Current returns the question being asked and its zero-based position.
func (s *Session) Current() (Question, int) {
	return s.quiz.Questions[s.current], s.current
}

// Len returns the number of questions.
func (s *Session) Len() int {
	return len(s.quiz.Questions)
}

// Answer records option as the answer to the current question and reports
// whether it is correct. Each question takes one answer.
func (s *Session) Answer(option int) (bool, error) {
	if s.completed {
		return false, ErrCompleted
	}
	if s.answered {
		return false, ErrAlreadyAnswered
	}
	q := s.quiz.Questions[s.current]
	if option < 0 || option >= len(q.Options) {
		return false, ErrInvalidOption
	}

	s.answered = true
	s.selected = option
	correct := option == q.Correct
	if correct {
		s.score++
	}
	return correct, nil
}

// Selected returns the recorded answer for the current question.
func (s *Session) Selected() (int, bool) {
	return s.selected, s.answered
}

// Next moves to the following question. After the last question it marks
// the session completed and returns false.
func (s *Session) Next() bool {
	if s.completed {
		return false
	}
	if s.current >= len(s.quiz.Questions)-1 {
		s.completed = true
		return false
	}
	s.current++
	s.answered = false
	s.selected = -1
	return true
}

// Score returns the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// Completed reports whether every question has been passed.
func (s *Session) Completed() bool { return s.completed }

// Percentage returns the score as a percentage of all questions.
func (s *Session) Percentage() float64 {
	return float64(s.score) / float64(len(s.quiz.Questions)) * 100
}

// Restart resets the session to the first question with no score.
func (s *Session) Restart() {
	*s = Session{quiz: s.quiz, selected: -1}
}
