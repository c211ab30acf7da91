package main

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tLat87/SpiritLands/internal/influx"
	"github.com/tLat87/SpiritLands/internal/quiz"
)

func newQuizCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "quiz",
		Short:       "Take the aircraft quiz",
		Long:        "Answer each question by typing the option number. An empty line or q quits.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noStorage: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuiz(a, quiz.NewSession(quiz.Aircraft()))
		},
	}
}

func runQuiz(a *app, s *quiz.Session) error {
	in := bufio.NewScanner(a.in)
	out := a.out

	for !s.Completed() {
		q, pos := s.Current()
		fmt.Fprintf(out, "\nQuestion %d/%d: %s\n", pos+1, s.Len(), q.Text)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
		}

		for {
			fmt.Fprint(out, "> ")
			if !in.Scan() {
				return in.Err()
			}
			line := strings.TrimSpace(in.Text())
			if line == "" || strings.EqualFold(line, "q") {
				fmt.Fprintln(out, "Quiz abandoned.")
				return nil
			}
			n, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintln(out, "Please enter an option number.")
				continue
			}
			correct, err := s.Answer(n - 1)
			if errors.Is(err, quiz.ErrInvalidOption) {
				fmt.Fprintf(out, "Please choose between 1 and %d.\n", len(q.Options))
				continue
			}
			if err != nil {
				return err
			}
			if correct {
				fmt.Fprintln(out, "Correct!")
			} else {
				fmt.Fprintf(out, "Wrong. The answer is %s.\n", q.Options[q.Correct])
			}
			fmt.Fprintln(out, q.Explanation)
			break
		}
		s.Next()
	}

	pct := s.Percentage()
	a.usage.Record(influx.QuizPoint(s.Score(), s.Len(), pct, time.Now()))
	a.Logger.Info("Quiz completed", "score", s.Score(), "total", s.Len())

	_, err := fmt.Fprintf(out, "\nScore: %d/%d (%.0f%%) %s\n", s.Score(), s.Len(), pct, quiz.Rating(pct))
	return err
}
