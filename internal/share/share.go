// Package share composes share-sheet messages for catalog items and hands
// them to a platform sharer.
package share

import (
	"context"
	"fmt"
	"io"

	"github.com/tLat87/SpiritLands/internal/logging"
	"github.com/tLat87/SpiritLands/pkg/core"
)

// AppURL is attached to the app-level share message.
const AppURL = "https://spiritlands.com"

// Message is what a share sheet receives.
type Message struct {
	Title string
	Body  string
	URL   string
}

// ForItem composes the share message for a catalog item.
func ForItem[C core.Category](item core.Item[C]) Message {
	switch item.Kind() {
	case core.KindVolcano:
		return Message{
			Title: "Volcano: " + item.Name,
			Body: fmt.Sprintf("Check out this amazing volcano: %s in %s! %s",
				item.Name, item.Country, item.Description),
		}
	default:
		return Message{
			Title: "Aircraft: " + item.Name,
			Body: fmt.Sprintf("Check out this amazing aircraft: %s by %s! %s",
				item.Name, item.Maker, item.Description),
		}
	}
}

// App returns the message used to recommend the application itself.
func App() Message {
	return Message{
		Title: "SpiritLands - Volcano Travel Guide",
		Body:  "Check out this amazing volcano travel app! Explore the world's most fascinating volcanoes with interactive maps, legends, and facts.",
		URL:   AppURL,
	}
}

// Sharer delivers a message to the user's share target.
type Sharer interface {
	Share(ctx context.Context, msg Message) error
}

// WriterSharer prints messages to an io.Writer.
type WriterSharer struct {
	W io.Writer
}

// Share writes msg as a title line, the body and an optional URL line.
func (s WriterSharer) Share(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.W, "%s\n%s\n", msg.Title, msg.Body); err != nil {
		return fmt.Errorf("write share message: %w", err)
	}
	if msg.URL != "" {
		if _, err := fmt.Fprintln(s.W, msg.URL); err != nil {
			return fmt.Errorf("write share url: %w", err)
		}
	}
	return nil
}

// Send shares msg in the background. Failures are logged and never
// returned. The returned channel is closed once the attempt finishes.
func Send(ctx context.Context, sharer Sharer, msg Message, logger logging.Logger) <-chan struct{} {
	if logger == nil {
		logger = logging.Discard()
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := sharer.Share(ctx, msg); err != nil {
			logger.Error("Error sharing", "title", msg.Title, "error", err)
			return
		}
		logger.Debug("Shared", "title", msg.Title)
	}()
	return done
}
