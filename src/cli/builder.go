package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aetherspritee/kibun/src/journal"
	"github.com/aetherspritee/kibun/src/ui"
)

const (
	msgNotNumber  = "Invalid input. Please enter a number."
	msgOutOfRange = "Please enter a number between 1 and 5."
	msgSaved      = "Journal entry added and saved."
	msgSaveFailed = "Could not save the journal: %v. The entry is kept and will be saved with the next one."
)

// Builder collects one entry from the prompt and appends it to the store.
type Builder struct {
	store  *journal.Store
	prompt *Prompt
	ui     *ui.Renderer
	now    func() time.Time
	log    zerolog.Logger
}

// Build asks for every field. Free text is taken as typed; the mood is asked
// for again until it is an integer from 1 to 5.
func (b *Builder) Build() (journal.Entry, error) {
	now := b.now()

	questions := []string{
		"Entry Title: ",
		"Main Events: ",
		"How did you feel today? ",
		"Additional Notes: ",
		"Things I Wish to Forget: ",
	}
	answers := make([]string, len(questions))
	for i, q := range questions {
		a, err := b.prompt.Ask(q)
		if err != nil {
			return journal.Entry{}, err
		}
		answers[i] = a
	}

	mood, err := b.askMood()
	if err != nil {
		return journal.Entry{}, err
	}
	return journal.NewEntry(now, answers[0], answers[1], answers[2], answers[3], answers[4], mood), nil
}

func (b *Builder) askMood() (int, error) {
	for {
		input, err := b.prompt.Ask("Rate your mood (1-5): ")
		if err != nil {
			return 0, err
		}
		mood, err := journal.ParseMood(input)
		if err == nil {
			return mood, nil
		}
		b.prompt.Say(b.ui.Error(moodDiagnostic(err)))
	}
}

func moodDiagnostic(err error) string {
	if errors.Is(err, journal.ErrMoodOutOfRange) {
		return msgOutOfRange
	}
	return msgNotNumber
}

// Create builds an entry, stores it and prints the mood message. A failed
// save is reported here and returned wrapping journal.ErrIO.
func (b *Builder) Create() error {
	e, err := b.Build()
	if err != nil {
		return err
	}

	if err := b.store.Append(e); err != nil {
		b.log.Error().Err(err).Msg("entry not saved")
		b.prompt.Say(b.ui.Error(fmt.Sprintf(msgSaveFailed, err)))
		b.prompt.Say("")
		return err
	}

	mood, _ := e.MoodInt()
	b.log.Info().Str("date", e.Date).Int("mood", mood).Int("entries", b.store.Len()).Msg("entry added")
	b.prompt.Say(b.ui.Panel("Mood Message", journal.MoodMessage(mood), b.ui.MoodStyle(mood)))
	b.prompt.Say(b.ui.Success(msgSaved))
	b.prompt.Say("")
	return nil
}
