package cli

import (
	"fmt"
	"strconv"

	"github.com/aetherspritee/kibun/src/journal"
	"github.com/aetherspritee/kibun/src/ui"
)

// Presenter lists entries and searches them by mood.
type Presenter struct {
	store  *journal.Store
	prompt *Prompt
	ui     *ui.Renderer
}

// Rows turns entries into table cells numbered from 1, in column order
// No., Date, Title, Events, Feelings, Mood, Forget, Notes.
func Rows(entries []journal.Entry) [][]string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			e.Date,
			e.Title,
			e.Events,
			e.Feelings,
			e.MoodText(),
			e.Forget,
			e.Notes,
		}
	}
	return rows
}

// RenderAll is the full journal as a table, or a notice when it is empty.
func (p *Presenter) RenderAll() string {
	entries := p.store.Entries()
	if len(entries) == 0 {
		return p.ui.Error("No journal entries found.") + "\n"
	}
	return p.ui.Table("Journal Entries", p.ui.EntryColumns(), Rows(entries))
}

// RenderMood is the table of entries with exactly mood, or a notice when none match.
func (p *Presenter) RenderMood(mood int) string {
	matches := p.store.ByMood(mood)
	if len(matches) == 0 {
		return p.ui.Warn(fmt.Sprintf("No entries found with mood rating %d.", mood)) + "\n"
	}
	return p.ui.Table(fmt.Sprintf("Journal Entries with Mood %d", mood), p.ui.EntryColumns(), Rows(matches))
}

func (p *Presenter) ViewAll() {
	p.prompt.Say(p.RenderAll())
}

// SearchByMood asks for a mood once. Bad input is reported and the search
// is dropped rather than asked again.
func (p *Presenter) SearchByMood() error {
	input, err := p.prompt.Ask("Enter the mood rating to search for (1-5): ")
	if err != nil {
		return err
	}
	mood, err := journal.ParseMood(input)
	if err != nil {
		p.prompt.Say(p.ui.Error(moodDiagnostic(err)))
		return nil
	}
	p.prompt.Say(p.RenderMood(mood))
	return nil
}
