package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aetherspritee/kibun/src/journal"
	"github.com/aetherspritee/kibun/src/ui"
)

var menuOptions = []string{
	"Create a new journal entry",
	"View all journal entries",
	"Search entries by mood",
	"Exit",
}

// Options wire an App. In, Out and Now default to stdin, stdout and time.Now.
type Options struct {
	Store *journal.Store
	UI    *ui.Renderer
	In    io.Reader
	Out   io.Writer
	Log   zerolog.Logger
	Now   func() time.Time
}

// App is the interactive menu loop.
type App struct {
	prompt    *Prompt
	ui        *ui.Renderer
	log       zerolog.Logger
	builder   *Builder
	presenter *Presenter
}

func New(opts Options) *App {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	prompt := NewPrompt(opts.In, opts.Out)
	return &App{
		prompt: prompt,
		ui:     opts.UI,
		log:    opts.Log,
		builder: &Builder{
			store:  opts.Store,
			prompt: prompt,
			ui:     opts.UI,
			now:    opts.Now,
			log:    opts.Log,
		},
		presenter: &Presenter{
			store:  opts.Store,
			prompt: prompt,
			ui:     opts.UI,
		},
	}
}

// Run shows the menu until Exit is chosen or input ends. Bad choices and
// failed saves are reported and the menu comes back.
func (a *App) Run() error {
	for {
		a.prompt.Say(a.ui.Menu("Personal Journal Menu:", menuOptions))
		choice, err := a.prompt.Ask(fmt.Sprintf("Select an option (1-%d): ", len(menuOptions)))
		if err != nil {
			return closed(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = a.builder.Create()
		case "2":
			a.presenter.ViewAll()
		case "3":
			err = a.presenter.SearchByMood()
		case "4":
			a.prompt.Say("Goodbye!")
			return nil
		default:
			a.prompt.Say("Invalid option. Please try again.")
			a.prompt.Say("")
		}

		switch {
		case err == nil:
		case errors.Is(err, journal.ErrIO):
			// already shown to the user, the entry waits in memory
		default:
			return closed(err)
		}
	}
}

// closed treats the end of input as a normal exit.
func closed(err error) error {
	if errors.Is(err, ErrInputClosed) {
		return nil
	}
	return err
}
