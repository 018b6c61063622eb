package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"phoebe/internal/config"
	"phoebe/internal/paramfile"
	"phoebe/internal/session"
	"phoebe/pkg/logging"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// HeadlessEnvVar makes the console skip its interactive loop when set to a
// non-empty value.
const HeadlessEnvVar = "PHOEBE_HEADLESS"

const noticeWidth = 72

// ParameterSource lists the parameters of the loaded model.
type ParameterSource interface {
	Parameters() []paramfile.Parameter
	// Source is the file the parameters came from, empty if none.
	Source() string
}

// SettingsStore persists the option registry.
type SettingsStore interface {
	Save(reg *config.Registry) error
	Path() string
}

// lineReader is the part of readline the loop needs.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

// newLineReader is a seam for tests.
var newLineReader = func(in io.ReadCloser, out io.Writer, prompt string) (lineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		Stdin:           in,
		Stdout:          out,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, err
	}
	return rl, nil
}

// ConsoleOptions configures a Console.
type ConsoleOptions struct {
	Out         io.Writer
	In          io.ReadCloser
	Headless    bool
	Interactive bool // show spinners; normally true only on a terminal
	Parameters  ParameterSource
	Registry    *config.Registry
	Store       SettingsStore
	Session     *session.Session
}

// Console is a terminal Host.
type Console struct {
	mu          sync.Mutex
	opts        ConsoleOptions
	initialized bool
	reader      lineReader
}

// NewConsole creates a console host.
func NewConsole(opts ConsoleOptions) *Console {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	return &Console{opts: opts}
}

// Init implements Host.
func (c *Console) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.opts.Registry == nil {
		return errors.New("console requires an option registry")
	}
	c.initialized = true
	logging.Debug("Console", "Console host initialized (headless=%t, interactive=%t)", c.opts.Headless, c.opts.Interactive)
	return nil
}

// Notice implements Host.
func (c *Console) Notice(title, body string) {
	c.printf("\n%s\n%s\n\n",
		text.Colors{text.Bold, text.FgCyan}.Sprint(title),
		text.WrapSoft(body, noticeWidth))
}

// OpenSettingsDialog implements Host.
func (c *Console) OpenSettingsDialog() {
	tw := table.NewWriter()
	tw.SetTitle("Settings")
	tw.AppendHeader(table.Row{"Option", "Value", "Default"})
	for _, name := range c.opts.Registry.Names() {
		opt, _ := c.opts.Registry.Get(name)
		tw.AppendRow(table.Row{name, opt.Value, opt.Default})
	}
	tw.SetStyle(table.StyleLight)

	c.printf("%s\n%s\n", tw.Render(),
		text.FgHiBlack.Sprint("Use 'set OPTION VALUE' to change a setting and 'save' to store it permanently."))
}

// RefreshTreeviews implements Host.
func (c *Console) RefreshTreeviews() {
	if c.opts.Parameters == nil {
		return
	}
	params := c.opts.Parameters.Parameters()
	if len(params) == 0 {
		c.printf("%s\n", text.FgHiBlack.Sprint("No model parameters loaded."))
		return
	}

	tw := table.NewWriter()
	if src := c.opts.Parameters.Source(); src != "" {
		tw.SetTitle(src)
	}
	tw.AppendHeader(table.Row{"Qualifier", "Value"})
	for _, p := range params {
		tw.AppendRow(table.Row{p.Qualifier, p.Value})
	}
	tw.SetStyle(table.StyleLight)
	c.printf("%s\n", tw.Render())
}

// SyncWidgetValues implements Host.
func (c *Console) SyncWidgetValues() {
	if c.opts.Session == nil {
		return
	}
	state := c.opts.Session.State()
	if !state.FileFlag {
		c.printf("Session: %s\n", text.FgHiBlack.Sprint("no parameter file"))
		return
	}
	c.printf("Session: %s\n", text.FgGreen.Sprint(state.FileName))
}

// showSession prints the session details.
func (c *Console) showSession() {
	if c.opts.Session == nil {
		return
	}
	s := c.opts.Session
	state := s.State()

	file, loaded := "-", "-"
	if state.FileFlag {
		file = state.FileName
		loaded = s.LoadedAt().Format(time.DateTime)
	}

	tw := table.NewWriter()
	tw.SetTitle("Session")
	tw.AppendRows([]table.Row{
		{"ID", s.ID()},
		{"Started", s.Started().Format(time.DateTime)},
		{"Parameter file", file},
		{"Loaded at", loaded},
	})
	tw.SetStyle(table.StyleLight)
	c.printf("%s\n", tw.Render())
}

// Output implements Host.
func (c *Console) Output(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	c.printf("%s\n", text.FgYellow.Sprint(strings.TrimRight(msg, "\n")))
}

// Busy implements Host. The spinner only runs on interactive consoles.
func (c *Console) Busy(label string) func() {
	if !c.opts.Interactive {
		logging.Debug("Console", "%s", label)
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(c.opts.Out))
	s.Suffix = " " + label
	s.Start()
	return s.Stop
}

// Run implements Host. It reads commands until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	if c.opts.Headless {
		logging.Info("Console", "Headless mode, skipping the interactive loop")
		return nil
	}

	reader, err := newLineReader(c.opts.In, c.opts.Out, "phoebe> ")
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	c.mu.Lock()
	c.reader = reader
	c.mu.Unlock()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			// Closing the reader unblocks a pending Readline.
			reader.Close()
		case <-stop:
		}
	}()

	c.printf("Type 'help' for available commands.\n")
	for {
		line, err := reader.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		quit, err := c.execute(line)
		if err != nil {
			c.Output("Error: %v", err)
		}
		if quit {
			return nil
		}
	}
}

// Teardown implements Host.
func (c *Console) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reader != nil {
		c.reader.Close()
		c.reader = nil
	}
	c.initialized = false
	logging.Debug("Console", "Console host torn down")
}

func (c *Console) execute(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "quit", "exit":
		return true, nil
	case "help":
		c.printf("%s", consoleHelp)
	case "params":
		c.RefreshTreeviews()
	case "settings":
		c.OpenSettingsDialog()
	case "session":
		c.showSession()
	case "set":
		if len(fields) < 3 {
			return false, errors.New("usage: set OPTION VALUE")
		}
		value := strings.Join(fields[2:], " ")
		if err := c.opts.Registry.Set(fields[1], value); err != nil {
			return false, err
		}
		c.printf("%s = %s\n", fields[1], value)
	case "reset":
		if len(fields) > 1 {
			return false, c.resetOption(fields[1])
		}
		c.opts.Registry.Reset()
		c.printf("All settings reset to their defaults\n")
	case "save":
		return false, c.save(len(fields) > 1 && fields[1] == "-f")
	default:
		return false, fmt.Errorf("unknown command %q, type 'help'", fields[0])
	}
	return false, nil
}

func (c *Console) resetOption(name string) error {
	opt, ok := c.opts.Registry.Get(name)
	if !ok {
		return fmt.Errorf("option %s is not registered", name)
	}
	if err := c.opts.Registry.SetValue(name, opt.Default); err != nil {
		return err
	}
	c.printf("%s = %v\n", name, opt.Default)
	return nil
}

// save honors GUI_CONFIRM_ON_OVERWRITE: with the option on, an existing
// file is only replaced by "save -f".
func (c *Console) save(force bool) error {
	if c.opts.Store == nil {
		return errors.New("no settings store configured")
	}
	confirm, err := c.opts.Registry.Bool(config.OptionConfirmOnOverwrite)
	if err != nil {
		confirm = true
	}
	if confirm && !force {
		if _, err := os.Stat(c.opts.Store.Path()); err == nil {
			return fmt.Errorf("%s exists, use 'save -f' to overwrite", c.opts.Store.Path())
		}
	}
	if err := c.opts.Store.Save(c.opts.Registry); err != nil {
		return err
	}
	c.printf("Settings saved to %s\n", c.opts.Store.Path())
	return nil
}

func (c *Console) printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.opts.Out, format, args...)
}

const consoleHelp = `Commands:
  params               list the parameters of the loaded model
  session              show the session details
  settings             show the settings
  set OPTION VALUE     change a setting
  reset [OPTION]       restore one or all settings to their defaults
  save [-f]            store the settings permanently
  quit                 leave PHOEBE
`
