package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"audioctl/internal/logging"
)

func newShellCmd() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell running audioctl subcommands",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			return runInteractiveShell(prompt, app)
		}),
	}
	cmd.Flags().StringVar(&prompt, "prompt", "audioctl> ", "shell prompt")
	return cmd
}

// runInteractiveShell reads commands until exit. Every command shares app, so
// the resolved card and port nodes stay cached for the whole session.
func runInteractiveShell(prompt string, app *App) error {
	historyFile := filepath.Join(os.TempDir(), "audioctl-shell.history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	saved := newApp
	newApp = func() (*App, error) { return app, nil }
	defer func() { newApp = saved }()

	sessionVerbosity := verbosity
	fmt.Println("Interactive shell started. Type 'help' for usage, 'exit' to quit.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Println()
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch line {
		case "exit", "quit":
			fmt.Println("Bye!")
			return nil
		case "help":
			printShellHelp()
			continue
		}
		tokens, err := shlex.Split(line)
		if err != nil {
			fmt.Printf("Parse error: %v\n", err)
			continue
		}
		runShellLine(tokens, &sessionVerbosity)
	}
}

// runShellLine dispatches one tokenized line. The session log level applies
// to every command and survives it; a -v given on a single command lasts for
// that command only.
func runShellLine(tokens []string, sessionVerbosity *int) {
	if len(tokens) == 0 {
		return
	}
	switch tokens[0] {
	case "log":
		if err := handleShellLog(tokens[1:], sessionVerbosity); err != nil {
			fmt.Printf("log: %v\n", err)
		}
		return
	case "shell":
		fmt.Println("Already inside the shell. Enter another command or 'exit' to quit.")
		return
	}

	if err := executeArgs(tokens, *sessionVerbosity); err != nil {
		fmt.Printf("command error: %v\n", err)
	}
	verbosity = *sessionVerbosity
	logging.SetVerbosity(*sessionVerbosity)
}

// executeArgs runs args through a fresh command tree starting at base -v.
func executeArgs(args []string, base int) error {
	if len(args) == 0 {
		return nil
	}
	root := NewRootCmd()
	if base > 0 {
		if err := root.PersistentFlags().Set("verbose", strconv.Itoa(base)); err != nil {
			return err
		}
	}
	root.SetArgs(args)
	return root.Execute()
}

func handleShellLog(args []string, sessionVerbosity *int) error {
	fs := pflag.NewFlagSet("log", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var vcount int
	var level string
	var show bool
	fs.CountVarP(&vcount, "verbose", "v", "Increase verbosity (-v... up to 4)")
	fs.StringVar(&level, "level", "", "level (error|warn|info|debug|trace)")
	fs.BoolVarP(&show, "show", "s", false, "show the current level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case show && vcount == 0 && level == "":
		fmt.Printf("log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	case level != "":
		_, count, err := logging.ParseLevel(level)
		if err != nil {
			return err
		}
		*sessionVerbosity = count
	case vcount > 0:
		*sessionVerbosity = vcount
	default:
		fmt.Printf("log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	}

	verbosity = *sessionVerbosity
	logging.SetVerbosity(*sessionVerbosity)
	fmt.Printf("log level set to %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
	return nil
}

func printShellHelp() {
	fmt.Println(`Examples:
  cards                          # resolve the configured card
  controls --describe            # list mixer controls with values
  volume set PCM 50              # set a control to 50%
  phantom set Mic-AN1 on         # enable 48V on an input
  route set Mic-AN1 0.8 -o main  # send an input to the main outputs
  profile set pro-audio          # switch the card profile
  quantum set 128                # force the graph buffer size
  settings show                  # show saved per-channel settings
  log -vv                        # more detailed logging
  log --show                     # show the current log level
  exit / quit                    # leave the shell`)
}
