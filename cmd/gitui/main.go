// Command gitui is self-dispatching: invoked normally it runs the
// terminal UI; invoked with --event_id/--type rebase it instead acts as
// Git's sequence editor, handing the todo-file path to the waiting parent
// over the rebaseipc channel and exiting once the parent signals
// shutdown.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/urfave/cli/v2"

	"github.com/theorlangur/gitui/internal/buildinfo"
	"github.com/theorlangur/gitui/internal/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	defer recoverPanic()

	app := &cli.App{
		Name:    "gitui",
		Usage:   "a terminal Git UI",
		Version: fmt.Sprintf("%s (%s, built by %s on %s)", buildinfo.Version(), buildinfo.Commit(), buildinfo.BuiltBy(), buildinfo.Date()),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "event_id", Usage: "rebase-editor IPC event id (internal use)"},
			&cli.StringFlag{Name: "type", Usage: "child process type, only \"rebase\" is recognized"},
			&cli.StringFlag{Name: "logfile", Usage: "write debug logs to this path"},
		},
		Action: runMain,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runMain(c *cli.Context) error {
	if logfile := c.String("logfile"); logfile != "" {
		_ = log.SetFile(logfile)
	}

	eventID := c.String("event_id")
	if eventID != "" {
		if c.String("type") != "rebase" {
			return fmt.Errorf("gitui: --event_id requires --type rebase")
		}
		if c.NArg() < 1 {
			return fmt.Errorf("gitui: --type rebase requires a todo file path argument")
		}
		return runSequenceEditor(eventID, c.Args().First())
	}

	return runUI(c.Args().First())
}

// recoverPanic is the top-level panic hook: it restores the terminal
// (disable raw mode, leave the alternate screen), logs the panic, and
// exits non-zero rather than leaving the terminal in raw mode.
func recoverPanic() {
	if r := recover(); r != nil {
		restoreTerminal()
		log.Errorf("panic: %v\n%s", r, debug.Stack())
		fmt.Fprintf(os.Stderr, "gitui: fatal error: %v\n", r)
		os.Exit(1)
	}
}
