package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/chatcore/internal/common"
)

const helpText = "Available commands: recents, forget <id>..., prune, options, help"

// Run executes the command named by args[0]. No command prints help.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.help()
	}

	cmd, rest := args[0], args[1:]
	a.log.Debug(ctx, "running command", "command", cmd, "args", rest)

	switch cmd {
	case "help":
		return a.help()
	case "recents":
		return a.recents(ctx)
	case "forget":
		return a.forget(ctx, rest)
	case "prune":
		return a.prune(ctx)
	case "options":
		return a.options()
	}
	return fmt.Errorf("%w: %s", common.ErrUnknownCommand, cmd)
}

func (a *App) help() error {
	_, err := fmt.Fprintln(a.out, helpText)
	return err
}
