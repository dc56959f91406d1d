package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/chatcore/internal/client/recipients"
	"github.com/dmitrijs2005/chatcore/internal/common"
)

func (a *App) recents(ctx context.Context) error {
	groups, err := a.engine.Recents.Get(ctx)
	if err != nil {
		return err
	}

	out := make([][]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Strings())
	}
	return a.printJSON(out)
}

// forget removes the group of ids. The local identity is part of every
// stored group, so it is added when known.
func (a *App) forget(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: usage: forget <id>...", common.ErrInvalidRecipients)
	}

	group := recipients.New(ids...)
	if me := a.engine.Me.Get(); me != "" {
		group = group.With(me)
	}

	if err := a.engine.Recents.Remove(ctx, group); err != nil {
		return err
	}
	_, err := fmt.Fprintf(a.out, "forgot %s\n", group.Key())
	return err
}

func (a *App) prune(ctx context.Context) error {
	n, err := a.engine.ReadState.Prune(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "removed %d expired read markers\n", n)
	return err
}

func (a *App) options() error {
	return a.printJSON(a.engine.Options.Get())
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
