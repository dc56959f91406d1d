package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dmitrijs2005/chatcore/internal/client/config"
	"github.com/dmitrijs2005/chatcore/internal/client/events"
	"github.com/dmitrijs2005/chatcore/internal/client/models"
	"github.com/dmitrijs2005/chatcore/internal/client/services"
	"github.com/dmitrijs2005/chatcore/internal/client/storage"
	"github.com/dmitrijs2005/chatcore/internal/logging"
	"github.com/dmitrijs2005/chatcore/internal/timex"
	"github.com/google/uuid"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB
	engine *services.Engine
	out    io.Writer
}

// NewApp opens the state database named by c, restores the local identity
// and options, and returns an App printing results to out and logs to
// logOut.
func NewApp(ctx context.Context, c *config.Config, out, logOut io.Writer) (*App, error) {
	log, err := logging.New(c.LogBackend, c.LogLevel, logOut)
	if err != nil {
		return nil, err
	}
	log = log.With("session", uuid.NewString())

	db, err := storage.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	bus := events.NewBus()
	bus.SubscribeAll(func(ev events.Event) {
		log.Debug(ctx, "state changed", "event", string(ev.Name))
	})

	engine := services.NewEngine(bus, storage.NewRepositories(db), log,
		services.WithOptions(models.Options{models.OptionTimeWindow: timex.Millis(c.TimeWindow)}))

	a := &App{config: c, log: log, db: db, engine: engine, out: out}
	if err := a.restore(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) restore(ctx context.Context) error {
	if err := a.engine.Me.Load(ctx); err != nil {
		return err
	}
	if err := a.engine.Options.Load(ctx); err != nil {
		return err
	}
	return nil
}

// Close waits for background work and releases the database.
func (a *App) Close() error {
	a.engine.Wait()
	if s, ok := a.log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
