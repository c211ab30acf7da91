package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tLat87/SpiritLands/internal/bookmark"
	"github.com/tLat87/SpiritLands/internal/catalog"
	"github.com/tLat87/SpiritLands/internal/config"
	"github.com/tLat87/SpiritLands/internal/influx"
	"github.com/tLat87/SpiritLands/internal/logging"
	"github.com/tLat87/SpiritLands/internal/storage"
	"github.com/tLat87/SpiritLands/internal/storage/memory"
	"github.com/tLat87/SpiritLands/pkg/core"
)

// noStorage marks commands that run without the bookmark backend.
const noStorage = "noStorage"

// app is the application root. It owns every long-lived service and hands
// them to the commands explicitly.
type app struct {
	// flags
	configDir string
	kindFlag  string
	logLevel  string

	in    io.Reader
	out   io.Writer
	start time.Time

	kind    core.Kind
	command string

	logs    *logging.SlogManager
	logFile *os.File
	Logger  *slog.Logger
	zlog    zerolog.Logger

	backend   storage.Backend
	fallback  bool
	aircraft  *bookmark.Store[core.AircraftType]
	volcanoes *bookmark.Store[core.VolcanoType]
	usage     *influx.Manager

	unsubscribe []func()
}

func newApp(in io.Reader, out io.Writer) *app {
	return &app{
		in:     in,
		out:    out,
		start:  time.Now(),
		logs:   logging.NewSlogManager(),
		Logger: logging.Discard(),
		zlog:   zerolog.Nop(),
	}
}

// run executes the command line in args and releases every service before
// returning.
func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	a := newApp(in, out)
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)

	err := root.ExecuteContext(ctx)
	if closeErr := a.close(); closeErr != nil {
		fmt.Fprintln(os.Stderr, "shutdown:", closeErr)
	}
	return err
}

// setup loads configuration and starts logging, storage and telemetry.
func (a *app) setup(ctx context.Context, cmd *cobra.Command) error {
	a.command = cmd.Name()
	session := a.logs.Session()
	session.Set("command", a.command)
	session.Set("session", a.start.UTC().Format(time.RFC3339))

	cfgErr := config.Load(a.configDir)
	if cfgErr != nil && !errors.Is(cfgErr, config.ErrNoConfigFile) {
		return cfgErr
	}

	if err := a.setupLogging(); err != nil {
		return err
	}
	if cfgErr != nil {
		a.Logger.Debug(cfgErr.Error(), "configDir", a.configDir)
	}

	kindName := config.GetString("defaultKind")
	if cmd.Flags().Changed("kind") || kindName == "" {
		kindName = a.kindFlag
	}
	kind, err := core.ParseKind(kindName)
	if err != nil {
		return err
	}
	a.kind = kind
	session.Set("kind", string(kind))

	a.usage = influx.NewManager(config.GetInfluxConfig(), a.zlog)
	if err := a.usage.Connect(ctx); err != nil {
		a.Logger.Warn("Usage telemetry unavailable", "error", err)
	}

	if cmd.Annotations[noStorage] != "" {
		return nil
	}
	return a.setupStorage(ctx)
}

func (a *app) setupLogging() error {
	level := a.logLevel
	if level == "" {
		level = config.GetString("logLevel")
	}

	var file io.Writer
	zerologOut := io.Writer(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if dir := config.GetString("logsDir"); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
		f, err := os.OpenFile(logging.LogFilePath(dir, AppName, a.start), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		a.logFile = f
		file = f
		zerologOut = f
	}

	var graylog io.Writer
	var graylogErr error
	if gl := config.GetGraylogConfig(); gl.Enabled {
		w, err := logging.NewGraylogWriter(gl.Address)
		if err != nil {
			graylogErr = err
		} else {
			graylog = w
		}
	}

	a.logs.Setup(file, level, graylog)
	a.Logger = a.logs.Logger()
	a.zlog = logging.NewZerolog(zerolog.MultiLevelWriter(zerologOut), level)

	if graylogErr != nil {
		a.Logger.Warn("Graylog sink unavailable", "error", graylogErr)
	}
	return nil
}

// setupStorage opens the configured backend. A backend that cannot be
// created or initialized is replaced by an empty in-memory one so the
// catalog stays usable; bookmarks then last for this run only.
func (a *app) setupStorage(ctx context.Context) error {
	backend, err := a.openBackend()
	if err != nil {
		a.Logger.Error("Storage unavailable, keeping bookmarks in memory", "error", err)
		backend = memory.New(config.MemoryConfig{})
		if err := backend.Init(); err != nil {
			return err
		}
		a.fallback = true
	}
	a.backend = backend
	if local, ok := backend.(interface{ IsLocal() bool }); ok && local.IsLocal() {
		a.Logger.Warn("Postgres unreachable, bookmarks stored in local SQLite")
	}

	storeLog := logging.NewZerologAdapter(a.zlog)
	if a.aircraft, err = bookmark.New[core.AircraftType](backend, storeLog); err != nil {
		return err
	}
	if a.volcanoes, err = bookmark.New[core.VolcanoType](backend, storeLog); err != nil {
		return err
	}
	a.aircraft.Load(ctx)
	a.volcanoes.Load(ctx)

	a.unsubscribe = append(a.unsubscribe,
		a.aircraft.Subscribe(func(items []core.Aircraft) {
			a.Logger.Debug("Bookmarks changed", "kind", core.KindAircraft, "count", len(items))
		}),
		a.volcanoes.Subscribe(func(items []core.Volcano) {
			a.Logger.Debug("Bookmarks changed", "kind", core.KindVolcano, "count", len(items))
		}),
	)
	return nil
}

func (a *app) openBackend() (storage.Backend, error) {
	backend, err := createStorageBackend(config.GetStorageConfig(), a.zlog)
	if err != nil {
		return nil, err
	}
	if err := backend.Init(); err != nil {
		if closeErr := backend.Close(); closeErr != nil {
			a.Logger.Debug("Closing failed backend", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	return backend, nil
}

// close waits for pending bookmark writes and shuts every service down.
func (a *app) close() error {
	for _, cancel := range a.unsubscribe {
		cancel()
	}
	if a.aircraft != nil {
		a.aircraft.Wait()
	}
	if a.volcanoes != nil {
		a.volcanoes.Wait()
	}
	if b, ok := a.backend.(interface{ GetLastDBWriteDuration() time.Duration }); ok {
		if d := b.GetLastDBWriteDuration(); d > 0 {
			a.zlog.Debug().Dur("duration", d).Msg("Last bookmark write")
		}
	}

	var errs []error
	if a.backend != nil {
		errs = append(errs, a.backend.Close())
	}
	if a.usage != nil {
		if a.command != "" {
			a.usage.Record(influx.CommandPoint(a.command, a.kind, time.Since(a.start), time.Now()))
		}
		errs = append(errs, a.usage.Close())
	}
	errs = append(errs, a.logs.Close())
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}

// view pairs the catalog of one kind with its bookmark store.
type view[C core.Category] struct {
	catalog *catalog.Catalog[C]
	store   *bookmark.Store[C]
}

func (a *app) aircraftView() view[core.AircraftType] {
	return view[core.AircraftType]{catalog: catalog.Aircraft(), store: a.aircraft}
}

func (a *app) volcanoView() view[core.VolcanoType] {
	return view[core.VolcanoType]{catalog: catalog.Volcanoes(), store: a.volcanoes}
}

// isBookmarked is safe on commands that run without storage.
func (v view[C]) isBookmarked(id string) bool {
	return v.store != nil && v.store.IsBookmarked(id)
}
