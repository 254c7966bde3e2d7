package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"topicflow/internal/config"
	"topicflow/internal/debug"
	appErrors "topicflow/internal/errors"
	"topicflow/internal/export"
	"topicflow/internal/graph"
	"topicflow/internal/implication"
	"topicflow/internal/layout"
	"topicflow/internal/storage"
	"topicflow/internal/topic"
	"topicflow/internal/viewport"
	"topicflow/internal/visibility"
)

const newTopicLabel = "New problem"

// topicSource is where the UI or exporter reads its topic from.
type topicSource struct {
	name   string
	loader storage.Loader
}

func (s topicSource) load(ctx context.Context) (storage.Topic, error) {
	if s.loader == nil {
		return storage.NewTopic(newTopicLabel)
	}
	return s.loader.Load(ctx)
}

// openSource prefers a topic file over a database. With neither, the topic
// starts as a single empty problem.
func openSource(runtime runtimeOptions) (topicSource, error) {
	switch {
	case runtime.topicFile != "":
		f, err := storage.NewJSONFile(runtime.topicFile)
		if err != nil {
			return topicSource{}, err
		}
		return topicSource{name: f.Path(), loader: f}, nil
	case runtime.dbPath != "":
		db, err := storage.NewSQLiteStore(runtime.dbPath)
		if err != nil {
			return topicSource{}, err
		}
		return topicSource{name: db.Path(), loader: db}, nil
	}
	return topicSource{name: "new topic"}, nil
}

// compositionTable reads the configured composition rules, falling back to
// the built-in table when none are configured.
func compositionTable() (graph.CompositionTable, error) {
	if !config.IsSet(config.KeyCompositions) {
		return graph.DefaultCompositions(), nil
	}
	var table graph.CompositionTable
	if err := config.UnmarshalKey(config.KeyCompositions, &table); err != nil {
		return nil, appErrors.Wrap(appErrors.CodeConfigurationError, "compositions", err)
	}
	if len(table) == 0 {
		return graph.DefaultCompositions(), nil
	}
	if err := table.Validate(); err != nil {
		return nil, appErrors.Wrap(appErrors.CodeConfigurationError, "invalid "+config.KeyCompositions, err)
	}
	return table, nil
}

func layeredFromConfig() *layout.Layered {
	settings := config.Layout()
	return &layout.Layered{
		NodeWidth:   settings.NodeWidth,
		NodeHeight:  settings.NodeHeight,
		NodeSpacing: settings.NodeSpacing,
		RankSpacing: settings.RankSpacing,
	}
}

func viewportOptions() viewport.Options {
	l, vp := config.Layout(), config.Viewport()
	opts := viewport.DefaultOptions()
	opts.Margin = vp.Margin
	opts.NodeWidth = l.NodeWidth
	opts.NodeHeight = l.NodeHeight
	opts.MaxZoom = vp.MaxZoom
	opts.Duration = vp.Animation
	return opts
}

// buildStore loads the topic and wires the configured engine, filter and
// layout into a store. The store is not laid out yet.
func buildStore(ctx context.Context, src topicSource, showImplied bool) (*topic.Store, error) {
	if err := config.Validate(); err != nil {
		return nil, appErrors.Wrap(appErrors.CodeConfigurationError, "invalid configuration", err)
	}
	table, err := compositionTable()
	if err != nil {
		return nil, err
	}
	filter := visibility.NewFilter(implication.NewEngine(table))
	orchestrator := layout.NewOrchestrator(layeredFromConfig(), filter)

	loaded, err := src.load(ctx)
	if err != nil {
		return nil, err
	}
	debug.With("source", src.name, "diagrams", len(loaded)).Debug("topic loaded")
	return topic.NewStore(loaded,
		topic.WithFilter(filter),
		topic.WithOrchestrator(orchestrator),
		topic.WithShowImpliedEdges(showImplied),
	)
}

// watchSource reloads the store whenever the source file changes. The store
// publishes a topic-loaded event that the UI answers by fitting the view.
func watchSource(ctx context.Context, src topicSource, store *topic.Store) (*storage.Watcher, error) {
	return storage.NewWatcher(ctx, src.name, src.loader,
		func(t storage.Topic) {
			if err := store.Load(ctx, t); err != nil {
				debug.With("source", src.name, "error", err).Debug("reload rejected")
			}
		},
		func(err error) {
			debug.With("source", src.name, "error", err).Debug("watch error")
		},
	)
}

// runExport lays out the requested diagram, filters it and prints it.
func runExport(ctx context.Context, runtime runtimeOptions, out io.Writer) error {
	format, err := export.ParseFormat(runtime.export)
	if err != nil {
		return err
	}
	exporter, err := export.NewExporter(format)
	if err != nil {
		return err
	}
	src, err := openSource(runtime)
	if err != nil {
		return err
	}
	store, err := buildStore(ctx, src, runtime.showImplied)
	if err != nil {
		return err
	}
	if runtime.diagram != graph.RootDiagramID {
		if err := store.ViewClaimDiagram(runtime.diagram); err != nil {
			return err
		}
	}
	if err := store.Relayout(ctx); err != nil {
		return err
	}
	d, err := store.FilteredDiagram(runtime.diagram)
	if err != nil {
		return err
	}
	text, err := exporter.Export(d)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err = io.WriteString(out, text)
	return err
}

// initDatabase creates a database at runtime.initDB holding the -topic file,
// or a single empty problem without one. An existing file is left alone.
func initDatabase(ctx context.Context, runtime runtimeOptions, out io.Writer) error {
	if _, err := os.Stat(runtime.initDB); err == nil {
		return appErrors.Newf(appErrors.CodeStorageFailed, nil, "database already exists: %s", runtime.initDB)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return appErrors.Wrap(appErrors.CodeStorageFailed, "stat "+runtime.initDB, err)
	}

	src := topicSource{name: "new topic"}
	if runtime.topicFile != "" {
		f, err := storage.NewJSONFile(runtime.topicFile)
		if err != nil {
			return err
		}
		src = topicSource{name: f.Path(), loader: f}
	}
	seed, err := src.load(ctx)
	if err != nil {
		return err
	}

	db, err := storage.NewSQLiteStore(runtime.initDB)
	if err != nil {
		return err
	}
	if err := db.Save(ctx, seed); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Created %s from %s (%d diagrams)\n", db.Path(), src.name, len(seed))
	return err
}
