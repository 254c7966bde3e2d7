package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"topicflow/internal/config"
	"topicflow/internal/debug"
	"topicflow/internal/graph"
	"topicflow/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	versionFlag := flag.Bool("version", false, "Print version information and exit")
	dbPathFlag := flag.String("db", config.GetString(config.KeyDatabasePath), "Path to the topic database")
	topicFileFlag := flag.String("topic", config.GetString(config.KeyTopicFile), "Path to a JSON topic file (used instead of -db)")
	showImpliedFlag := flag.Bool("show-implied", config.GetBool(config.KeyShowImpliedEdges), "Show edges implied by their components")
	exportFlag := flag.String("export", "", "Print the diagram as mermaid or json and exit")
	diagramFlag := flag.String("diagram", graph.RootDiagramID, "Diagram to export")
	initDBFlag := flag.String("init-db", "", "Create a database at this path seeded from -topic, then exit")
	watchFlag := flag.Bool("watch", config.GetBool(config.KeyTopicWatch), "Reload the topic when its file changes")
	debugFlag := flag.Bool("debug", false, "Write debug logs to ~/.topicflow/debug.log")
	flag.Parse()

	if *versionFlag {
		printVersion(os.Stdout)
		os.Exit(0)
	}

	visited := map[string]struct{}{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})

	runtime := computeRuntimeOptions(runtimeFlags{
		dbPath:      dbPathFlag,
		topicFile:   topicFileFlag,
		showImplied: showImpliedFlag,
		export:      exportFlag,
		diagram:     diagramFlag,
		initDB:      initDBFlag,
		watch:       watchFlag,
		debug:       debugFlag,
	}, visited)

	if err := debug.Init(runtime.debug); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug logging disabled: %v\n", err)
	}
	defer debug.Close()

	if err := run(context.Background(), runtime, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		debug.Close()
		os.Exit(1)
	}
}

// run dispatches to the database seeder, the exporter or the UI.
func run(ctx context.Context, runtime runtimeOptions, out io.Writer) error {
	switch {
	case runtime.initDB != "":
		return initDatabase(ctx, runtime, out)
	case runtime.export != "":
		return runExport(ctx, runtime, out)
	}

	src, err := openSource(runtime)
	if err != nil {
		return err
	}
	store, err := buildStore(ctx, src, runtime.showImplied)
	if err != nil {
		return err
	}
	if runtime.watch && src.loader != nil {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		w, err := watchSource(watchCtx, src, store)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
	}
	appCfg := ui.Config{
		Store:      store,
		Viewport:   viewportOptions(),
		MinZoom:    config.Viewport().MinZoom,
		SourceName: src.name,
		Version:    Version,
		Theme:      config.GetString(config.KeyTheme),
	}
	return runProgram(appCfg, ui.NewApp, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen())
	})
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

func runProgram(cfg ui.Config, builder func(ui.Config) (*ui.App, error), factory programFactory) error {
	app, err := builder(cfg)
	if err != nil {
		return fmt.Errorf("initialize UI: %w", err)
	}
	defer app.Close()
	if factory == nil {
		return errors.New("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return errors.New("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}

type runtimeFlags struct {
	dbPath      *string
	topicFile   *string
	showImplied *bool
	export      *string
	diagram     *string
	initDB      *string
	watch       *bool
	debug       *bool
}

type runtimeOptions struct {
	dbPath      string
	topicFile   string
	showImplied bool
	export      string
	diagram     string
	initDB      string
	watch       bool
	debug       bool
}

// computeRuntimeOptions layers explicitly set flags over configuration.
func computeRuntimeOptions(flags runtimeFlags, visited map[string]struct{}) runtimeOptions {
	dbPath := strings.TrimSpace(config.GetString(config.KeyDatabasePath))
	if flagWasExplicitlySet("db", visited) {
		dbPath = strings.TrimSpace(*flags.dbPath)
	}

	topicFile := strings.TrimSpace(config.GetString(config.KeyTopicFile))
	if flagWasExplicitlySet("topic", visited) {
		topicFile = strings.TrimSpace(*flags.topicFile)
	}

	showImplied := config.GetBool(config.KeyShowImpliedEdges)
	if flagWasExplicitlySet("show-implied", visited) {
		showImplied = *flags.showImplied
	}

	watch := config.GetBool(config.KeyTopicWatch)
	if flagWasExplicitlySet("watch", visited) {
		watch = *flags.watch
	}

	diagram := graph.RootDiagramID
	if flags.diagram != nil && strings.TrimSpace(*flags.diagram) != "" {
		diagram = strings.TrimSpace(*flags.diagram)
	}

	opts := runtimeOptions{
		dbPath:      dbPath,
		topicFile:   topicFile,
		showImplied: showImplied,
		watch:       watch,
		diagram:     diagram,
	}
	if flags.export != nil {
		opts.export = strings.TrimSpace(*flags.export)
	}
	if flags.initDB != nil {
		opts.initDB = strings.TrimSpace(*flags.initDB)
	}
	if flags.debug != nil {
		opts.debug = *flags.debug
	}
	return opts
}

func flagWasExplicitlySet(name string, visited map[string]struct{}) bool {
	if _, ok := visited[name]; ok {
		return true
	}
	f := flag.CommandLine.Lookup(name)
	if f == nil {
		return false
	}
	return f.Value.String() != f.DefValue
}
