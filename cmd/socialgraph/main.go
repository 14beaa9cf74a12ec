// Command socialgraph builds the relation graphs around a set of seed accounts,
// analyses them and prints user, relationship and graph reports. Exports are
// written to disk or S3 when configured, and server.addr keeps the results
// available over GraphQL together with Prometheus metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/cluso-social/pkg/analysis"
	"github.com/dd0wney/cluso-social/pkg/config"
	"github.com/dd0wney/cluso-social/pkg/export"
	"github.com/dd0wney/cluso-social/pkg/graph"
	gql "github.com/dd0wney/cluso-social/pkg/graphql"
	"github.com/dd0wney/cluso-social/pkg/logging"
	"github.com/dd0wney/cluso-social/pkg/metrics"
	"github.com/dd0wney/cluso-social/pkg/provider"
	"github.com/dd0wney/cluso-social/pkg/report"
	"github.com/dd0wney/cluso-social/pkg/social"
	"github.com/dd0wney/cluso-social/pkg/visualization"
)

type options struct {
	configPath string
	migrate    bool
	importPath string
	quiet      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "socialgraph.yaml", "Path to the run configuration")
	flag.BoolVar(&opts.migrate, "migrate", false, "Apply the Postgres schema before the run")
	flag.StringVar(&opts.importPath, "import", "", "Dataset to import into Postgres before the run")
	flag.BoolVar(&opts.quiet, "quiet", false, "Do not print reports")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "socialgraph:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	start := time.Now()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger := logging.NewJSONLogger(stderr, cfg.Level())
	logging.SetDefaultLogger(logger)
	registry := metrics.NewRegistry()

	src, closeProvider, err := openProvider(ctx, cfg, opts, logger)
	if err != nil {
		return err
	}
	defer closeProvider()

	seeds, err := cfg.Identifiers()
	if err != nil {
		return err
	}

	store, err := graph.Build(ctx, src, cfg.NamespaceValue(), seeds, graph.BuildOptions{
		Logger:  logger,
		Metrics: registry,
	})
	if err != nil {
		return fmt.Errorf("build graphs: %w", err)
	}

	session := analysis.NewSession(logger, registry)
	analyzer := analysis.New(store, session, cfg.AnalysisOptions())
	if err := analyzer.Run(ctx); err != nil {
		return fmt.Errorf("analyse graphs: %w", err)
	}

	if !opts.quiet {
		if err := printReports(stdout, analyzer, cfg); err != nil {
			return err
		}
	}

	exportOpts, err := exportOptions(cfg)
	if err != nil {
		return err
	}
	if err := writeExports(ctx, store, cfg, exportOpts, logger, registry); err != nil {
		return err
	}

	for _, w := range session.Warnings() {
		logger.Warn("analysis warning", logging.String("warning", w.String()))
	}

	if cfg.Server.Addr == "" {
		return nil
	}
	return serve(ctx, analyzer, cfg, exportOpts, logger, registry, start)
}

// openProvider returns the configured activity source and its release function
func openProvider(ctx context.Context, cfg *config.Config, opts options, logger logging.Logger) (social.ActivityProvider, func(), error) {
	switch cfg.Provider.Kind {
	case config.ProviderPostgres:
		pg, err := provider.NewPostgres(ctx, cfg.Provider.DSN, logger)
		if err != nil {
			return nil, nil, err
		}
		if opts.migrate {
			if err := pg.Migrate(ctx); err != nil {
				pg.Close()
				return nil, nil, err
			}
		}
		if opts.importPath != "" {
			ds, err := provider.LoadDataset(opts.importPath)
			if err == nil {
				err = pg.Import(ctx, ds)
			}
			if err != nil {
				pg.Close()
				return nil, nil, err
			}
			logger.Info("dataset imported", logging.Path(opts.importPath))
		}
		return pg, pg.Close, nil

	default:
		ds, err := provider.LoadDataset(cfg.Provider.Path)
		if err != nil {
			return nil, nil, err
		}
		mem, err := provider.FromDataset(ds)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("dataset loaded",
			logging.Path(cfg.Provider.Path),
			logging.Count(len(ds.Users)),
		)
		return mem, func() {}, nil
	}
}

// printReports writes a user report per seed, a relationship report per seed
// pair and a graph report per relation.
func printReports(w io.Writer, a *analysis.Analyzer, cfg *config.Config) error {
	seeds := a.Store().Seeds()

	for _, u := range seeds {
		r, err := a.UserReport(social.RefUser(u), cfg.Analysis.Keywords)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, report.User(r))
	}

	for i := range seeds {
		for j := i + 1; j < len(seeds); j++ {
			r, err := a.RelationshipReport(social.RefUser(seeds[i]), social.RefUser(seeds[j]), analysis.AllSections())
			if err != nil {
				return err
			}
			fmt.Fprintln(w, report.Relationship(r))
		}
	}

	for _, rel := range graph.Relations {
		r, err := a.GraphReport(rel, cfg.Analysis.Top)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, report.Graph(r))
	}
	return nil
}

func exportOptions(cfg *config.Config) (export.Options, error) {
	layout, err := visualization.New(cfg.LayoutKind(), visualization.DefaultLayoutConfig())
	if err != nil {
		return export.Options{}, err
	}
	return export.Options{Layout: layout}, nil
}

func writeExports(ctx context.Context, store *graph.Store, cfg *config.Config, opts export.Options, logger logging.Logger, registry *metrics.Registry) error {
	var sinks []export.Sink
	if cfg.Export.Dir != "" {
		sinks = append(sinks, export.NewFileSink(cfg.Export.Dir, cfg.Export.Compress))
	}
	if cfg.Export.S3Bucket != "" {
		s3, err := export.NewS3Sink(ctx, cfg.Export.S3Bucket, cfg.Export.S3Prefix, cfg.Export.Compress)
		if err != nil {
			return err
		}
		sinks = append(sinks, s3)
	}
	if len(sinks) == 0 {
		return nil
	}

	written, err := export.NewWriter(opts, logger, registry, sinks...).WriteAll(ctx, store)
	if err != nil {
		return fmt.Errorf("export graphs: %w", err)
	}
	logger.Info("exports written", logging.Count(len(written)))
	return nil
}

// serve exposes the analysis over GraphQL until ctx is cancelled
func serve(ctx context.Context, a *analysis.Analyzer, cfg *config.Config, exportOpts export.Options, logger logging.Logger, registry *metrics.Registry, start time.Time) error {
	schemaOpts := gql.DefaultSchemaOptions()
	schemaOpts.Export = exportOpts
	schema, err := gql.GenerateSchema(a, schemaOpts)
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", gql.Chain(gql.NewGraphQLHandler(schema, logger, registry), gql.LimitBody(gql.DefaultMaxBodyBytes)))
	mux.Handle("/metrics", promhttp.HandlerFor(registry.GetPrometheusRegistry(), promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           gql.Chain(mux, gql.Recover(logger), gql.Instrument(registry)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			registry.UpdateSystemMetrics(start)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", logging.String("addr", cfg.Server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}
