package export

import (
	"context"
	"fmt"

	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/logging"
	"github.com/dd0wney/cluso-social/pkg/metrics"
)

// Written records one stored export
type Written struct {
	Relation graph.Relation
	Sink     string
	Location string
	Bytes    int
}

// Writer exports every relation of a store to a set of sinks
type Writer struct {
	sinks   []Sink
	opts    Options
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewWriter creates a writer. logger and registry may be nil.
func NewWriter(opts Options, logger logging.Logger, registry *metrics.Registry, sinks ...Sink) *Writer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Writer{
		sinks:   sinks,
		opts:    opts,
		logger:  logger.With(logging.Component("export")),
		metrics: registry,
	}
}

// WriteAll exports each relation and stores it in every sink. Relations
// without edges are skipped. Writing stops at the first sink error.
func (w *Writer) WriteAll(ctx context.Context, store *graph.Store) ([]Written, error) {
	var written []Written
	for _, rel := range graph.Relations {
		nl, err := Export(store, rel, w.opts)
		if err != nil {
			return written, fmt.Errorf("export %s: %w", rel, err)
		}
		if nl == nil {
			w.logger.Debug("graph has no edges, export skipped", logging.Relation(rel.String()))
			continue
		}
		data, err := nl.Marshal()
		if err != nil {
			return written, fmt.Errorf("encode %s: %w", rel, err)
		}

		for _, sink := range w.sinks {
			location, err := sink.Write(ctx, rel.String(), data)
			if err != nil {
				w.record(rel, sink, "error", 0)
				return written, fmt.Errorf("write %s to %s: %w", rel, sink.Name(), err)
			}
			w.record(rel, sink, "success", len(data))
			w.logger.Info("export written",
				logging.Relation(rel.String()),
				logging.String("sink", sink.Name()),
				logging.Path(location),
				logging.Int("nodes", len(nl.Nodes)),
				logging.Int("links", len(nl.Links)))
			written = append(written, Written{Relation: rel, Sink: sink.Name(), Location: location, Bytes: len(data)})
		}
	}
	return written, nil
}

func (w *Writer) record(rel graph.Relation, sink Sink, status string, size int) {
	if w.metrics != nil {
		w.metrics.RecordExport(rel.String(), sink.Name(), status, size)
	}
}
