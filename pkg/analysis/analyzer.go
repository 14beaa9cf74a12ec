package analysis

import (
	"context"

	"github.com/dd0wney/cluso-social/pkg/graph"
	"github.com/dd0wney/cluso-social/pkg/logging"
)

// Analyzer ties one built store to the metric engine, the community detector and
// the query components. Run must complete before rankings, measures or reports
// are requested; relationship queries only need the store.
type Analyzer struct {
	store   *graph.Store
	session *Session
	opts    Options

	engine        *MetricEngine
	detector      *CommunityDetector
	relationships *RelationshipAnalyzer

	metrics     map[graph.Relation]*GraphMetrics
	communities map[graph.Relation]*CommunityResult
}

// New creates an analyzer. A nil session starts a silent one.
func New(store *graph.Store, session *Session, opts Options) *Analyzer {
	if session == nil {
		session = NewSession(nil, nil)
	}
	return &Analyzer{
		store:         store,
		session:       session,
		opts:          opts,
		engine:        NewMetricEngine(session, opts),
		detector:      NewCommunityDetector(session, opts.Louvain),
		relationships: NewRelationshipAnalyzer(store),
	}
}

// Run computes metrics for all five graphs, waits for every one of them, then
// detects communities. Running again recomputes the same values.
func (a *Analyzer) Run(ctx context.Context) error {
	logger := a.session.Logger().With(logging.Component("analyzer"))
	timer := logging.StartTimer(logger, "analysis complete", logging.Count(len(a.store.Seeds())))

	metrics, err := a.engine.ComputeAll(ctx, a.store)
	if err != nil {
		timer.EndError(err)
		a.recordRun("error")
		return err
	}

	communities := make(map[graph.Relation]*CommunityResult, len(graph.Relations))
	for _, rel := range graph.Relations {
		if err := ctx.Err(); err != nil {
			a.recordRun("error")
			return err
		}
		g, err := a.store.Collapsed(rel)
		if err != nil {
			a.recordRun("error")
			return NewError("Run").Relation(rel).Cause(err).Err()
		}
		communities[rel] = a.detector.Detect(rel, g)
	}

	a.metrics = metrics
	a.communities = communities
	timer.End()
	a.recordRun("success")
	return nil
}

func (a *Analyzer) recordRun(status string) {
	if reg := a.session.Metrics(); reg != nil {
		reg.RecordRun(status)
	}
}

// Store returns the analysed store
func (a *Analyzer) Store() *graph.Store {
	return a.store
}

// Session returns the run session
func (a *Analyzer) Session() *Session {
	return a.session
}

// Relationships returns the pairwise query component
func (a *Analyzer) Relationships() *RelationshipAnalyzer {
	return a.relationships
}

// Analysed reports whether Run completed
func (a *Analyzer) Analysed() bool {
	return a.metrics != nil
}

// Metrics returns the metrics of one relation
func (a *Analyzer) Metrics(rel graph.Relation) (*GraphMetrics, error) {
	if !rel.Valid() {
		return nil, NewError("Metrics").Cause(ErrUnknownRelation).Context("relation %d", int(rel)).Err()
	}
	m, ok := a.metrics[rel]
	if !ok {
		return nil, NewError("Metrics").Relation(rel).Cause(ErrNotAnalysed).Err()
	}
	return m, nil
}

// Communities returns the partition of one relation
func (a *Analyzer) Communities(rel graph.Relation) (*CommunityResult, error) {
	if !rel.Valid() {
		return nil, NewError("Communities").Cause(ErrUnknownRelation).Context("relation %d", int(rel)).Err()
	}
	c, ok := a.communities[rel]
	if !ok {
		return nil, NewError("Communities").Relation(rel).Cause(ErrNotAnalysed).Err()
	}
	return c, nil
}

// analysed returns the collapsed graph of a relation once Run has completed
func (a *Analyzer) analysed(op string, rel graph.Relation) (*graph.Digraph, error) {
	if !rel.Valid() {
		return nil, NewError(op).Cause(ErrUnknownRelation).Context("relation %d", int(rel)).Err()
	}
	if _, ok := a.metrics[rel]; !ok {
		return nil, NewError(op).Relation(rel).Cause(ErrNotAnalysed).Err()
	}
	g, err := a.store.Collapsed(rel)
	if err != nil {
		return nil, NewError(op).Relation(rel).Cause(err).Err()
	}
	return g, nil
}
