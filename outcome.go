package osm2cs2

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// OutcomeReason explains what happened to a feature during conversion
type OutcomeReason string

const (
	OutcomeKept                 = OutcomeReason("kept")
	OutcomeMalformedCoordinates = OutcomeReason("malformed_coordinates")
	OutcomeDegenerate           = OutcomeReason("degenerate")
	OutcomeOutsideMap           = OutcomeReason("outside_map")
	OutcomeGeometryFailure      = OutcomeReason("geometry_failure")
	OutcomeExternalClamped      = OutcomeReason("external_clamped")
)

// FeatureKind is kind of source feature
type FeatureKind string

const (
	KindRoad     = FeatureKind("road")
	KindRailway  = FeatureKind("railway")
	KindWaterway = FeatureKind("waterway")
	KindStop     = FeatureKind("stop")
	KindRoute    = FeatureKind("route")
)

// Outcome is result of converting one source feature
type Outcome struct {
	Kind   FeatureKind
	ID     int64
	Kept   bool
	Pieces int
	Reason OutcomeReason
}

const maxOutcomeExamples = 3

type outcomeInfo struct {
	count    int
	examples []int64
}

// OutcomeCollector gathers per-feature outcomes. Safe for concurrent use.
type OutcomeCollector struct {
	sync.Mutex
	outcomes []Outcome
	byReason map[OutcomeReason]*outcomeInfo
}

// NewOutcomeCollector creates empty collector
func NewOutcomeCollector() *OutcomeCollector {
	return &OutcomeCollector{
		outcomes: make([]Outcome, 0),
		byReason: make(map[OutcomeReason]*outcomeInfo),
	}
}

// Add records outcome
func (collector *OutcomeCollector) Add(outcome Outcome) {
	collector.Lock()
	defer collector.Unlock()
	collector.outcomes = append(collector.outcomes, outcome)
	info, ok := collector.byReason[outcome.Reason]
	if !ok {
		info = &outcomeInfo{examples: make([]int64, 0, maxOutcomeExamples)}
		collector.byReason[outcome.Reason] = info
	}
	info.count++
	if len(info.examples) < maxOutcomeExamples {
		info.examples = append(info.examples, outcome.ID)
	}
}

// Count returns number of outcomes with given reason
func (collector *OutcomeCollector) Count(reason OutcomeReason) int {
	collector.Lock()
	defer collector.Unlock()
	info, ok := collector.byReason[reason]
	if !ok {
		return 0
	}
	return info.count
}

// Outcomes returns copy of every recorded outcome in insertion order
func (collector *OutcomeCollector) Outcomes() []Outcome {
	collector.Lock()
	defer collector.Unlock()
	result := make([]Outcome, len(collector.outcomes))
	copy(result, collector.outcomes)
	return result
}

// LogSummary writes one line per reason with count and a few example IDs
func (collector *OutcomeCollector) LogSummary(logger *zap.Logger) {
	collector.Lock()
	defer collector.Unlock()
	if len(collector.byReason) == 0 {
		return
	}
	reasons := make([]string, 0, len(collector.byReason))
	for reason := range collector.byReason {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		info := collector.byReason[OutcomeReason(reason)]
		fields := []zap.Field{
			zap.String("reason", reason),
			zap.Int("count", info.count),
			zap.Int64s("examples", info.examples),
		}
		if OutcomeReason(reason) == OutcomeKept || OutcomeReason(reason) == OutcomeExternalClamped {
			logger.Info("Features converted", fields...)
			continue
		}
		logger.Warn("Features skipped: "+strings.ReplaceAll(reason, "_", " "), fields...)
	}
}
