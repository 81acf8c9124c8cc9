package detect

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chillbot-io/openlabels-sub003/pkg/config"
)

// Orchestrator runs a fixed set of detectors over input text and produces
// a single DetectionResult, grounded on original_source/core/detectors/
// orchestrator.py and spec.md §4.9/§5.
type Orchestrator struct {
	detectors         []Detector
	maxWorkers        int
	detectorTimeout   time.Duration
	enableCoref       bool
	policyPacks       []PolicyPack
	validationMode    ValidationMode
	confidenceFloor   float64
	overlapStrategy   OverlapStrategy
	logger            *log.Logger
}

// OrchestratorOption configures an Orchestrator at construction time.
type OrchestratorOption func(*Orchestrator)

func WithMaxWorkers(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxWorkers = n
		}
	}
}

func WithDetectorTimeout(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) { o.detectorTimeout = d }
}

func WithCoreference(enabled bool) OrchestratorOption {
	return func(o *Orchestrator) { o.enableCoref = enabled }
}

func WithPolicyPacks(packs []PolicyPack) OrchestratorOption {
	return func(o *Orchestrator) { o.policyPacks = packs }
}

func WithStrictValidation() OrchestratorOption {
	return func(o *Orchestrator) { o.validationMode = ValidationStrict }
}

func WithConfidenceFloor(f float64) OrchestratorOption {
	return func(o *Orchestrator) { o.confidenceFloor = f }
}

func WithLogger(l *log.Logger) OrchestratorOption {
	return func(o *Orchestrator) { o.logger = l }
}

func WithOverlapStrategy(s OverlapStrategy) OrchestratorOption {
	return func(o *Orchestrator) { o.overlapStrategy = s }
}

// parseOverlapStrategy maps the config package's string knob to the
// detect package's OverlapStrategy enum, defaulting to HigherConfidence
// for an empty or unrecognized value.
func parseOverlapStrategy(s string) OverlapStrategy {
	switch s {
	case "HIGHER_TIER":
		return HigherTier
	case "LONGER_SPAN":
		return LongerSpan
	default:
		return HigherConfidence
	}
}

// NewOrchestrator builds an Orchestrator from an explicit detector list
// (see registry.go's BuildDetectors) and options. Detectors whose
// IsAvailable() reports false are dropped immediately; they never
// participate in fan-out and are simply absent from DetectorsUsed.
func NewOrchestrator(detectors []Detector, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		maxWorkers:      DefaultMaxWorkers,
		detectorTimeout: DefaultDetectorTimeout,
		enableCoref:     true,
		validationMode:  ValidationLenient,
		confidenceFloor: DefaultConfidenceThreshold,
		overlapStrategy: HigherConfidence,
		logger:          log.Default(),
	}
	for _, d := range detectors {
		if d.IsAvailable() {
			o.detectors = append(o.detectors, d)
		}
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.maxWorkers > MaxDetectorWorkers {
		o.maxWorkers = MaxDetectorWorkers
	}
	return o
}

// Detect runs every registered detector over text and returns the fully
// post-processed result: calibrated confidences, overlap-resolved spans,
// optional coreference expansion, optional policy evaluation, and entity
// counts. Per spec.md §9, a single detector's failure or panic never
// fails the whole call — it is recorded as an absence from DetectorsUsed,
// logged, and the remaining detectors' spans are still returned.
func (o *Orchestrator) Detect(ctx context.Context, text string) (DetectionResult, error) {
	start := time.Now()
	requestID := uuid.NewString()

	if strings.TrimSpace(text) == "" {
		return DetectionResult{
			RequestID:        requestID,
			Spans:            []Span{},
			EntityCounts:     map[string]int{},
			DetectorsUsed:    []string{},
			ProcessingTimeMs: 0,
			TextLength:       len(text),
		}, nil
	}

	outcomes := o.runDetectors(ctx, text)

	var spans []Span
	var used []string
	for _, oc := range outcomes {
		if oc.Err != nil {
			o.logger.Printf("detect: detector %q failed: %v", oc.Name, oc.Err)
			continue
		}
		used = append(used, oc.Name)
		spans = append(spans, oc.Spans...)
	}

	spans = calibrateSpans(spans)
	spans = filterByConfidence(spans, o.confidenceFloor)
	spans = resolveSpans(text, spans, o.overlapStrategy)

	if o.enableCoref {
		spans = ruleBasedCoref(text, spans)
	}

	validated, err := validateSpans(text, spans, o.validationMode)
	if err != nil {
		return DetectionResult{}, fmt.Errorf("detect: %w", err)
	}
	spans = validated

	result := DetectionResult{
		RequestID:        requestID,
		Spans:            spans,
		EntityCounts:     entityCounts(spans),
		DetectorsUsed:    used,
		ProcessingTimeMs: float64(time.Since(start).Microseconds()) / 1000.0,
		TextLength:       len(text),
	}

	if len(o.policyPacks) > 0 {
		pr := EvaluatePolicies(o.policyPacks, spans)
		result.PolicyResult = &pr
	}

	return result, nil
}

// NewOrchestratorFromConfig builds an Orchestrator from a
// config.DetectionConfig: instantiates the named detectors via the
// registry and applies the config's worker/timeout/confidence/
// coreference/validation knobs.
func NewOrchestratorFromConfig(cfg *config.DetectionConfig) (*Orchestrator, error) {
	detectors, err := BuildDetectors(cfg.Detectors, false)
	if err != nil {
		return nil, err
	}
	opts := []OrchestratorOption{
		WithMaxWorkers(cfg.MaxWorkers),
		WithDetectorTimeout(cfg.DetectorTimeout),
		WithCoreference(cfg.EnableCoreference),
		WithConfidenceFloor(cfg.ConfidenceFloor),
		WithOverlapStrategy(parseOverlapStrategy(cfg.OverlapStrategy)),
	}
	if cfg.StrictValidation {
		opts = append(opts, WithStrictValidation())
	}
	return NewOrchestrator(detectors, opts...), nil
}

// runDetectors fans out across o.detectors using a buffered-channel
// semaphore sized to o.maxWorkers, per DESIGN.md Open Question 6: a
// semaphore plus a result channel rather than a persistent goroutine
// pool, since the set of detectors per call is small and fixed and
// max_workers = 1 degenerates cleanly to sequential execution.
func (o *Orchestrator) runDetectors(ctx context.Context, text string) []detectorOutcome {
	results := make(chan detectorOutcome, len(o.detectors))
	sem := make(chan struct{}, o.maxWorkers)

	for _, d := range o.detectors {
		d := d
		sem <- struct{}{}
		go func() {
			defer func() { <-sem }()
			results <- o.runOne(ctx, d, text)
		}()
	}

	outcomes := make([]detectorOutcome, 0, len(o.detectors))
	for range o.detectors {
		outcomes = append(outcomes, <-results)
	}
	return outcomes
}

// runOne runs a single detector under a per-detector timeout and converts
// any panic into a detectorOutcome error instead of letting it cross the
// goroutine boundary and crash the process — spec.md §9: "failures are
// data, not exceptions."
func (o *Orchestrator) runOne(ctx context.Context, d Detector, text string) (outcome detectorOutcome) {
	outcome.Name = d.Name()
	ctx, cancel := context.WithTimeout(ctx, o.detectorTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer func() {
			if r := recover(); r != nil {
				outcome.Err = fmt.Errorf("panic in detector %q: %v", d.Name(), r)
			}
			close(done)
		}()
		outcome.Spans = d.Detect(text)
	}()

	select {
	case <-done:
		return outcome
	case <-ctx.Done():
		return detectorOutcome{Name: d.Name(), Err: fmt.Errorf("detector %q timed out: %w", d.Name(), ctx.Err())}
	}
}

func filterByConfidence(spans []Span, floor float64) []Span {
	out := spans[:0]
	for _, s := range spans {
		if s.Confidence >= floor {
			out = append(out, s)
		}
	}
	return out
}

func entityCounts(spans []Span) map[string]int {
	counts := make(map[string]int)
	for _, s := range spans {
		counts[NormalizeEntityType(s.EntityType)]++
	}
	return counts
}
