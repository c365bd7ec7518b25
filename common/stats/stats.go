// Package stats provides a small set of instrument interfaces backed by go-metrics.
// We wrap go-metrics so callers pass a scoped StatsReceiver down the call tree
// instead of reaching for a global registry, and so the registry can be rendered
// as JSON by whoever owns it (the CLI, tests).
//
// Original license: github.com/rcrowley/go-metrics/blob/master/LICENSE
package stats

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/rcrowley/go-metrics"
	log "github.com/sirupsen/logrus"
)

// For testing.
var Time StatsTime = DefaultStatsTime()

//
// A registry wrapper for metrics that will be collected about the runtime
// behaviour of containers, locators and pipelines.
//
// Hierarchical names are stored using a '/' path separator. Variadic name
// elements have '/' characters replaced by "_SLASH_" before they are used.
//
type StatsReceiver interface {
	// Return a stats receiver that will automatically namespace elements with
	// the given scope args.
	//
	//   statsReceiver.Scope("foo", "bar").Counter("baz")  // is equivalent to
	//   statsReceiver.Counter("foo", "bar", "baz")
	//
	Scope(scope ...string) StatsReceiver

	// Provides an event counter
	Counter(name ...string) Counter

	// Add a gauge, which holds an int64 value that can be set arbitrarily.
	Gauge(name ...string) Gauge

	// Provides a timer; durations are recorded in nanoseconds.
	Latency(name ...string) Latency

	// Construct a JSON string by marshaling the registry.
	Render(pretty bool) []byte
}

// DefaultStatsReceiver returns a receiver over a fresh go-metrics registry.
func DefaultStatsReceiver() StatsReceiver {
	return NewCustomStatsReceiver(metrics.NewRegistry())
}

// NewCustomStatsReceiver wraps an existing go-metrics registry.
func NewCustomStatsReceiver(registry metrics.Registry) StatsReceiver {
	return &defaultStatsReceiver{registry: registry}
}

type defaultStatsReceiver struct {
	registry metrics.Registry
	scope    []string
}

func (s *defaultStatsReceiver) Scope(scope ...string) StatsReceiver {
	return &defaultStatsReceiver{s.registry, s.scoped(scope...)}
}

func (s *defaultStatsReceiver) Counter(name ...string) Counter {
	return metrics.GetOrRegisterCounter(s.scopedName(name...), s.registry)
}

func (s *defaultStatsReceiver) Gauge(name ...string) Gauge {
	return metrics.GetOrRegisterGauge(s.scopedName(name...), s.registry)
}

func (s *defaultStatsReceiver) Latency(name ...string) Latency {
	return &metricLatency{timer: metrics.GetOrRegisterTimer(s.scopedName(name...), s.registry)}
}

func (s *defaultStatsReceiver) Render(pretty bool) []byte {
	var buf bytes.Buffer
	metrics.WriteJSONOnce(s.registry, &buf)
	out := bytes.TrimSpace(buf.Bytes())
	if !pretty {
		return out
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, out, "", "  "); err != nil {
		log.Errorf("stats: cannot indent rendered registry: %v", err)
		return out
	}
	return indented.Bytes()
}

// Append to existing scope and scrub slashes
func (s *defaultStatsReceiver) scoped(scope ...string) []string {
	result := make([]string, 0, len(s.scope)+len(scope))
	result = append(result, s.scope...)
	for _, e := range scope {
		result = append(result, strings.Replace(e, "/", "_SLASH_", -1))
	}
	return result
}

// Append to the existing scope and convert to slash-delimited string.
func (s *defaultStatsReceiver) scopedName(scope ...string) string {
	return strings.Join(s.scoped(scope...), "/")
}

//
// NilStats ignores all stats operations.
//
func NilStatsReceiver() StatsReceiver {
	return &nilStatsReceiver{}
}

type nilStatsReceiver struct{}

func (s *nilStatsReceiver) Scope(scope ...string) StatsReceiver { return s }
func (s *nilStatsReceiver) Counter(name ...string) Counter      { return metrics.NilCounter{} }
func (s *nilStatsReceiver) Gauge(name ...string) Gauge          { return metrics.NilGauge{} }
func (s *nilStatsReceiver) Latency(name ...string) Latency {
	return &metricLatency{timer: metrics.NilTimer{}}
}
func (s *nilStatsReceiver) Render(pretty bool) []byte { return []byte("{}") }

//
// Minimally mirror go-metrics instruments.
//

// Counter
type Counter interface {
	Count() int64
	Dec(int64)
	Inc(int64)
}

// Gauge
type Gauge interface {
	Update(int64)
	Value() int64
}

// Latency. Time() starts a measurement, Stop() records it.
//
//   defer stat.Latency("refreshLatency_ms").Time().Stop()
//
type Latency interface {
	Time() Latency
	Stop()
	Count() int64
}

type metricLatency struct {
	timer metrics.Timer
	start time.Time
}

func (l *metricLatency) Time() Latency {
	return &metricLatency{timer: l.timer, start: Time.Now()}
}

func (l *metricLatency) Stop() {
	if l.start.IsZero() {
		return
	}
	l.timer.Update(Time.Since(l.start))
}

func (l *metricLatency) Count() int64 { return l.timer.Count() }
