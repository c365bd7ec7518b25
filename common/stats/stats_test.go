package stats

import (
	"encoding/json"
	"testing"
	"time"
)

func TestScopeChange(t *testing.T) {
	stat := DefaultStatsReceiver().(*defaultStatsReceiver)
	if len(stat.scope) != 0 {
		t.Fatal("Default scope should be empty.")
	}

	statp := stat.Scope("a/b", "c").(*defaultStatsReceiver)
	if len(stat.scope) != 0 {
		t.Fatal("Default scope should still empty.")
	}
	if len(statp.scope) != 2 || statp.scope[0] != "a_SLASH_b" || statp.scope[1] != "c" {
		t.Fatal("Invalid scope value: ", statp.scope)
	}
	if statp.scopedName("d") != "a_SLASH_b/c/d" {
		t.Fatal("Invalid scope name: " + statp.scopedName("d"))
	}
}

func TestScopesShareRegistry(t *testing.T) {
	stat := DefaultStatsReceiver()
	stat.Scope("locator").Counter(LocatorAcquireCounter).Inc(2)
	if c := stat.Counter("locator", LocatorAcquireCounter).Count(); c != 2 {
		t.Fatalf("expected scoped and unscoped names to meet; count was %d", c)
	}
}

func TestLatency(t *testing.T) {
	testTime := NewTestTime(time.Unix(0, 0))
	Time = testTime
	defer func() { Time = DefaultStatsTime() }()

	stat := DefaultStatsReceiver()
	l := stat.Latency(ContainerRefreshLatency_ms).Time()
	testTime.Advance(5 * time.Millisecond)
	l.Stop()
	if c := stat.Latency(ContainerRefreshLatency_ms).Count(); c != 1 {
		t.Fatalf("expected one recorded measurement; was %d", c)
	}

	// Stop without Time records nothing.
	stat.Latency(ContainerRefreshLatency_ms).Stop()
	if c := stat.Latency(ContainerRefreshLatency_ms).Count(); c != 1 {
		t.Fatalf("expected Stop without Time to be ignored; count was %d", c)
	}
}

func TestRender(t *testing.T) {
	stat := DefaultStatsReceiver()
	stat.Scope("pipeline").Counter(PipelineProcessedCounter).Inc(3)
	stat.Gauge(LocatorLiveContainersGauge).Update(1)

	for _, pretty := range []bool{false, true} {
		var rendered map[string]map[string]interface{}
		if err := json.Unmarshal(stat.Render(pretty), &rendered); err != nil {
			t.Fatalf("pretty=%v: render is not JSON: %v", pretty, err)
		}
		counter, ok := rendered["pipeline/"+PipelineProcessedCounter]
		if !ok || counter["count"] != float64(3) {
			t.Fatalf("pretty=%v: unexpected counter rendering %v", pretty, rendered)
		}
		gauge, ok := rendered[LocatorLiveContainersGauge]
		if !ok || gauge["value"] != float64(1) {
			t.Fatalf("pretty=%v: unexpected gauge rendering %v", pretty, rendered)
		}
	}
}

func TestNilStatsReceiver(t *testing.T) {
	stat := NilStatsReceiver().Scope("x")
	stat.Counter("c").Inc(1)
	if stat.Counter("c").Count() != 0 {
		t.Fatal("nil counter should not count")
	}
	stat.Latency("l").Time().Stop()
	if string(stat.Render(false)) != "{}" {
		t.Fatal("nil receiver should render an empty object")
	}
}
