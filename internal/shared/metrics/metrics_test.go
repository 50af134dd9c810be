package metrics

import (
	"strings"
	"testing"
)

func TestRenderDispatchCounters(t *testing.T) {
	Reset()
	IncDispatch("skill_gap", "ok")
	IncDispatch("skill_gap", "ok")
	IncDispatch("cover_letter", "upstream_error")

	out := Render()
	if !strings.Contains(out, `career_dispatch_total{type="skill_gap",outcome="ok"} 2`) {
		t.Fatalf("missing skill_gap counter:\n%s", out)
	}
	if !strings.Contains(out, `career_dispatch_total{type="cover_letter",outcome="upstream_error"} 1`) {
		t.Fatalf("missing cover_letter counter:\n%s", out)
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	Reset()
	ObserveUpstreamDurationMs(50)
	ObserveUpstreamDurationMs(300)
	ObserveUpstreamDurationMs(-5)

	out := Render()
	for _, want := range []string{
		`career_upstream_duration_ms_bucket{le="100"} 2`,
		`career_upstream_duration_ms_bucket{le="500"} 3`,
		`career_upstream_duration_ms_bucket{le="+Inf"} 3`,
		`career_upstream_duration_ms_sum 350`,
		`career_upstream_duration_ms_count 3`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
