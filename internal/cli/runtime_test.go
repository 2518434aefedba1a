package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/metrics"
)

func TestWriteMetricsExposesRecordedSamples(t *testing.T) {
	collector, registry := metrics.NewCollector("dtwitter-cli", "test", "abc1234")
	collector.RecordAction("like", "success")
	collector.RecordAction("post", "failed")
	collector.RecordEngagementError("likes")
	collector.ObserveSyncDuration(120 * time.Millisecond)

	var buf bytes.Buffer
	if err := writeMetrics(&buf, registry); err != nil {
		t.Fatalf("writeMetrics: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`dtwitter_cli_actions_total{action="like",status="success"} 1`,
		`dtwitter_cli_actions_total{action="post",status="failed"} 1`,
		`dtwitter_cli_engagement_fetch_errors_total{metric="likes"} 1`,
		"dtwitter_cli_engagement_sync_duration_seconds_count 1",
		"dtwitter_cli_service_info",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("exposition missing %q:\n%s", want, out)
		}
	}
}

func TestWriteMetricsEmptyRegistryStillEncodes(t *testing.T) {
	_, registry := metrics.NewCollector("dtwitter-cli", "test", "abc1234")

	var buf bytes.Buffer
	if err := writeMetrics(&buf, registry); err != nil {
		t.Fatalf("writeMetrics: %v", err)
	}
	if !strings.Contains(buf.String(), "dtwitter_cli_service_info") {
		t.Errorf("service info gauge missing:\n%s", buf.String())
	}
}
