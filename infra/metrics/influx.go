package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kochimetro/induction/core/metrics"
	"github.com/kochimetro/induction/infra/logger"
)

// InfluxSink writes plan run summaries to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// when the health check fails, so a missing telemetry backend never blocks
// planning.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordPlanRun writes the summary of one recompute as a single point.
func (s *InfluxSink) RecordPlanRun(run coremetrics.PlanRun) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("induction_plan").
		AddTag("plan_id", run.PlanID).
		AddTag("planning_date", run.PlanningDate.Format("2006-01-02")).
		AddField("duration_ms", run.Duration.Milliseconds()).
		AddField("fleet_size", run.FleetSize).
		AddField("service", run.Service).
		AddField("standby", run.Standby).
		AddField("maintenance", run.Maintenance).
		AddField("cleaned", run.Cleaned).
		AddField("warnings", run.Warnings).
		SetTime(run.GeneratedAt)
	for status, n := range run.Excluded {
		p.AddField("excluded_"+strings.ToLower(status), n)
	}
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
