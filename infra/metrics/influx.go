package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/ygoas29/fieldway/core/metrics"
	"github.com/ygoas29/fieldway/infra/logger"
)

// InfluxSink writes engine events to an InfluxDB instance using the official
// client.
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

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
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

// RecordSlotGeneration writes one slot generation request as a point.
func (s *InfluxSink) RecordSlotGeneration(ev coremetrics.SlotGeneration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("slot_generation").
		AddTag("vendor_id", ev.VendorID).
		AddTag("service_id", ev.ServiceID).
		AddTag("component", "engine").
		AddField("customer_location", ev.CustomerLocation).
		AddField("days", ev.Days).
		AddField("candidates", ev.Candidates).
		AddField("best_score", round3(ev.BestScore)).
		AddField("elapsed_ms", round3(ev.Elapsed.Seconds()*1000)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordResolution writes one travel resolution as a point.
func (s *InfluxSink) RecordResolution(ev coremetrics.Resolution) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("travel_resolution").
		AddTag("source", ev.Source).
		AddTag("component", "resolver").
		AddField("from", ev.From).
		AddField("to", ev.To).
		AddField("duration_minutes", ev.DurationMinutes).
		AddField("confidence", round3(ev.Confidence)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordReschedule writes one reschedule decision as a point.
func (s *InfluxSink) RecordReschedule(ev coremetrics.Reschedule) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("reschedule_decision").
		AddTag("vendor_id", ev.VendorID).
		AddTag("action", ev.Action).
		AddTag("component", "advisor").
		AddField("booking_id", ev.BookingID).
		AddField("delta_minutes", ev.DeltaMinutes).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
