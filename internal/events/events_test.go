package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incidentapi/internal/config"
	"incidentapi/internal/model"
)

type fakeRedis struct {
	channel string
	message interface{}
	err     error
}

func (f *fakeRedis) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.message = message
	return redis.NewIntResult(1, f.err)
}

func sampleEvent() Event {
	r := &model.Report{ID: "11111111-1111-1111-1111-111111111111", ReportReference: "100000001"}
	at := time.Date(2024, 6, 7, 12, 13, 0, 0, time.UTC)
	return New(ReportAmended, r, model.SourceNomis, ChangedStatus, at)
}

func TestNew(t *testing.T) {
	e := sampleEvent()

	assert.Equal(t, ReportAmended, e.EventType)
	assert.Equal(t, 1, e.Version)
	assert.Equal(t, "An incident report has been amended", e.Description)
	assert.Equal(t, "100000001", e.AdditionalInformation.ReportReference)
	assert.Equal(t, model.SourceNomis, e.AdditionalInformation.Source)
}

func TestEvent_JSON(t *testing.T) {
	b, err := json.Marshal(sampleEvent())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"eventType": "incident.report.amended",
		"version": 1,
		"description": "An incident report has been amended",
		"occurredAt": "2024-06-07T12:13:00Z",
		"additionalInformation": {
			"id": "11111111-1111-1111-1111-111111111111",
			"reportReference": "100000001",
			"source": "NOMIS",
			"whatChanged": "STATUS"
		}
	}`, string(b))
}

func TestRedisPublisher_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		metrics, err := NewMetrics(reg)
		require.NoError(t, err)
		client := &fakeRedis{}
		p := NewRedisPublisher(client, "incident-events", nil, metrics)

		require.NoError(t, p.Publish(ctx, sampleEvent()))

		assert.Equal(t, "incident-events", client.channel)
		payload, ok := client.message.([]byte)
		require.True(t, ok)
		var got Event
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, ReportAmended, got.EventType)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.published.WithLabelValues("incident.report.amended", "success")))
	})

	t.Run("broker error", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		metrics, err := NewMetrics(reg)
		require.NoError(t, err)
		p := NewRedisPublisher(&fakeRedis{err: errors.New("connection refused")}, "incident-events", nil, metrics)

		err = p.Publish(ctx, sampleEvent())

		assert.EqualError(t, err, "publish incident.report.amended: connection refused")
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.published.WithLabelValues("incident.report.amended", "error")))
	})

	t.Run("nil metrics", func(t *testing.T) {
		p := NewRedisPublisher(&fakeRedis{}, "c", nil, nil)
		assert.NoError(t, p.Publish(ctx, sampleEvent()))
	})
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), sampleEvent()))
}

func TestNewRedisClient_RequiresAddr(t *testing.T) {
	_, err := NewRedisClient(context.Background(), configWithoutAddr())
	assert.EqualError(t, err, "redis address is required")
}

func configWithoutAddr() config.RedisConfig {
	return config.RedisConfig{Channel: "incident-events"}
}
