package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/portfolio-analytics/internal/models"
	"github.com/trogers1052/portfolio-analytics/internal/provider"
)

// ---------------------------------------------------------------------------
// Mock reader
// ---------------------------------------------------------------------------

type mockReader struct {
	mu       sync.Mutex
	messages []kafkago.Message
	pos      int
	closed   bool
}

func (m *mockReader) ReadMessage(ctx context.Context) (kafkago.Message, error) {
	m.mu.Lock()
	if m.pos >= len(m.messages) {
		m.mu.Unlock()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := m.messages[m.pos]
	m.pos++
	m.mu.Unlock()
	return msg, nil
}

func (m *mockReader) Lag() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.messages) - m.pos)
}

func (m *mockReader) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockReader) Config() kafkago.ReaderConfig {
	return kafkago.ReaderConfig{Topic: "portfolio.snapshots"}
}

func newTestConsumer(msgs ...kafkago.Message) (*SnapshotConsumer, *mockReader) {
	reader := &mockReader{messages: msgs}
	for i := range reader.messages {
		reader.messages[i].Offset = int64(i)
	}
	return &SnapshotConsumer{reader: reader, log: zerolog.Nop()}, reader
}

func snapshotMessage(t *testing.T, event SnapshotEvent) kafkago.Message {
	t.Helper()
	value, err := json.Marshal(event)
	require.NoError(t, err)
	return kafkago.Message{Value: value}
}

func sampleEvent(symbol string) SnapshotEvent {
	return SnapshotEvent{
		EventType: SnapshotEventType,
		Source:    "portfolio-publisher",
		Timestamp: "2024-06-01T00:00:00Z",
		Data: SnapshotData{
			Holdings: []HoldingData{{
				Symbol:       symbol,
				CompanyName:  symbol + " Ltd",
				Quantity:     10,
				AvgPrice:     decimal.RequireFromString("100"),
				CurrentPrice: decimal.RequireFromString("110.5"),
				Sector:       "Technology",
				MarketCap:    "Large",
				Exchange:     "NSE",
			}},
			Performance: []PerformanceData{
				{Date: "2024-01-01", PortfolioValue: decimal.NewFromInt(1000), Nifty50: decimal.NewFromInt(100), Gold: decimal.NewFromInt(50)},
				{Date: "2024-02-01", PortfolioValue: decimal.NewFromInt(1100), Nifty50: decimal.NewFromInt(105), Gold: decimal.NewFromInt(51)},
			},
			Summary: &models.SummaryFacts{
				DiversificationScore: decimal.RequireFromString("7.5"),
				RiskLevel:            "Low",
			},
			TopPerformers: []models.TopPerformerFact{
				{Metric: models.MetricBestPerformer, Symbol: symbol, Performance: decimal.RequireFromString("10.5")},
			},
		},
	}
}

// ---------------------------------------------------------------------------
// processMessage
// ---------------------------------------------------------------------------

func TestSnapshotConsumer_processMessage(t *testing.T) {
	consumer, _ := newTestConsumer()

	ds, err := consumer.processMessage(snapshotMessage(t, sampleEvent("TCS")))
	require.NoError(t, err)
	require.NotNil(t, ds)

	require.Len(t, ds.Holdings, 1)
	h := ds.Holdings[0]
	assert.Equal(t, "TCS", h.Symbol)
	assert.Equal(t, "TCS Ltd", h.Name)
	assert.Equal(t, int64(10), h.Quantity)
	assert.True(t, decimal.RequireFromString("110.5").Equal(h.CurrentPrice))

	require.Len(t, ds.Performance, 2)
	assert.Equal(t, "2024-02-01", ds.Performance[1].Date.Format(provider.DateLayout))
	assert.Equal(t, "Low", ds.Summary.RiskLevel)
	assert.Len(t, ds.TopPerformers, 1)
}

func TestSnapshotConsumer_processMessage_IgnoresOtherEvents(t *testing.T) {
	consumer, _ := newTestConsumer()

	event := sampleEvent("TCS")
	event.EventType = "POSITION_UPDATED"

	ds, err := consumer.processMessage(snapshotMessage(t, event))
	require.NoError(t, err)
	assert.Nil(t, ds)
}

func TestSnapshotConsumer_processMessage_InvalidJSON(t *testing.T) {
	consumer, _ := newTestConsumer()

	_, err := consumer.processMessage(kafkago.Message{Value: []byte("{not json")})
	assert.Error(t, err)
}

func TestSnapshotConsumer_processMessage_InvalidDate(t *testing.T) {
	consumer, _ := newTestConsumer()

	event := sampleEvent("TCS")
	event.Data.Performance[0].Date = "01/01/2024"

	_, err := consumer.processMessage(snapshotMessage(t, event))
	assert.ErrorContains(t, err, "invalid performance date")
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestSnapshotConsumer_Load_KeepsLatestSnapshot(t *testing.T) {
	other := sampleEvent("INFY")
	other.EventType = "HEARTBEAT"

	consumer, _ := newTestConsumer(
		snapshotMessage(t, sampleEvent("TCS")),
		kafkago.Message{Value: []byte("garbage")},
		snapshotMessage(t, sampleEvent("WIPRO")),
		snapshotMessage(t, other),
	)

	ds, err := consumer.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Holdings, 1)
	assert.Equal(t, "WIPRO", ds.Holdings[0].Symbol)
}

func TestSnapshotConsumer_Load_NoSnapshot(t *testing.T) {
	consumer, _ := newTestConsumer(kafkago.Message{Value: []byte(`{"event_type":"HEARTBEAT"}`)})

	_, err := consumer.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, provider.ErrDataUnavailable))
}

func TestSnapshotConsumer_Load_EmptyTopicTimesOut(t *testing.T) {
	consumer, _ := newTestConsumer()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := consumer.Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errors.Is(err, provider.ErrDataUnavailable))
}

func TestSnapshotConsumer_StoreIntegration(t *testing.T) {
	consumer, _ := newTestConsumer(snapshotMessage(t, sampleEvent("TCS")))

	store, err := provider.NewStore(context.Background(), consumer)
	require.NoError(t, err)
	assert.Equal(t, "kafka", store.Source())
	assert.Empty(t, store.Errors())
}

func TestSnapshotConsumer_Close(t *testing.T) {
	consumer, reader := newTestConsumer()

	require.NoError(t, consumer.Close())
	assert.True(t, reader.closed)
}
