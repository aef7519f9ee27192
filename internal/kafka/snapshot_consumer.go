package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-analytics/internal/models"
	"github.com/trogers1052/portfolio-analytics/internal/provider"
)

// SnapshotEventType is the only event type the snapshot consumer accepts
const SnapshotEventType = "PORTFOLIO_SNAPSHOT"

// SnapshotEvent is a complete portfolio dataset published to Kafka
type SnapshotEvent struct {
	EventType string       `json:"event_type"`
	Source    string       `json:"source"`
	Timestamp string       `json:"timestamp"`
	Data      SnapshotData `json:"data"`
}

// SnapshotData carries the four dataset sections
type SnapshotData struct {
	Holdings      []HoldingData             `json:"holdings"`
	Performance   []PerformanceData         `json:"performance"`
	Summary       *models.SummaryFacts      `json:"summary"`
	TopPerformers []models.TopPerformerFact `json:"top_performers"`
}

// HoldingData is a holding row as published
type HoldingData struct {
	Symbol       string          `json:"symbol"`
	CompanyName  string          `json:"company_name"`
	Quantity     int64           `json:"quantity"`
	AvgPrice     decimal.Decimal `json:"avg_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Sector       string          `json:"sector"`
	MarketCap    string          `json:"market_cap"`
	Exchange     string          `json:"exchange"`
}

// PerformanceData is a performance row as published
type PerformanceData struct {
	Date            string          `json:"date"`
	PortfolioValue  decimal.Decimal `json:"portfolio_value"`
	Nifty50         decimal.Decimal `json:"nifty_50"`
	Gold            decimal.Decimal `json:"gold"`
	PortfolioReturn decimal.Decimal `json:"portfolio_return"`
	Nifty50Return   decimal.Decimal `json:"nifty_50_return"`
	GoldReturn      decimal.Decimal `json:"gold_return"`
}

// messageReader is the subset of *kafka.Reader the consumer needs
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Lag() int64
	Close() error
	Config() kafka.ReaderConfig
}

// SnapshotConsumer loads the most recent portfolio snapshot from a topic.
// It reads the topic from the beginning and stops once it has caught up,
// keeping the last valid snapshot seen.
type SnapshotConsumer struct {
	reader messageReader
	log    zerolog.Logger
}

// NewSnapshotConsumer creates a consumer for partition 0 of topic
func NewSnapshotConsumer(brokers []string, topic string, log zerolog.Logger) *SnapshotConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		Partition:   0,
		MinBytes:    1,
		MaxBytes:    10e6, // 10MB
		MaxWait:     500 * time.Millisecond,
		StartOffset: kafka.FirstOffset,
	})

	return &SnapshotConsumer{
		reader: reader,
		log:    log.With().Str("component", "snapshot_consumer").Logger(),
	}
}

// Name implements provider.Provider
func (c *SnapshotConsumer) Name() string {
	return "kafka"
}

// Load implements provider.Provider. It blocks until the reader has caught
// up with the topic or ctx is done; ctx should carry a deadline.
func (c *SnapshotConsumer) Load(ctx context.Context) (*provider.Dataset, error) {
	topic := c.reader.Config().Topic
	c.log.Info().Str("topic", topic).Msg("Reading portfolio snapshot")

	var latest *provider.Dataset
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				if latest != nil {
					return latest, nil
				}
				return nil, fmt.Errorf("no snapshot read from %s: %w: %w", topic, provider.ErrDataUnavailable, err)
			}
			return nil, fmt.Errorf("failed to read snapshot from %s: %w", topic, err)
		}

		ds, err := c.processMessage(msg)
		if err != nil {
			c.log.Warn().Err(err).Int64("offset", msg.Offset).Msg("Skipping snapshot message")
		} else if ds != nil {
			latest = ds
		}

		if c.reader.Lag() <= 0 {
			if latest == nil {
				return nil, fmt.Errorf("no %s event on %s: %w", SnapshotEventType, topic, provider.ErrDataUnavailable)
			}
			c.log.Info().Int64("offset", msg.Offset).Int("holdings", len(latest.Holdings)).Msg("Loaded portfolio snapshot")
			return latest, nil
		}
	}
}

// processMessage decodes one message. Events of other types yield a nil
// dataset and no error.
func (c *SnapshotConsumer) processMessage(msg kafka.Message) (*provider.Dataset, error) {
	var event SnapshotEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot event: %w", err)
	}

	if event.EventType != SnapshotEventType {
		c.log.Debug().Str("event_type", event.EventType).Msg("Ignoring event")
		return nil, nil
	}

	holdings := make([]models.Holding, 0, len(event.Data.Holdings))
	for _, hd := range event.Data.Holdings {
		holdings = append(holdings, convertHoldingData(hd))
	}

	points := make([]models.PerformancePoint, 0, len(event.Data.Performance))
	for _, pd := range event.Data.Performance {
		p, err := convertPerformanceData(pd)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return &provider.Dataset{
		Holdings:      holdings,
		Performance:   points,
		Summary:       event.Data.Summary,
		TopPerformers: event.Data.TopPerformers,
	}, nil
}

func convertHoldingData(hd HoldingData) models.Holding {
	return models.Holding{
		Symbol:       hd.Symbol,
		Name:         hd.CompanyName,
		Quantity:     hd.Quantity,
		AvgPrice:     hd.AvgPrice,
		CurrentPrice: hd.CurrentPrice,
		Sector:       hd.Sector,
		MarketCap:    hd.MarketCap,
		Exchange:     hd.Exchange,
	}
}

func convertPerformanceData(pd PerformanceData) (models.PerformancePoint, error) {
	date, err := time.Parse(provider.DateLayout, pd.Date)
	if err != nil {
		return models.PerformancePoint{}, fmt.Errorf("invalid performance date %q: %w", pd.Date, err)
	}

	return models.PerformancePoint{
		Date:            date,
		PortfolioValue:  pd.PortfolioValue,
		Nifty50:         pd.Nifty50,
		Gold:            pd.Gold,
		PortfolioReturn: pd.PortfolioReturn,
		Nifty50Return:   pd.Nifty50Return,
		GoldReturn:      pd.GoldReturn,
	}, nil
}

// Close closes the Kafka reader
func (c *SnapshotConsumer) Close() error {
	return c.reader.Close()
}
