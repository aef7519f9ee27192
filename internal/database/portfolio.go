package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trogers1052/portfolio-analytics/internal/models"
	"github.com/trogers1052/portfolio-analytics/internal/provider"
)

// Name implements provider.Provider
func (db *DB) Name() string {
	return "postgres"
}

// Load implements provider.Provider by reading all four portfolio tables
func (db *DB) Load(ctx context.Context) (*provider.Dataset, error) {
	holdings, err := db.GetHoldings(ctx)
	if err != nil {
		return nil, err
	}
	performance, err := db.GetPerformanceHistory(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := db.GetSummaryFacts(ctx)
	if err != nil {
		return nil, err
	}
	top, err := db.GetTopPerformerFacts(ctx)
	if err != nil {
		return nil, err
	}

	return &provider.Dataset{
		Holdings:      holdings,
		Performance:   performance,
		Summary:       summary,
		TopPerformers: top,
	}, nil
}

// GetHoldings retrieves all holdings in the order they were inserted
func (db *DB) GetHoldings(ctx context.Context) ([]models.Holding, error) {
	query := `
		SELECT symbol, company_name, quantity, avg_price, current_price,
		       sector, market_cap, exchange
		FROM holdings
		ORDER BY id
	`
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get holdings: %w", err)
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		var sector, marketCap, exchange sql.NullString

		err := rows.Scan(
			&h.Symbol, &h.Name, &h.Quantity, &h.AvgPrice, &h.CurrentPrice,
			&sector, &marketCap, &exchange,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}

		// Missing categories are left empty and rejected by store validation
		if sector.Valid {
			h.Sector = sector.String
		}
		if marketCap.Valid {
			h.MarketCap = marketCap.String
		}
		if exchange.Valid {
			h.Exchange = exchange.String
		}

		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holdings: %w", err)
	}

	return holdings, nil
}

// GetPerformanceHistory retrieves the performance series, oldest first
func (db *DB) GetPerformanceHistory(ctx context.Context) ([]models.PerformancePoint, error) {
	query := `
		SELECT date, portfolio_value, nifty_50, gold,
		       portfolio_return, nifty_50_return, gold_return
		FROM performance_history
		ORDER BY date
	`
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get performance history: %w", err)
	}
	defer rows.Close()

	var points []models.PerformancePoint
	for rows.Next() {
		var p models.PerformancePoint
		err := rows.Scan(
			&p.Date, &p.PortfolioValue, &p.Nifty50, &p.Gold,
			&p.PortfolioReturn, &p.Nifty50Return, &p.GoldReturn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan performance point: %w", err)
		}
		p.Date = p.Date.UTC()
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate performance history: %w", err)
	}

	return points, nil
}

// GetSummaryFacts retrieves the summary row. A missing row is returned as
// nil so the store can report the section as unavailable.
func (db *DB) GetSummaryFacts(ctx context.Context) (*models.SummaryFacts, error) {
	query := `
		SELECT total_portfolio, total_invested, total_gain_loss, total_gain_loss_percent,
		       number_of_holdings, diversification, risk_level
		FROM portfolio_summary
		ORDER BY id
		LIMIT 1
	`
	var f models.SummaryFacts
	var riskLevel sql.NullString

	err := db.conn.QueryRowContext(ctx, query).Scan(
		&f.TotalValue, &f.TotalInvested, &f.TotalGainLoss, &f.TotalGainLossPercent,
		&f.NumberOfHoldings, &f.DiversificationScore, &riskLevel,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio summary: %w", err)
	}

	if riskLevel.Valid {
		f.RiskLevel = riskLevel.String
	}
	return &f, nil
}

// GetTopPerformerFacts retrieves the published top performer facts
func (db *DB) GetTopPerformerFacts(ctx context.Context) ([]models.TopPerformerFact, error) {
	query := `
		SELECT metric, symbol, company_name, performance
		FROM top_performers
		ORDER BY id
	`
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get top performers: %w", err)
	}
	defer rows.Close()

	var facts []models.TopPerformerFact
	for rows.Next() {
		var f models.TopPerformerFact
		if err := rows.Scan(&f.Metric, &f.Symbol, &f.Name, &f.Performance); err != nil {
			return nil, fmt.Errorf("failed to scan top performer: %w", err)
		}
		facts = append(facts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top performers: %w", err)
	}

	return facts, nil
}
