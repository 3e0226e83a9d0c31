package experiment

import (
	"github.com/readiness-sim/readiness-sim/sim"
)

// Summary aggregates the trial results of one policy.
type Summary struct {
	Policy string `yaml:"policy"`
	Trials int    `yaml:"trials"`

	TotalCost    Distribution `yaml:"total_cost"`
	HoldingCost  float64      `yaml:"mean_holding_cost"`
	StockoutCost float64      `yaml:"mean_stockout_cost"`
	OrderingCost float64      `yaml:"mean_ordering_cost"`

	ServiceLevel      Distribution `yaml:"service_level"`
	BackorderDuration Distribution `yaml:"backorder_duration"` // periods
	CapitalEfficiency Distribution `yaml:"capital_efficiency"`

	StockoutEvents    float64 `yaml:"mean_stockout_events"`
	OrdersPlaced      float64 `yaml:"mean_orders_placed"`
	RealizedPrecision float64 `yaml:"realized_precision"`
	OverdueArrivals   int     `yaml:"overdue_arrivals"`
}

// Aggregate reduces trial results to a Summary. An empty batch yields zero
// costs and a service level of 1.
func Aggregate(policy string, results []sim.TrialResult) Summary {
	s := Summary{Policy: policy, Trials: len(results), RealizedPrecision: 1.0}
	if len(results) == 0 {
		s.ServiceLevel.Mean = 1.0
		return s
	}

	n := float64(len(results))
	totals := make([]float64, len(results))
	service := make([]float64, len(results))
	backorder := make([]float64, len(results))
	efficiency := make([]float64, len(results))
	precision := 0.0
	for i, r := range results {
		totals[i] = r.TotalCost
		service[i] = r.ServiceLevel
		backorder[i] = r.MeanBackorderDuration
		efficiency[i] = r.CapitalEfficiency
		s.HoldingCost += r.HoldingCost / n
		s.StockoutCost += r.StockoutCost / n
		s.OrderingCost += r.OrderingCost / n
		s.StockoutEvents += float64(r.StockoutEvents) / n
		s.OrdersPlaced += float64(r.OrdersPlaced) / n
		s.OverdueArrivals += r.OverdueArrivals
		precision += r.RealizedPrecision()
	}
	s.TotalCost = NewDistribution(totals)
	s.ServiceLevel = NewDistribution(service)
	s.BackorderDuration = NewDistribution(backorder)
	s.CapitalEfficiency = NewDistribution(efficiency)
	s.RealizedPrecision = precision / n
	return s
}
