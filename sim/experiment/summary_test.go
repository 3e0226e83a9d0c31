package experiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/readiness-sim/readiness-sim/sim"
)

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate("legacy-erp", nil)
	assert.Equal(t, "legacy-erp", s.Policy)
	assert.Equal(t, 0, s.Trials)
	assert.Equal(t, 0.0, s.TotalCost.Mean)
	assert.Equal(t, 1.0, s.ServiceLevel.Mean)
	assert.Equal(t, 1.0, s.RealizedPrecision)
}

func TestAggregate_Means(t *testing.T) {
	// GIVEN two trial results
	results := []sim.TrialResult{
		{TotalCost: 100, HoldingCost: 60, StockoutCost: 0, OrderingCost: 40, ServiceLevel: 1, OrdersPlaced: 2,
			TruePositives: 1, FalsePositives: 1},
		{TotalCost: 300, HoldingCost: 100, StockoutCost: 100, OrderingCost: 100, ServiceLevel: 0.5, StockoutEvents: 2,
			MeanBackorderDuration: 2, OrdersPlaced: 5, OverdueArrivals: 1},
	}

	// WHEN aggregated
	s := Aggregate("p", results)

	// THEN every metric is the mean across trials
	assert.Equal(t, 2, s.Trials)
	assert.Equal(t, 200.0, s.TotalCost.Mean)
	assert.Equal(t, 80.0, s.HoldingCost)
	assert.Equal(t, 50.0, s.StockoutCost)
	assert.Equal(t, 70.0, s.OrderingCost)
	assert.Equal(t, 0.75, s.ServiceLevel.Mean)
	assert.Equal(t, 1.0, s.BackorderDuration.Mean)
	assert.Equal(t, 1.0, s.StockoutEvents)
	assert.Equal(t, 3.5, s.OrdersPlaced)
	assert.Equal(t, 1, s.OverdueArrivals)

	// AND precision is the mean of per-trial precision, a silent trial counting as 1
	assert.Equal(t, 0.75, s.RealizedPrecision)
}
