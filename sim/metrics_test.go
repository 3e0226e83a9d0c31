package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCostLedger_Total(t *testing.T) {
	l := CostLedger{Holding: 735000, Stockout: 0, Ordering: 8000}
	assert.Equal(t, 743000.0, l.Total())
}

func TestTrialResult_RealizedPrecision(t *testing.T) {
	assert.Equal(t, 1.0, TrialResult{}.RealizedPrecision(), "no fires counts as perfect precision")
	assert.Equal(t, 0.75, TrialResult{TruePositives: 3, FalsePositives: 1}.RealizedPrecision())
	assert.Equal(t, 0.0, TrialResult{FalsePositives: 4}.RealizedPrecision())
}

func TestServiceLevel_ZeroDemandIsFullyServed(t *testing.T) {
	assert.Equal(t, 1.0, serviceLevel(0, 0))
	assert.Equal(t, 0.5, serviceLevel(5, 10))
}

func TestCapitalEfficiency(t *testing.T) {
	// revenue 120000 over a mean working capital of 60000
	assert.Equal(t, 2.0, capitalEfficiency(120000, 240000, 4))
	assert.Equal(t, 0.0, capitalEfficiency(120000, 0, 4), "no capital tied up")
	assert.Equal(t, 0.0, capitalEfficiency(120000, 240000, 0))
}

func TestMeanInts(t *testing.T) {
	assert.Equal(t, 0.0, meanInts(nil))
	assert.Equal(t, 2.5, meanInts([]int{1, 4}))
}
