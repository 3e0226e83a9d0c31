package sim

import "github.com/shopspring/decimal"

// Capper limits an order quantity given the current inventory position.
type Capper interface {
	Cap(quantity, position float64) float64
}

// NoCapital is the identity Capper used when a policy has no credit limit.
type NoCapital struct{}

func (NoCapital) Cap(quantity, _ float64) float64 { return quantity }

// CapitalLimit caps orders so that the value of the inventory position plus
// the new order stays within a credit limit. Arithmetic is done in decimal so
// that exact multiples of the unit cost are not lost to float rounding.
type CapitalLimit struct {
	unitCost    decimal.Decimal
	creditLimit decimal.Decimal
}

// NewCapitalLimit returns a CapitalLimit. unitCost must be positive.
func NewCapitalLimit(unitCost, creditLimit float64) *CapitalLimit {
	return &CapitalLimit{
		unitCost:    decimal.NewFromFloat(unitCost),
		creditLimit: decimal.NewFromFloat(creditLimit),
	}
}

// NewCapper returns a CapitalLimit for pc, or NoCapital when pc has no credit limit.
func NewCapper(pc *PolicyConfig, econ Economics) Capper {
	if pc.CreditLimit == nil {
		return NoCapital{}
	}
	return NewCapitalLimit(econ.UnitCost, *pc.CreditLimit)
}

// Cap returns quantity unchanged when it fits under the limit, otherwise the
// largest whole quantity that fits in the remaining headroom, never below zero.
func (c *CapitalLimit) Cap(quantity, position float64) float64 {
	if quantity <= 0 {
		return 0
	}
	exposure := decimal.NewFromFloat(position).Mul(c.unitCost)
	cost := decimal.NewFromFloat(quantity).Mul(c.unitCost)
	if exposure.Add(cost).LessThanOrEqual(c.creditLimit) {
		return quantity
	}
	headroom := c.creditLimit.Sub(exposure)
	if !headroom.IsPositive() {
		return 0
	}
	return headroom.Div(c.unitCost).Floor().InexactFloat64()
}

// CapToCredit applies a one-off credit cap without building a CapitalLimit.
func CapToCredit(quantity, position, unitCost, creditLimit float64) float64 {
	return NewCapitalLimit(unitCost, creditLimit).Cap(quantity, position)
}
