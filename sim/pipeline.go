package sim

// Order is a replenishment order in flight.
type Order struct {
	ArrivalPeriod int
	Quantity      float64
}

// OrderPipeline holds the orders placed by one trial that have not yet arrived.
// Every order is strictly in the future until the period it is collected.
type OrderPipeline struct {
	orders []Order
}

// NewOrderPipeline returns an empty pipeline.
func NewOrderPipeline() *OrderPipeline {
	return &OrderPipeline{orders: make([]Order, 0, 8)}
}

// Enqueue places an order at period that lands leadTime periods later.
// Non-positive quantities are ignored; the return value reports whether an
// order was added.
func (p *OrderPipeline) Enqueue(period int, quantity float64, leadTime int) bool {
	if quantity <= 0 {
		return false
	}
	p.orders = append(p.orders, Order{ArrivalPeriod: period + leadTime, Quantity: quantity})
	return true
}

// CollectArrivals removes every order due at or before period and returns the
// total quantity. overdue counts orders whose arrival period had already
// passed; those should never exist and are merged anyway so no stock is lost.
func (p *OrderPipeline) CollectArrivals(period int) (quantity float64, overdue int) {
	kept := p.orders[:0]
	for _, o := range p.orders {
		switch {
		case o.ArrivalPeriod > period:
			kept = append(kept, o)
		case o.ArrivalPeriod < period:
			overdue++
			quantity += o.Quantity
		default:
			quantity += o.Quantity
		}
	}
	// zero the tail so dropped orders are not retained by the backing array
	for i := len(kept); i < len(p.orders); i++ {
		p.orders[i] = Order{}
	}
	p.orders = kept
	return quantity, overdue
}

// PositionQuantity returns the total quantity still in flight.
func (p *OrderPipeline) PositionQuantity() float64 {
	total := 0.0
	for _, o := range p.orders {
		total += o.Quantity
	}
	return total
}

// Len returns the number of orders in flight.
func (p *OrderPipeline) Len() int {
	return len(p.orders)
}

// Orders returns a copy of the in-flight orders.
func (p *OrderPipeline) Orders() []Order {
	out := make([]Order, len(p.orders))
	copy(out, p.orders)
	return out
}
