package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every order decision and stockout.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during a single trial.
type SimulationTrace struct {
	Config    TraceConfig
	Orders    []OrderRecord
	Stockouts []StockoutRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:    config,
		Orders:    make([]OrderRecord, 0),
		Stockouts: make([]StockoutRecord, 0),
	}
}

// Enabled reports whether records should be collected.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDecisions
}

// RecordOrder appends an order decision record.
func (st *SimulationTrace) RecordOrder(record OrderRecord) {
	st.Orders = append(st.Orders, record)
}

// RecordStockout appends a stockout record.
func (st *SimulationTrace) RecordStockout(record StockoutRecord) {
	st.Stockouts = append(st.Stockouts, record)
}
