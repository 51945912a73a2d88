package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDays captures births, deaths and population per day.
	TraceLevelDays TraceLevel = "days"
	// TraceLevelMemories additionally captures every new memory entry.
	TraceLevelMemories TraceLevel = "memories"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelDays:     true,
	TraceLevelMemories: true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Enabled reports whether the level records anything.
func (l TraceLevel) Enabled() bool {
	return l == TraceLevelDays || l == TraceLevelMemories
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects day records during a game.
type SimulationTrace struct {
	Config TraceConfig
	Days   []DayRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Days:   make([]DayRecord, 0),
	}
}

// RecordsMemories reports whether individual memory entries should be kept.
func (st *SimulationTrace) RecordsMemories() bool {
	return st != nil && st.Config.Level == TraceLevelMemories
}

// RecordDay appends a day record. Memory entries are dropped below
// TraceLevelMemories.
func (st *SimulationTrace) RecordDay(record DayRecord) {
	if !st.RecordsMemories() {
		record.Memories = nil
	}
	st.Days = append(st.Days, record)
}
