package trace

import (
	"testing"
)

func TestSimulationTrace_RecordDay_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for days
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDays})

	// WHEN a day record is recorded
	st.RecordDay(DayRecord{Day: 1, Deaths: 2, Births: 3, Population: 11})

	// THEN the trace contains one day record with correct data
	if len(st.Days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(st.Days))
	}
	if st.Days[0].Day != 1 || st.Days[0].Population != 11 {
		t.Errorf("unexpected record %+v", st.Days[0])
	}
}

func TestSimulationTrace_DaysLevel_DropsMemoryDetail(t *testing.T) {
	// GIVEN a trace at days level
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDays})

	// WHEN a record carrying memory entries is recorded
	st.RecordDay(DayRecord{
		Day:         1,
		NewMemories: 1,
		Memories:    []MemoryRecord{{Day: 1, Observer: 1, Subject: 2, Kind: MemoryHawk}},
	})

	// THEN the count survives but the detail does not
	if st.Days[0].Memories != nil {
		t.Errorf("expected memory detail to be dropped, got %v", st.Days[0].Memories)
	}
	if st.Days[0].NewMemories != 1 {
		t.Errorf("expected NewMemories=1, got %d", st.Days[0].NewMemories)
	}
}

func TestSimulationTrace_MemoriesLevel_KeepsMemoryDetail(t *testing.T) {
	// GIVEN a trace at memories level
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelMemories})

	// WHEN a record carrying memory entries is recorded
	st.RecordDay(DayRecord{
		Day:      1,
		Memories: []MemoryRecord{{Day: 1, Observer: 1, Subject: 2, Kind: MemoryDove}},
	})

	// THEN the detail is kept
	if len(st.Days[0].Memories) != 1 || st.Days[0].Memories[0].Kind != MemoryDove {
		t.Errorf("expected one dove memory, got %v", st.Days[0].Memories)
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDays})

	st.RecordDay(DayRecord{Day: 1})
	st.RecordDay(DayRecord{Day: 2})
	st.RecordDay(DayRecord{Day: 3})

	for i, d := range st.Days {
		if d.Day != i+1 {
			t.Errorf("record %d has day %d, want %d", i, d.Day, i+1)
		}
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"days", true},
		{"memories", true},
		{"", true},
		{"decisions", false},
		{"DAYS", false},
	}

	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}

func TestTraceLevel_Enabled(t *testing.T) {
	if TraceLevelNone.Enabled() || TraceLevel("").Enabled() {
		t.Error("none and empty levels must be disabled")
	}
	if !TraceLevelDays.Enabled() || !TraceLevelMemories.Enabled() {
		t.Error("days and memories levels must be enabled")
	}
}
