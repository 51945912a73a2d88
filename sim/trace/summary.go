package trace

import "gonum.org/v1/gonum/stat"

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDays        int
	TotalBirths      int
	TotalDeaths      int
	TotalMemories    int
	MemoriesByKind   map[MemoryKind]int // only filled at TraceLevelMemories
	PeakPopulation   int
	MeanPopulation   float64
	StdDevPopulation float64
	ExtinctionDay    int // first day ending with no creatures; 0 if never
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		MemoriesByKind: make(map[MemoryKind]int),
	}
	if st == nil || len(st.Days) == 0 {
		return summary
	}

	summary.TotalDays = len(st.Days)
	population := make([]float64, 0, len(st.Days))
	for _, d := range st.Days {
		summary.TotalBirths += d.Births
		summary.TotalDeaths += d.Deaths
		summary.TotalMemories += d.NewMemories
		if d.Population > summary.PeakPopulation {
			summary.PeakPopulation = d.Population
		}
		if d.Population == 0 && summary.ExtinctionDay == 0 {
			summary.ExtinctionDay = d.Day
		}
		for _, m := range d.Memories {
			summary.MemoriesByKind[m.Kind]++
		}
		population = append(population, float64(d.Population))
	}

	if len(population) > 1 {
		summary.MeanPopulation, summary.StdDevPopulation = stat.MeanStdDev(population, nil)
	} else {
		summary.MeanPopulation = population[0]
	}

	return summary
}
