package integration

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/stats"
)

const (
	countyNameColumn     = "County Name"
	stateColumn          = "State"
	keyColumn            = "key"
	washingtonCounty     = "Washington County"
	statewideUnallocated = "Statewide Unallocated"
	dashline             = "----------------------------------"
)

var censusColumns = []string{"County", "State", "TotalPop", "IncomePerCap", "Poverty", "Unemployment"}

// CorrelationColumns are the numeric columns of the joined frame
var CorrelationColumns = []string{"Cases", "Deaths", "TotalPop", "IncomePerCap", "Poverty", "Unemployment", "CasesPerCap", "DeathsPerCap"}

type Options struct {
	// Cumulative count column to use from the USAFacts files, eg. 2023-07-23
	DateColumn string

	Out io.Writer
}

type Result struct {
	WashingtonCases  int
	WashingtonDeaths int

	CasesRemaining  int
	DeathsRemaining int

	Joined      dataframe.DataFrame
	Correlation stats.Matrix
}

// Integrate joins county COVID case and death counts with ACS census data
func Integrate(cases io.Reader, deaths io.Reader, census io.Reader, options Options) (*Result, error) {
	out := options.Out
	if out == nil {
		out = io.Discard
	}

	casesFrame, err := readCOVID(cases, options.DateColumn)
	if err != nil {
		return nil, fmt.Errorf("cases: %w", err)
	}
	deathsFrame, err := readCOVID(deaths, options.DateColumn)
	if err != nil {
		return nil, fmt.Errorf("deaths: %w", err)
	}
	censusFrame, err := readCensus(census)
	if err != nil {
		return nil, fmt.Errorf("census: %w", err)
	}

	fmt.Fprintln(out, dashline)
	fmt.Fprintln(out, "cases columns:", casesFrame.Names())
	fmt.Fprintln(out, "deaths columns:", deathsFrame.Names())
	fmt.Fprintln(out, "census columns:", censusFrame.Names())
	fmt.Fprintln(out, dashline)

	result := &Result{}

	casesFrame = trimColumn(casesFrame, countyNameColumn)
	deathsFrame = trimColumn(deathsFrame, countyNameColumn)

	result.WashingtonCases = countEqual(casesFrame, countyNameColumn, washingtonCounty)
	result.WashingtonDeaths = countEqual(deathsFrame, countyNameColumn, washingtonCounty)
	fmt.Fprintln(out, "Washington County count in cases:", result.WashingtonCases)
	fmt.Fprintln(out, "Washington County count in deaths:", result.WashingtonDeaths)
	fmt.Fprintln(out, dashline)

	casesFrame = dropEqual(casesFrame, countyNameColumn, statewideUnallocated)
	deathsFrame = dropEqual(deathsFrame, countyNameColumn, statewideUnallocated)

	result.CasesRemaining = casesFrame.Nrow()
	result.DeathsRemaining = deathsFrame.Nrow()
	fmt.Fprintln(out, "Remaining rows in cases:", result.CasesRemaining)
	fmt.Fprintln(out, "Remaining rows in deaths:", result.DeathsRemaining)
	fmt.Fprintln(out, dashline)

	casesFrame = expandStates(casesFrame)
	deathsFrame = expandStates(deathsFrame)

	casesFrame = withKey(casesFrame, countyNameColumn).Rename("Cases", options.DateColumn)
	deathsFrame = withKey(deathsFrame, countyNameColumn).Rename("Deaths", options.DateColumn)
	censusFrame = withKey(censusFrame, "County")

	for _, frame := range []dataframe.DataFrame{casesFrame, deathsFrame, censusFrame} {
		if frame.Err != nil {
			return nil, frame.Err
		}
	}

	joined := casesFrame.
		LeftJoin(deathsFrame.Select([]string{keyColumn, "Deaths"}), keyColumn).
		LeftJoin(censusFrame.Select([]string{keyColumn, "TotalPop", "IncomePerCap", "Poverty", "Unemployment"}), keyColumn)
	if joined.Err != nil {
		return nil, fmt.Errorf("joining: %w", joined.Err)
	}

	population := joined.Col("TotalPop").Float()
	joined = joined.
		Mutate(series.New(perCapita(joined.Col("Cases").Float(), population), series.Float, "CasesPerCap")).
		Mutate(series.New(perCapita(joined.Col("Deaths").Float(), population), series.Float, "DeathsPerCap"))
	if joined.Err != nil {
		return nil, fmt.Errorf("deriving per capita rates: %w", joined.Err)
	}

	result.Joined = joined
	fmt.Fprintln(out, "Number of rows in join:", joined.Nrow())
	fmt.Fprintln(out, dashline)

	columns := map[string][]float64{}
	for _, name := range CorrelationColumns {
		columns[name] = joined.Col(name).Float()
	}
	result.Correlation = stats.CorrelationMatrix(columns, CorrelationColumns)

	if err := result.Correlation.Write(out); err != nil {
		return nil, err
	}

	log.Info().
		Int("rows", joined.Nrow()).
		Int("cases", result.CasesRemaining).
		Int("deaths", result.DeathsRemaining).
		Msg("Integrated COVID and census data")

	return result, nil
}

func readCOVID(reader io.Reader, dateColumn string) (dataframe.DataFrame, error) {
	frame := dataframe.ReadCSV(reader,
		dataframe.DetectTypes(false),
		dataframe.WithTypes(map[string]series.Type{
			countyNameColumn: series.String,
			stateColumn:      series.String,
			dateColumn:       series.Float,
		}),
	)
	if frame.Err != nil {
		return frame, frame.Err
	}

	frame = frame.Select([]string{countyNameColumn, stateColumn, dateColumn})

	return frame, frame.Err
}

func readCensus(reader io.Reader) (dataframe.DataFrame, error) {
	frame := dataframe.ReadCSV(reader,
		dataframe.DetectTypes(false),
		dataframe.WithTypes(map[string]series.Type{
			"County":       series.String,
			"State":        series.String,
			"TotalPop":     series.Float,
			"IncomePerCap": series.Float,
			"Poverty":      series.Float,
			"Unemployment": series.Float,
		}),
	)
	if frame.Err != nil {
		return frame, frame.Err
	}

	frame = frame.Select(censusColumns)

	return frame, frame.Err
}

func mapColumn(frame dataframe.DataFrame, column string, f func(string) string) dataframe.DataFrame {
	records := frame.Col(column).Records()

	mapped := make([]string, len(records))
	for i, record := range records {
		mapped[i] = f(record)
	}

	return frame.Mutate(series.New(mapped, series.String, column))
}

func trimColumn(frame dataframe.DataFrame, column string) dataframe.DataFrame {
	return mapColumn(frame, column, strings.TrimSpace)
}

// expandStates replaces postal abbreviations with full state names so the
// key matches the census naming
func expandStates(frame dataframe.DataFrame) dataframe.DataFrame {
	return mapColumn(frame, stateColumn, func(abbreviation string) string {
		name, ok := StateName(strings.TrimSpace(abbreviation))
		if !ok {
			log.Debug().Str("state", abbreviation).Msg("Unknown state abbreviation")
		}
		return name
	})
}

func withKey(frame dataframe.DataFrame, countyColumn string) dataframe.DataFrame {
	counties := frame.Col(countyColumn).Records()
	states := frame.Col(stateColumn).Records()

	keys := make([]string, len(counties))
	for i := range counties {
		keys[i] = fmt.Sprintf("%s, %s", counties[i], states[i])
	}

	return frame.Mutate(series.New(keys, series.String, keyColumn))
}

func countEqual(frame dataframe.DataFrame, column string, value string) int {
	return frame.Filter(dataframe.F{Colname: column, Comparator: series.Eq, Comparando: value}).Nrow()
}

func dropEqual(frame dataframe.DataFrame, column string, value string) dataframe.DataFrame {
	return frame.Filter(dataframe.F{Colname: column, Comparator: series.Neq, Comparando: value})
}

func perCapita(counts []float64, population []float64) []float64 {
	rates := make([]float64, len(counts))

	for i := range counts {
		if population[i] == 0 || math.IsNaN(population[i]) {
			rates[i] = math.NaN()
			continue
		}
		rates[i] = counts[i] / population[i]
	}

	return rates
}
