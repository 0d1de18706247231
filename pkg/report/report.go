package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
	"github.com/liip/sheriff"
	"github.com/travigo/transitlab/pkg/bias"
)

const (
	GroupBasic    = "basic"
	GroupDetailed = "detailed"
)

// WriteCSV writes results as vehicle_number,p_value rows
func WriteCSV(w io.Writer, results []bias.Result) error {
	if err := gocsv.Marshal(results, w); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	return nil
}

// WriteCSVFile writes results to path unless there are none.
// It reports whether a file was written.
func WriteCSVFile(path string, results []bias.Result) (bool, error) {
	if len(results) == 0 {
		return false, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	if err := WriteCSV(file, results); err != nil {
		return false, err
	}

	return true, file.Close()
}

// WriteJSON writes the report restricted to the fields in groups
func WriteJSON(w io.Writer, report *bias.Report, groups ...string) error {
	if len(groups) == 0 {
		groups = []string{GroupBasic}
	}

	filtered, err := sheriff.Marshal(&sheriff.Options{Groups: groups}, report)
	if err != nil {
		return fmt.Errorf("filtering %s report: %w", report.Detector, err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(filtered)
}

// PrintTable prints title and an aligned table of results, or the empty line when there are none
func PrintTable(w io.Writer, title string, empty string, results []bias.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, title)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "vehicle_number\tp_value\t")
	for _, result := range results {
		fmt.Fprintf(tw, "%d\t%s\t\n", result.VehicleID, strconv.FormatFloat(result.PValue, 'g', 6, 64))
	}

	return tw.Flush()
}
