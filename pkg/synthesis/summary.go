package synthesis

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/travigo/transitlab/pkg/stats"
	"github.com/travigo/transitlab/pkg/util"
)

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Summarize prints salary and age summaries for each named dataset side by side,
// followed by per dataset count tables and the total payroll
func Summarize(w io.Writer, names []string, datasets [][]Employee, at time.Time) error {
	if len(names) != len(datasets) {
		return fmt.Errorf("%d names for %d datasets", len(names), len(datasets))
	}

	salaries := make([]stats.Summary, len(datasets))
	ages := make([]stats.Summary, len(datasets))
	for i, employees := range datasets {
		salaries[i] = stats.Describe(Salaries(employees))

		employeeAges := Ages(employees, at)
		ageValues := make([]float64, len(employeeAges))
		for j, age := range employeeAges {
			ageValues[j] = float64(age)
		}
		ages[i] = stats.Describe(ageValues)
	}

	fmt.Fprintln(w, "Salary")
	if err := stats.WriteSummaries(w, names, salaries); err != nil {
		return err
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Age")
	if err := stats.WriteSummaries(w, names, ages); err != nil {
		return err
	}

	for i, employees := range datasets {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "== %s ==\n", names[i])

		stats.WriteCounts(w, "Country of birth", stats.CountBy(employees, func(e Employee) string { return e.CountryOfBirth }))
		stats.WriteCounts(w, "Department", stats.CountBy(employees, func(e Employee) string { return e.Department }))
		stats.WriteCounts(w, "Hire weekday", HireWeekdays(employees))
		stats.WriteCounts(w, "Birth year", BirthYears(employees))

		fmt.Fprintf(w, "Total payroll: $%s\n", formatMoney(TotalPayroll(employees)))
	}

	return nil
}

// HireWeekdays counts hires per weekday, Monday first
func HireWeekdays(employees []Employee) []stats.Count {
	counts := stats.CountBy(employees, func(e Employee) string { return e.Hiredate.Weekday().String() })

	return stats.Reorder(counts, weekdays)
}

// BirthYears counts births per year, oldest first
func BirthYears(employees []Employee) []stats.Count {
	if len(employees) == 0 {
		return nil
	}

	first, last := employees[0].Birthdate.Year(), employees[0].Birthdate.Year()
	for _, employee := range employees {
		year := employee.Birthdate.Year()
		first = min(first, year)
		last = max(last, year)
	}

	order := make([]string, 0, last-first+1)
	for year := first; year <= last; year++ {
		order = append(order, strconv.Itoa(year))
	}

	counts := stats.CountBy(employees, func(e Employee) string { return strconv.Itoa(e.Birthdate.Year()) })
	ordered := stats.Reorder(counts, order)

	// drop the gap years Reorder filled in
	util.InPlaceFilter(&ordered, func(count stats.Count) bool { return count.Count > 0 })

	return ordered
}

func TotalPayroll(employees []Employee) float64 {
	var total float64
	for _, employee := range employees {
		total += employee.Salary
	}

	return total
}

// formatMoney renders 1234567.891 as 1,234,567.89
func formatMoney(amount float64) string {
	text := strconv.FormatFloat(amount, 'f', 2, 64)

	negative := strings.HasPrefix(text, "-")
	text = strings.TrimPrefix(text, "-")

	whole, fraction, _ := strings.Cut(text, ".")

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	result := grouped.String() + "." + fraction
	if negative {
		result = "-" + result
	}

	return result
}
