package synthesis

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/transitlab/pkg/dataimporter/formats/employees"
	"github.com/travigo/transitlab/pkg/stats"
)

var (
	referenceDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	maxHireDate   = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

func fixtures() ([]*employees.Department, []*employees.Role) {
	departments := []*employees.Department{
		{Name: "Engineering", Share: 0.5},
		{Name: "Sales", Share: 0.3},
		{Name: "HR", Share: 0.2},
	}
	roles := []*employees.Role{
		{Department: "Engineering", Name: "Engineer", Lower: 90000, Upper: 150000},
		{Department: "Engineering", Name: "Manager", Lower: 120000, Upper: 180000},
		{Department: "Sales", Name: "Account Executive", Lower: 60000, Upper: 110000},
		{Department: "HR", Name: "Recruiter", Lower: 50000, Upper: 80000},
	}

	return departments, roles
}

func generate(t *testing.T, count int, seed int64) []Employee {
	departments, roles := fixtures()

	generated, err := Generate(Options{
		Employees:     count,
		Seed:          seed,
		ReferenceDate: referenceDate,
		MaxHireDate:   maxHireDate,
	}, departments, roles)
	require.NoError(t, err)
	require.Len(t, generated, count)

	return generated
}

func TestGenerateDeterministic(t *testing.T) {
	first := generate(t, 200, 42)
	second := generate(t, 200, 42)

	assert.Equal(t, first, second, strings.Join(pretty.Diff(first, second), "\n"))
}

func TestGenerateFields(t *testing.T) {
	_, roles := fixtures()
	roleRanges := map[string]*employees.Role{}
	for _, role := range roles {
		roleRanges[role.Name] = role
	}

	generated := generate(t, 500, 7)
	ssns := map[string]bool{}

	for i, employee := range generated {
		assert.Equal(t, int64(100000000+i), employee.EmployeeID)

		role := roleRanges[employee.Role]
		require.NotNil(t, role, employee.Role)
		assert.Equal(t, role.Department, employee.Department)
		assert.GreaterOrEqual(t, employee.Salary, role.Lower)
		assert.LessOrEqual(t, employee.Salary, role.Upper)
		assert.Equal(t, math.Trunc(employee.Salary), employee.Salary)

		age := employee.Age(referenceDate)
		assert.GreaterOrEqual(t, age, 20)
		assert.LessOrEqual(t, age, 65)
		assert.False(t, employee.Hiredate.After(maxHireDate))

		assert.Contains(t, []string{"female", "male", "nonbinary"}, employee.Gender)
		assert.Contains(t, countries, employee.CountryOfBirth)

		assert.True(t, strings.HasSuffix(employee.Email, fmt.Sprintf("%d@example.com", employee.EmployeeID%10000)), employee.Email)
		assert.Equal(t, strings.ToLower(employee.Email), employee.Email)
		assert.NotContains(t, employee.Email, " ")

		assert.False(t, ssns[employee.SSID], "duplicate SSN %s", employee.SSID)
		ssns[employee.SSID] = true
	}
}

func TestGenerateErrors(t *testing.T) {
	departments, roles := fixtures()

	_, err := Generate(Options{Employees: 1}, nil, roles)
	assert.Error(t, err)

	_, err = Generate(Options{Employees: 1}, append(departments, &employees.Department{Name: "Legal", Share: 0.1}), roles)
	assert.ErrorContains(t, err, "Legal")
}

func TestEmailAddress(t *testing.T) {
	assert.Equal(t, "jane.doe42@example.com", emailAddress("Jane Doe", 100000042))
	assert.Equal(t, "smith.john1234@example.com", emailAddress("Smith, John", 100001234))
}

func TestAges(t *testing.T) {
	employeesList := []Employee{
		{Birthdate: Date{time.Date(1984, 6, 1, 0, 0, 0, 0, time.UTC)}},
		{Birthdate: Date{time.Date(1984, 6, 2, 0, 0, 0, 0, time.UTC)}},
	}

	assert.Equal(t, []int{40, 39}, Ages(employeesList, referenceDate))
}

func TestBiasedSample(t *testing.T) {
	generated := generate(t, 300, 1)

	sample, err := BiasedSample(generated, SampleOptions{
		Size:          100,
		Seed:          2,
		AgeMin:        40,
		AgeMax:        50,
		Weight:        3,
		ReferenceDate: referenceDate,
	})
	require.NoError(t, err)
	assert.Len(t, sample, 100)

	seen := map[int64]bool{}
	for _, employee := range sample {
		assert.False(t, seen[employee.EmployeeID], "duplicate employee %d", employee.EmployeeID)
		seen[employee.EmployeeID] = true
	}

	again, err := BiasedSample(generated, SampleOptions{Size: 100, Seed: 2, AgeMin: 40, AgeMax: 50, Weight: 3, ReferenceDate: referenceDate})
	require.NoError(t, err)
	assert.Equal(t, sample, again)

	_, err = BiasedSample(generated, SampleOptions{Size: 301, Weight: 1})
	assert.Error(t, err)
}

func TestPerturb(t *testing.T) {
	generated := generate(t, 100, 3)
	original := make([]Employee, len(generated))
	copy(original, generated)

	perturbed, err := Perturb(generated, 0.05, 4)
	require.NoError(t, err)
	require.Len(t, perturbed, len(generated))

	assert.Equal(t, original, generated)

	changed := 0
	for i := range perturbed {
		assert.Equal(t, generated[i].EmployeeID, perturbed[i].EmployeeID)
		assert.Equal(t, generated[i].Birthdate, perturbed[i].Birthdate)
		assert.InDelta(t, math.Round(perturbed[i].Salary*100)/100, perturbed[i].Salary, 1e-9)
		if perturbed[i].Salary != generated[i].Salary {
			changed++
		}
	}
	assert.Greater(t, changed, 90)
}

func TestPerturbEmpty(t *testing.T) {
	perturbed, err := Perturb(nil, 0.05, 1)

	require.NoError(t, err)
	assert.Empty(t, perturbed)
}

func TestHireWeekdaysAndBirthYears(t *testing.T) {
	employeesList := []Employee{
		{Hiredate: Date{time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)}, Birthdate: Date{time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}},
		{Hiredate: Date{time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)}, Birthdate: Date{time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)}},
		{Hiredate: Date{time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)}, Birthdate: Date{time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)}},
	}

	weekdayCounts := HireWeekdays(employeesList)
	require.Len(t, weekdayCounts, 7)
	assert.Equal(t, "Monday", weekdayCounts[0].Key)
	assert.Equal(t, 2, weekdayCounts[0].Count)
	assert.Equal(t, "Sunday", weekdayCounts[6].Key)
	assert.Equal(t, 1, weekdayCounts[6].Count)

	years := BirthYears(employeesList)
	assert.Equal(t, []stats.Count{{Key: "1980", Count: 1}, {Key: "1990", Count: 2}}, years)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.00", formatMoney(0))
	assert.Equal(t, "999.50", formatMoney(999.5))
	assert.Equal(t, "1,234,567.89", formatMoney(1234567.891))
	assert.Equal(t, "-12,000.00", formatMoney(-12000))
}

func TestSummarize(t *testing.T) {
	generated := generate(t, 50, 5)
	var out bytes.Buffer

	err := Summarize(&out, []string{"original", "copy"}, [][]Employee{generated, generated}, referenceDate)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Salary")
	assert.Contains(t, out.String(), "== copy ==")
	assert.Contains(t, out.String(), "Total payroll: $"+formatMoney(TotalPayroll(generated)))

	assert.Error(t, Summarize(&out, []string{"one"}, nil, referenceDate))
}

func TestWriteCSV(t *testing.T) {
	var out bytes.Buffer

	err := WriteCSV(&out, []Employee{{
		EmployeeID: 100000001,
		Name:       "Jane Doe",
		Birthdate:  Date{time.Date(1980, 2, 3, 0, 0, 0, 0, time.UTC)},
		Hiredate:   Date{time.Date(2010, 4, 5, 0, 0, 0, 0, time.UTC)},
		Salary:     75000,
	}})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "employeeID,CountryOfBirth,name,phone,email,gender,birthdate,hiredate,department,role,salary,SSID", lines[0])
	assert.Contains(t, lines[1], "1980-02-03,2010-04-05")
}
