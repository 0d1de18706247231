package synthesis

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/dataimporter/formats/employees"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const firstEmployeeID = 100000000

var (
	genders       = []string{"female", "male", "nonbinary"}
	genderWeights = []float64{0.49, 0.49, 0.02}

	countries      = []string{"USA", "India", "China", "Mexico", "Canada", "Philippines", "Taiwan", "South Korea"}
	countryWeights = []float64{0.6, 0.1, 0.08, 0.06, 0.05, 0.04, 0.04, 0.03}
)

const maxSSNAttempts = 1000

type Options struct {
	Employees int
	Seed      int64

	// Ages are measured against ReferenceDate, hires never happen after MaxHireDate
	ReferenceDate time.Time
	MaxHireDate   time.Time
}

// Generate builds a fake workforce. The same options and inputs always
// produce the same employees.
func Generate(options Options, departments []*employees.Department, roles []*employees.Role) ([]Employee, error) {
	if len(departments) == 0 {
		return nil, errors.New("no departments to generate employees for")
	}

	rolesByDepartment := map[string][]*employees.Role{}
	for _, role := range roles {
		rolesByDepartment[role.Department] = append(rolesByDepartment[role.Department], role)
	}

	shares := make([]float64, len(departments))
	for i, department := range departments {
		if len(rolesByDepartment[department.Name]) == 0 {
			return nil, fmt.Errorf("department %s has no roles", department.Name)
		}
		shares[i] = department.Share
	}

	source := rand.NewSource(uint64(options.Seed))
	rng := rand.New(source)
	faker := gofakeit.New(options.Seed)

	departmentDistribution := distuv.NewCategorical(shares, source)
	genderDistribution := distuv.NewCategorical(genderWeights, source)
	countryDistribution := distuv.NewCategorical(countryWeights, source)

	earliestBirth := options.ReferenceDate.AddDate(-65, 0, 0)
	latestBirth := options.ReferenceDate.AddDate(-20, 0, 0)

	usedSSNs := map[string]bool{}
	generated := make([]Employee, 0, options.Employees)

	for i := 0; i < options.Employees; i++ {
		employeeID := int64(firstEmployeeID + i)

		department := departments[int(departmentDistribution.Rand())]
		departmentRoles := rolesByDepartment[department.Name]
		role := departmentRoles[rng.Intn(len(departmentRoles))]

		salary := distuv.Uniform{Min: role.Lower, Max: role.Upper, Src: source}.Rand()

		birthdate := randomDate(rng, earliestBirth, latestBirth)

		earliestHire := birthdate.AddDate(20, 0, 0)
		if earliestHire.After(options.MaxHireDate) {
			earliestHire = options.MaxHireDate.AddDate(-1, 0, 0)
		}
		hiredate := randomDate(rng, earliestHire, options.MaxHireDate)

		ssn, err := uniqueSSN(faker, usedSSNs)
		if err != nil {
			return nil, err
		}

		name := faker.Name()

		generated = append(generated, Employee{
			EmployeeID:     employeeID,
			CountryOfBirth: countries[int(countryDistribution.Rand())],
			Name:           name,
			Phone:          faker.Phone(),
			Email:          emailAddress(name, employeeID),
			Gender:         genders[int(genderDistribution.Rand())],
			Birthdate:      Date{birthdate},
			Hiredate:       Date{hiredate},
			Department:     department.Name,
			Role:           role.Name,
			Salary:         float64(int64(salary)),
			SSID:           ssn,
		})
	}

	log.Info().Int("employees", len(generated)).Int64("seed", options.Seed).Msg("Generated employees")

	return generated, nil
}

// randomDate picks a whole day in [from, to]
func randomDate(rng *rand.Rand, from time.Time, to time.Time) time.Time {
	days := int(to.Sub(from).Hours() / 24)
	if days <= 0 {
		return from
	}

	return from.AddDate(0, 0, rng.Intn(days+1))
}

func uniqueSSN(faker *gofakeit.Faker, used map[string]bool) (string, error) {
	for attempt := 0; attempt < maxSSNAttempts; attempt++ {
		ssn := faker.SSN()
		if !used[ssn] {
			used[ssn] = true
			return ssn, nil
		}
	}

	return "", errors.New("could not generate a unique SSN")
}

func emailAddress(name string, employeeID int64) string {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	local = strings.ReplaceAll(local, ",", "")

	return fmt.Sprintf("%s%d@example.com", local, employeeID%10000)
}
