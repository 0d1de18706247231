package synthesis

import (
	"fmt"
	"math"
	"time"

	"github.com/jinzhu/copier"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

type SampleOptions struct {
	Size int
	Seed int64

	// Employees aged [AgeMin, AgeMax) on ReferenceDate are Weight times as likely to be picked
	AgeMin        int
	AgeMax        int
	Weight        float64
	ReferenceDate time.Time
}

// BiasedSample draws Size employees without replacement, weighted towards an age band
func BiasedSample(employees []Employee, options SampleOptions) ([]Employee, error) {
	if options.Size > len(employees) {
		return nil, fmt.Errorf("cannot sample %d from %d employees", options.Size, len(employees))
	}
	if options.Weight <= 0 {
		return nil, fmt.Errorf("sample weight must be positive, got %v", options.Weight)
	}

	rng := rand.New(rand.NewSource(uint64(options.Seed)))

	type keyed struct {
		index int
		key   float64
	}
	keys := make([]keyed, len(employees))

	// Efraimidis-Spirakis: the Size largest u^(1/w) form a weighted sample without replacement
	for i, employee := range employees {
		weight := 1.0
		age := employee.Age(options.ReferenceDate)
		if age >= options.AgeMin && age < options.AgeMax {
			weight = options.Weight
		}

		keys[i] = keyed{index: i, key: math.Pow(rng.Float64(), 1/weight)}
	}

	slices.SortStableFunc(keys, func(a, b keyed) int {
		switch {
		case a.key > b.key:
			return -1
		case a.key < b.key:
			return 1
		default:
			return 0
		}
	})

	sample := make([]Employee, options.Size)
	for i := range sample {
		sample[i] = employees[keys[i].index]
	}

	return sample, nil
}

// Perturb returns a copy of employees with gaussian noise added to each salary.
// The noise standard deviation is fraction of the mean salary.
func Perturb(employees []Employee, fraction float64, seed int64) ([]Employee, error) {
	var perturbed []Employee
	if err := copier.Copy(&perturbed, employees); err != nil {
		return nil, fmt.Errorf("copying employees: %w", err)
	}

	if len(perturbed) == 0 {
		return perturbed, nil
	}

	sigma := stat.Mean(Salaries(employees), nil) * fraction
	if sigma <= 0 {
		return perturbed, nil
	}

	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: rand.NewSource(uint64(seed))}
	for i := range perturbed {
		perturbed[i].Salary = math.Round((perturbed[i].Salary+noise.Rand())*100) / 100
	}

	return perturbed, nil
}
