package synthesis

import (
	"time"

	"github.com/travigo/transitlab/pkg/util"
)

const dateLayout = "2006-01-02"

// Date is a calendar day written as YYYY-MM-DD
type Date struct {
	time.Time
}

func (d Date) MarshalCSV() (string, error) {
	return d.Format(dateLayout), nil
}

func (d *Date) UnmarshalCSV(s string) error {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}

	d.Time = t
	return nil
}

type Employee struct {
	EmployeeID     int64   `csv:"employeeID"`
	CountryOfBirth string  `csv:"CountryOfBirth"`
	Name           string  `csv:"name"`
	Phone          string  `csv:"phone"`
	Email          string  `csv:"email"`
	Gender         string  `csv:"gender"`
	Birthdate      Date    `csv:"birthdate"`
	Hiredate       Date    `csv:"hiredate"`
	Department     string  `csv:"department"`
	Role           string  `csv:"role"`
	Salary         float64 `csv:"salary"`
	SSID           string  `csv:"SSID"`
}

func (e Employee) Age(at time.Time) int {
	return util.WholeYearsBetween(e.Birthdate.Time, at)
}

func Ages(employees []Employee, at time.Time) []int {
	ages := make([]int, len(employees))
	for i, employee := range employees {
		ages[i] = employee.Age(at)
	}

	return ages
}

func Salaries(employees []Employee) []float64 {
	salaries := make([]float64, len(employees))
	for i, employee := range employees {
		salaries[i] = employee.Salary
	}

	return salaries
}
