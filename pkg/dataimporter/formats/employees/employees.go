package employees

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/travigo/transitlab/pkg/dataimporter/formats"
	"github.com/travigo/transitlab/pkg/util"
)

type Department struct {
	Name      string `csv:"Department"`
	ShareText string `csv:"% of employees"`

	// Fraction of the workforce, eg. 0.12 for "12%"
	Share float64 `csv:"-"`
}

type Role struct {
	Department string `csv:"Department"`
	Name       string `csv:"Role"`
	LowerText  string `csv:"Lower"`
	UpperText  string `csv:"Upper"`

	Lower float64 `csv:"-"`
	Upper float64 `csv:"-"`
}

type DepartmentsFile struct {
	Departments []*Department
}

func (f *DepartmentsFile) ParseFile(reader io.Reader) error {
	if err := gocsv.UnmarshalCSV(formats.NewCSVReader(reader), &f.Departments); err != nil {
		return fmt.Errorf("parsing departments: %w", err)
	}

	for _, department := range f.Departments {
		share, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimRight(department.ShareText, "% ")), 64)
		if err != nil {
			return fmt.Errorf("department %s share %q: %w", department.Name, department.ShareText, err)
		}

		department.Share = share / 100
	}

	return nil
}

type RolesFile struct {
	Roles []*Role
}

func (f *RolesFile) ParseFile(reader io.Reader) error {
	if err := gocsv.UnmarshalCSV(formats.NewCSVReader(reader), &f.Roles); err != nil {
		return fmt.Errorf("parsing roles: %w", err)
	}

	for _, role := range f.Roles {
		var err error

		if role.Lower, err = parseMoney(role.LowerText); err != nil {
			return fmt.Errorf("role %s lower bound: %w", role.Name, err)
		}
		if role.Upper, err = parseMoney(role.UpperText); err != nil {
			return fmt.Errorf("role %s upper bound: %w", role.Name, err)
		}
	}

	return nil
}

// parseMoney turns "$50,000" into 50000
func parseMoney(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(util.StripChars(s, "$,")), 64)
}
