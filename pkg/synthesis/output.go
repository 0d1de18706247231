package synthesis

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

func WriteCSV(w io.Writer, employees []Employee) error {
	if err := gocsv.Marshal(employees, w); err != nil {
		return fmt.Errorf("writing employees: %w", err)
	}

	return nil
}

func WriteCSVFile(path string, employees []Employee) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteCSV(file, employees)
}
