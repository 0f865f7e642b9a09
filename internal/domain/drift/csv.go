package drift

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadCSV loads a headered CSV file into a Dataset keeping only the named
// features. Extra columns (labels, identifiers) are ignored; a missing
// feature column or a non-numeric cell is an input error.
func ReadCSV(path string, features []string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: %v", ErrBadInput, err)
	}
	defer f.Close()
	return readCSV(f, path, features)
}

func readCSV(r io.Reader, name string, features []string) (Dataset, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: reading header of %s: %v", ErrBadInput, name, err)
	}

	columns := make([]int, len(features))
	for i, feature := range features {
		columns[i] = -1
		for j, h := range header {
			if h == feature {
				columns[i] = j
				break
			}
		}
		if columns[i] == -1 {
			return Dataset{}, fmt.Errorf("%w: %s has no column %q", ErrBadInput, name, feature)
		}
	}

	var rows [][]float64
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("%w: reading %s line %d: %v", ErrBadInput, name, line, err)
		}
		row := make([]float64, len(features))
		for i, col := range columns {
			v, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				return Dataset{}, fmt.Errorf("%w: %s line %d column %q is not numeric: %q", ErrBadInput, name, line, features[i], record[col])
			}
			row[i] = v
		}
		rows = append(rows, row)
	}

	return Dataset{Features: features, Rows: rows}, nil
}
