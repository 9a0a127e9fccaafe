package training

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sample is one labeled training pair.
type Sample struct {
	Resume string
	Job    string
	Label  string
}

// expected CSV header columns, in order.
var csvHeader = []string{"resume_text", "job_description", "label"}

// LoadCSV reads the labeled training set. The file must carry the
// three-column header; rows with empty labels are rejected so bad exports
// fail loudly instead of skewing class balance.
func LoadCSV(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open training data %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read training data header: %w", err)
	}
	for i, want := range csvHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return nil, fmt.Errorf("training data column %d is %q, want %q", i, header[i], want)
		}
	}

	var samples []Sample
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to parse training data line %d: %w", line, err)
		}
		label := strings.TrimSpace(record[2])
		if label == "" {
			return nil, fmt.Errorf("training data line %d has an empty label", line)
		}
		samples = append(samples, Sample{
			Resume: record[0],
			Job:    record[1],
			Label:  label,
		})
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("training data %s contains no samples", path)
	}
	return samples, nil
}
