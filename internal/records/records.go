package records

import (
	"errors"
	"fmt"
	"github.com/goccy/go-yaml"
	"github.com/icinga/icinga-filter/pkg/filter"
	"github.com/icinga/icinga-go-library/logging"
	"go.uber.org/zap"
	"io"
	"os"
)

// Load reads a list of records from the given YAML or JSON file.
func Load(path string, logger *logging.Logger) ([]filter.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode records from %q: %w", path, err)
	}

	logger.Debugw("Loaded records", zap.String("path", path), zap.Int("records", len(records)))

	return records, nil
}

// Decode reads a YAML or JSON list of objects from r.
// An empty document yields no records.
func Decode(r io.Reader) ([]filter.Record, error) {
	var objects []map[string]any
	if err := yaml.NewDecoder(r).Decode(&objects); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	records := make([]filter.Record, 0, len(objects))
	for i, object := range objects {
		if object == nil {
			return nil, fmt.Errorf("record #%d is not an object", i)
		}

		records = append(records, object)
	}

	return records, nil
}
