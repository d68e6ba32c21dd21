package runstore

// This file persists the structured record of a full run so the
// report can be re-rendered without re-running anything.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runledger/runledger/model"
)

const runFile = "run.json"

// Write stores the run record under dir, rewriting it whole.
func Write(dir string, record model.RunRecord) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, runFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write run record: %w", err)
	}
	return nil
}

// Load reads the run record stored under dir.
func Load(dir string) (model.RunRecord, error) {
	data, err := os.ReadFile(filepath.Join(dir, runFile))
	if err != nil {
		return model.RunRecord{}, fmt.Errorf("failed to read run record: %w", err)
	}

	var record model.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.RunRecord{}, fmt.Errorf("failed to parse run record: %w", err)
	}
	return record, nil
}
