// config/rules.go
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// ClinicRules is the externally editable daily capacity rule. It lives in a
// small JSON file, outside the database, and is re-read on every registration
// and billing attempt so edits take effect immediately.
type ClinicRules struct {
	ExaminationFee    int64 `json:"examinationFee"`
	MaxPatientsPerDay int   `json:"maxPatientsPerDay"`
}

var ErrRulesInvalid = errors.New("examination fee and max patients per day must be positive integers")

const defaultRulesFile = "data/rules.json"

// Shipped defaults, written on first read if no rules file exists yet.
var defaultRules = ClinicRules{
	ExaminationFee:    100000,
	MaxPatientsPerDay: 40,
}

func RulesFile() string {
	if path := os.Getenv("CLINIC_RULES_FILE"); path != "" {
		return path
	}
	return defaultRulesFile
}

func (r ClinicRules) Validate() error {
	if r.ExaminationFee <= 0 || r.MaxPatientsPerDay <= 0 {
		return ErrRulesInvalid
	}
	return nil
}

// LoadRules reads the rules file fresh. A missing file is seeded with the
// defaults so a new deployment can register patients immediately.
func LoadRules() (ClinicRules, error) {
	data, err := os.ReadFile(RulesFile())
	if err != nil {
		if os.IsNotExist(err) {
			if err := SaveRules(defaultRules); err != nil {
				return ClinicRules{}, err
			}
			return defaultRules, nil
		}
		return ClinicRules{}, err
	}

	var rules ClinicRules
	if err := json.Unmarshal(data, &rules); err != nil {
		return ClinicRules{}, err
	}
	return rules, nil
}

// SaveRules validates and replaces the whole document. On validation failure
// the stored file is left untouched.
func SaveRules(rules ClinicRules) error {
	if err := rules.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(RulesFile()), 0o755); err != nil {
		return err
	}

	return os.WriteFile(RulesFile(), data, 0o644)
}
