package config

import (
	"os"
	"path/filepath"
	"testing"
)

func useTempRulesFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.json")
	t.Setenv("CLINIC_RULES_FILE", path)
	return path
}

func TestLoadRules_SeedsDefaultsWhenMissing(t *testing.T) {
	path := useTempRulesFile(t)

	rules, err := LoadRules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rules.ExaminationFee != defaultRules.ExaminationFee {
		t.Errorf("expected default fee %d, got %d", defaultRules.ExaminationFee, rules.ExaminationFee)
	}
	if rules.MaxPatientsPerDay != defaultRules.MaxPatientsPerDay {
		t.Errorf("expected default max %d, got %d", defaultRules.MaxPatientsPerDay, rules.MaxPatientsPerDay)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected rules file to be seeded, stat failed: %v", err)
	}
}

func TestSaveRules_RoundTrips(t *testing.T) {
	useTempRulesFile(t)

	want := ClinicRules{ExaminationFee: 150000, MaxPatientsPerDay: 25}
	if err := SaveRules(want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := LoadRules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSaveRules_RejectsZeroMaxPatients(t *testing.T) {
	useTempRulesFile(t)

	prior := ClinicRules{ExaminationFee: 100000, MaxPatientsPerDay: 40}
	if err := SaveRules(prior); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := SaveRules(ClinicRules{ExaminationFee: 100000, MaxPatientsPerDay: 0})
	if err != ErrRulesInvalid {
		t.Fatalf("expected ErrRulesInvalid, got %v", err)
	}

	got, err := LoadRules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != prior {
		t.Errorf("stored rules changed after rejected update: %+v", got)
	}
}

func TestSaveRules_RejectsNegativeFee(t *testing.T) {
	useTempRulesFile(t)

	err := SaveRules(ClinicRules{ExaminationFee: -1, MaxPatientsPerDay: 40})
	if err != ErrRulesInvalid {
		t.Fatalf("expected ErrRulesInvalid, got %v", err)
	}
}

func TestLoadRules_ReadsFresh(t *testing.T) {
	useTempRulesFile(t)

	if err := SaveRules(ClinicRules{ExaminationFee: 100000, MaxPatientsPerDay: 40}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := SaveRules(ClinicRules{ExaminationFee: 200000, MaxPatientsPerDay: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := LoadRules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ExaminationFee != 200000 || got.MaxPatientsPerDay != 10 {
		t.Errorf("expected the replaced document, got %+v", got)
	}
}
