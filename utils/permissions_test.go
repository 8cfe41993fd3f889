package utils

import "testing"

func TestCan_DoctorRecordsDiagnosis(t *testing.T) {
	if !Can("doctor", ActionRecordDiagnosis) {
		t.Error("expected doctor to be allowed to record a diagnosis")
	}
	if Can("nurse", ActionRecordDiagnosis) {
		t.Error("expected nurse to be denied recording a diagnosis")
	}
	if Can("cashier", ActionRecordDiagnosis) {
		t.Error("expected cashier to be denied recording a diagnosis")
	}
}

func TestCan_NurseRunsTheQueue(t *testing.T) {
	if !Can("nurse", ActionCreateList) {
		t.Error("expected nurse to be allowed to create the daily list")
	}
	if !Can("nurse", ActionRegisterWalkIn) {
		t.Error("expected nurse to be allowed to register walk-ins")
	}
	if Can("doctor", ActionRegisterWalkIn) {
		t.Error("expected doctor to be denied walk-in registration")
	}
}

func TestCan_CashierBills(t *testing.T) {
	if !Can("cashier", ActionBill) {
		t.Error("expected cashier to be allowed to bill")
	}
	if Can("nurse", ActionBill) {
		t.Error("expected nurse to be denied billing")
	}
}

func TestCan_AdminDoesEverything(t *testing.T) {
	actions := []Action{
		ActionCreateList, ActionRegisterWalkIn, ActionRecordDiagnosis,
		ActionBill, ActionUpdateRules, ActionViewReports, ActionManageCatalog,
	}
	for _, action := range actions {
		if !Can("admin", action) {
			t.Errorf("expected admin to be allowed %s", action)
		}
	}
}

func TestCan_UnknownRoleDeniedEverything(t *testing.T) {
	if Can("patient", ActionBill) {
		t.Error("expected patient to be denied billing")
	}
	if Can("", ActionViewQueue) {
		t.Error("expected empty role to be denied")
	}
}
