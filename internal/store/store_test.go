package store

import (
	"testing"
)

func TestPaymentStatusValues(t *testing.T) {
	statuses := []PaymentStatus{PaymentPending, PaymentPaid, PaymentLate, PaymentMissed}
	expected := []string{"pending", "paid", "late", "missed"}
	for i, s := range statuses {
		if string(s) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], s)
		}
	}
}

func TestRequestStatusValues(t *testing.T) {
	statuses := []RequestStatus{RequestOpen, RequestInProgress, RequestResolved, RequestCancelled}
	expected := []string{"open", "in_progress", "resolved", "cancelled"}
	for i, s := range statuses {
		if string(s) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], s)
		}
	}
}

func TestAssessmentKindValues(t *testing.T) {
	kinds := []AssessmentKind{AssessmentScreening, AssessmentFraud, AssessmentMoveOut, AssessmentSatisfaction}
	expected := []string{"screening", "fraud", "move_out", "satisfaction"}
	for i, k := range kinds {
		if string(k) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], k)
		}
	}
}

func TestTenantFilterDefaults(t *testing.T) {
	f := TenantFilter{}
	if f.Limit != 0 {
		t.Errorf("expected 0 default limit, got %d", f.Limit)
	}
	if f.UnitID != nil {
		t.Error("expected nil unit filter")
	}
}
