package services

import (
	"errors"
	"testing"

	"github.com/kyohashi/idpos-visualizer/pkg/helpers"
)

func TestMetadataListDepartments(t *testing.T) {
	sess := &fakeWarehouseSession{departments: []string{"GROCERY", "PASTRY"}}
	pool := &fakeWarehousePool{sess: sess}
	svc := NewMetadataService(testLog(), pool)

	departments, err := svc.ListDepartments(helpers.TestCtx())
	if err != nil {
		t.Fatalf("ListDepartments returned error: %v", err)
	}
	if len(departments) != 2 || departments[0] != "GROCERY" {
		t.Errorf("departments = %v", departments)
	}
	if !sess.released {
		t.Error("session was not released")
	}
}

func TestMetadataListDepartmentsError(t *testing.T) {
	sess := &fakeWarehouseSession{departmentsErr: errors.New("no such table")}
	pool := &fakeWarehousePool{sess: sess}
	svc := NewMetadataService(testLog(), pool)

	if _, err := svc.ListDepartments(helpers.TestCtx()); err == nil {
		t.Fatal("expected error")
	}
	if !sess.released {
		t.Error("session must be released on failure")
	}
}
