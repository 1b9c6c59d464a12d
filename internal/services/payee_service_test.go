package services

import (
	"testing"

	"fintrack/internal/testutil"
)

func TestCreatePayee(t *testing.T) {
	t.Run("with_category_hint", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPayeeService(db)
		user := testutil.CreateTestUser(t, db)

		payee, err := svc.CreatePayee(user.ID, "Corner Store", "Groceries")
		testutil.AssertNoError(t, err)

		if payee.MachineName != "corner_store" {
			t.Errorf("expected machine name corner_store, got %s", payee.MachineName)
		}
		if payee.CategoryHint != "Groceries" {
			t.Errorf("expected category hint Groceries, got %q", payee.CategoryHint)
		}
	})

	t.Run("duplicate_is_case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPayeeService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreatePayee(user.ID, "Corner Store", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreatePayee(user.ID, "corner store", "")
		testutil.AssertAppError(t, err, "DUPLICATE_PAYEE")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPayeeService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreatePayee(user.ID, "  ", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetPayeeByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPayeeService(db)
	user := testutil.CreateTestUser(t, db)
	created := testutil.CreateTestPayeeWithName(t, db, user.ID, "Corner Store")

	payee, err := svc.GetPayeeByName(user.ID, " CORNER STORE ")
	testutil.AssertNoError(t, err)
	if payee.ID != created.ID {
		t.Errorf("expected payee %s, got %s", created.ID, payee.ID)
	}

	_, err = svc.GetPayeeByName(user.ID, "Missing")
	testutil.AssertAppError(t, err, "PAYEE_NOT_FOUND")
}

func TestUpdatePayee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPayeeService(db)
	user := testutil.CreateTestUser(t, db)
	created := testutil.CreateTestPayeeWithName(t, db, user.ID, "Corner Store")

	newName := "Corner Market"
	hint := "Groceries"
	updated, err := svc.UpdatePayee(user.ID, created.ID, &newName, &hint)
	testutil.AssertNoError(t, err)

	reloaded, err := svc.GetPayeeByID(user.ID, updated.ID)
	testutil.AssertNoError(t, err)
	if reloaded.Name != "Corner Market" || reloaded.CategoryHint != "Groceries" {
		t.Errorf("unexpected payee after update: %+v", reloaded)
	}
}

func TestDeletePayee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPayeeService(db)
	user := testutil.CreateTestUser(t, db)
	created := testutil.CreateTestPayee(t, db, user.ID)

	err := svc.DeletePayee(user.ID, created.ID)
	testutil.AssertNoError(t, err)

	_, err = svc.GetPayeeByID(user.ID, created.ID)
	testutil.AssertAppError(t, err, "PAYEE_NOT_FOUND")
}
