package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("derives_machine_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		category, err := svc.CreateCategory(user.ID, "Dining Out", "restaurants and takeaway")
		testutil.AssertNoError(t, err)

		if category.MachineName != "dining_out" {
			t.Errorf("expected machine name dining_out, got %s", category.MachineName)
		}
		if category.Description != "restaurants and takeaway" {
			t.Errorf("unexpected description %q", category.Description)
		}
	})

	t.Run("trims_whitespace", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		category, err := svc.CreateCategory(user.ID, "  Groceries  ", "")
		testutil.AssertNoError(t, err)
		if category.Name != "Groceries" {
			t.Errorf("expected trimmed name, got %q", category.Name)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "   ", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_is_case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Groceries", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "GROCERIES", "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("same_name_different_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Groceries", "")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory(other.ID, "Groceries", "")
		testutil.AssertNoError(t, err)
	})
}

func TestGetCategoryByName(t *testing.T) {
	t.Run("case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestCategoryWithName(t, db, user.ID, "Groceries")

		category, err := svc.GetCategoryByName(user.ID, "  groceries ")
		testutil.AssertNoError(t, err)
		if category.ID != created.ID {
			t.Errorf("expected category %s, got %s", created.ID, category.ID)
		}
	})

	t.Run("not_found_names_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetCategoryByName(user.ID, "Missing")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("rename_rederives_machine_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestCategoryWithName(t, db, user.ID, "Groceries")

		newName := "Food & Drink"
		_, err := svc.UpdateCategory(user.ID, created.ID, &newName, nil)
		testutil.AssertNoError(t, err)

		var stored models.Category
		if err := db.First(&stored, "id = ?", created.ID).Error; err != nil {
			t.Fatalf("failed to reload category: %v", err)
		}
		if stored.Name != "Food & Drink" {
			t.Errorf("expected renamed category, got %q", stored.Name)
		}
		if stored.MachineName != models.Slugify("Food & Drink") {
			t.Errorf("expected machine name re-derived, got %q", stored.MachineName)
		}
	})

	t.Run("rename_to_existing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategoryWithName(t, db, user.ID, "Groceries")
		dining := testutil.CreateTestCategoryWithName(t, db, user.ID, "Dining")

		taken := "groceries"
		_, err := svc.UpdateCategory(user.ID, dining.ID, &taken, nil)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("soft_delete_keeps_transaction_reference", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, user.ID)
		transaction := testutil.CreateTestWithdrawal(t, db, user.ID, account, category, 100, date(2024, 3, 1))

		err := svc.DeleteCategory(user.ID, category.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetCategoryByID(user.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")

		var stored models.Transaction
		if err := db.First(&stored, "id = ?", transaction.ID).Error; err != nil {
			t.Fatalf("failed to reload transaction: %v", err)
		}
		if stored.CategoryID == nil || *stored.CategoryID != category.ID {
			t.Error("expected transaction to keep its category reference")
		}
	})

	t.Run("other_users_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, other.ID)

		err := svc.DeleteCategory(user.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestGetUserCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestCategoryWithName(t, db, user.ID, "Utilities")
	testutil.CreateTestCategoryWithName(t, db, user.ID, "Groceries")

	result, err := svc.GetUserCategories(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if len(result.Data) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(result.Data))
	}
	if result.Data[0].Name != "Groceries" {
		t.Errorf("expected categories ordered by name, got %q first", result.Data[0].Name)
	}
}
