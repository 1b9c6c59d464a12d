package services

import (
	"strings"
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	t.Run("records_entry_with_changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)
		user := testutil.CreateTestUser(t, db)

		svc.Log(user.ID, "CREATE_ACCOUNT", "account", "some-account-id", "127.0.0.1", map[string]interface{}{
			"name": "Everyday",
		})

		var entry models.AuditLog
		if err := db.First(&entry, "user_id = ?", user.ID).Error; err != nil {
			t.Fatalf("failed to load audit entry: %v", err)
		}
		if entry.Action != "CREATE_ACCOUNT" || entry.ResourceType != "account" {
			t.Errorf("unexpected entry: %+v", entry)
		}
		if !strings.Contains(entry.Changes, `"name":"Everyday"`) {
			t.Errorf("expected changes JSON to carry the name, got %q", entry.Changes)
		}
	})

	t.Run("nil_changes_leave_field_empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)
		user := testutil.CreateTestUser(t, db)

		svc.Log(user.ID, "DELETE_BILL", "bill", "some-bill-id", "", nil)

		var entry models.AuditLog
		if err := db.First(&entry, "user_id = ?", user.ID).Error; err != nil {
			t.Fatalf("failed to load audit entry: %v", err)
		}
		if entry.Changes != "" {
			t.Errorf("expected empty changes, got %q", entry.Changes)
		}
	})
}
