package pg

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/offineeds/oms/internal/access"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db), mock
}

func TestUserNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("select id, name, email.*from users").WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := store.User(context.Background(), "ghost")
	if !errors.Is(err, access.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserByEmailIsCaseInsensitive(t *testing.T) {
	store, mock := newMockStore(t)
	rows := sqlmock.NewRows([]string{"id", "name", "email", "employee_id", "status"}).
		AddRow("u-1", "Sarah Johnson", "sarah@offineedsoms.com", "EMP-2", "active")
	mock.ExpectQuery(`select id, name, email.*where lower\(email\) = lower\(\$1\)`).
		WithArgs("Sarah@OffineedsOMS.com").WillReturnRows(rows)

	user, err := store.UserByEmail(context.Background(), "Sarah@OffineedsOMS.com")
	if err != nil {
		t.Fatalf("UserByEmail: %v", err)
	}
	if user.ID != "u-1" || user.Status != access.StatusActive {
		t.Fatalf("unexpected row: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListActiveGrantsJoinsCatalogs(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "role_id", "module_id", "access_level", "status",
		"created_at", "created_by", "updated_at", "updated_by",
		"r_id", "r_name", "r_description", "r_active",
		"m_id", "m_name", "m_description", "m_active",
	}).AddRow(
		"ua-1", "u-1", int64(2), int64(1), "write", "active",
		now, "admin@x.com", now, "",
		int64(2), "editor", "", true,
		int64(1), access.ModuleDashboard, "", true,
	)
	mock.ExpectQuery("select ua.id, ua.user_id.*from user_access ua").WithArgs("u-1").WillReturnRows(rows)

	recs, err := store.ListActiveGrants(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListActiveGrants: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if rec.Level != access.LevelWrite || rec.Role.Name != "editor" || rec.Module.Name != access.ModuleDashboard {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertGrantsSingleStatement(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("insert into user_access").
		WithArgs(
			"ua-1", "u-1", int64(3), int64(1), "read", "active", sqlmock.AnyArg(), sqlmock.AnyArg(),
			"ua-2", "u-1", int64(3), int64(6), "read", "active", sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	recs := []access.Record{
		{ID: "ua-1", UserID: "u-1", RoleID: 3, ModuleID: 1, Level: access.LevelRead, Status: access.StatusActive},
		{ID: "ua-2", UserID: "u-1", RoleID: 3, ModuleID: 6, Level: access.LevelRead, Status: access.StatusActive},
	}
	if err := store.InsertGrants(context.Background(), recs); err != nil {
		t.Fatalf("InsertGrants: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateGrantLevelNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("update user_access").
		WithArgs("u-1", int64(4), "admin", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.UpdateGrantLevel(context.Background(), "u-1", 4, access.LevelAdmin, "admin@x.com")
	if !errors.Is(err, access.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteGrantsAllModules(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("delete from user_access where user_id").
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := store.DeleteGrants(context.Background(), "u-1", nil); err != nil {
		t.Fatalf("DeleteGrants: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteGrantsSingleModule(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("delete from user_access").
		WithArgs("u-1", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	moduleID := int64(2)
	if err := store.DeleteGrants(context.Background(), "u-1", &moduleID); err != nil {
		t.Fatalf("DeleteGrants: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteGrantsAllModulesIsIdempotent(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("delete from user_access where user_id").
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.DeleteGrants(context.Background(), "u-1", nil); err != nil {
		t.Fatalf("DeleteGrants on grantless user: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteGrantsSingleModuleNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("delete from user_access").
		WithArgs("u-1", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	moduleID := int64(9)
	err := store.DeleteGrants(context.Background(), "u-1", &moduleID)
	if !errors.Is(err, access.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
