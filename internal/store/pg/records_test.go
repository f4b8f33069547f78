package pg

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/offineeds/oms/internal/records"
)

func TestListPurchaseOrders(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "po_number", "base_sku", "vendor_sku", "quantity", "category", "color",
		"status", "vendor_name", "po_details", "created_at", "created_by", "updated_at", "updated_by",
	}).AddRow("po-1", "PO-001", "SKU-1", "VSKU-1", 50, "stationery", "", "pending",
		"Office Supplies Co", "", now, "admin@x.com", now, "")
	mock.ExpectQuery("select.*from purchase_orders.*order by created_at desc").WillReturnRows(rows)

	orders, err := store.ListPurchaseOrders(context.Background())
	if err != nil {
		t.Fatalf("ListPurchaseOrders: %v", err)
	}
	if len(orders) != 1 || orders[0].PONumber != "PO-001" || orders[0].Quantity != 50 {
		t.Fatalf("unexpected orders: %+v", orders)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetJobCardNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("select.*from production_records.*where id").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetJobCard(context.Background(), "ghost")
	if !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateJobCardNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("update production_records").
		WithArgs("done", sqlmock.AnyArg(), "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	status := "done"
	_, err := store.UpdateJobCard(context.Background(), "ghost", records.JobCardUpdate{OrderStatus: &status}, "admin@x.com")
	if !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteProductNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("delete from product_library").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteProduct(context.Background(), 99)
	if !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
