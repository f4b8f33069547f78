package records

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	Store

	createdJobCard JobCard
	createdPO      PurchaseOrder
	createdReturn  ReturnItem
	lastUpdatedBy  string
}

func (f *fakeStore) CreateJobCard(ctx context.Context, jc JobCard) (JobCard, error) {
	f.createdJobCard = jc
	return jc, nil
}

func (f *fakeStore) UpdateJobCard(ctx context.Context, id string, upd JobCardUpdate, updatedBy string) (JobCard, error) {
	f.lastUpdatedBy = updatedBy
	return JobCard{ID: id}, nil
}

func (f *fakeStore) CreatePurchaseOrder(ctx context.Context, po PurchaseOrder) (PurchaseOrder, error) {
	f.createdPO = po
	return po, nil
}

func (f *fakeStore) CreateReturnItem(ctx context.Context, item ReturnItem) (ReturnItem, error) {
	f.createdReturn = item
	return item, nil
}

func TestCreateJobCardDefaultsAndValidation(t *testing.T) {
	store := &fakeStore{}
	svc, err := NewService(store)
	require.NoError(t, err)

	jc, err := svc.CreateJobCard(context.Background(), JobCard{OrderID: "  ORD-100  ", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "ORD-100", jc.OrderID)
	assert.Equal(t, "pending", jc.OrderStatus)
	assert.NotEmpty(t, jc.ID)

	_, err = svc.CreateJobCard(context.Background(), JobCard{Quantity: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateJobCard(context.Background(), JobCard{OrderID: "ORD-101", Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateJobCard(context.Background(), JobCard{OrderID: "ORD-102", Quantity: 1, OrderStatus: "shipped"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateJobCardNormalizesStatus(t *testing.T) {
	store := &fakeStore{}
	svc, err := NewService(store)
	require.NoError(t, err)

	status := " Done "
	_, err = svc.UpdateJobCard(context.Background(), "jc-1", JobCardUpdate{OrderStatus: &status}, " admin@x.com ")
	require.NoError(t, err)
	assert.Equal(t, "admin@x.com", store.lastUpdatedBy)

	bad := "archived"
	_, err = svc.UpdateJobCard(context.Background(), "jc-1", JobCardUpdate{OrderStatus: &bad}, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreatePurchaseOrderValidation(t *testing.T) {
	store := &fakeStore{}
	svc, err := NewService(store)
	require.NoError(t, err)

	po, err := svc.CreatePurchaseOrder(context.Background(), PurchaseOrder{PONumber: "PO-001", Quantity: 50})
	require.NoError(t, err)
	assert.Equal(t, "pending", po.Status)
	assert.NotEmpty(t, po.ID)

	_, err = svc.CreatePurchaseOrder(context.Background(), PurchaseOrder{Quantity: 50})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateReturnItemValidation(t *testing.T) {
	store := &fakeStore{}
	svc, err := NewService(store)
	require.NoError(t, err)

	item, err := svc.CreateReturnItem(context.Background(), ReturnItem{
		ReturnID: "RET-001",
		OrderID:  "ORD-001",
		BaseSKU:  "SKU-1",
		Quantity: 5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)

	_, err = svc.CreateReturnItem(context.Background(), ReturnItem{ReturnID: "RET-002", OrderID: "ORD-002", Quantity: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateReturnItem(context.Background(), ReturnItem{ReturnID: "RET-003", BaseSKU: "SKU-2", Quantity: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewServiceRequiresStore(t *testing.T) {
	_, err := NewService(nil)
	assert.Error(t, err)
}
