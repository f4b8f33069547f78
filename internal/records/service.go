package records

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/offineeds/oms/internal/ids"
)

var jobCardStatuses = map[string]bool{
	"pending":     true,
	"in_progress": true,
	"done":        true,
	"on_hold":     true,
}

var purchaseOrderStatuses = map[string]bool{
	"pending":  true,
	"approved": true,
	"delayed":  true,
	"received": true,
}

type Service struct {
	store Store
}

func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("records store is required")
	}
	return &Service{store: store}, nil
}

func (s *Service) ListJobCards(ctx context.Context) ([]JobCard, error) {
	return s.store.ListJobCards(ctx)
}

func (s *Service) GetJobCard(ctx context.Context, id string) (JobCard, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return JobCard{}, fmt.Errorf("%w: job card id is required", ErrInvalidInput)
	}
	return s.store.GetJobCard(ctx, id)
}

func (s *Service) CreateJobCard(ctx context.Context, jc JobCard) (JobCard, error) {
	jc.OrderID = strings.TrimSpace(jc.OrderID)
	if jc.OrderID == "" {
		return JobCard{}, fmt.Errorf("%w: order_id is required", ErrInvalidInput)
	}
	if jc.Quantity <= 0 {
		return JobCard{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	jc.OrderStatus = strings.TrimSpace(strings.ToLower(jc.OrderStatus))
	if jc.OrderStatus == "" {
		jc.OrderStatus = "pending"
	}
	if !jobCardStatuses[jc.OrderStatus] {
		return JobCard{}, fmt.Errorf("%w: unsupported order_status %s", ErrInvalidInput, jc.OrderStatus)
	}
	jc.ID = ids.New()
	return s.store.CreateJobCard(ctx, jc)
}

func (s *Service) UpdateJobCard(ctx context.Context, id string, upd JobCardUpdate, updatedBy string) (JobCard, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return JobCard{}, fmt.Errorf("%w: job card id is required", ErrInvalidInput)
	}
	if upd.OrderStatus != nil {
		status := strings.TrimSpace(strings.ToLower(*upd.OrderStatus))
		if !jobCardStatuses[status] {
			return JobCard{}, fmt.Errorf("%w: unsupported order_status %s", ErrInvalidInput, status)
		}
		upd.OrderStatus = &status
	}
	if upd.Quantity != nil && *upd.Quantity <= 0 {
		return JobCard{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	return s.store.UpdateJobCard(ctx, id, upd, strings.TrimSpace(updatedBy))
}

func (s *Service) DeleteJobCard(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: job card id is required", ErrInvalidInput)
	}
	return s.store.DeleteJobCard(ctx, id)
}

func (s *Service) ListPurchaseOrders(ctx context.Context) ([]PurchaseOrder, error) {
	return s.store.ListPurchaseOrders(ctx)
}

func (s *Service) CreatePurchaseOrder(ctx context.Context, po PurchaseOrder) (PurchaseOrder, error) {
	po.PONumber = strings.TrimSpace(po.PONumber)
	if po.PONumber == "" {
		return PurchaseOrder{}, fmt.Errorf("%w: po_number is required", ErrInvalidInput)
	}
	if po.Quantity <= 0 {
		return PurchaseOrder{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	po.Status = strings.TrimSpace(strings.ToLower(po.Status))
	if po.Status == "" {
		po.Status = "pending"
	}
	if !purchaseOrderStatuses[po.Status] {
		return PurchaseOrder{}, fmt.Errorf("%w: unsupported status %s", ErrInvalidInput, po.Status)
	}
	po.ID = ids.New()
	return s.store.CreatePurchaseOrder(ctx, po)
}

func (s *Service) UpdatePurchaseOrder(ctx context.Context, id string, upd PurchaseOrderUpdate, updatedBy string) (PurchaseOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return PurchaseOrder{}, fmt.Errorf("%w: purchase order id is required", ErrInvalidInput)
	}
	if upd.Status != nil {
		status := strings.TrimSpace(strings.ToLower(*upd.Status))
		if !purchaseOrderStatuses[status] {
			return PurchaseOrder{}, fmt.Errorf("%w: unsupported status %s", ErrInvalidInput, status)
		}
		upd.Status = &status
	}
	if upd.Quantity != nil && *upd.Quantity <= 0 {
		return PurchaseOrder{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	return s.store.UpdatePurchaseOrder(ctx, id, upd, strings.TrimSpace(updatedBy))
}

func (s *Service) DeletePurchaseOrder(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: purchase order id is required", ErrInvalidInput)
	}
	return s.store.DeletePurchaseOrder(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	return s.store.ListProducts(ctx)
}

func (s *Service) CreateProduct(ctx context.Context, p Product) (Product, error) {
	p.ProductName = strings.TrimSpace(p.ProductName)
	if p.ProductName == "" {
		return Product{}, fmt.Errorf("%w: product_name is required", ErrInvalidInput)
	}
	p.Status = strings.TrimSpace(strings.ToLower(p.Status))
	if p.Status == "" {
		p.Status = "active"
	}
	return s.store.CreateProduct(ctx, p)
}

func (s *Service) UpdateProduct(ctx context.Context, slNo int64, upd ProductUpdate, updatedBy string) (Product, error) {
	if slNo <= 0 {
		return Product{}, fmt.Errorf("%w: sl_no is required", ErrInvalidInput)
	}
	if upd.ProductName != nil {
		name := strings.TrimSpace(*upd.ProductName)
		if name == "" {
			return Product{}, fmt.Errorf("%w: product_name is required", ErrInvalidInput)
		}
		upd.ProductName = &name
	}
	return s.store.UpdateProduct(ctx, slNo, upd, strings.TrimSpace(updatedBy))
}

func (s *Service) DeleteProduct(ctx context.Context, slNo int64) error {
	if slNo <= 0 {
		return fmt.Errorf("%w: sl_no is required", ErrInvalidInput)
	}
	return s.store.DeleteProduct(ctx, slNo)
}

func (s *Service) ListReturnItems(ctx context.Context) ([]ReturnItem, error) {
	return s.store.ListReturnItems(ctx)
}

func (s *Service) CreateReturnItem(ctx context.Context, item ReturnItem) (ReturnItem, error) {
	item.ReturnID = strings.TrimSpace(item.ReturnID)
	item.OrderID = strings.TrimSpace(item.OrderID)
	item.BaseSKU = strings.TrimSpace(item.BaseSKU)
	if item.ReturnID == "" || item.OrderID == "" {
		return ReturnItem{}, fmt.Errorf("%w: return_id and order_id are required", ErrInvalidInput)
	}
	if item.BaseSKU == "" {
		return ReturnItem{}, fmt.Errorf("%w: base_sku is required", ErrInvalidInput)
	}
	if item.Quantity <= 0 {
		return ReturnItem{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	item.ID = ids.New()
	return s.store.CreateReturnItem(ctx, item)
}

func (s *Service) UpdateReturnItem(ctx context.Context, id string, upd ReturnItemUpdate, updatedBy string) (ReturnItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ReturnItem{}, fmt.Errorf("%w: return item id is required", ErrInvalidInput)
	}
	if upd.Quantity != nil && *upd.Quantity <= 0 {
		return ReturnItem{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	return s.store.UpdateReturnItem(ctx, id, upd, strings.TrimSpace(updatedBy))
}

func (s *Service) DeleteReturnItem(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: return item id is required", ErrInvalidInput)
	}
	return s.store.DeleteReturnItem(ctx, id)
}

func (s *Service) ListReadyItems(ctx context.Context) ([]ReadyItem, error) {
	return s.store.ListReadyItems(ctx)
}
