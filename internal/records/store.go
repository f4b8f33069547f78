package records

import "context"

// Store is the relational boundary for the page tables. The production
// implementation lives in internal/store/pg.
type Store interface {
	ListJobCards(ctx context.Context) ([]JobCard, error)
	GetJobCard(ctx context.Context, id string) (JobCard, error)
	CreateJobCard(ctx context.Context, jc JobCard) (JobCard, error)
	UpdateJobCard(ctx context.Context, id string, upd JobCardUpdate, updatedBy string) (JobCard, error)
	DeleteJobCard(ctx context.Context, id string) error

	ListPurchaseOrders(ctx context.Context) ([]PurchaseOrder, error)
	CreatePurchaseOrder(ctx context.Context, po PurchaseOrder) (PurchaseOrder, error)
	UpdatePurchaseOrder(ctx context.Context, id string, upd PurchaseOrderUpdate, updatedBy string) (PurchaseOrder, error)
	DeletePurchaseOrder(ctx context.Context, id string) error

	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, p Product) (Product, error)
	UpdateProduct(ctx context.Context, slNo int64, upd ProductUpdate, updatedBy string) (Product, error)
	DeleteProduct(ctx context.Context, slNo int64) error

	ListReturnItems(ctx context.Context) ([]ReturnItem, error)
	CreateReturnItem(ctx context.Context, item ReturnItem) (ReturnItem, error)
	UpdateReturnItem(ctx context.Context, id string, upd ReturnItemUpdate, updatedBy string) (ReturnItem, error)
	DeleteReturnItem(ctx context.Context, id string) error

	ListReadyItems(ctx context.Context) ([]ReadyItem, error)
}
