// Package records holds the typed CRUD services behind the dashboard pages:
// production job cards, purchase orders, the product library and the two
// inventory views.
package records

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput = errors.New("records: invalid input")
	ErrNotFound     = errors.New("records: not found")
	ErrConflict     = errors.New("records: resource conflict")
)

// JobCard is one production record.
type JobCard struct {
	ID                string    `json:"id"`
	OrderID           string    `json:"order_id"`
	ChildOrderID      string    `json:"child_order_id,omitempty"`
	WebsiteSKU        string    `json:"website_sku,omitempty"`
	Category          string    `json:"category,omitempty"`
	StoreName         string    `json:"store_name,omitempty"`
	CustomizationCode string    `json:"customization_code,omitempty"`
	DesignCode        string    `json:"design_code,omitempty"`
	SequenceNumber    int64     `json:"sequence_number,omitempty"`
	Location          string    `json:"location,omitempty"`
	Description       string    `json:"website_sku_description,omitempty"`
	ImageURL          string    `json:"image_url,omitempty"`
	OrderDate         time.Time `json:"order_date"`
	AssignedTo        string    `json:"assigned_to,omitempty"`
	AssignedBy        string    `json:"assigned_by,omitempty"`
	OrderStatus       string    `json:"order_status"`
	Reason            string    `json:"reason,omitempty"`
	ProductionSLA     int       `json:"production_sla,omitempty"`
	Quantity          int       `json:"quantity"`
	CreatedAt         time.Time `json:"created_at"`
	CreatedBy         string    `json:"created_by,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
	UpdatedBy         string    `json:"updated_by,omitempty"`
}

// JobCardUpdate carries partial changes; nil fields are untouched.
type JobCardUpdate struct {
	OrderStatus   *string `json:"order_status,omitempty"`
	AssignedTo    *string `json:"assigned_to,omitempty"`
	Reason        *string `json:"reason,omitempty"`
	Location      *string `json:"location,omitempty"`
	ProductionSLA *int    `json:"production_sla,omitempty"`
	Quantity      *int    `json:"quantity,omitempty"`
}

// PurchaseOrder is one procurement order row.
type PurchaseOrder struct {
	ID         string    `json:"id"`
	PONumber   string    `json:"po_number"`
	BaseSKU    string    `json:"base_sku,omitempty"`
	VendorSKU  string    `json:"vendor_sku,omitempty"`
	Quantity   int       `json:"quantity"`
	Category   string    `json:"category,omitempty"`
	Color      string    `json:"color,omitempty"`
	Status     string    `json:"status"`
	VendorName string    `json:"vendor_name,omitempty"`
	PODetails  string    `json:"po_details,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	CreatedBy  string    `json:"created_by,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
	UpdatedBy  string    `json:"updated_by,omitempty"`
}

// PurchaseOrderUpdate carries partial changes; nil fields are untouched.
type PurchaseOrderUpdate struct {
	Status     *string `json:"status,omitempty"`
	Quantity   *int    `json:"quantity,omitempty"`
	VendorName *string `json:"vendor_name,omitempty"`
	PODetails  *string `json:"po_details,omitempty"`
}

// Product is one product-library row. SlNo is assigned by the store.
type Product struct {
	SlNo              int64     `json:"sl_no"`
	ProductName       string    `json:"product_name"`
	ProductLink       string    `json:"product_link,omitempty"`
	BlankSKU          string    `json:"blank_sku,omitempty"`
	DesignSKU         string    `json:"design_sku,omitempty"`
	FinalSKU          string    `json:"final_sku,omitempty"`
	CustomizationType string    `json:"customization_type,omitempty"`
	ArtworkLink       string    `json:"artwork_link,omitempty"`
	Dimension         string    `json:"dimension,omitempty"`
	Remarks           string    `json:"remarks,omitempty"`
	Status            string    `json:"status,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	CreatedBy         string    `json:"created_by,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
	UpdatedBy         string    `json:"updated_by,omitempty"`
}

// ProductUpdate carries partial changes; nil fields are untouched.
type ProductUpdate struct {
	ProductName *string `json:"product_name,omitempty"`
	ProductLink *string `json:"product_link,omitempty"`
	BlankSKU    *string `json:"blank_sku,omitempty"`
	DesignSKU   *string `json:"design_sku,omitempty"`
	FinalSKU    *string `json:"final_sku,omitempty"`
	Remarks     *string `json:"remarks,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// ReturnItem is one returned-stock row.
type ReturnItem struct {
	ID                   string    `json:"id"`
	ReturnID             string    `json:"return_id"`
	OrderID              string    `json:"order_id"`
	BaseSKU              string    `json:"base_sku"`
	WebsiteSKU           string    `json:"website_sku,omitempty"`
	Category             string    `json:"category,omitempty"`
	StoreName            string    `json:"store_name,omitempty"`
	CustomizationDetails string    `json:"customization_details,omitempty"`
	DesignCode           string    `json:"design_code,omitempty"`
	SequenceNumber       int64     `json:"sequence_number,omitempty"`
	Location             string    `json:"location,omitempty"`
	ReturnDate           time.Time `json:"return_date"`
	ReturnReason         string    `json:"return_reason,omitempty"`
	IsResellable         bool      `json:"is_resellable"`
	RebookOrder          bool      `json:"rebook_order"`
	StorageLocation      string    `json:"storage_location,omitempty"`
	ImageURL             string    `json:"image_url,omitempty"`
	Quantity             int       `json:"quantity"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	UpdatedBy            string    `json:"updated_by,omitempty"`
}

// ReturnItemUpdate carries partial changes; nil fields are untouched.
type ReturnItemUpdate struct {
	ReturnReason    *string `json:"return_reason,omitempty"`
	IsResellable    *bool   `json:"is_resellable,omitempty"`
	RebookOrder     *bool   `json:"rebook_order,omitempty"`
	StorageLocation *string `json:"storage_location,omitempty"`
	Quantity        *int    `json:"quantity,omitempty"`
}

// ReadyItem is one ready-to-ship stock row. The view is read only; rows are
// produced by the fulfilment pipeline, not this service.
type ReadyItem struct {
	ID                   string    `json:"id"`
	BaseSKU              string    `json:"base_sku"`
	WebsiteSKU           string    `json:"website_sku,omitempty"`
	Category             string    `json:"category,omitempty"`
	StoreName            string    `json:"store_name,omitempty"`
	CustomizationDetails string    `json:"customization_details,omitempty"`
	DesignCode           string    `json:"design_code,omitempty"`
	SequenceNumber       int64     `json:"sequence_number,omitempty"`
	Location             string    `json:"location,omitempty"`
	StockDate            time.Time `json:"stock_date"`
	OrderQty             int       `json:"order_qty"`
	StorageLocation      string    `json:"storage_location,omitempty"`
	ImageURL             string    `json:"image_url,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
