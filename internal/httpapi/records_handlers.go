package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/offineeds/oms/internal/access"
	"github.com/offineeds/oms/internal/audit"
	"github.com/offineeds/oms/internal/records"
)

// Collection handlers gate reads at LevelRead and mutations at LevelWrite
// against the module the route belongs to.

func (a *API) handleJobCards(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := a.requireModule(w, r, access.ModuleJobCards, access.LevelRead); !ok {
			return
		}
		list, err := a.recs.ListJobCards(r.Context())
		if err != nil {
			handleRecordsError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"job_cards": list})
	case http.MethodPost:
		principal, ok := a.requireModule(w, r, access.ModuleJobCards, access.LevelWrite)
		if !ok {
			return
		}
		var jc records.JobCard
		if err := decodeJSON(w, r, &jc); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		jc.CreatedBy = principal.Email
		created, err := a.recs.CreateJobCard(r.Context(), jc)
		if err != nil {
			handleRecordsError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "job_card.created", map[string]any{"id": created.ID, "order_id": created.OrderID})
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleJobCardResource(w http.ResponseWriter, r *http.Request) {
	id, ok := resourceID(w, r, "/v1/job-cards/")
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		if _, ok := a.requireModule(w, r, access.ModuleJobCards, access.LevelRead); !ok {
			return
		}
		jc, err := a.recs.GetJobCard(r.Context(), id)
		if err != nil {
			handleRecordsError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, jc)
	case http.MethodPatch:
		principal, ok := a.requireModule(w, r, access.ModuleJobCards, access.LevelWrite)
		if !ok {
			return
		}
		var upd records.JobCardUpdate
		if err := decodeJSON(w, r, &upd); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		jc, err := a.recs.UpdateJobCard(r.Context(), id, upd, principal.Email)
		if err != nil {
			handleRecordsError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "job_card.updated", map[string]any{"id": id})
		writeJSON(w, http.StatusOK, jc)
	case http.MethodDelete:
		if _, ok := a.requireModule(w, r, access.ModuleJobCards, access.LevelWrite); !ok {
			return
		}
		if err := a.recs.DeleteJobCard(r.Context(), id); err != nil {
			handleRecordsError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "job_card.deleted", map[string]any{"id": id})
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}

func (a *API) handlePurchaseOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := a.requireModule(w, r, access.ModulePurchaseOrders, access.LevelRead); !ok {
			return
		}
		list, err := a.recs.ListPurchaseOrders(r.Context())
		if err != nil {
			handleRecordsError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"purchase_orders": list})
	case http.MethodPost:
		principal, ok := a.requireModule(w, r, access.ModulePurchaseOrders, access.LevelWrite)
		if !ok {
			return
		}
		var po records.PurchaseOrder
		if err := decodeJSON(w, r, &po); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		po.CreatedBy = principal.Email
		created, err := a.recs.CreatePurchaseOrder(r.Context(), po)
		if err != nil {
			handleRecordsError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "purchase_order.created", map[string]any{"id": created.ID, "po_number": created.PONumber})
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handlePurchaseOrderResource(w http.ResponseWriter, r *http.Request) {
	id, ok := resourceID(w, r, "/v1/purchase-orders/")
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodPatch:
		principal, ok := a.requireModule(w, r, access.ModulePurchaseOrders, access.LevelWrite)
		if !ok {
			return
		}
		var upd records.PurchaseOrderUpdate
		if err := decodeJSON(w, r, &upd); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		po, err := a.recs.UpdatePurchaseOrder(r.Context(), id, upd, principal.Email)
		if err != nil {
			handleRecordsError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "purchase_order.updated", map[string]any{"id": id})
		writeJSON(w, http.StatusOK, po)
	case http.MethodDelete:
		if _, ok := a.requireModule(w, r, access.ModulePurchaseOrders, access.LevelWrite); !ok {
			return
		}
		if err := a.recs.DeletePurchaseOrder(r.Context(), id); err != nil {
			handleRecordsError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "purchase_order.deleted", map[string]any{"id": id})
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodPatch, http.MethodDelete)
	}
}

func (a *API) handleProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := a.requireModule(w, r, access.ModuleProductLibrary, access.LevelRead); !ok {
			return
		}
		list, err := a.recs.ListProducts(r.Context())
		if err != nil {
			handleRecordsError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": list})
	case http.MethodPost:
		principal, ok := a.requireModule(w, r, access.ModuleProductLibrary, access.LevelWrite)
		if !ok {
			return
		}
		var p records.Product
		if err := decodeJSON(w, r, &p); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		p.CreatedBy = principal.Email
		created, err := a.recs.CreateProduct(r.Context(), p)
		if err != nil {
			handleRecordsError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "product.created", map[string]any{"sl_no": created.SlNo, "product_name": created.ProductName})
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleProductResource(w http.ResponseWriter, r *http.Request) {
	raw, ok := resourceID(w, r, "/v1/products/")
	if !ok {
		return
	}
	slNo, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid product number")
		return
	}
	switch r.Method {
	case http.MethodPatch:
		principal, ok := a.requireModule(w, r, access.ModuleProductLibrary, access.LevelWrite)
		if !ok {
			return
		}
		var upd records.ProductUpdate
		if err := decodeJSON(w, r, &upd); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		p, err := a.recs.UpdateProduct(r.Context(), slNo, upd, principal.Email)
		if err != nil {
			handleRecordsError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "product.updated", map[string]any{"sl_no": slNo})
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		if _, ok := a.requireModule(w, r, access.ModuleProductLibrary, access.LevelWrite); !ok {
			return
		}
		if err := a.recs.DeleteProduct(r.Context(), slNo); err != nil {
			handleRecordsError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "product.deleted", map[string]any{"sl_no": slNo})
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodPatch, http.MethodDelete)
	}
}

func (a *API) handleReturnInventory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := a.requireModule(w, r, access.ModuleReturnInventory, access.LevelRead); !ok {
			return
		}
		list, err := a.recs.ListReturnItems(r.Context())
		if err != nil {
			handleRecordsError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"return_items": list})
	case http.MethodPost:
		principal, ok := a.requireModule(w, r, access.ModuleReturnInventory, access.LevelWrite)
		if !ok {
			return
		}
		var item records.ReturnItem
		if err := decodeJSON(w, r, &item); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		item.UpdatedBy = principal.Email
		created, err := a.recs.CreateReturnItem(r.Context(), item)
		if err != nil {
			handleRecordsError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "return_item.created", map[string]any{"id": created.ID, "return_id": created.ReturnID})
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleReturnItemResource(w http.ResponseWriter, r *http.Request) {
	id, ok := resourceID(w, r, "/v1/return-inventory/")
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodPatch:
		principal, ok := a.requireModule(w, r, access.ModuleReturnInventory, access.LevelWrite)
		if !ok {
			return
		}
		var upd records.ReturnItemUpdate
		if err := decodeJSON(w, r, &upd); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		item, err := a.recs.UpdateReturnItem(r.Context(), id, upd, principal.Email)
		if err != nil {
			handleRecordsError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "return_item.updated", map[string]any{"id": id})
		writeJSON(w, http.StatusOK, item)
	case http.MethodDelete:
		if _, ok := a.requireModule(w, r, access.ModuleReturnInventory, access.LevelWrite); !ok {
			return
		}
		if err := a.recs.DeleteReturnItem(r.Context(), id); err != nil {
			handleRecordsError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "return_item.deleted", map[string]any{"id": id})
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodPatch, http.MethodDelete)
	}
}

// Ready-to-ship stock is a reporting view with no mutation routes.
func (a *API) handleReadyInventory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if _, ok := a.requireModule(w, r, access.ModuleReadyInventory, access.LevelRead); !ok {
		return
	}
	list, err := a.recs.ListReadyItems(r.Context())
	if err != nil {
		handleRecordsError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ready_items": list})
}

func resourceID(w http.ResponseWriter, r *http.Request, prefix string) (string, bool) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return "", false
	}
	return id, true
}

func handleRecordsError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, records.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, records.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, records.ErrConflict):
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "records operation failed")
	}
}
