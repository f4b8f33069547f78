package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/offineeds/oms/internal/records"
)

var _ records.Store = (*Store)(nil)

const jobCardColumns = `
	id, order_id, coalesce(child_order_id, ''), coalesce(website_sku, ''),
	coalesce(category, ''), coalesce(store_name, ''), coalesce(customization_code, ''),
	coalesce(design_code, ''), coalesce(sequence_number, 0), coalesce(location, ''),
	coalesce(website_sku_description, ''), coalesce(image_url, ''), order_date,
	coalesce(assigned_to, ''), coalesce(assigned_by, ''), order_status,
	coalesce(reason, ''), coalesce(production_sla, 0), quantity,
	created_at, coalesce(created_by, ''), updated_at, coalesce(updated_by, '')`

func scanJobCard(scan func(dest ...any) error) (records.JobCard, error) {
	var (
		jc        records.JobCard
		orderDate sql.NullTime
	)
	err := scan(
		&jc.ID, &jc.OrderID, &jc.ChildOrderID, &jc.WebsiteSKU,
		&jc.Category, &jc.StoreName, &jc.CustomizationCode,
		&jc.DesignCode, &jc.SequenceNumber, &jc.Location,
		&jc.Description, &jc.ImageURL, &orderDate,
		&jc.AssignedTo, &jc.AssignedBy, &jc.OrderStatus,
		&jc.Reason, &jc.ProductionSLA, &jc.Quantity,
		&jc.CreatedAt, &jc.CreatedBy, &jc.UpdatedAt, &jc.UpdatedBy,
	)
	if err != nil {
		return records.JobCard{}, err
	}
	if orderDate.Valid {
		jc.OrderDate = orderDate.Time
	}
	return jc, nil
}

func (s *Store) ListJobCards(ctx context.Context) ([]records.JobCard, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	rows, err := s.db.QueryContext(ctx, `
		select `+jobCardColumns+`
		from production_records
		order by created_at desc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []records.JobCard
	for rows.Next() {
		jc, err := scanJobCard(rows.Scan)
		if err != nil {
			return nil, err
		}
		cards = append(cards, jc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *Store) GetJobCard(ctx context.Context, id string) (records.JobCard, error) {
	if s.db == nil {
		return records.JobCard{}, errNoDB
	}
	row := s.db.QueryRowContext(ctx, `
		select `+jobCardColumns+`
		from production_records
		where id = $1
	`, id)
	jc, err := scanJobCard(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return records.JobCard{}, records.ErrNotFound
	}
	if err != nil {
		return records.JobCard{}, err
	}
	return jc, nil
}

func (s *Store) CreateJobCard(ctx context.Context, jc records.JobCard) (records.JobCard, error) {
	if s.db == nil {
		return records.JobCard{}, errNoDB
	}
	var orderDate any
	if !jc.OrderDate.IsZero() {
		orderDate = jc.OrderDate
	}
	row := s.db.QueryRowContext(ctx, `
		insert into production_records (
			id, order_id, child_order_id, website_sku, category, store_name,
			customization_code, design_code, sequence_number, location,
			website_sku_description, image_url, order_date, assigned_to,
			assigned_by, order_status, reason, production_sla, quantity, created_by
		)
		values ($1,$2,$3,$4,$5,$6,$7,$8,nullif($9,0),$10,$11,$12,$13,$14,$15,$16,$17,nullif($18,0),$19,$20)
		returning `+jobCardColumns+`
	`, jc.ID, jc.OrderID, nullIfEmpty(jc.ChildOrderID), nullIfEmpty(jc.WebsiteSKU),
		nullIfEmpty(jc.Category), nullIfEmpty(jc.StoreName), nullIfEmpty(jc.CustomizationCode),
		nullIfEmpty(jc.DesignCode), jc.SequenceNumber, nullIfEmpty(jc.Location),
		nullIfEmpty(jc.Description), nullIfEmpty(jc.ImageURL), orderDate, nullIfEmpty(jc.AssignedTo),
		nullIfEmpty(jc.AssignedBy), jc.OrderStatus, nullIfEmpty(jc.Reason), jc.ProductionSLA,
		jc.Quantity, nullIfEmpty(jc.CreatedBy))
	created, err := scanJobCard(row.Scan)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return records.JobCard{}, records.ErrConflict
		}
		return records.JobCard{}, err
	}
	return created, nil
}

func (s *Store) UpdateJobCard(ctx context.Context, id string, upd records.JobCardUpdate, updatedBy string) (records.JobCard, error) {
	if s.db == nil {
		return records.JobCard{}, errNoDB
	}
	var (
		sets []string
		args []any
		idx  = 1
	)
	if upd.OrderStatus != nil {
		sets = append(sets, fmt.Sprintf("order_status = $%d", idx))
		args = append(args, *upd.OrderStatus)
		idx++
	}
	if upd.AssignedTo != nil {
		sets = append(sets, fmt.Sprintf("assigned_to = $%d", idx))
		args = append(args, nullIfEmpty(*upd.AssignedTo))
		idx++
	}
	if upd.Reason != nil {
		sets = append(sets, fmt.Sprintf("reason = $%d", idx))
		args = append(args, nullIfEmpty(*upd.Reason))
		idx++
	}
	if upd.Location != nil {
		sets = append(sets, fmt.Sprintf("location = $%d", idx))
		args = append(args, nullIfEmpty(*upd.Location))
		idx++
	}
	if upd.ProductionSLA != nil {
		sets = append(sets, fmt.Sprintf("production_sla = $%d", idx))
		args = append(args, *upd.ProductionSLA)
		idx++
	}
	if upd.Quantity != nil {
		sets = append(sets, fmt.Sprintf("quantity = $%d", idx))
		args = append(args, *upd.Quantity)
		idx++
	}
	if len(sets) > 0 {
		sets = append(sets, fmt.Sprintf("updated_by = $%d", idx))
		args = append(args, nullIfEmpty(updatedBy))
		idx++
		sets = append(sets, "updated_at = now()")
		query := fmt.Sprintf(`update production_records set %s where id = $%d`, strings.Join(sets, ", "), idx)
		args = append(args, id)
		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return records.JobCard{}, err
		}
		aff, err := res.RowsAffected()
		if err != nil {
			return records.JobCard{}, err
		}
		if aff == 0 {
			return records.JobCard{}, records.ErrNotFound
		}
	}
	return s.GetJobCard(ctx, id)
}

func (s *Store) DeleteJobCard(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "production_records", id)
}

const purchaseOrderColumns = `
	id, po_number, coalesce(base_sku, ''), coalesce(vendor_sku, ''), quantity,
	coalesce(category, ''), coalesce(color, ''), status, coalesce(vendor_name, ''),
	coalesce(po_details, ''), created_at, coalesce(created_by, ''), updated_at, coalesce(updated_by, '')`

func scanPurchaseOrder(scan func(dest ...any) error) (records.PurchaseOrder, error) {
	var po records.PurchaseOrder
	err := scan(
		&po.ID, &po.PONumber, &po.BaseSKU, &po.VendorSKU, &po.Quantity,
		&po.Category, &po.Color, &po.Status, &po.VendorName,
		&po.PODetails, &po.CreatedAt, &po.CreatedBy, &po.UpdatedAt, &po.UpdatedBy,
	)
	if err != nil {
		return records.PurchaseOrder{}, err
	}
	return po, nil
}

func (s *Store) ListPurchaseOrders(ctx context.Context) ([]records.PurchaseOrder, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	rows, err := s.db.QueryContext(ctx, `
		select `+purchaseOrderColumns+`
		from purchase_orders
		order by created_at desc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []records.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) CreatePurchaseOrder(ctx context.Context, po records.PurchaseOrder) (records.PurchaseOrder, error) {
	if s.db == nil {
		return records.PurchaseOrder{}, errNoDB
	}
	row := s.db.QueryRowContext(ctx, `
		insert into purchase_orders (
			id, po_number, base_sku, vendor_sku, quantity, category, color,
			status, vendor_name, po_details, created_by
		)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		returning `+purchaseOrderColumns+`
	`, po.ID, po.PONumber, nullIfEmpty(po.BaseSKU), nullIfEmpty(po.VendorSKU), po.Quantity,
		nullIfEmpty(po.Category), nullIfEmpty(po.Color), po.Status, nullIfEmpty(po.VendorName),
		nullIfEmpty(po.PODetails), nullIfEmpty(po.CreatedBy))
	created, err := scanPurchaseOrder(row.Scan)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return records.PurchaseOrder{}, records.ErrConflict
		}
		return records.PurchaseOrder{}, err
	}
	return created, nil
}

func (s *Store) UpdatePurchaseOrder(ctx context.Context, id string, upd records.PurchaseOrderUpdate, updatedBy string) (records.PurchaseOrder, error) {
	if s.db == nil {
		return records.PurchaseOrder{}, errNoDB
	}
	var (
		sets []string
		args []any
		idx  = 1
	)
	if upd.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", idx))
		args = append(args, *upd.Status)
		idx++
	}
	if upd.Quantity != nil {
		sets = append(sets, fmt.Sprintf("quantity = $%d", idx))
		args = append(args, *upd.Quantity)
		idx++
	}
	if upd.VendorName != nil {
		sets = append(sets, fmt.Sprintf("vendor_name = $%d", idx))
		args = append(args, nullIfEmpty(*upd.VendorName))
		idx++
	}
	if upd.PODetails != nil {
		sets = append(sets, fmt.Sprintf("po_details = $%d", idx))
		args = append(args, nullIfEmpty(*upd.PODetails))
		idx++
	}
	if len(sets) > 0 {
		sets = append(sets, fmt.Sprintf("updated_by = $%d", idx))
		args = append(args, nullIfEmpty(updatedBy))
		idx++
		sets = append(sets, "updated_at = now()")
		query := fmt.Sprintf(`update purchase_orders set %s where id = $%d`, strings.Join(sets, ", "), idx)
		args = append(args, id)
		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return records.PurchaseOrder{}, err
		}
		aff, err := res.RowsAffected()
		if err != nil {
			return records.PurchaseOrder{}, err
		}
		if aff == 0 {
			return records.PurchaseOrder{}, records.ErrNotFound
		}
	}
	var po records.PurchaseOrder
	row := s.db.QueryRowContext(ctx, `
		select `+purchaseOrderColumns+`
		from purchase_orders
		where id = $1
	`, id)
	po, err := scanPurchaseOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return records.PurchaseOrder{}, records.ErrNotFound
	}
	if err != nil {
		return records.PurchaseOrder{}, err
	}
	return po, nil
}

func (s *Store) DeletePurchaseOrder(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "purchase_orders", id)
}

const productColumns = `
	sl_no, product_name, coalesce(product_link, ''), coalesce(blank_sku, ''),
	coalesce(design_sku, ''), coalesce(final_sku, ''), coalesce(customization_type, ''),
	coalesce(artwork_link, ''), coalesce(dimension, ''), coalesce(remarks, ''),
	coalesce(status, ''), created_at, coalesce(created_by, ''), updated_at, coalesce(updated_by, '')`

func scanProduct(scan func(dest ...any) error) (records.Product, error) {
	var p records.Product
	err := scan(
		&p.SlNo, &p.ProductName, &p.ProductLink, &p.BlankSKU,
		&p.DesignSKU, &p.FinalSKU, &p.CustomizationType,
		&p.ArtworkLink, &p.Dimension, &p.Remarks,
		&p.Status, &p.CreatedAt, &p.CreatedBy, &p.UpdatedAt, &p.UpdatedBy,
	)
	if err != nil {
		return records.Product{}, err
	}
	return p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]records.Product, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	rows, err := s.db.QueryContext(ctx, `
		select `+productColumns+`
		from product_library
		order by sl_no
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []records.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) CreateProduct(ctx context.Context, p records.Product) (records.Product, error) {
	if s.db == nil {
		return records.Product{}, errNoDB
	}
	row := s.db.QueryRowContext(ctx, `
		insert into product_library (
			product_name, product_link, blank_sku, design_sku, final_sku,
			customization_type, artwork_link, dimension, remarks, status, created_by
		)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		returning `+productColumns+`
	`, p.ProductName, nullIfEmpty(p.ProductLink), nullIfEmpty(p.BlankSKU), nullIfEmpty(p.DesignSKU),
		nullIfEmpty(p.FinalSKU), nullIfEmpty(p.CustomizationType), nullIfEmpty(p.ArtworkLink),
		nullIfEmpty(p.Dimension), nullIfEmpty(p.Remarks), nullIfEmpty(p.Status), nullIfEmpty(p.CreatedBy))
	created, err := scanProduct(row.Scan)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return records.Product{}, records.ErrConflict
		}
		return records.Product{}, err
	}
	return created, nil
}

func (s *Store) UpdateProduct(ctx context.Context, slNo int64, upd records.ProductUpdate, updatedBy string) (records.Product, error) {
	if s.db == nil {
		return records.Product{}, errNoDB
	}
	var (
		sets []string
		args []any
		idx  = 1
	)
	set := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}
	if upd.ProductName != nil {
		set("product_name", *upd.ProductName)
	}
	if upd.ProductLink != nil {
		set("product_link", nullIfEmpty(*upd.ProductLink))
	}
	if upd.BlankSKU != nil {
		set("blank_sku", nullIfEmpty(*upd.BlankSKU))
	}
	if upd.DesignSKU != nil {
		set("design_sku", nullIfEmpty(*upd.DesignSKU))
	}
	if upd.FinalSKU != nil {
		set("final_sku", nullIfEmpty(*upd.FinalSKU))
	}
	if upd.Remarks != nil {
		set("remarks", nullIfEmpty(*upd.Remarks))
	}
	if upd.Status != nil {
		set("status", nullIfEmpty(*upd.Status))
	}
	if len(sets) > 0 {
		set("updated_by", nullIfEmpty(updatedBy))
		sets = append(sets, "updated_at = now()")
		query := fmt.Sprintf(`update product_library set %s where sl_no = $%d`, strings.Join(sets, ", "), idx)
		args = append(args, slNo)
		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return records.Product{}, err
		}
		aff, err := res.RowsAffected()
		if err != nil {
			return records.Product{}, err
		}
		if aff == 0 {
			return records.Product{}, records.ErrNotFound
		}
	}
	row := s.db.QueryRowContext(ctx, `
		select `+productColumns+`
		from product_library
		where sl_no = $1
	`, slNo)
	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return records.Product{}, records.ErrNotFound
	}
	if err != nil {
		return records.Product{}, err
	}
	return p, nil
}

func (s *Store) DeleteProduct(ctx context.Context, slNo int64) error {
	if s.db == nil {
		return errNoDB
	}
	res, err := s.db.ExecContext(ctx, `delete from product_library where sl_no = $1`, slNo)
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return records.ErrNotFound
	}
	return nil
}

const returnItemColumns = `
	id, return_id, order_id, base_sku, coalesce(website_sku, ''), coalesce(category, ''),
	coalesce(store_name, ''), coalesce(customization_details, ''), coalesce(design_code, ''),
	coalesce(sequence_number, 0), coalesce(location, ''), return_date,
	coalesce(return_reason, ''), coalesce(is_resellable, false), coalesce(rebook_order, false),
	coalesce(storage_location, ''), coalesce(image_url, ''), quantity,
	created_at, updated_at, coalesce(updated_by, '')`

func scanReturnItem(scan func(dest ...any) error) (records.ReturnItem, error) {
	var (
		item       records.ReturnItem
		returnDate sql.NullTime
	)
	err := scan(
		&item.ID, &item.ReturnID, &item.OrderID, &item.BaseSKU, &item.WebsiteSKU, &item.Category,
		&item.StoreName, &item.CustomizationDetails, &item.DesignCode,
		&item.SequenceNumber, &item.Location, &returnDate,
		&item.ReturnReason, &item.IsResellable, &item.RebookOrder,
		&item.StorageLocation, &item.ImageURL, &item.Quantity,
		&item.CreatedAt, &item.UpdatedAt, &item.UpdatedBy,
	)
	if err != nil {
		return records.ReturnItem{}, err
	}
	if returnDate.Valid {
		item.ReturnDate = returnDate.Time
	}
	return item, nil
}

func (s *Store) ListReturnItems(ctx context.Context) ([]records.ReturnItem, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	rows, err := s.db.QueryContext(ctx, `
		select `+returnItemColumns+`
		from return_inventory
		order by created_at desc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []records.ReturnItem
	for rows.Next() {
		item, err := scanReturnItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CreateReturnItem(ctx context.Context, item records.ReturnItem) (records.ReturnItem, error) {
	if s.db == nil {
		return records.ReturnItem{}, errNoDB
	}
	var returnDate any
	if !item.ReturnDate.IsZero() {
		returnDate = item.ReturnDate
	}
	row := s.db.QueryRowContext(ctx, `
		insert into return_inventory (
			id, return_id, order_id, base_sku, website_sku, category, store_name,
			customization_details, design_code, sequence_number, location,
			return_date, return_reason, is_resellable, rebook_order,
			storage_location, image_url, quantity
		)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,nullif($10,0),$11,$12,$13,$14,$15,$16,$17,$18)
		returning `+returnItemColumns+`
	`, item.ID, item.ReturnID, item.OrderID, item.BaseSKU, nullIfEmpty(item.WebsiteSKU),
		nullIfEmpty(item.Category), nullIfEmpty(item.StoreName), nullIfEmpty(item.CustomizationDetails),
		nullIfEmpty(item.DesignCode), item.SequenceNumber, nullIfEmpty(item.Location),
		returnDate, nullIfEmpty(item.ReturnReason), item.IsResellable, item.RebookOrder,
		nullIfEmpty(item.StorageLocation), nullIfEmpty(item.ImageURL), item.Quantity)
	created, err := scanReturnItem(row.Scan)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return records.ReturnItem{}, records.ErrConflict
		}
		return records.ReturnItem{}, err
	}
	return created, nil
}

func (s *Store) UpdateReturnItem(ctx context.Context, id string, upd records.ReturnItemUpdate, updatedBy string) (records.ReturnItem, error) {
	if s.db == nil {
		return records.ReturnItem{}, errNoDB
	}
	var (
		sets []string
		args []any
		idx  = 1
	)
	set := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}
	if upd.ReturnReason != nil {
		set("return_reason", nullIfEmpty(*upd.ReturnReason))
	}
	if upd.IsResellable != nil {
		set("is_resellable", *upd.IsResellable)
	}
	if upd.RebookOrder != nil {
		set("rebook_order", *upd.RebookOrder)
	}
	if upd.StorageLocation != nil {
		set("storage_location", nullIfEmpty(*upd.StorageLocation))
	}
	if upd.Quantity != nil {
		set("quantity", *upd.Quantity)
	}
	if len(sets) > 0 {
		set("updated_by", nullIfEmpty(updatedBy))
		sets = append(sets, "updated_at = now()")
		query := fmt.Sprintf(`update return_inventory set %s where id = $%d`, strings.Join(sets, ", "), idx)
		args = append(args, id)
		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return records.ReturnItem{}, err
		}
		aff, err := res.RowsAffected()
		if err != nil {
			return records.ReturnItem{}, err
		}
		if aff == 0 {
			return records.ReturnItem{}, records.ErrNotFound
		}
	}
	row := s.db.QueryRowContext(ctx, `
		select `+returnItemColumns+`
		from return_inventory
		where id = $1
	`, id)
	item, err := scanReturnItem(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return records.ReturnItem{}, records.ErrNotFound
	}
	if err != nil {
		return records.ReturnItem{}, err
	}
	return item, nil
}

func (s *Store) DeleteReturnItem(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "return_inventory", id)
}

const readyItemColumns = `
	id, base_sku, coalesce(website_sku, ''), coalesce(category, ''), coalesce(store_name, ''),
	coalesce(customization_details, ''), coalesce(design_code, ''), coalesce(sequence_number, 0),
	coalesce(location, ''), stock_date, coalesce(order_qty, 0),
	coalesce(storage_location, ''), coalesce(image_url, ''), created_at, updated_at`

func (s *Store) ListReadyItems(ctx context.Context) ([]records.ReadyItem, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	rows, err := s.db.QueryContext(ctx, `
		select `+readyItemColumns+`
		from ready_to_ship_inventory
		order by created_at desc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []records.ReadyItem
	for rows.Next() {
		var (
			item      records.ReadyItem
			stockDate sql.NullTime
		)
		if err := rows.Scan(
			&item.ID, &item.BaseSKU, &item.WebsiteSKU, &item.Category, &item.StoreName,
			&item.CustomizationDetails, &item.DesignCode, &item.SequenceNumber,
			&item.Location, &stockDate, &item.OrderQty,
			&item.StorageLocation, &item.ImageURL, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if stockDate.Valid {
			item.StockDate = stockDate.Time
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	if s.db == nil {
		return errNoDB
	}
	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`delete from %s where id = $1`, table), id)
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return records.ErrNotFound
	}
	return nil
}
