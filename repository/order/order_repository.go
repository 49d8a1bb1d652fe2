package order

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, order *model.OrderEntity) error
	InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID string, items []model.OrderLineItem) error
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	// UpdateStatus moves an order from one status to another and reports
	// false when the order was not in the expected status.
	UpdateStatus(ctx context.Context, orderID string, from, to constant.OrderStatus) (bool, error)
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const (
	orderColumns = `id, user_id, full_name, email, address, total_amount, payment_method, proof_file_name, proof_data, status, created_at`
	itemColumns  = `order_id, product_id, product_name, quantity, unit_price, prescription_file_name, prescription_data`

	insertOrderQuery = `INSERT INTO orders (` + orderColumns + `) VALUES (:id, :user_id, :full_name, :email, :address, :total_amount, :payment_method, :proof_file_name, :proof_data, :status, :created_at)`
	insertItemQuery  = `INSERT INTO order_items (` + itemColumns + `) VALUES (:order_id, :product_id, :product_name, :quantity, :unit_price, :prescription_file_name, :prescription_data)`
	getOrderQuery    = `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`
	listByUserQuery  = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = ? ORDER BY created_at DESC`
	listAllQuery     = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	itemsInQuery     = `SELECT ` + itemColumns + ` FROM order_items WHERE order_id IN (?)`
	updateStatusQry  = `UPDATE orders SET status = ? WHERE id = ? AND status = ?`
)

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, order *model.OrderEntity) error {
	_, err := tx.NamedExecContext(ctx, insertOrderQuery, order)
	return err
}

func (r *SQL) InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID string, items []model.OrderLineItem) error {
	for _, it := range items {
		row := model.OrderItemEntity{
			OrderID:     orderID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
		if it.Prescription != nil {
			row.PrescriptionFileName = it.Prescription.FileName
			row.PrescriptionData = it.Prescription.Data
		}
		if _, err := tx.NamedExecContext(ctx, insertItemQuery, row); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	var entity model.OrderEntity
	if err := r.conn.GetContext(ctx, &entity, r.conn.Rebind(getOrderQuery), orderID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	orders, err := r.withItems(ctx, []model.OrderEntity{entity})
	if err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *SQL) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	entities := make([]model.OrderEntity, 0)
	if err := r.conn.SelectContext(ctx, &entities, r.conn.Rebind(listByUserQuery), userID); err != nil {
		return nil, err
	}
	return r.withItems(ctx, entities)
}

func (r *SQL) ListAll(ctx context.Context) ([]model.Order, error) {
	entities := make([]model.OrderEntity, 0)
	if err := r.conn.SelectContext(ctx, &entities, listAllQuery); err != nil {
		return nil, err
	}
	return r.withItems(ctx, entities)
}

func (r *SQL) UpdateStatus(ctx context.Context, orderID string, from, to constant.OrderStatus) (bool, error) {
	res, err := r.conn.ExecContext(ctx, r.conn.Rebind(updateStatusQry), to, orderID, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// withItems loads the line items of the given orders, keeping their order.
func (r *SQL) withItems(ctx context.Context, entities []model.OrderEntity) ([]model.Order, error) {
	orders := make([]model.Order, 0, len(entities))
	if len(entities) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(entities))
	for _, e := range entities {
		ids = append(ids, e.ID)
	}
	query, args, err := sqlx.In(itemsInQuery, ids)
	if err != nil {
		return nil, err
	}
	rows := make([]model.OrderItemEntity, 0)
	if err := r.conn.SelectContext(ctx, &rows, r.conn.Rebind(query), args...); err != nil {
		return nil, err
	}

	itemsByOrder := make(map[string][]model.OrderLineItem, len(entities))
	for _, row := range rows {
		item := model.OrderLineItem{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
		}
		if row.PrescriptionFileName != "" {
			item.Prescription = &model.PrescriptionAttachment{
				FileName: row.PrescriptionFileName,
				Data:     row.PrescriptionData,
			}
		}
		itemsByOrder[row.OrderID] = append(itemsByOrder[row.OrderID], item)
	}

	for _, e := range entities {
		o := model.Order{
			ID:            e.ID,
			UserID:        e.UserID,
			FullName:      e.FullName,
			Email:         e.Email,
			Address:       e.Address,
			TotalAmount:   e.TotalAmount,
			PaymentMethod: e.PaymentMethod,
			Status:        e.Status,
			CreatedAt:     e.CreatedAt,
			Items:         itemsByOrder[e.ID],
		}
		if o.Items == nil {
			o.Items = []model.OrderLineItem{}
		}
		if e.ProofFileName != "" {
			o.ProofImage = &model.ProofImage{FileName: e.ProofFileName, Data: e.ProofData}
		}
		orders = append(orders, o)
	}
	return orders, nil
}
