package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	orderrepo "github.com/muhammadheryan/eyewear-store/repository/order"
	"github.com/muhammadheryan/eyewear-store/repository/sqlitetest"
	txrepo "github.com/muhammadheryan/eyewear-store/repository/tx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertOrder(t *testing.T, db *sqlx.DB, entity *model.OrderEntity, items []model.OrderLineItem) {
	t.Helper()
	repo := orderrepo.NewOrderRepository(db)
	err := txrepo.NewTxRepository(db).WithinTx(context.Background(), func(tx *sqlx.Tx) error {
		if err := repo.InsertOrderTx(context.Background(), tx, entity); err != nil {
			return err
		}
		return repo.InsertOrderItemsTx(context.Background(), tx, entity.ID, items)
	})
	require.NoError(t, err)
}

func TestOrderRepository_InsertAndList(t *testing.T) {
	db := sqlitetest.New(t)
	repo := orderrepo.NewOrderRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	insertOrder(t, db, &model.OrderEntity{
		ID:            "o1",
		UserID:        "u1",
		FullName:      "Asha Rao",
		Email:         "asha@example.com",
		Address:       "MG Road, Mumbai, 400001",
		TotalAmount:   decimal.NewFromInt(1000),
		PaymentMethod: constant.PaymentMethodAdvance,
		ProofFileName: "proof.png",
		ProofData:     "aGVsbG8=",
		Status:        constant.OrderStatusPendingVerification,
		CreatedAt:     now.Add(-time.Hour),
	}, []model.OrderLineItem{
		{ProductID: "p1", ProductName: "Aviator", Quantity: 2, UnitPrice: decimal.NewFromInt(500),
			Prescription: &model.PrescriptionAttachment{FileName: "rx.pdf", Data: "cng="}},
	})
	insertOrder(t, db, &model.OrderEntity{
		ID:            "o2",
		UserID:        "u1",
		FullName:      "Asha Rao",
		Address:       "MG Road, Mumbai, 400001",
		TotalAmount:   decimal.NewFromInt(300),
		PaymentMethod: constant.PaymentMethodCOD,
		Status:        constant.OrderStatusPendingVerification,
		CreatedAt:     now,
	}, []model.OrderLineItem{
		{ProductID: "p2", ProductName: "Round", Quantity: 1, UnitPrice: decimal.NewFromInt(300)},
	})

	orders, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o2", orders[0].ID, "newest first")
	assert.Nil(t, orders[0].ProofImage)
	require.Len(t, orders[1].Items, 1)
	require.NotNil(t, orders[1].Items[0].Prescription)
	assert.Equal(t, "rx.pdf", orders[1].Items[0].Prescription.FileName)
	require.NotNil(t, orders[1].ProofImage)
	assert.Equal(t, "proof.png", orders[1].ProofImage.FileName)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := repo.ListByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db := sqlitetest.New(t)
	repo := orderrepo.NewOrderRepository(db)
	ctx := context.Background()

	insertOrder(t, db, &model.OrderEntity{
		ID:            "o1",
		UserID:        "u1",
		FullName:      "Asha Rao",
		Address:       "MG Road, Mumbai, 400001",
		TotalAmount:   decimal.NewFromInt(300),
		PaymentMethod: constant.PaymentMethodCOD,
		Status:        constant.OrderStatusPendingVerification,
		CreatedAt:     time.Now().UTC(),
	}, []model.OrderLineItem{{ProductID: "p1", ProductName: "Round", Quantity: 1, UnitPrice: decimal.NewFromInt(300)}})

	ok, err := repo.UpdateStatus(ctx, "o1", constant.OrderStatusPendingVerification, constant.OrderStatusApproved)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateStatus(ctx, "o1", constant.OrderStatusPendingVerification, constant.OrderStatusRejected)
	require.NoError(t, err)
	assert.False(t, ok, "status already moved on")

	got, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, constant.OrderStatusApproved, got.Status)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
