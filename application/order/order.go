package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	orderrepo "github.com/muhammadheryan/eyewear-store/repository/order"
	redisrepo "github.com/muhammadheryan/eyewear-store/repository/redis"
	txrepo "github.com/muhammadheryan/eyewear-store/repository/tx"
	"github.com/muhammadheryan/eyewear-store/thirdparty/rabbitmq"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	"github.com/muhammadheryan/eyewear-store/utils/logger"
	validatorx "github.com/muhammadheryan/eyewear-store/utils/validator"
	"go.uber.org/zap"
)

type OrderApp interface {
	// CreateOrder persists a new order. The status is always
	// pending_verification regardless of the payment method.
	CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	ListForUser(ctx context.Context, userID string) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, req *model.UpdateOrderStatusRequest) (*model.Order, error)
	EnqueueVerification(ctx context.Context, orderID string) error
	ListVerificationQueue(ctx context.Context) ([]model.VerificationQueueEntry, error)
}

// EventPublisher delivers order events to the message broker.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, routingKey string, msg rabbitmq.OrderEventMessage) error
}

type orderAppImpl struct {
	txRepo    txrepo.TxRepository
	orderRepo orderrepo.OrderRepository
	redisRepo redisrepo.Repository
	publisher EventPublisher
	now       func() time.Time
}

// NewOrderApp builds the order application. publisher may be nil, in which
// case placed orders are queued for verification directly.
func NewOrderApp(txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository, redisRepo redisrepo.Repository, publisher EventPublisher) OrderApp {
	return &orderAppImpl{
		txRepo:    txRepo,
		orderRepo: orderRepo,
		redisRepo: redisRepo,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *orderAppImpl) CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	if err := validatorx.ValidateStruct(req); err != nil {
		logger.Info("[CreateOrder] invalid request", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if req.PaymentMethod.RequiresProof() && req.ProofImage == nil {
		return nil, errors.SetCustomError(constant.ErrProofRequired)
	}

	entity := &model.OrderEntity{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		FullName:      req.FullName,
		Email:         req.Email,
		Address:       req.Address,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		Status:        constant.OrderStatusPendingVerification,
		CreatedAt:     s.now().UTC(),
	}
	if req.ProofImage != nil {
		entity.ProofFileName = req.ProofImage.FileName
		entity.ProofData = req.ProofImage.Data
	}

	err := s.txRepo.WithinTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.orderRepo.InsertOrderTx(ctx, tx, entity); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if err := s.orderRepo.InsertOrderItemsTx(ctx, tx, entity.ID, req.Items); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("[CreateOrder] err txRepo.WithinTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrPersistence)
	}

	order := &model.Order{
		ID:            entity.ID,
		UserID:        entity.UserID,
		FullName:      entity.FullName,
		Email:         entity.Email,
		Address:       entity.Address,
		TotalAmount:   entity.TotalAmount,
		PaymentMethod: entity.PaymentMethod,
		ProofImage:    req.ProofImage,
		Status:        entity.Status,
		CreatedAt:     entity.CreatedAt,
		Items:         req.Items,
	}

	if s.publisher == nil {
		if err := s.redisRepo.EnqueueVerification(ctx, order.ID, order.CreatedAt); err != nil {
			logger.Warn("[CreateOrder] err redisRepo.EnqueueVerification", zap.String("error", err.Error()))
		}
	} else {
		s.publish(ctx, rabbitmq.RoutingKeyOrderPlaced, order)
	}

	logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.String("total", order.TotalAmount.StringFixed(2)))
	return order, nil
}

func (s *orderAppImpl) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] err orderRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return order, nil
}

func (s *orderAppImpl) ListForUser(ctx context.Context, userID string) ([]model.Order, error) {
	if userID == "" {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("[ListForUser] err orderRepo.ListByUser", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return orders, nil
}

func (s *orderAppImpl) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		logger.Error("[ListAll] err orderRepo.ListAll", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return orders, nil
}

func (s *orderAppImpl) UpdateStatus(ctx context.Context, orderID string, req *model.UpdateOrderStatusRequest) (*model.Order, error) {
	if err := validatorx.ValidateStruct(req); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if !from.CanTransitionTo(req.Status) {
		logger.Info("[UpdateStatus] transition not allowed",
			zap.String("order_id", orderID),
			zap.String("from", string(from)),
			zap.String("to", string(req.Status)))
		return nil, errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, from, req.Status)
	if err != nil {
		logger.Error("[UpdateStatus] err orderRepo.UpdateStatus", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !updated {
		// changed by someone else in the meantime
		return nil, errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}
	order.Status = req.Status

	if from == constant.OrderStatusPendingVerification {
		if err := s.redisRepo.DequeueVerification(ctx, orderID); err != nil {
			logger.Warn("[UpdateStatus] err redisRepo.DequeueVerification", zap.String("error", err.Error()))
		}
	}

	s.publish(ctx, rabbitmq.RoutingKeyOrderStatusChanged, order)
	return order, nil
}

func (s *orderAppImpl) EnqueueVerification(ctx context.Context, orderID string) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != constant.OrderStatusPendingVerification {
		return errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	if err := s.redisRepo.EnqueueVerification(ctx, order.ID, order.CreatedAt); err != nil {
		logger.Error("[EnqueueVerification] err redisRepo.EnqueueVerification", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *orderAppImpl) ListVerificationQueue(ctx context.Context) ([]model.VerificationQueueEntry, error) {
	members, err := s.redisRepo.ListVerificationQueue(ctx)
	if err != nil {
		logger.Error("[ListVerificationQueue] err redisRepo.ListVerificationQueue", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	entries := make([]model.VerificationQueueEntry, 0, len(members))
	for _, m := range members {
		orderID, ok := m.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, model.VerificationQueueEntry{
			OrderID:  orderID,
			QueuedAt: time.Unix(int64(m.Score), 0).UTC(),
		})
	}
	return entries, nil
}

// publish is best effort. A broker outage must not fail an order that is
// already stored.
func (s *orderAppImpl) publish(ctx context.Context, routingKey string, order *model.Order) {
	if s.publisher == nil {
		return
	}
	msg := rabbitmq.OrderEventMessage{
		OrderID:       order.ID,
		UserID:        order.UserID,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		TotalAmount:   order.TotalAmount.StringFixed(2),
		OccurredAt:    s.now().UTC(),
	}
	if err := s.publisher.PublishOrderEvent(ctx, routingKey, msg); err != nil {
		logger.Error("[publish] err publisher.PublishOrderEvent",
			zap.String("routing_key", routingKey),
			zap.String("order_id", order.ID),
			zap.String("error", err.Error()))
	}
}
