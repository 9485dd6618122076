package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"storefront-api/internal/apperror"
	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"gorm.io/gorm"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, userID string, req *dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error)
	VerifyPayment(ctx context.Context, userID string, req *dto.VerifyOrderRequest) (*model.Order, error)
	CancelOrder(ctx context.Context, userID, orderID string) (*model.Order, error)
	ListOrders(ctx context.Context, userID string) ([]*model.Order, error)
}

type orderServiceImpl struct {
	db             *gorm.DB
	razorpayClient client.RazorpayClient
	productRepo    repository.ProductRepository
	orderRepo      repository.OrderRepository
	razorpayKeyID  string
	signingSecret  string
	txnTimeout     time.Duration
}

func NewOrderService(
	db *gorm.DB,
	razorpayClient client.RazorpayClient,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	razorpayCfg *config.Razorpay,
	txnCfg *config.Txn,
) OrderService {
	return &orderServiceImpl{
		db:             db,
		razorpayClient: razorpayClient,
		productRepo:    productRepo,
		orderRepo:      orderRepo,
		razorpayKeyID:  razorpayCfg.KeyID,
		signingSecret:  razorpayCfg.KeySecret,
		txnTimeout:     txnCfg.Timeout,
	}
}

// orderLine is a validated, priced line with its resolved inventory row.
type orderLine struct {
	ref       repository.StockRef
	quantity  int
	unitPrice float64
	amount    float64
}

func (s *orderServiceImpl) PlaceOrder(ctx context.Context, userID string, req *dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error) {
	if req.ShippingAddressID == "" {
		return nil, &apperror.ValidationError{Msg: "shipping address is required"}
	}

	lines, calculatedTotal, err := s.buildOrderLines(ctx, req.OrderItems)
	if err != nil {
		return nil, err
	}

	total, _, _ := ComputeTotal(calculatedTotal)

	orderID, err := newOrderID()
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:                orderID,
		UserID:            userID,
		TotalAmount:       total,
		PaymentStatus:     model.PaymentStatusPending,
		OrderStatus:       model.OrderStatusPending,
		ShippingAddressID: req.ShippingAddressID,
		OrderItems:        make([]model.OrderItem, len(lines)),
	}
	for i, ln := range lines {
		order.OrderItems[i] = model.OrderItem{
			OrderID:   orderID,
			ProductID: ln.ref.ProductID,
			VariantID: ln.ref.VariantID,
			Quantity:  ln.quantity,
			Amount:    ln.amount,
		}
	}

	// Reserve every line and persist the pending order as one atomic unit;
	// a failure on any single line aborts the whole transaction.
	err = s.inTxn(ctx, func(tx *gorm.DB) error {
		for _, ln := range lines {
			ok, err := s.productRepo.Reserve(ctx, tx, ln.ref, ln.quantity)
			if err != nil {
				return fmt.Errorf("reserve stock: %w", err)
			}
			if !ok {
				stock, reserved, cerr := s.productRepo.Counters(ctx, tx, ln.ref)
				if cerr != nil {
					return fmt.Errorf("read stock counters: %w", cerr)
				}
				insufficient := &apperror.InsufficientStockError{
					ProductID: ln.ref.ProductID,
					Available: stock - reserved,
					Requested: ln.quantity,
				}
				if ln.ref.VariantID != nil {
					insufficient.VariantID = *ln.ref.VariantID
				}
				return insufficient
			}
		}

		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The gateway call happens after commit: the database must not hold row
	// locks across a network round-trip to a third party.
	gatewayOrder, err := s.razorpayClient.CreateOrder(ctx, &client.CreateGatewayOrderRequest{
		Amount:   int64(math.Round(total * 100)),
		Currency: "INR",
		Receipt:  orderID,
		Notes:    map[string]string{"userId": userID},
	})
	if err != nil {
		s.compensateFailedOrder(ctx, orderID, lines)
		return nil, fmt.Errorf("razorpay api create order: %w", err)
	}

	if err := s.orderRepo.SetTransactionID(ctx, orderID, gatewayOrder.OrderID); err != nil {
		s.compensateFailedOrder(ctx, orderID, lines)
		return nil, fmt.Errorf("store gateway order reference: %w", err)
	}
	order.TransactionID = gatewayOrder.OrderID

	return &dto.PlaceOrderResponse{
		Message: "order created successfully",
		Order:   order,
		Razorpay: dto.RazorpayCheckout{
			OrderID:  gatewayOrder.OrderID,
			Amount:   total,
			Currency: gatewayOrder.Currency,
			KeyID:    s.razorpayKeyID,
			Receipt:  gatewayOrder.Receipt,
		},
	}, nil
}

func (s *orderServiceImpl) VerifyPayment(ctx context.Context, userID string, req *dto.VerifyOrderRequest) (*model.Order, error) {
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		return nil, &apperror.ValidationError{Msg: "missing required fields"}
	}

	if !s.signatureValid(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return nil, &apperror.SignatureMismatchError{}
	}

	var order *model.Order
	err := s.inTxn(ctx, func(tx *gorm.DB) error {
		found, err := s.orderRepo.FindByTransactionID(ctx, tx, req.RazorpayOrderID, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperror.NotFoundError{Resource: "order"}
		}
		if err != nil {
			return fmt.Errorf("find order by gateway reference: %w", err)
		}

		// The gateway may deliver the same callback more than once; a
		// paid order is returned unchanged without touching stock again.
		if found.PaymentStatus == model.PaymentStatusPaid {
			order = found
			return nil
		}
		if found.OrderStatus == model.OrderStatusCancelled {
			return &apperror.ConflictError{Msg: "order has been cancelled"}
		}

		if err := s.orderRepo.MarkPaidConfirmed(ctx, tx, found.ID); err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}

		// Consuming the reservation and removing the sold units happens in
		// one step; this is the sole path that permanently reduces stock.
		for _, item := range found.OrderItems {
			ref := repository.StockRef{ProductID: item.ProductID, VariantID: item.VariantID}
			if err := s.productRepo.Consume(ctx, tx, ref, item.Quantity); err != nil {
				return fmt.Errorf("consume reserved stock: %w", err)
			}
		}

		found.PaymentStatus = model.PaymentStatusPaid
		found.OrderStatus = model.OrderStatusConfirmed
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *orderServiceImpl) CancelOrder(ctx context.Context, userID, orderID string) (*model.Order, error) {
	if orderID == "" {
		return nil, &apperror.ValidationError{Msg: "order id is required"}
	}

	var order *model.Order
	err := s.inTxn(ctx, func(tx *gorm.DB) error {
		// The conditional update is the guard: once the order leaves
		// pending, concurrent or repeated cancels match no row.
		ok, err := s.orderRepo.CancelPending(ctx, tx, orderID, userID)
		if err != nil {
			return fmt.Errorf("cancel order: %w", err)
		}
		if !ok {
			if _, err := s.orderRepo.FindByIDForUser(ctx, tx, orderID, userID); errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperror.NotFoundError{Resource: "order", ID: orderID}
			} else if err != nil {
				return fmt.Errorf("find order: %w", err)
			}
			return &apperror.CannotCancelError{OrderID: orderID}
		}

		found, err := s.orderRepo.FindByIDForUser(ctx, tx, orderID, userID)
		if err != nil {
			return fmt.Errorf("find cancelled order: %w", err)
		}

		for _, item := range found.OrderItems {
			ref := repository.StockRef{ProductID: item.ProductID, VariantID: item.VariantID}
			if err := s.productRepo.Release(ctx, tx, ref, item.Quantity); err != nil {
				return err
			}
		}

		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// buildOrderLines validates the requested items against the catalog and
// prices them from current catalog data, never from client-supplied amounts.
// Read-only.
func (s *orderServiceImpl) buildOrderLines(ctx context.Context, items []dto.OrderItemInput) ([]orderLine, float64, error) {
	if len(items) == 0 {
		return nil, 0, &apperror.ValidationError{Msg: "at least one order item is required"}
	}

	seen := make(map[string]bool, len(items))
	productIDs := make([]string, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			return nil, 0, &apperror.ValidationError{Msg: "product id is required for every order item"}
		}
		if item.Quantity <= 0 {
			return nil, 0, &apperror.ValidationError{Msg: "quantity must be a positive integer"}
		}

		key := item.ProductID
		if item.VariantID != nil {
			key += "|" + *item.VariantID
		}
		if seen[key] {
			return nil, 0, &apperror.ConflictError{Msg: "duplicate products found in ordered items"}
		}
		seen[key] = true
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.productRepo.FindManyWithVariants(ctx, productIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch products for order: %w", err)
	}

	productMap := make(map[string]*model.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	var missing []string
	for _, item := range items {
		if _, ok := productMap[item.ProductID]; !ok {
			missing = append(missing, item.ProductID)
		}
	}
	if len(missing) > 0 {
		return nil, 0, &apperror.ProductUnavailableError{MissingIDs: missing}
	}

	lines := make([]orderLine, 0, len(items))
	var calculatedTotal float64
	for _, item := range items {
		product := productMap[item.ProductID]

		unitPrice := product.Price
		if item.VariantID == nil {
			// A product that defines variants cannot be ordered without
			// disambiguating one.
			if len(product.Variants) > 0 {
				return nil, 0, &apperror.VariantRequiredError{ProductID: product.ID}
			}
		} else {
			variant := findVariant(product.Variants, *item.VariantID)
			if variant == nil {
				return nil, 0, &apperror.InvalidVariantError{ProductID: product.ID, VariantID: *item.VariantID}
			}
			unitPrice = variant.Price
		}

		amount := unitPrice * float64(item.Quantity)
		calculatedTotal += amount
		lines = append(lines, orderLine{
			ref:       repository.StockRef{ProductID: item.ProductID, VariantID: item.VariantID},
			quantity:  item.Quantity,
			unitPrice: unitPrice,
			amount:    amount,
		})
	}

	return lines, calculatedTotal, nil
}

// compensateFailedOrder reverses the reservation and removes the order after
// the gateway step fails, so the local reservation and the remote session
// never stay inconsistent with each other.
func (s *orderServiceImpl) compensateFailedOrder(ctx context.Context, orderID string, lines []orderLine) {
	err := s.inTxn(ctx, func(tx *gorm.DB) error {
		for _, ln := range lines {
			if err := s.productRepo.Release(ctx, tx, ln.ref, ln.quantity); err != nil {
				return err
			}
		}
		return s.orderRepo.DeleteWithItems(ctx, tx, orderID)
	})
	if err != nil {
		slog.Error("failed to compensate order after gateway error",
			"order_id", orderID, "error", err)
	}
}

func (s *orderServiceImpl) signatureValid(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.signingSecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// inTxn runs fn in a serializable transaction bounded by the configured
// transaction timeout, so a stalled transaction fails fast instead of
// hanging the request.
func (s *orderServiceImpl) inTxn(ctx context.Context, fn func(tx *gorm.DB) error) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txnTimeout)
	defer cancel()

	return s.db.WithContext(txCtx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func findVariant(variants []model.ProductVariant, variantID string) *model.ProductVariant {
	for i := range variants {
		if variants[i].ID == variantID {
			return &variants[i]
		}
	}
	return nil
}
