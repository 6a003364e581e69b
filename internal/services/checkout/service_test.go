package checkout

import (
	"context"
	"errors"
	"testing"

	"trexle/internal/gateway"
	"trexle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) FetchOrderContext(ctx context.Context, orderID uint) (OrderContext, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(OrderContext), args.Error(1)
}

func (m *MockOrders) ApplyResult(ctx context.Context, orderID uint, state, message, transactionID string) (string, error) {
	args := m.Called(ctx, orderID, state, message, transactionID)
	return args.String(0), args.Error(1)
}

type MockIdem struct {
	mock.Mock
}

func (m *MockIdem) Acquire(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Charge(ctx context.Context, req gateway.ChargeRequest) gateway.Result {
	args := m.Called(ctx, req)
	return args.Get(0).(gateway.Result)
}

func (m *MockGateway) Preauth(ctx context.Context, req gateway.ChargeRequest) gateway.Result {
	args := m.Called(ctx, req)
	return args.Get(0).(gateway.Result)
}

func (m *MockGateway) Refund(ctx context.Context, transactionID string, amount float64, currency string) gateway.Result {
	args := m.Called(ctx, transactionID, amount, currency)
	return args.Get(0).(gateway.Result)
}

func (m *MockGateway) Capture(ctx context.Context, transactionID string, amount float64, currency string) gateway.Result {
	args := m.Called(ctx, transactionID, amount, currency)
	return args.Get(0).(gateway.Result)
}

func approvedResult(token string) gateway.Result {
	return gateway.Result{Success: true, TransactionID: token}
}

func declinedResult(message string) gateway.Result {
	return gateway.Result{Err: &gateway.Error{Kind: gateway.KindDeclined, Message: message}}
}

func payRequest() PayRequest {
	return PayRequest{
		OrderID:        1,
		Card:           CardInput{Number: "4111111111111111", Month: "7", Year: "2029", CVC: "123"},
		CardholderName: "Jane Doe",
		Email:          "jane@example.com",
		Address1:       "1 Example St",
		City:           "Sydney",
		Postcode:       "2000",
		Country:        "Australia",
		ClientIP:       "203.0.113.7",
	}
}

func orderCtx() OrderContext {
	return OrderContext{
		CartID:   42,
		Amount:   10.99,
		Currency: "USD",
		State:    models.OrderStatePending,
		Email:    "jane@example.com",
	}
}

func TestPayCharge(t *testing.T) {
	gw := new(MockGateway)
	orders := new(MockOrders)
	svc := NewService(gw, orders, nil, Config{ShopName: "My Shop", CaptureOnCharge: true})

	orders.On("FetchOrderContext", mock.Anything, uint(1)).Return(orderCtx(), nil)
	gw.On("Charge", mock.Anything, mock.MatchedBy(func(req gateway.ChargeRequest) bool {
		return req.Reference == "My Shop - Cart ID: 42" &&
			req.Amount == 10.99 &&
			req.Card.ExpiryMonth == "07" &&
			req.Card.ExpiryYear == "29" &&
			req.IPAddress == "203.0.113.7"
	})).Return(approvedResult("tok_abc"))
	orders.On("ApplyResult", mock.Anything, uint(1), models.OrderStatePaid,
		"Trexle Receipt No: tok_abc - Last 4 digits of the card: 1111", "tok_abc").
		Return(models.OrderStatePaid, nil)

	res, err := svc.Pay(context.Background(), payRequest())

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "tok_abc", res.TransactionID)
	assert.Equal(t, models.OrderStatePaid, res.OrderState)
	gw.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestPayPreauthMode(t *testing.T) {
	gw := new(MockGateway)
	orders := new(MockOrders)
	svc := NewService(gw, orders, nil, Config{ShopName: "My Shop", CaptureOnCharge: false})

	orders.On("FetchOrderContext", mock.Anything, uint(1)).Return(orderCtx(), nil)
	gw.On("Preauth", mock.Anything, mock.Anything).Return(approvedResult("tok_hold"))
	orders.On("ApplyResult", mock.Anything, uint(1), models.OrderStatePreauthorized,
		"Auth Only Trexle Receipt No: tok_hold - Last 4 digits of the card: 1111", "tok_hold").
		Return(models.OrderStatePreauthorized, nil)

	res, err := svc.Pay(context.Background(), payRequest())

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, models.OrderStatePreauthorized, res.OrderState)
	gw.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestPayMissingCardDetails(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PayRequest)
	}{
		{"no number", func(r *PayRequest) { r.Card.Number = "" }},
		{"no month", func(r *PayRequest) { r.Card.Month = "" }},
		{"no year", func(r *PayRequest) { r.Card.Year = "" }},
		{"no cvc", func(r *PayRequest) { r.Card.CVC = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := new(MockGateway)
			orders := new(MockOrders)
			svc := NewService(gw, orders, nil, Config{CaptureOnCharge: true})

			req := payRequest()
			tt.mutate(&req)

			_, err := svc.Pay(context.Background(), req)
			assert.ErrorIs(t, err, ErrMissingCardDetails)
			gw.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
		})
	}
}

func TestPayDeclineLeavesOrderUntouched(t *testing.T) {
	gw := new(MockGateway)
	orders := new(MockOrders)
	svc := NewService(gw, orders, nil, Config{ShopName: "My Shop", CaptureOnCharge: true})

	orders.On("FetchOrderContext", mock.Anything, uint(1)).Return(orderCtx(), nil)
	gw.On("Charge", mock.Anything, mock.Anything).Return(declinedResult("card_declined"))

	res, err := svc.Pay(context.Background(), payRequest())

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "card_declined", res.ErrorMessage())
	assert.Equal(t, models.OrderStatePending, res.OrderState)
	orders.AssertNotCalled(t, "ApplyResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPayIdempotency(t *testing.T) {
	gw := new(MockGateway)
	orders := new(MockOrders)
	idem := new(MockIdem)
	svc := NewService(gw, orders, idem, Config{ShopName: "My Shop", CaptureOnCharge: true})

	idem.On("Acquire", mock.Anything, "key-1").Return(false, nil)

	req := payRequest()
	req.IdempotencyKey = "key-1"

	_, err := svc.Pay(context.Background(), req)

	assert.ErrorIs(t, err, ErrDuplicateAttempt)
	gw.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
	idem.AssertExpectations(t)
}

func TestCanRefund(t *testing.T) {
	tests := []struct {
		name    string
		capture bool
		octx    OrderContext
		want    bool
	}{
		{
			name:    "paid order with transaction",
			capture: true,
			octx:    OrderContext{State: models.OrderStatePaid, TransactionID: "tok_abc"},
			want:    true,
		},
		{
			name:    "no transaction id",
			capture: true,
			octx:    OrderContext{State: models.OrderStatePaid},
			want:    false,
		},
		{
			name:    "already refunded",
			capture: true,
			octx:    OrderContext{State: models.OrderStateRefunded, TransactionID: "tok_abc"},
			want:    false,
		},
		{
			name:    "uncaptured preauth not refundable",
			capture: false,
			octx:    OrderContext{State: models.OrderStatePreauthorized, TransactionID: "tok_hold"},
			want:    false,
		},
		{
			name:    "captured preauth refundable",
			capture: false,
			octx:    OrderContext{State: models.OrderStatePaid, TransactionID: "tok_hold"},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(nil, nil, nil, Config{CaptureOnCharge: tt.capture})
			assert.Equal(t, tt.want, svc.CanRefund(tt.octx))
		})
	}
}

func TestCanCapture(t *testing.T) {
	tests := []struct {
		name    string
		capture bool
		octx    OrderContext
		want    bool
	}{
		{
			name:    "preauthorized order capturable",
			capture: false,
			octx:    OrderContext{State: models.OrderStatePreauthorized, TransactionID: "tok_hold"},
			want:    true,
		},
		{
			name:    "charge mode never capturable",
			capture: true,
			octx:    OrderContext{State: models.OrderStatePreauthorized, TransactionID: "tok_hold"},
			want:    false,
		},
		{
			name:    "already paid",
			capture: false,
			octx:    OrderContext{State: models.OrderStatePaid, TransactionID: "tok_hold"},
			want:    false,
		},
		{
			name:    "no transaction id",
			capture: false,
			octx:    OrderContext{State: models.OrderStatePreauthorized},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(nil, nil, nil, Config{CaptureOnCharge: tt.capture})
			assert.Equal(t, tt.want, svc.CanCapture(tt.octx))
		})
	}
}

func TestRefund(t *testing.T) {
	t.Run("success transitions order", func(t *testing.T) {
		gw := new(MockGateway)
		orders := new(MockOrders)
		svc := NewService(gw, orders, nil, Config{CaptureOnCharge: true})

		octx := orderCtx()
		octx.State = models.OrderStatePaid
		octx.TransactionID = "tok_abc"

		orders.On("FetchOrderContext", mock.Anything, uint(1)).Return(octx, nil)
		gw.On("Refund", mock.Anything, "tok_abc", 10.99, "USD").Return(approvedResult("ref_1"))
		orders.On("ApplyResult", mock.Anything, uint(1), models.OrderStateRefunded,
			"Refunded $10.99 - Refund ID: ref_1", "").
			Return(models.OrderStateRefunded, nil)

		id, err := svc.Refund(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "ref_1", id)
		gw.AssertExpectations(t)
		orders.AssertExpectations(t)
	})

	t.Run("not allowed without transaction", func(t *testing.T) {
		gw := new(MockGateway)
		orders := new(MockOrders)
		svc := NewService(gw, orders, nil, Config{CaptureOnCharge: true})

		orders.On("FetchOrderContext", mock.Anything, uint(1)).Return(orderCtx(), nil)

		_, err := svc.Refund(context.Background(), 1)

		assert.ErrorIs(t, err, ErrRefundNotAllowed)
		gw.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("gateway failure recorded", func(t *testing.T) {
		gw := new(MockGateway)
		orders := new(MockOrders)
		svc := NewService(gw, orders, nil, Config{CaptureOnCharge: true})

		octx := orderCtx()
		octx.State = models.OrderStatePaid
		octx.TransactionID = "tok_abc"

		orders.On("FetchOrderContext", mock.Anything, uint(1)).Return(octx, nil)
		gw.On("Refund", mock.Anything, "tok_abc", 10.99, "USD").Return(declinedResult("already refunded"))
		orders.On("ApplyResult", mock.Anything, uint(1), "", "An error occurred during refund process.", "").
			Return(models.OrderStatePaid, nil)

		_, err := svc.Refund(context.Background(), 1)

		assert.ErrorIs(t, err, ErrRefundFailed)
		assert.ErrorContains(t, err, "already refunded")
		orders.AssertExpectations(t)
	})
}

func TestCapture(t *testing.T) {
	t.Run("success marks order paid", func(t *testing.T) {
		gw := new(MockGateway)
		orders := new(MockOrders)
		svc := NewService(gw, orders, nil, Config{CaptureOnCharge: false})

		octx := orderCtx()
		octx.State = models.OrderStatePreauthorized
		octx.TransactionID = "tok_hold"

		orders.On("FetchOrderContext", mock.Anything, uint(1)).Return(octx, nil)
		gw.On("Capture", mock.Anything, "tok_hold", 10.99, "USD").Return(approvedResult("cap_1"))
		orders.On("ApplyResult", mock.Anything, uint(1), models.OrderStatePaid,
			"Transaction Captured $10.99 - Capture ID: cap_1", "").
			Return(models.OrderStatePaid, nil)

		id, err := svc.Capture(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "cap_1", id)
		orders.AssertExpectations(t)
	})

	t.Run("charge mode not capturable", func(t *testing.T) {
		gw := new(MockGateway)
		orders := new(MockOrders)
		svc := NewService(gw, orders, nil, Config{CaptureOnCharge: true})

		octx := orderCtx()
		octx.TransactionID = "tok_hold"
		orders.On("FetchOrderContext", mock.Anything, uint(1)).Return(octx, nil)

		_, err := svc.Capture(context.Background(), 1)

		assert.ErrorIs(t, err, ErrCaptureNotAllowed)
		gw.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderFetchError(t *testing.T) {
	gw := new(MockGateway)
	orders := new(MockOrders)
	svc := NewService(gw, orders, nil, Config{CaptureOnCharge: true})

	orders.On("FetchOrderContext", mock.Anything, uint(9)).Return(OrderContext{}, errors.New("record not found"))

	req := payRequest()
	req.OrderID = 9

	_, err := svc.Pay(context.Background(), req)
	assert.ErrorContains(t, err, "record not found")
}
