package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"ipaybot/internal/api"
	"ipaybot/internal/metrics"
)

//go:generate mockgen -destination=../mocks/mock_ipay_client.go -package=mocks ipaybot/internal/service IpayClient

//go:generate mockgen -destination=../mocks/mock_doer.go -package=mocks ipaybot/internal/api Doer

// IpayClient is the subset of *api.Client the service depends on.
type IpayClient interface {
	CreateItem(name, sellerOrderNo string, price int64, qty int, itemURL, thumbnailURL string, opts ...api.ItemOption) api.Item
	CreateOrder(paymentRule int, total, shippingPrice int64, shippingType api.ShippingType, backURL, serviceURL, redirectURL string, opts ...api.OrderOption) api.Order
	PlaceOrder(ctx context.Context, order api.Order, items []api.Item) (*api.Response, error)
	FinalizeOrder(ctx context.Context, orderNo int64, sellerOrderNo, reason string) (*api.Response, error)
	GetOrderStatus(ctx context.Context, cartNo int64, itemNo string) (*api.Response, error)
	GetOrderData(ctx context.Context, payNo int64) (*api.Response, error)
	GetOrderList(ctx context.Context, searchType int, value string) (*api.Response, error)
	ShipOrder(ctx context.Context, orderNo int64, shipDate time.Time) (*api.Response, error)
	Test(ctx context.Context) (*api.Response, error)
}

// CallbackURLs are handed to iPay with every order unless the checkout
// request brings its own.
type CallbackURLs struct {
	Back     string
	Service  string
	Redirect string
}

// CheckoutItem is one line of a checkout request.
type CheckoutItem struct {
	Name          string  `json:"name" binding:"required"`
	SellerOrderNo string  `json:"seller_order_no" binding:"required"`
	Option        *string `json:"option,omitempty"`
	Price         int64   `json:"price"`
	Qty           int     `json:"qty"`
	ItemURL       string  `json:"item_url"`
	ThumbnailURL  string  `json:"thumbnail_url"`
	ImageURL      *string `json:"image_url,omitempty"`
	Description   *string `json:"description,omitempty"`
	Cancellable   *bool   `json:"cancellable,omitempty"`
}

// CheckoutRequest carries the items and order terms of one checkout.
type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items" binding:"required,min=1,dive"`
	PaymentRule   int            `json:"payment_rule"`
	Total         int64          `json:"total"`
	ShippingPrice int64          `json:"shipping_price"`
	ShippingType  int            `json:"shipping_type"`

	BackURL     string `json:"back_url,omitempty"`
	ServiceURL  string `json:"service_url,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`

	AddressRequired    *bool   `json:"address_required,omitempty"`
	BuyerName          *string `json:"buyer_name,omitempty"`
	BuyerTelNo         *string `json:"buyer_tel_no,omitempty"`
	BuyerEmail         *string `json:"buyer_email,omitempty"`
	RedirectionEnabled bool    `json:"redirection_enabled"`
}

// PaymentService runs iPay operations for the HTTP gateway and records
// metrics for each of them. Calls are never retried.
type PaymentService struct {
	client    IpayClient
	callbacks CallbackURLs
	log       logrus.FieldLogger
}

func NewPaymentService(client IpayClient, callbacks CallbackURLs, log logrus.FieldLogger) *PaymentService {
	return &PaymentService{
		client:    client,
		callbacks: callbacks,
		log:       log,
	}
}

// Checkout builds the items and the order and places it. When Total is zero
// it is computed from the item prices plus shipping.
func (s *PaymentService) Checkout(ctx context.Context, req CheckoutRequest) (*api.Response, error) {
	items := make([]api.Item, 0, len(req.Items))
	var total int64
	for _, it := range req.Items {
		items = append(items, s.client.CreateItem(it.Name, it.SellerOrderNo, it.Price, it.Qty, it.ItemURL, it.ThumbnailURL, itemOptions(it)...))
		total += it.Price * int64(it.Qty)
	}
	if req.Total != 0 {
		total = req.Total
	} else {
		total += req.ShippingPrice
	}

	order := s.client.CreateOrder(
		req.PaymentRule,
		total,
		req.ShippingPrice,
		api.ShippingType(req.ShippingType),
		firstNonEmpty(req.BackURL, s.callbacks.Back),
		firstNonEmpty(req.ServiceURL, s.callbacks.Service),
		firstNonEmpty(req.RedirectURL, s.callbacks.Redirect),
		orderOptions(req)...,
	)

	start := time.Now()
	resp, err := s.client.PlaceOrder(ctx, order, items)
	s.observe(api.OpInsertIpayOrder, start, resp, err)
	return resp, err
}

// Finalize confirms a placed order.
func (s *PaymentService) Finalize(ctx context.Context, orderNo int64, sellerOrderNo, reason string) (*api.Response, error) {
	start := time.Now()
	resp, err := s.client.FinalizeOrder(ctx, orderNo, sellerOrderNo, reason)
	s.observe(api.OpDoIpayOrderDecisionRequest, start, resp, err)
	return resp, err
}

func (s *PaymentService) OrderStatus(ctx context.Context, cartNo int64, itemNo string) (*api.Response, error) {
	start := time.Now()
	resp, err := s.client.GetOrderStatus(ctx, cartNo, itemNo)
	s.observe(api.OpGetIpayReceiptStatus, start, resp, err)
	return resp, err
}

func (s *PaymentService) OrderData(ctx context.Context, payNo int64) (*api.Response, error) {
	start := time.Now()
	resp, err := s.client.GetOrderData(ctx, payNo)
	s.observe(api.OpGetIpayAccountNumb, start, resp, err)
	return resp, err
}

func (s *PaymentService) PaidOrders(ctx context.Context, searchType int, value string) (*api.Response, error) {
	start := time.Now()
	resp, err := s.client.GetOrderList(ctx, searchType, value)
	s.observe(api.OpGetIpayPaidOrderList, start, resp, err)
	return resp, err
}

func (s *PaymentService) Ship(ctx context.Context, orderNo int64, shipDate time.Time) (*api.Response, error) {
	start := time.Now()
	resp, err := s.client.ShipOrder(ctx, orderNo, shipDate)
	s.observe(api.OpDoIpayShippingGeneral, start, resp, err)
	return resp, err
}

// Ping checks that iPay is reachable with the configured ticket.
func (s *PaymentService) Ping(ctx context.Context) (*api.Response, error) {
	start := time.Now()
	resp, err := s.client.Test(ctx)
	s.observe(api.OpTest, start, resp, err)
	return resp, err
}

func (s *PaymentService) observe(op string, start time.Time, resp *api.Response, err error) {
	elapsed := time.Since(start)
	metrics.IpayCallDuration.WithLabelValues(op).Observe(elapsed.Seconds())

	entry := s.log.WithFields(logrus.Fields{
		"operation":  op,
		"elapsed_ms": elapsed.Milliseconds(),
	})
	switch {
	case err != nil:
		metrics.IpayCalls.WithLabelValues(op, metrics.OutcomeError).Inc()
		entry.WithError(err).Error("ipay call failed")
	case resp.IsFault():
		metrics.IpayCalls.WithLabelValues(op, metrics.OutcomeFault).Inc()
		entry.WithFields(logrus.Fields{
			"fault_code":    resp.Fault.Code,
			"fault_message": resp.Fault.Message,
		}).Warn("ipay returned a fault")
	default:
		metrics.IpayCalls.WithLabelValues(op, metrics.OutcomeSuccess).Inc()
		entry.Info("ipay call succeeded")
	}
}

func itemOptions(it CheckoutItem) []api.ItemOption {
	var opts []api.ItemOption
	if it.Option != nil {
		opts = append(opts, api.WithItemOption(*it.Option))
	}
	if it.ImageURL != nil {
		opts = append(opts, api.WithImageURL(*it.ImageURL))
	}
	if it.Description != nil {
		opts = append(opts, api.WithDescription(*it.Description))
	}
	if it.Cancellable != nil {
		opts = append(opts, api.WithCancellable(*it.Cancellable))
	}
	return opts
}

func orderOptions(req CheckoutRequest) []api.OrderOption {
	opts := []api.OrderOption{api.WithRedirection(req.RedirectionEnabled)}
	if req.AddressRequired != nil {
		opts = append(opts, api.WithAddressRequired(*req.AddressRequired))
	}
	if req.BuyerName != nil {
		opts = append(opts, api.WithBuyerName(*req.BuyerName))
	}
	if req.BuyerTelNo != nil {
		opts = append(opts, api.WithBuyerTelNo(*req.BuyerTelNo))
	}
	if req.BuyerEmail != nil {
		opts = append(opts, api.WithBuyerEmail(*req.BuyerEmail))
	}
	return opts
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
