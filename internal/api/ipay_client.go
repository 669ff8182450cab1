package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	// TracerName names the tracer spans of remote calls are recorded on.
	TracerName         = "ipaybot/internal/api"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Auction iPay SOAP service on behalf of one seller.
// It holds no mutable state after construction and is safe to share.
type Client struct {
	httpClient Doer
	endpoint   string
	sellerID   string
	ticket     *etree.Element
	patches    []Patch
	log        logrus.FieldLogger
	tracer     trace.Tracer
}

type Option func(*Client)

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

// WithPatch appends a patch that runs after PatchItemOptionName.
func WithPatch(p Patch) Option {
	return func(c *Client) { c.patches = append(c.patches, p) }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) { c.tracer = tracer }
}

func NewClient(sellerID, ipayKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		endpoint: DefaultEndpoint,
		sellerID: sellerID,
		ticket:   newTicketHeader(ipayKey),
		patches:  []Patch{PatchItemOptionName},
		log:      logrus.StandardLogger(),
		tracer:   otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SellerID returns the seller the client was built for.
func (c *Client) SellerID() string {
	return c.sellerID
}

// ItemOption sets an optional attribute of an Item.
type ItemOption func(*Item)

func WithItemOption(name string) ItemOption {
	return func(it *Item) { it.OptionName = &name }
}

func WithImageURL(url string) ItemOption {
	return func(it *Item) { it.ImageURL = &url }
}

func WithDescription(desc string) ItemOption {
	return func(it *Item) { it.Description = &desc }
}

// WithCancellable controls cancel_restriction: 0 when the buyer may cancel,
// 1 when not. Items are cancellable unless told otherwise.
func WithCancellable(cancellable bool) ItemOption {
	return func(it *Item) { it.CancelRestriction = cancelRestriction(cancellable) }
}

func cancelRestriction(cancellable bool) int {
	if cancellable {
		return 0
	}
	return 1
}

// CreateItem builds an item to be ordered. It does not contact the service.
func (c *Client) CreateItem(name, sellerOrderNo string, price int64, qty int, itemURL, thumbnailURL string, opts ...ItemOption) Item {
	it := Item{
		Name:              name,
		SellerOrderNo:     sellerOrderNo,
		Price:             price,
		Qty:               qty,
		URL:               itemURL,
		ThumbnailURL:      thumbnailURL,
		CancelRestriction: cancelRestriction(true),
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// OrderOption sets an optional attribute of an Order.
type OrderOption func(*Order)

// WithAddressRequired defaults to true.
func WithAddressRequired(required bool) OrderOption {
	return func(o *Order) { o.IsAddressRequired = required }
}

func WithBuyerName(name string) OrderOption {
	return func(o *Order) { o.BuyerName = &name }
}

func WithBuyerTelNo(tel string) OrderOption {
	return func(o *Order) { o.BuyerTelNo = &tel }
}

func WithBuyerEmail(email string) OrderOption {
	return func(o *Order) { o.BuyerEmail = &email }
}

// WithRedirection makes iPay send the buyer to the redirect URL once paid.
func WithRedirection(enabled bool) OrderOption {
	return func(o *Order) { o.MoveToRedirectURL = enabled }
}

// CreateOrder builds the payment and shipping terms for an order. It does
// not contact the service and does not check shippingType.
func (c *Client) CreateOrder(paymentRule int, total, shippingPrice int64, shippingType ShippingType, backURL, serviceURL, redirectURL string, opts ...OrderOption) Order {
	o := Order{
		PaymentRule:       paymentRule,
		PayPrice:          total,
		ShippingPrice:     shippingPrice,
		ShippingType:      shippingType,
		BackURL:           backURL,
		ServiceURL:        serviceURL,
		RedirectURL:       redirectURL,
		IsAddressRequired: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// PlaceOrder registers the order and its items with iPay.
func (c *Client) PlaceOrder(ctx context.Context, order Order, items []Item) (*Response, error) {
	list := ItemList{Items: make([]Item, 0, len(items))}
	list.Items = append(list.Items, items...)

	return c.call(ctx, OpInsertIpayOrder, &insertOrderCall{
		XMLName: operation(OpInsertIpayOrder),
		Order:   order,
		Items:   list,
	})
}

// FinalizeOrder confirms an order and asks Auction for the payment.
func (c *Client) FinalizeOrder(ctx context.Context, orderNo int64, sellerOrderNo, reason string) (*Response, error) {
	return c.call(ctx, OpDoIpayOrderDecisionRequest, &decisionCall{
		XMLName: operation(OpDoIpayOrderDecisionRequest),
		Request: DecisionRequest{
			SellerID:               c.sellerID,
			OrderNo:                orderNo,
			SellerManagementNumber: sellerOrderNo,
			RequestReason:          reason,
		},
	})
}

// GetOrderStatus returns the receipt status of an order.
func (c *Client) GetOrderStatus(ctx context.Context, cartNo int64, itemNo string) (*Response, error) {
	return c.call(ctx, OpGetIpayReceiptStatus, &receiptStatusCall{
		XMLName: operation(OpGetIpayReceiptStatus),
		CartNo:  cartNo,
		ItemNo:  itemNo,
	})
}

// GetOrderData returns the payment and other data of an order.
func (c *Client) GetOrderData(ctx context.Context, payNo int64) (*Response, error) {
	return c.call(ctx, OpGetIpayAccountNumb, &accountNumbCall{
		XMLName: operation(OpGetIpayAccountNumb),
		PayNo:   payNo,
	})
}

// GetOrderList returns the paid orders matching the query.
func (c *Client) GetOrderList(ctx context.Context, searchType int, value string) (*Response, error) {
	return c.call(ctx, OpGetIpayPaidOrderList, &paidOrderListCall{
		XMLName: operation(OpGetIpayPaidOrderList),
		Request: OrderListRequest{
			SearchType:  searchType,
			SearchValue: value,
		},
	})
}

// ShipOrder marks the order as shipped.
//
// TODO: shipDate is not sent yet; attach it once the DoShippingGeneralRequestT
// attribute carrying the shipping date is confirmed against the WSDL.
func (c *Client) ShipOrder(ctx context.Context, orderNo int64, shipDate time.Time) (*Response, error) {
	return c.call(ctx, OpDoIpayShippingGeneral, &shippingCall{
		XMLName: operation(OpDoIpayShippingGeneral),
		Request: ShippingRequest{
			SellerID: c.sellerID,
			OrderNo:  orderNo,
		},
	})
}

// Test is a connectivity probe; iPay answers with the caller's IP address.
func (c *Client) Test(ctx context.Context) (*Response, error) {
	return c.call(ctx, OpTest, &testCall{XMLName: operation(OpTest)})
}

// call sends one operation. Errors from the transport are returned as is.
func (c *Client) call(ctx context.Context, op string, payload any) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "ipay."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("ipay.operation", op)),
	)
	defer span.End()

	doc, err := newEnvelope(c.ticket, payload)
	if err != nil {
		return nil, fail(span, err)
	}
	for _, patch := range c.patches {
		doc = patch(op, doc)
	}
	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, fail(span, errors.Wrapf(err, "ipay: encode %s envelope", op))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fail(span, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `"`+serviceNamespace+"/"+op+`"`)

	c.log.WithField("operation", op).Debug("sending ipay request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fail(span, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	out, err := parseResponse(op, resp.StatusCode, raw)
	if err != nil {
		return nil, fail(span, err)
	}
	if out.IsFault() {
		span.SetStatus(codes.Error, out.Fault.Message)
		c.log.WithFields(logrus.Fields{
			"operation":  op,
			"fault_code": out.Fault.Code,
		}).Debug("ipay returned a fault")
	}
	return out, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
