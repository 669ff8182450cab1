package api_test

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"ipaybot/internal/api"
	"ipaybot/internal/mocks"
)

type capturedCall struct {
	action string
	body   string
}

type soapServer struct {
	*httptest.Server
	mu    sync.Mutex
	calls []capturedCall
}

func (s *soapServer) Calls() []capturedCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]capturedCall(nil), s.calls...)
}

// newSOAPServer records every request and answers with the given status and body.
func newSOAPServer(t *testing.T, status int, reply string) *soapServer {
	t.Helper()
	s := &soapServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.calls = append(s.calls, capturedCall{action: r.Header.Get("SOAPAction"), body: string(body)})
		s.mu.Unlock()

		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		w.WriteHeader(status)
		io.WriteString(w, reply)
	}))
	t.Cleanup(s.Close)
	return s
}

func soapEnvelope(inner string) string {
	return `<?xml version="1.0" encoding="utf-8"?>` +
		`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>` +
		inner +
		`</soap:Body></soap:Envelope>`
}

const okReply = `<InsertIpayOrderResponse xmlns="http://www.auction.co.kr/APIv1/IpayService"><InsertIpayOrderResult>12345</InsertIpayOrderResult></InsertIpayOrderResponse>`

func newTestClient(t *testing.T, srv *soapServer) *api.Client {
	t.Helper()
	return api.NewClient("S1", "K1", api.WithEndpoint(srv.URL))
}

func sentRequest(t *testing.T, call capturedCall) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(call.body))
	return doc
}

func TestCreateItem_CancelRestriction(t *testing.T) {
	c := api.NewClient("S1", "K1")

	testCases := []struct {
		name string
		opts []api.ItemOption
		want int
	}{
		{name: "default is cancellable", want: 0},
		{name: "cancellable", opts: []api.ItemOption{api.WithCancellable(true)}, want: 0},
		{name: "not cancellable", opts: []api.ItemOption{api.WithCancellable(false)}, want: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			item := c.CreateItem("Widget", "O1", 1000, 2, "http://x", "http://y", tc.opts...)
			assert.Equal(t, tc.want, item.CancelRestriction)
		})
	}
}

func TestCreateItem_OptionalFields(t *testing.T) {
	c := api.NewClient("S1", "K1")

	item := c.CreateItem("Widget", "O1", 1000, 2, "http://x", "http://y")
	assert.Nil(t, item.OptionName)
	assert.Nil(t, item.ImageURL)
	assert.Nil(t, item.Description)

	item = c.CreateItem("Widget", "O1", 1000, 2, "http://x", "http://y",
		api.WithItemOption("Blue"),
		api.WithImageURL("http://z"),
		api.WithDescription("a widget"),
	)
	require.NotNil(t, item.OptionName)
	assert.Equal(t, "Blue", *item.OptionName)
	require.NotNil(t, item.ImageURL)
	assert.Equal(t, "http://z", *item.ImageURL)
	require.NotNil(t, item.Description)
	assert.Equal(t, "a widget", *item.Description)
}

func TestCreateItemAndOrder_DoNotTouchTheNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no expectations: any Do call fails the test
	doer := mocks.NewMockDoer(ctrl)
	c := api.NewClient("S1", "K1", api.WithHTTPClient(doer))

	item := c.CreateItem("Widget", "O1", 1000, 2, "http://x", "http://y")
	order := c.CreateOrder(1, 2000, 0, api.ShippingFree, "a", "b", "c")

	assert.Equal(t, "Widget", item.Name)
	assert.Equal(t, int64(2000), order.PayPrice)
	assert.True(t, order.IsAddressRequired)
	assert.False(t, order.MoveToRedirectURL)
	assert.Nil(t, order.BuyerName)
}

func TestCreateOrder_Options(t *testing.T) {
	c := api.NewClient("S1", "K1")

	order := c.CreateOrder(2, 5000, 2500, api.ShippingPaid, "a", "b", "c",
		api.WithAddressRequired(false),
		api.WithBuyerName("Kim"),
		api.WithBuyerTelNo("010-0000-0000"),
		api.WithBuyerEmail("kim@example.com"),
		api.WithRedirection(true),
	)

	assert.Equal(t, 2, order.PaymentRule)
	assert.Equal(t, int64(2500), order.ShippingPrice)
	assert.Equal(t, api.ShippingPaid, order.ShippingType)
	assert.False(t, order.IsAddressRequired)
	assert.True(t, order.MoveToRedirectURL)
	require.NotNil(t, order.BuyerEmail)
	assert.Equal(t, "kim@example.com", *order.BuyerEmail)
}

func TestPlaceOrder_EndToEnd(t *testing.T) {
	srv := newSOAPServer(t, http.StatusOK, soapEnvelope(okReply))
	c := newTestClient(t, srv)

	item := c.CreateItem("Widget", "O1", 1000, 2, "http://x", "http://y")
	order := c.CreateOrder(1, 2000, 0, api.ShippingFree, "a", "b", "c")

	resp, err := c.PlaceOrder(context.Background(), order, []api.Item{item})
	require.NoError(t, err)
	require.False(t, resp.IsFault())
	assert.Equal(t, "12345", resp.Result.Value)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, `"http://www.auction.co.kr/APIv1/IpayService/InsertIpayOrder"`, calls[0].action)

	doc := sentRequest(t, calls[0])
	ticket := doc.FindElement("//Header/EncryptedTicket")
	require.NotNil(t, ticket)
	assert.Equal(t, "http://www.auction.co.kr/Security", ticket.SelectAttrValue("xmlns:s2", ""))
	value := ticket.SelectElement("Value")
	require.NotNil(t, value)
	assert.Equal(t, "K1", value.Text())

	items := doc.FindElements("//InsertIpayOrder/pay_items/IpayServiceItems")
	require.Len(t, items, 1)
	opt := items[0].SelectAttr("item_option_name")
	require.NotNil(t, opt, "item_option_name must be patched in")
	assert.Equal(t, "", opt.Value)
	assert.Equal(t, "Widget", items[0].SelectAttrValue("item_name", ""))
	assert.Equal(t, "O1", items[0].SelectAttrValue("ipay_itemno", ""))
	assert.Equal(t, "1000", items[0].SelectAttrValue("item_price", ""))
	assert.Equal(t, "2", items[0].SelectAttrValue("order_qty", ""))
	assert.Equal(t, "0", items[0].SelectAttrValue("cancel_restriction", ""))
	assert.Nil(t, items[0].SelectAttr("item_image_url"))

	info := doc.FindElement("//InsertIpayOrder/pay_info")
	require.NotNil(t, info)
	assert.Equal(t, "2000", info.SelectAttrValue("pay_price", ""))
	assert.Equal(t, "1", info.SelectAttrValue("shipping_type", ""))
	assert.Equal(t, "true", info.SelectAttrValue("is_address_required", ""))
	assert.Equal(t, "false", info.SelectAttrValue("move_to_redirect_url", ""))
	assert.Nil(t, info.SelectAttr("buyer_name"))
}

func TestPlaceOrder_KeepsItemOrderAndExplicitOptions(t *testing.T) {
	srv := newSOAPServer(t, http.StatusOK, soapEnvelope(okReply))
	c := newTestClient(t, srv)

	items := []api.Item{
		c.CreateItem("first", "O1", 100, 1, "u", "t", api.WithItemOption("Red")),
		c.CreateItem("second", "O2", 200, 1, "u", "t", api.WithItemOption("")),
		c.CreateItem("third", "O3", 300, 1, "u", "t"),
	}
	order := c.CreateOrder(1, 600, 0, api.ShippingFree, "a", "b", "c")

	_, err := c.PlaceOrder(context.Background(), order, items)
	require.NoError(t, err)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	sent := sentRequest(t, calls[0]).FindElements("//pay_items/IpayServiceItems")
	require.Len(t, sent, len(items))

	want := []struct{ name, option string }{
		{"first", "Red"},
		{"second", ""},
		{"third", ""},
	}
	for i, w := range want {
		assert.Equal(t, w.name, sent[i].SelectAttrValue("item_name", ""))
		opt := sent[i].SelectAttr("item_option_name")
		require.NotNil(t, opt)
		assert.Equal(t, w.option, opt.Value)
	}

	// the caller's items are not modified by the patch
	assert.Nil(t, items[2].OptionName)
}

func TestFinalizeOrder_SendsDecisionRequest(t *testing.T) {
	srv := newSOAPServer(t, http.StatusOK, soapEnvelope(`<DoIpayOrderDecisionRequestResponse/>`))
	c := newTestClient(t, srv)

	_, err := c.FinalizeOrder(context.Background(), 987, "O1", "buyer confirmed")
	require.NoError(t, err)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	req := sentRequest(t, calls[0]).FindElement("//DoIpayOrderDecisionRequest/req")
	require.NotNil(t, req)
	assert.Equal(t, "S1", req.SelectAttrValue("SellerID", ""))
	assert.Equal(t, "987", req.SelectAttrValue("OrderNo", ""))
	assert.Equal(t, "O1", req.SelectAttrValue("SellerManagementNumber", ""))
	assert.Equal(t, "buyer confirmed", req.SelectAttrValue("RequestReason", ""))
}

func TestScalarQueries(t *testing.T) {
	srv := newSOAPServer(t, http.StatusOK, soapEnvelope(`<Response/>`))
	c := newTestClient(t, srv)
	ctx := context.Background()

	_, err := c.GetOrderStatus(ctx, 11, "O1")
	require.NoError(t, err)
	_, err = c.GetOrderData(ctx, 22)
	require.NoError(t, err)
	_, err = c.GetOrderList(ctx, 1, "20260101")
	require.NoError(t, err)

	calls := srv.Calls()
	require.Len(t, calls, 3)

	status := sentRequest(t, calls[0])
	assert.Equal(t, "11", status.FindElement("//GetIpayReceiptStatus/cart_no").Text())
	assert.Equal(t, "O1", status.FindElement("//GetIpayReceiptStatus/item_no").Text())

	data := sentRequest(t, calls[1])
	assert.Equal(t, "22", data.FindElement("//GetIpayAccountNumb/pay_no").Text())

	list := sentRequest(t, calls[2]).FindElement("//GetIpayPaidOrderList/req")
	require.NotNil(t, list)
	assert.Equal(t, "1", list.SelectAttrValue("SearchType", ""))
	assert.Equal(t, "20260101", list.SelectAttrValue("SearchValue", ""))
}

// The shipping date is accepted but not transmitted yet.
func TestShipOrder_DoesNotSendShipDate(t *testing.T) {
	srv := newSOAPServer(t, http.StatusOK, soapEnvelope(`<DoIpayShippingGeneralResponse/>`))
	c := newTestClient(t, srv)

	shipDate := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	_, err := c.ShipOrder(context.Background(), 555, shipDate)
	require.NoError(t, err)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	req := sentRequest(t, calls[0]).FindElement("//DoIpayShippingGeneral/req")
	require.NotNil(t, req)
	assert.Len(t, req.Attr, 2)
	assert.Equal(t, "S1", req.SelectAttrValue("SellerID", ""))
	assert.Equal(t, "555", req.SelectAttrValue("OrderNo", ""))
	assert.NotContains(t, calls[0].body, "2026")
}

func TestTest_ReturnsCallerAddress(t *testing.T) {
	srv := newSOAPServer(t, http.StatusOK, soapEnvelope(
		`<testResponse xmlns="http://www.auction.co.kr/APIv1/IpayService"><testResult>10.0.0.1</testResult></testResponse>`))
	c := newTestClient(t, srv)

	resp, err := c.Test(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.Result)
	assert.Equal(t, api.OpTest, resp.Operation)
	assert.Equal(t, "testResponse", resp.Result.Name)
	assert.Equal(t, "10.0.0.1", resp.Result.Value)

	var decoded struct {
		XMLName xml.Name `xml:"testResponse"`
		Result  string   `xml:"testResult"`
	}
	require.NoError(t, resp.Decode(&decoded))
	assert.Equal(t, "10.0.0.1", decoded.Result)
}

func TestDecode_PrefixDeclaredOnEnvelope(t *testing.T) {
	srv := newSOAPServer(t, http.StatusOK, `<?xml version="1.0" encoding="utf-8"?>`+
		`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/" xmlns:r="http://www.auction.co.kr/APIv1/IpayService">`+
		`<soap:Body><r:testResponse><r:testResult>1.2.3.4</r:testResult></r:testResponse></soap:Body></soap:Envelope>`)
	c := newTestClient(t, srv)

	resp, err := c.Test(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "testResponse", resp.Result.Name)
	assert.Equal(t, "1.2.3.4", resp.Result.Value)
	assert.Contains(t, string(resp.Result.Raw), `xmlns:r="http://www.auction.co.kr/APIv1/IpayService"`)

	var decoded struct {
		XMLName xml.Name `xml:"http://www.auction.co.kr/APIv1/IpayService testResponse"`
		Result  string   `xml:"http://www.auction.co.kr/APIv1/IpayService testResult"`
	}
	require.NoError(t, resp.Decode(&decoded))
	assert.Equal(t, "1.2.3.4", decoded.Result)
}

func TestFaultDetail_KeepsEnvelopeNamespaces(t *testing.T) {
	srv := newSOAPServer(t, http.StatusInternalServerError, `<?xml version="1.0" encoding="utf-8"?>`+
		`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/" xmlns:e="urn:ipay:errors">`+
		`<soap:Body><soap:Fault><faultcode>soap:Client</faultcode><faultstring>bad order</faultstring>`+
		`<detail><e:reason>price mismatch</e:reason></detail></soap:Fault></soap:Body></soap:Envelope>`)
	c := newTestClient(t, srv)

	resp, err := c.Test(context.Background())
	require.NoError(t, err)
	require.True(t, resp.IsFault())
	assert.Contains(t, resp.Fault.Detail, `xmlns:e="urn:ipay:errors"`)
	assert.Contains(t, resp.Fault.Detail, `xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"`)

	var detail struct {
		Reason string `xml:"urn:ipay:errors reason"`
	}
	require.NoError(t, xml.Unmarshal([]byte(resp.Fault.Detail), &detail))
	assert.Equal(t, "price mismatch", detail.Reason)
}

func TestFaultIsReturnedAsValue(t *testing.T) {
	srv := newSOAPServer(t, http.StatusInternalServerError, soapEnvelope(
		`<soap:Fault><faultcode>soap:Server</faultcode><faultstring>invalid ticket</faultstring></soap:Fault>`))
	c := newTestClient(t, srv)

	resp, err := c.Test(context.Background())
	require.NoError(t, err)
	require.True(t, resp.IsFault())
	assert.Nil(t, resp.Result)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "soap:Server", resp.Fault.Code)
	assert.Equal(t, "invalid ticket", resp.Fault.Message)
	assert.Error(t, resp.Decode(&struct{}{}))
}

func TestTransportErrorIsReturnedUnmodified(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dialErr := errors.New("dial tcp: lookup api.auction.co.kr: no such host")
	doer := mocks.NewMockDoer(ctrl)
	doer.EXPECT().Do(gomock.Any()).Return(nil, dialErr).Times(1)

	c := api.NewClient("S1", "K1", api.WithHTTPClient(doer))
	resp, err := c.Test(context.Background())
	assert.Nil(t, resp)
	assert.Equal(t, dialErr, err)
}

func TestNonSOAPResponseIsStatusError(t *testing.T) {
	srv := newSOAPServer(t, http.StatusBadGateway, "upstream unavailable")
	c := newTestClient(t, srv)

	_, err := c.Test(context.Background())
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.True(t, strings.Contains(statusErr.Body, "upstream unavailable"))
}

func TestWithPatch_RunsAfterOptionNamePatch(t *testing.T) {
	srv := newSOAPServer(t, http.StatusOK, soapEnvelope(okReply))

	var seen []string
	c := api.NewClient("S1", "K1",
		api.WithEndpoint(srv.URL),
		api.WithPatch(func(op string, doc *etree.Document) *etree.Document {
			for _, el := range doc.FindElements("//IpayServiceItems") {
				seen = append(seen, el.SelectAttrValue("item_option_name", "<missing>"))
			}
			return doc
		}),
	)

	item := c.CreateItem("Widget", "O1", 1000, 2, "http://x", "http://y")
	order := c.CreateOrder(1, 2000, 0, api.ShippingFree, "a", "b", "c")
	_, err := c.PlaceOrder(context.Background(), order, []api.Item{item})
	require.NoError(t, err)
	assert.Equal(t, []string{""}, seen)
}

func TestWithTracer_RecordsCallSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	srv := newSOAPServer(t, http.StatusInternalServerError, soapEnvelope(
		`<soap:Fault><faultcode>soap:Server</faultcode><faultstring>invalid ticket</faultstring></soap:Fault>`))
	c := api.NewClient("S1", "K1", api.WithEndpoint(srv.URL), api.WithTracer(tp.Tracer(api.TracerName)))

	_, err := c.Test(context.Background())
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "ipay."+api.OpTest, spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "invalid ticket", spans[0].Status().Description)
}
