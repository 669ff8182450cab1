package api

import "encoding/xml"

const (
	// DefaultEndpoint is the production iPay SOAP endpoint.
	DefaultEndpoint = "https://api.auction.co.kr/ArcheSystem/IpayService.asmx"

	serviceNamespace  = "http://www.auction.co.kr/APIv1/IpayService"
	securityNamespace = "http://www.auction.co.kr/Security"
	soapNamespace     = "http://schemas.xmlsoap.org/soap/envelope/"
)

// Remote operation names as declared by the iPay WSDL.
const (
	OpInsertIpayOrder            = "InsertIpayOrder"
	OpDoIpayOrderDecisionRequest = "DoIpayOrderDecisionRequest"
	OpGetIpayReceiptStatus       = "GetIpayReceiptStatus"
	OpGetIpayAccountNumb         = "GetIpayAccountNumb"
	OpGetIpayPaidOrderList       = "GetIpayPaidOrderList"
	OpDoIpayShippingGeneral      = "DoIpayShippingGeneral"
	OpTest                       = "test"
)

const attrItemOptionName = "item_option_name"

// ShippingType is the iPay shipping fee rule of an order.
type ShippingType int

const (
	ShippingFree ShippingType = 1
	ShippingCOD  ShippingType = 2
	ShippingPaid ShippingType = 3
)

// Item mirrors ns0:IpayServiceItems. Pointer fields are optional attributes:
// nil leaves the attribute out of the request entirely.
type Item struct {
	Name              string  `xml:"item_name,attr"`
	SellerOrderNo     string  `xml:"ipay_itemno,attr"`
	OptionName        *string `xml:"item_option_name,attr"`
	Price             int64   `xml:"item_price,attr"`
	Qty               int     `xml:"order_qty,attr"`
	URL               string  `xml:"item_url,attr"`
	ThumbnailURL      string  `xml:"thumbnail_url,attr"`
	ImageURL          *string `xml:"item_image_url,attr"`
	Description       *string `xml:"item_description,attr"`
	CancelRestriction int     `xml:"cancel_restriction,attr"`
}

// ItemList mirrors ArrayOfIpayServiceItems.
type ItemList struct {
	Items []Item `xml:"IpayServiceItems"`
}

// Order mirrors ns0:IpayServiceOrder.
type Order struct {
	PaymentRule       int          `xml:"payment_rule,attr"`
	PayPrice          int64        `xml:"pay_price,attr"`
	ShippingPrice     int64        `xml:"shipping_price,attr"`
	ShippingType      ShippingType `xml:"shipping_type,attr"`
	BackURL           string       `xml:"back_url,attr"`
	ServiceURL        string       `xml:"service_url,attr"`
	RedirectURL       string       `xml:"redirect_url,attr"`
	IsAddressRequired bool         `xml:"is_address_required,attr"`
	BuyerName         *string      `xml:"buyer_name,attr"`
	BuyerTelNo        *string      `xml:"buyer_tel_no,attr"`
	BuyerEmail        *string      `xml:"buyer_email,attr"`
	MoveToRedirectURL bool         `xml:"move_to_redirect_url,attr"`
}

// DecisionRequest mirrors ns0:DoOrderDecisionRequestT.
type DecisionRequest struct {
	SellerID               string `xml:"SellerID,attr"`
	OrderNo                int64  `xml:"OrderNo,attr"`
	SellerManagementNumber string `xml:"SellerManagementNumber,attr"`
	RequestReason          string `xml:"RequestReason,attr"`
}

// OrderListRequest mirrors ns0:GetOrderListRequestT.
type OrderListRequest struct {
	SearchType  int    `xml:"SearchType,attr"`
	SearchValue string `xml:"SearchValue,attr"`
}

// ShippingRequest mirrors ns0:DoShippingGeneralRequestT.
type ShippingRequest struct {
	SellerID string `xml:"SellerID,attr"`
	OrderNo  int64  `xml:"OrderNo,attr"`
}

// Operation bodies. Element names of the parameters follow the WSDL message parts.

type insertOrderCall struct {
	XMLName xml.Name
	Order   Order    `xml:"pay_info"`
	Items   ItemList `xml:"pay_items"`
}

type decisionCall struct {
	XMLName xml.Name
	Request DecisionRequest `xml:"req"`
}

type receiptStatusCall struct {
	XMLName xml.Name
	CartNo  int64  `xml:"cart_no"`
	ItemNo  string `xml:"item_no"`
}

type accountNumbCall struct {
	XMLName xml.Name
	PayNo   int64 `xml:"pay_no"`
}

type paidOrderListCall struct {
	XMLName xml.Name
	Request OrderListRequest `xml:"req"`
}

type shippingCall struct {
	XMLName xml.Name
	Request ShippingRequest `xml:"req"`
}

type testCall struct {
	XMLName xml.Name
}

func operation(name string) xml.Name {
	return xml.Name{Space: serviceNamespace, Local: name}
}
