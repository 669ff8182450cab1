package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ipaybot/internal/api"
	"ipaybot/internal/service"
)

const dateLayout = "2006-01-02"

type IpayHandler struct {
	svc *service.PaymentService
}

func NewIpayHandler(svc *service.PaymentService) *IpayHandler {
	return &IpayHandler{svc: svc}
}

// RegisterRoutes wires the iPay routes into the given router.
func (h *IpayHandler) RegisterRoutes(r *gin.Engine) {
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", h.Ping)
		apiGroup.POST("/orders", h.Checkout)
		apiGroup.GET("/orders", h.PaidOrders)
		apiGroup.GET("/orders/status", h.OrderStatus)
		apiGroup.POST("/orders/:order_no/decision", h.Finalize)
		apiGroup.POST("/orders/:order_no/shipment", h.Ship)
		apiGroup.GET("/payments/:pay_no", h.OrderData)
	}
}

type decisionRequest struct {
	SellerOrderNo string `json:"seller_order_no"`
	Reason        string `json:"reason"`
}

type shipmentRequest struct {
	ShipDate string `json:"ship_date" binding:"required"`
}

// Checkout places a new order with iPay.
func (h *IpayHandler) Checkout(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.svc.Checkout(c.Request.Context(), req)
	respond(c, resp, err)
}

// Finalize confirms an order and requests the payment.
func (h *IpayHandler) Finalize(c *gin.Context) {
	orderNo, ok := int64Param(c, "order_no", c.Param("order_no"))
	if !ok {
		return
	}
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.svc.Finalize(c.Request.Context(), orderNo, req.SellerOrderNo, req.Reason)
	respond(c, resp, err)
}

// OrderStatus returns the receipt status for cart_no and item_no.
func (h *IpayHandler) OrderStatus(c *gin.Context) {
	cartNo, ok := int64Param(c, "cart_no", c.Query("cart_no"))
	if !ok {
		return
	}
	itemNo := c.Query("item_no")
	if itemNo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_no is required"})
		return
	}

	resp, err := h.svc.OrderStatus(c.Request.Context(), cartNo, itemNo)
	respond(c, resp, err)
}

// OrderData returns payment details for a pay number.
func (h *IpayHandler) OrderData(c *gin.Context) {
	payNo, ok := int64Param(c, "pay_no", c.Param("pay_no"))
	if !ok {
		return
	}

	resp, err := h.svc.OrderData(c.Request.Context(), payNo)
	respond(c, resp, err)
}

// PaidOrders lists paid orders matching search_type and value.
func (h *IpayHandler) PaidOrders(c *gin.Context) {
	searchType, err := strconv.Atoi(c.Query("search_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search_type must be a number"})
		return
	}

	resp, err := h.svc.PaidOrders(c.Request.Context(), searchType, c.Query("value"))
	respond(c, resp, err)
}

// Ship marks an order as shipped. ship_date accepts RFC 3339 or YYYY-MM-DD.
func (h *IpayHandler) Ship(c *gin.Context) {
	orderNo, ok := int64Param(c, "order_no", c.Param("order_no"))
	if !ok {
		return
	}
	var req shipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	shipDate, err := parseShipDate(req.ShipDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ship_date must be RFC 3339 or YYYY-MM-DD"})
		return
	}

	resp, err := h.svc.Ship(c.Request.Context(), orderNo, shipDate)
	respond(c, resp, err)
}

// Ping probes iPay and returns the address it sees us calling from.
func (h *IpayHandler) Ping(c *gin.Context) {
	resp, err := h.svc.Ping(c.Request.Context())
	respond(c, resp, err)
}

// respond maps an iPay outcome to HTTP: faults and transport errors are both
// upstream failures.
func respond(c *gin.Context, resp *api.Response, err error) {
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if resp.IsFault() {
		c.JSON(http.StatusBadGateway, gin.H{
			"operation": resp.Operation,
			"fault":     resp.Fault,
		})
		return
	}

	out := gin.H{"operation": resp.Operation}
	if resp.Result != nil {
		out["result"] = resp.Result.Name
		out["value"] = resp.Result.Value
		out["raw"] = string(resp.Result.Raw)
	}
	c.JSON(http.StatusOK, out)
}

func int64Param(c *gin.Context, name, raw string) (int64, bool) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a number"})
		return 0, false
	}
	return v, true
}

func parseShipDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, s)
}
