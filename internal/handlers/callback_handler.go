package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ipaybot/internal/middleware"
)

// Callback paths handed to iPay as back_url, service_url and redirect_url.
const (
	BackPath     = "/ipay/back"
	ServicePath  = "/ipay/service"
	RedirectPath = "/ipay/redirect"
)

// CallbackHandler receives the requests iPay and the buyer's browser make
// to the URLs of an order. It only records them.
type CallbackHandler struct {
	log logrus.FieldLogger
}

func NewCallbackHandler(log logrus.FieldLogger) *CallbackHandler {
	return &CallbackHandler{log: log}
}

// RegisterRoutes registers the callback routes for GET and POST.
func (h *CallbackHandler) RegisterRoutes(r *gin.Engine) {
	for kind, path := range map[string]string{
		"back":     BackPath,
		"service":  ServicePath,
		"redirect": RedirectPath,
	} {
		r.GET(path, h.handle(kind))
		r.POST(path, h.handle(kind))
	}
}

func (h *CallbackHandler) handle(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fields := logrus.Fields{
			"callback":   kind,
			"request_id": middleware.GetRequestID(c),
			"remote":     c.ClientIP(),
		}
		for key, values := range c.Request.Form {
			if len(values) > 0 {
				fields["form."+key] = values[0]
			}
		}
		h.log.WithFields(fields).Info("ipay callback received")

		c.JSON(http.StatusOK, gin.H{"status": "received", "callback": kind})
	}
}
