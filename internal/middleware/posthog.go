package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AnalyticsClient receives product events. *utils.PosthogClientWrapper
// satisfies it and is a no-op when PostHog is not configured.
type AnalyticsClient interface {
	IsInitialized() bool
	Enqueue(distinctID string, event string, properties map[string]any)
}

// bookkeepingEvents names the write routes worth tracking. Reads and
// validation-only calls are left out.
var bookkeepingEvents = map[string]string{
	http.MethodPost + " /api/v1/accounts":                     "account_created",
	http.MethodPut + " /api/v1/accounts/:accountID":           "account_updated",
	http.MethodPost + " /api/v1/journals":                     "journal_created",
	http.MethodPost + " /api/v1/ingest/journals":              "journal_ingested",
	http.MethodPost + " /api/v1/bills":                        "bill_created",
	http.MethodPost + " /api/v1/bills/:billID/approve":        "bill_approved",
	http.MethodPost + " /api/v1/bills/:billID/payments":       "bill_payment_recorded",
	http.MethodPost + " /api/v1/bills/:billID/refunds":        "bill_refund_recorded",
	http.MethodPost + " /api/v1/bill-credits":                 "bill_credit_created",
	http.MethodPost + " /api/v1/invoices":                     "invoice_created",
	http.MethodPost + " /api/v1/invoices/:invoiceID/payments": "invoice_payment_recorded",
}

// EventForRoute returns the analytics event for a matched route, if any.
func EventForRoute(method string, fullPath string) (string, bool) {
	event, ok := bookkeepingEvents[method+" "+fullPath]
	return event, ok
}

// PosthogMiddleware reports successful bookkeeping writes to analytics,
// tagged with the document they touched and how the caller authenticated.
func PosthogMiddleware(client AnalyticsClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !client.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		event, ok := EventForRoute(c.Request.Method, c.FullPath())
		if !ok {
			return
		}
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		props := map[string]any{
			"status_code": c.Writer.Status(),
		}
		if method, ok := c.Get(string(authMethodKey)); ok {
			props["auth_method"] = method
		}
		for _, param := range c.Params {
			props[param.Key] = param.Value
		}

		client.Enqueue(userID, event, props)
	}
}
