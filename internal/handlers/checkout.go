package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickcart/internal/checkout"
	"quickcart/internal/middleware"
	"quickcart/internal/models"
)

/* =========================
   REQUEST DTOs
========================= */

type shippingAddressRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	ZipCode   string `json:"zipCode" binding:"required"`
	Country   string `json:"country" binding:"required"`
}

type billingInfoRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	ZipCode string `json:"zipCode" binding:"required"`
}

type paymentInfoRequest struct {
	CardNumber string `json:"cardNumber" binding:"required"`
	ExpiryDate string `json:"expiryDate" binding:"required"`
	NameOnCard string `json:"nameOnCard" binding:"required"`
}

type placeOrderRequest struct {
	ShippingAddress shippingAddressRequest `json:"shippingAddress" binding:"required"`
	BillingInfo     billingInfoRequest     `json:"billingInfo" binding:"required"`
	PaymentInfo     paymentInfoRequest     `json:"paymentInfo" binding:"required"`
}

/* =========================
   PLACE ORDER
========================= */

// PlaceOrder freezes the session cart into an order. The card number is
// handed straight to the checkout service, which masks it; it is never
// logged or echoed back.
func PlaceOrder(svc *checkout.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout"
		defer handlePanic(c, logger, route)

		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, logger, http.StatusBadRequest, route, "invalid request body")
			return
		}

		sub := checkout.Submission{
			ShippingAddress: models.ShippingAddress(req.ShippingAddress),
			BillingInfo:     models.BillingInfo(req.BillingInfo),
			Payment:         checkout.PaymentDetails(req.PaymentInfo),
		}

		ord, err := svc.PlaceOrder(c.Request.Context(), middleware.SessionID(c), sub)
		if err != nil {
			if errors.Is(err, checkout.ErrEmptyCart) {
				respondWithError(c, logger, http.StatusBadRequest, route, "cart is empty")
				return
			}
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not place order")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"orderId": ord.ID,
			"order":   ord,
			"message": "order created",
		})
	}
}
