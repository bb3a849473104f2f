// Package payment adapts the Razorpay gateway: order creation before checkout
// and signature verification on the payment callback. Registrations for paid
// events are only created after a signature has been verified.
package payment

import (
	"errors"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"

	"github.com/eventfesta/eventfesta-api/internal/config"
)

var ErrSignatureMismatch = errors.New("payment signature did not match")

type RazorpayGateway struct {
	client    *razorpay.Client
	keySecret string
}

func NewRazorpayGateway(conf *config.RazorpayConfig) *RazorpayGateway {
	return &RazorpayGateway{
		client:    razorpay.NewClient(conf.KeyID, conf.KeySecret),
		keySecret: conf.KeySecret,
	}
}

// CreateOrder creates a gateway order for the given amount in rupees.
// Razorpay expects the amount in paise.
func (g *RazorpayGateway) CreateOrder(amount float64) (map[string]interface{}, error) {
	paise := int(amount * 100)
	if paise <= 0 {
		return nil, errors.New("amount must be greater than zero")
	}

	data := map[string]interface{}{
		"amount":   paise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("order_rcptid_%v", time.Now().UnixMilli()),
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("client.Order.Create -> %w", err)
	}

	return order, nil
}

// VerifySignature checks the HMAC signature Razorpay returns after checkout.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) error {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}

	if !utils.VerifyPaymentSignature(params, signature, g.keySecret) {
		return ErrSignatureMismatch
	}

	return nil
}
