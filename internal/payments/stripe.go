package payments

import (
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

// ErrMissingCredential is fatal configuration: no run may start without it.
var ErrMissingCredential = errors.New("stripe secret key is not configured")

type StripeProvider struct{}

func NewStripeProvider(secretKey string) (*StripeProvider, error) {
	if secretKey == "" {
		return nil, ErrMissingCredential
	}
	stripe.Key = secretKey
	return &StripeProvider{}, nil
}

func (p *StripeProvider) ListCompletedSessions(limit int64, since *time.Time) ([]*Session, error) {
	params := &stripe.CheckoutSessionListParams{}
	params.Limit = stripe.Int64(limit)
	if since != nil {
		params.CreatedRange = &stripe.RangeQueryParams{
			GreaterThanOrEqual: since.Unix(),
		}
	}

	var out []*Session
	iter := session.List(params)
	for iter.Next() {
		cs := iter.CheckoutSession()
		if cs.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			continue
		}
		s := &Session{
			ID:        cs.ID,
			Amount:    cs.AmountTotal,
			Currency:  string(cs.Currency),
			CreatedAt: time.Unix(cs.Created, 0).UTC(),
			Metadata:  cs.Metadata,
		}
		if cs.CustomerDetails != nil {
			s.ReceiptEmail = cs.CustomerDetails.Email
		}
		if cs.PaymentIntent != nil {
			s.PaymentIntentID = cs.PaymentIntent.ID
		}
		out = append(out, s)
		if int64(len(out)) >= limit {
			break
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list checkout sessions: %w", err)
	}
	return out, nil
}

func (p *StripeProvider) SessionDetails(s *Session) (*SessionDetails, error) {
	if s.PaymentIntentID == "" {
		return &SessionDetails{}, nil
	}

	params := &stripe.PaymentIntentParams{}
	params.AddExpand("latest_charge.balance_transaction")
	pi, err := paymentintent.Get(s.PaymentIntentID, params)
	if err != nil {
		return nil, fmt.Errorf("payment intent %s: %w", s.PaymentIntentID, err)
	}

	d := &SessionDetails{}
	ch := pi.LatestCharge
	if ch == nil {
		return d, nil
	}
	d.ReceiptURL = ch.ReceiptURL
	if pmd := ch.PaymentMethodDetails; pmd != nil {
		d.PaymentMethod = string(pmd.Type)
		if pmd.Card != nil {
			d.PaymentMethod = fmt.Sprintf("%s ****%s", pmd.Card.Brand, pmd.Card.Last4)
		}
	}
	if bt := ch.BalanceTransaction; bt != nil {
		fee := bt.Fee
		net := bt.Net
		d.Fee = &fee
		d.Net = &net
	}
	return d, nil
}
