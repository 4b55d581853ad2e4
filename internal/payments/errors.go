package payments

import "errors"

var (
	ErrUnknownProduct  = errors.New("unknown product")
	ErrUpstreamPayment = errors.New("payment processor request failed")
	ErrOrderNotFound   = errors.New("order not found")
)
