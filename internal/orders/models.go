package orders

import "time"

// Order ties a processor payment to a product purchase. PaymentID is the
// processor-assigned identifier and the ledger's primary key; OrderRef is
// the locally generated reference echoed back through the IPN callback.
type Order struct {
	PaymentID     string
	OrderRef      string
	ProductID     string
	Status        Status
	DownloadToken string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
