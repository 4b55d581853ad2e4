package orders

// Status is the payment status vocabulary owned by NOWPayments. The ledger
// stores whatever the processor last reported; it never invents values.
type Status string

const (
	StatusWaiting       Status = "waiting"
	StatusConfirming    Status = "confirming"
	StatusConfirmed     Status = "confirmed"
	StatusSending       Status = "sending"
	StatusPartiallyPaid Status = "partially_paid"
	StatusFinished      Status = "finished"
	StatusFailed        Status = "failed"
	StatusRefunded      Status = "refunded"
	StatusExpired       Status = "expired"
)

// paid statuses unlock the download. The processor reports several of these
// as a payment propagates through settlement, so all of them count.
var paid = map[Status]bool{
	StatusFinished:  true,
	StatusConfirmed: true,
	StatusSending:   true,
}

func (s Status) Paid() bool { return paid[s] }
