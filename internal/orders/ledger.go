package orders

import (
	"errors"
	"sync"
	"time"
)

var ErrNotFound = errors.New("order not found")

// Ledger records orders and applies processor status notifications. The
// interface exists so a persistent backing store can replace the in-memory
// one without touching callers.
type Ledger interface {
	// Insert records a new order. The write is atomic; the caller must not
	// hold any external payment call open while inserting.
	Insert(o Order) error

	// Get returns the order keyed by the processor payment ID.
	Get(paymentID string) (Order, error)

	// Resolve binds a notification to an order: first by payment ID, then
	// by the local order reference. Returns the primary key.
	Resolve(paymentID, orderRef string) (Order, bool)

	// ApplyStatus overwrites the order's status (last write wins). When the
	// new status is paid and the order holds no download token, mint is
	// invoked exactly once and its token recorded on the order; concurrent
	// duplicate notifications for the same order cannot mint twice. A mint
	// returning an empty token with nil error declines without failing.
	ApplyStatus(paymentID string, st Status, mint func(o Order) (string, error)) (Order, bool, error)

	// Sweep drops orders not updated within the retention horizon and
	// reports how many were evicted.
	Sweep(olderThan time.Time) int
}

// MemoryLedger is the in-process Ledger: a mutex-guarded map plus a
// secondary index from order reference to payment ID.
type MemoryLedger struct {
	mu    sync.RWMutex
	m     map[string]Order
	byRef map[string]string
	now   func() time.Time
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		m:     make(map[string]Order),
		byRef: make(map[string]string),
		now:   time.Now,
	}
}

var ErrAlreadyExists = errors.New("order already exists")

func (l *MemoryLedger) Insert(o Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.m[o.PaymentID]; ok {
		return ErrAlreadyExists
	}
	t := l.now().UTC()
	o.CreatedAt, o.UpdatedAt = t, t
	l.m[o.PaymentID] = o
	if o.OrderRef != "" {
		l.byRef[o.OrderRef] = o.PaymentID
	}
	return nil
}

func (l *MemoryLedger) Get(paymentID string) (Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	o, ok := l.m[paymentID]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (l *MemoryLedger) Resolve(paymentID, orderRef string) (Order, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if o, ok := l.m[paymentID]; ok {
		return o, true
	}
	if id, ok := l.byRef[orderRef]; ok && orderRef != "" {
		o, ok := l.m[id]
		return o, ok
	}
	return Order{}, false
}

func (l *MemoryLedger) ApplyStatus(paymentID string, st Status, mint func(o Order) (string, error)) (Order, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.m[paymentID]
	if !ok {
		return Order{}, false, ErrNotFound
	}
	o.Status = st
	o.UpdatedAt = l.now().UTC()

	minted := false
	if st.Paid() && o.DownloadToken == "" && mint != nil {
		token, err := mint(o)
		if err != nil {
			// keep the status write; a later notification retries the mint
			l.m[paymentID] = o
			return o, false, err
		}
		if token != "" {
			o.DownloadToken = token
			minted = true
		}
	}
	l.m[paymentID] = o
	return o, minted, nil
}

func (l *MemoryLedger) Sweep(olderThan time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for id, o := range l.m {
		if o.UpdatedAt.Before(olderThan) {
			delete(l.m, id)
			if o.OrderRef != "" {
				delete(l.byRef, o.OrderRef)
			}
			n++
		}
	}
	return n
}

// Len reports how many orders are live. Used by tests and metrics.
func (l *MemoryLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.m)
}
