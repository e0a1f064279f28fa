package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	paymentdto "github.com/cryptolink/cryptolink-payment-service/internal/usecase/dto/payment"
)

// PaymentReader is the read-only slice of the usecase the poller needs.
type PaymentReader interface {
	GetPaymentStatus(payID string) (*paymentdto.StatusOutput, error)
	GetPaymentDetails(payID string) (*paymentdto.PaymentOutput, error)
}

// StatusPoller tracks one pending payment on behalf of one open
// payment view. It re-checks on a fixed cadence, suspends while the
// view is hidden (releasing its timer), tolerates transient fetch
// failures by waiting for the next tick, and stops permanently after
// fetching full details once for a terminal status. It never writes:
// an expired flag observed locally is advisory until the verification
// pass commits it.
type StatusPoller struct {
	reader   PaymentReader
	payID    string
	interval time.Duration

	onUpdate   func(*paymentdto.StatusOutput)
	onTerminal func(*paymentdto.PaymentOutput)

	mu      sync.Mutex
	visible bool
	started bool

	resumeCh chan struct{}
	done     chan struct{}
}

func NewStatusPoller(
	reader PaymentReader,
	payID string,
	interval time.Duration,
	onUpdate func(*paymentdto.StatusOutput),
	onTerminal func(*paymentdto.PaymentOutput)) *StatusPoller {

	return &StatusPoller{
		reader:     reader,
		payID:      payID,
		interval:   interval,
		onUpdate:   onUpdate,
		onTerminal: onTerminal,
		visible:    true,
		resumeCh:   make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
}

// Start launches the polling loop. Cancel ctx on view teardown.
func (sp *StatusPoller) Start(ctx context.Context) {
	sp.mu.Lock()
	if sp.started {
		sp.mu.Unlock()
		return
	}
	sp.started = true
	sp.mu.Unlock()

	go sp.run(ctx)
}

// Suspend parks the poller without tearing it down; the next Resume
// re-arms it. Safe to call repeatedly.
func (sp *StatusPoller) Suspend() {
	sp.mu.Lock()
	sp.visible = false
	sp.mu.Unlock()
}

func (sp *StatusPoller) Resume() {
	sp.mu.Lock()
	wasHidden := !sp.visible
	sp.visible = true
	sp.mu.Unlock()

	if wasHidden {
		select {
		case sp.resumeCh <- struct{}{}:
		default:
		}
	}
}

// Done closes when the poller has stopped, either on terminal status
// or on ctx cancellation.
func (sp *StatusPoller) Done() <-chan struct{} {
	return sp.done
}

func (sp *StatusPoller) run(ctx context.Context) {
	defer close(sp.done)

	for {
		if !sp.isVisible() {
			// Hidden view: no timer held while parked.
			select {
			case <-ctx.Done():
				return
			case <-sp.resumeCh:
				continue
			}
		}

		timer := time.NewTimer(sp.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if !sp.isVisible() {
			continue
		}

		status, err := sp.reader.GetPaymentStatus(sp.payID)
		if err != nil {
			// Transient fetch failure: retry on the next tick.
			slog.Warn("status poll failed", "pay_id", sp.payID, "error", err.Error())
			continue
		}

		if sp.onUpdate != nil {
			sp.onUpdate(status)
		}

		if status.Status == domain.StatusPending {
			continue
		}

		// Terminal: fetch full details once, then stop for good.
		details, err := sp.reader.GetPaymentDetails(sp.payID)
		if err != nil {
			slog.Warn("terminal detail fetch failed", "pay_id", sp.payID, "error", err.Error())
			continue
		}
		if sp.onTerminal != nil {
			sp.onTerminal(details)
		}
		return
	}
}

func (sp *StatusPoller) isVisible() bool {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.visible
}
