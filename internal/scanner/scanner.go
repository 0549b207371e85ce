package scanner

import (
	"context"
	"time"

	"github.com/hypermart/pos-backend/pkg/errors"
	"github.com/hypermart/pos-backend/pkg/logger"
	"github.com/hypermart/pos-backend/pkg/metrics"
)

// Frame is one raw capture from whatever device feeds the scanner.
type Frame []byte

// Capture produces frames. Read blocks until a frame is available or
// the context is done. Implementations wrap the actual camera or HID
// device driver.
type Capture interface {
	Read(ctx context.Context) (Frame, error)
	Close() error
}

// Decoder extracts a barcode from a frame. The second return is false
// when the frame holds no readable code.
type Decoder interface {
	Decode(frame Frame) (string, bool)
}

// Scan is one decoded barcode.
type Scan struct {
	Barcode string    `json:"barcode"`
	At      time.Time `json:"at"`
}

// Session runs the capture loop on its own goroutine. Holding an item
// under the scanner yields the same code frame after frame; the loop
// emits only on value change, and an empty frame re-arms the previous
// value so the same item can be scanned twice in a row deliberately.
type Session struct {
	capture Capture
	decoder Decoder
	log     *logger.Logger

	scans  chan Scan
	cancel context.CancelFunc
	done   chan struct{}
	now    func() time.Time
}

func NewSession(log *logger.Logger, capture Capture, decoder Decoder) *Session {
	return &Session{
		capture: capture,
		decoder: decoder,
		log:     log,
		scans:   make(chan Scan, 1),
		done:    make(chan struct{}),
		now:     time.Now,
	}
}

// Start launches the capture loop. It returns immediately.
func (s *Session) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	go s.loop(loopCtx)
}

// Scans delivers decoded barcodes. The channel holds a single slot:
// a new scan replaces an unconsumed older one, so a slow consumer
// always sees the latest code rather than a backlog.
func (s *Session) Scans() <-chan Scan {
	return s.scans
}

// Stop cancels the loop and waits for it to exit, bounded by ctx.
func (s *Session) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(errors.CodeInternal, ctx.Err(), "scanner loop did not stop in time")
	}
}

func (s *Session) loop(ctx context.Context) {
	defer close(s.done)
	defer s.capture.Close()

	last := ""
	for {
		frame, err := s.capture.Read(ctx)
		if err != nil {
			if ctx.Err() == nil {
				s.log.Error(ctx, "scanner capture failed", err)
			}
			return
		}

		code, ok := s.decoder.Decode(frame)
		if !ok {
			last = ""
			continue
		}
		if code == last {
			continue
		}
		last = code

		s.emit(Scan{Barcode: code, At: s.now()})
		metrics.ScansDecoded.Inc()
	}
}

func (s *Session) emit(scan Scan) {
	for {
		select {
		case s.scans <- scan:
			return
		default:
		}
		// Slot is full, evict the stale scan.
		select {
		case <-s.scans:
		default:
		}
	}
}

// ScanOne blocks until a single barcode is decoded, then shuts the
// session down. This is the one-shot path behind the restock form's
// "scan" button.
func ScanOne(ctx context.Context, log *logger.Logger, capture Capture, decoder Decoder) (string, error) {
	session := NewSession(log, capture, decoder)
	session.Start(ctx)
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = session.Stop(stopCtx)
	}()

	select {
	case scan := <-session.Scans():
		return scan.Barcode, nil
	case <-ctx.Done():
		return "", errors.Wrap(errors.CodeInternal, ctx.Err(), "waiting for a scan")
	}
}
