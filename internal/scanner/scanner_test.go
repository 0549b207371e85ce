package scanner

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypermart/pos-backend/pkg/logger"
)

// fakeCapture replays a fixed sequence of frames, then blocks until
// the context is cancelled.
type fakeCapture struct {
	frames []Frame
	idx    int
	closed bool
}

func (f *fakeCapture) Read(ctx context.Context) (Frame, error) {
	if f.idx < len(f.frames) {
		frame := f.frames[f.idx]
		f.idx++
		return frame, nil
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func (f *fakeCapture) Close() error {
	f.closed = true
	return nil
}

// passthroughDecoder treats the frame bytes as the barcode itself and
// an empty frame as "nothing readable".
type passthroughDecoder struct{}

func (passthroughDecoder) Decode(frame Frame) (string, bool) {
	if len(frame) == 0 {
		return "", false
	}
	return string(frame), true
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "scanner-test", Output: io.Discard})
}

func collect(t *testing.T, s *Session, n int) []Scan {
	t.Helper()
	scans := make([]Scan, 0, n)
	for len(scans) < n {
		select {
		case scan := <-s.Scans():
			scans = append(scans, scan)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d scans", len(scans), n)
		}
	}
	return scans
}

func TestSessionDeduplicatesRepeatedFrames(t *testing.T) {
	capture := &fakeCapture{frames: []Frame{
		Frame("8901030"), Frame("8901030"), Frame("8901030"),
		Frame("8901031"),
	}}
	session := NewSession(testLogger(), capture, passthroughDecoder{})
	session.Start(context.Background())

	scans := collect(t, session, 2)
	assert.Equal(t, "8901030", scans[0].Barcode)
	assert.Equal(t, "8901031", scans[1].Barcode)

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, session.Stop(stopCtx))
	assert.True(t, capture.closed)
}

// chanCapture lets the test hand frames to the loop one at a time.
type chanCapture struct {
	frames chan Frame
}

func (c *chanCapture) Read(ctx context.Context) (Frame, error) {
	select {
	case frame := <-c.frames:
		return frame, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *chanCapture) Close() error { return nil }

func TestSessionEmptyFrameRearmsSameCode(t *testing.T) {
	capture := &chanCapture{frames: make(chan Frame)}
	session := NewSession(testLogger(), capture, passthroughDecoder{})
	session.Start(context.Background())

	capture.frames <- Frame("8901030")
	first := collect(t, session, 1)
	assert.Equal(t, "8901030", first[0].Barcode)

	// Item pulled away, then presented again.
	capture.frames <- Frame("")
	capture.frames <- Frame("8901030")
	second := collect(t, session, 1)
	assert.Equal(t, "8901030", second[0].Barcode)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	require.NoError(t, session.Stop(stopCtx))
}

func TestSessionSlowConsumerSeesLatestScan(t *testing.T) {
	capture := &fakeCapture{frames: []Frame{
		Frame("1111111"), Frame("2222222"), Frame("3333333"),
	}}
	session := NewSession(testLogger(), capture, passthroughDecoder{})
	session.Start(context.Background())

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, session.Stop(stopCtx))

	// The loop ran to completion before we read anything, so only the
	// newest scan is left in the slot.
	scan := <-session.Scans()
	assert.Equal(t, "3333333", scan.Barcode)
	select {
	case extra := <-session.Scans():
		t.Fatalf("unexpected extra scan %q", extra.Barcode)
	default:
	}
}

func TestScanOne(t *testing.T) {
	capture := &fakeCapture{frames: []Frame{
		Frame(""), Frame("8901030"),
	}}

	code, err := ScanOne(context.Background(), testLogger(), capture, passthroughDecoder{})
	require.NoError(t, err)
	assert.Equal(t, "8901030", code)
}

func TestScanOneContextCancelled(t *testing.T) {
	capture := &fakeCapture{} // never yields a frame

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ScanOne(ctx, testLogger(), capture, passthroughDecoder{})
	require.Error(t, err)
}
