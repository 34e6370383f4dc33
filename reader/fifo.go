package reader

import (
	"context"
	"sync"
	"time"

	"rfidosc/eventpipe"
	"rfidosc/tags"
)

// FIFO implements TagReader over a named pipe, for running without reader
// hardware. Lines are "tag <uid>".
type FIFO struct {
	pipe      *eventpipe.EventPipe
	uids      chan tags.UID
	done      chan struct{}
	closeOnce sync.Once
}

// NewFIFO creates the pipe at path and starts listening on it.
func NewFIFO(path string) (*FIFO, error) {
	if path == "" {
		path = "/tmp/rfidosc-tags"
	}
	f := &FIFO{uids: make(chan tags.UID, 16), done: make(chan struct{})}
	pipe, err := eventpipe.New(eventpipe.Config{Path: path}, f.deliver)
	if err != nil {
		return nil, err
	}
	f.pipe = pipe
	go pipe.Start()
	return f, nil
}

// deliver queues uid for Read. It gives up once the reader is closed.
func (f *FIFO) deliver(uid tags.UID) {
	select {
	case f.uids <- uid:
	case <-f.done:
	}
}

// Read implements TagReader.Read.
func (f *FIFO) Read(ctx context.Context, timeout time.Duration) (tags.UID, error) {
	wctx, cancel := waitCtx(ctx, timeout)
	defer cancel()

	select {
	case uid := <-f.uids:
		return uid, nil
	case <-wctx.Done():
		if timedOut(ctx, wctx.Err()) {
			return nil, nil
		}
		return nil, wctx.Err()
	}
}

// Close implements TagReader.Close.
func (f *FIFO) Close() error {
	f.closeOnce.Do(func() { close(f.done) })
	return f.pipe.Close()
}
