package resp

import (
	"errors"
	"io"
)

const (
	defaultBufSize = 4096

	// maxRetainedBufSize bounds the buffer kept between frames after a
	// large frame forced it to grow.
	maxRetainedBufSize = 64 * 1024

	maxConsecutiveEmptyReads = 100
)

// Reader accumulates bytes from an underlying reader and decodes frames out
// of them. It is not safe for concurrent use; each connection owns one.
type Reader struct {
	rd  io.Reader
	dec *Decoder
	buf []byte
	r   int // start of unconsumed bytes
	w   int // end of buffered bytes

	// need is the buffered length, counted from r, below which decoding
	// the pending frame cannot progress.
	need int

	decodes int // decode attempts, for tests
}

// NewReader returns a Reader over rd. A nil dec uses NewDecoder().
func NewReader(rd io.Reader, dec *Decoder) *Reader {
	if dec == nil {
		dec = NewDecoder()
	}
	return &Reader{
		rd:  rd,
		dec: dec,
		buf: make([]byte, defaultBufSize),
	}
}

// ReadFrame returns the next frame, reading from the underlying reader as
// often as needed. Bytes of a partially received frame stay buffered across
// reads, so frame boundaries never depend on how the stream was chunked.
// A partial frame is not decoded again until enough bytes have arrived to
// complete the part that was missing, so a large frame received in many
// small reads costs work proportional to its element count, not to the
// number of reads.
//
// io.EOF is returned only on a clean boundary; a stream that ends inside a
// frame yields io.ErrUnexpectedEOF.
func (r *Reader) ReadFrame() (Frame, error) {
	for {
		if r.w > r.r && r.w-r.r >= r.need {
			r.decodes++
			f, n, need, err := r.dec.decodeNeed(r.buf[r.r:r.w])
			if err == nil {
				r.consume(n)
				return f, nil
			}
			if !errors.Is(err, ErrIncomplete) {
				return Frame{}, err
			}
			r.need = need
		}

		if err := r.fill(); err != nil {
			if errors.Is(err, io.EOF) && r.w > r.r {
				return Frame{}, io.ErrUnexpectedEOF
			}
			return Frame{}, err
		}
	}
}

// Buffered returns the number of received bytes not yet decoded.
func (r *Reader) Buffered() int {
	return r.w - r.r
}

func (r *Reader) consume(n int) {
	r.need = 0
	r.r += n
	if r.r < r.w {
		return
	}
	r.r, r.w = 0, 0
	if len(r.buf) > maxRetainedBufSize {
		r.buf = make([]byte, defaultBufSize)
	}
}

// fill reads at least one more byte into the buffer, compacting or growing
// it first when there is no room left.
func (r *Reader) fill() error {
	if r.r > 0 {
		copy(r.buf, r.buf[r.r:r.w])
		r.w -= r.r
		r.r = 0
	}
	if r.w == len(r.buf) {
		grown := make([]byte, 2*len(r.buf))
		copy(grown, r.buf[:r.w])
		r.buf = grown
	}

	for i := 0; i < maxConsecutiveEmptyReads; i++ {
		n, err := r.rd.Read(r.buf[r.w:])
		if n < 0 {
			return errors.New("resp: reader returned negative count")
		}
		r.w += n
		if n > 0 {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return io.ErrNoProgress
}
