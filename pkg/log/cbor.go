package log

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// ErrInvalidEvent is returned for an event whose payload contradicts its
// category, or that carries more than one payload.
var ErrInvalidEvent = errors.New("log: invalid event")

var (
	captureEnc cbor.EncMode
	captureDec cbor.DecMode
)

func init() {
	var err error

	// Canonical key order keeps identical events byte-identical in a capture.
	captureEnc, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("log: capture encoder: %v", err))
	}

	captureDec, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("log: capture decoder: %v", err))
	}
}

// Check reports whether event is well formed: at most one payload, and a
// payload matching the category.
func Check(event Event) error {
	var payloads int
	want := event.Category
	if event.StateChange != nil {
		payloads++
		want = CategoryState
	}
	if event.Data != nil {
		payloads++
		want = CategoryData
	}
	if event.Flow != nil {
		payloads++
		want = CategoryFlow
	}
	if event.Error != nil {
		payloads++
		want = CategoryError
	}

	switch {
	case payloads > 1:
		return fmt.Errorf("%w: %d payloads", ErrInvalidEvent, payloads)
	case want != event.Category:
		return fmt.Errorf("%w: %s payload in %s event", ErrInvalidEvent, want, event.Category)
	}
	return nil
}

// EncodeEvent encodes a checked Event to CBOR.
func EncodeEvent(event Event) ([]byte, error) {
	if err := Check(event); err != nil {
		return nil, err
	}
	return captureEnc.Marshal(event)
}

// DecodeEvent decodes and checks a single CBOR-encoded Event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := captureDec.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	if err := Check(event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// eventWriter appends checked events to a capture stream.
type eventWriter struct {
	enc *cbor.Encoder
}

func newEventWriter(w io.Writer) *eventWriter {
	return &eventWriter{enc: captureEnc.NewEncoder(w)}
}

func (w *eventWriter) write(event Event) error {
	if err := Check(event); err != nil {
		return err
	}
	return w.enc.Encode(event)
}

// eventScanner reads checked events from a capture stream.
type eventScanner struct {
	dec   *cbor.Decoder
	count int
}

func newEventScanner(r io.Reader) *eventScanner {
	return &eventScanner{dec: captureDec.NewDecoder(r)}
}

// next returns the next event, io.EOF at a clean end of stream, or an error
// naming the offending record.
func (s *eventScanner) next() (Event, error) {
	var event Event
	if err := s.dec.Decode(&event); err != nil {
		if errors.Is(err, io.EOF) {
			return Event{}, io.EOF
		}
		return Event{}, fmt.Errorf("record %d: %w", s.count+1, err)
	}
	s.count++
	if err := Check(event); err != nil {
		return Event{}, fmt.Errorf("record %d: %w", s.count, err)
	}
	return event, nil
}
