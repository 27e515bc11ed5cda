package crud

import (
	"strconv"
	"strings"
	"time"
)

// IDSource hands out identifiers for newly created records.
type IDSource interface {
	Next() string
}

// Sequence issues prefix+n for n = start, start+1, ...
type Sequence struct {
	Prefix string
	next   int
}

// NewSequence returns a sequence whose first identifier is prefix+start.
func NewSequence(prefix string, start int) *Sequence {
	return &Sequence{Prefix: prefix, next: start}
}

// Next returns the next identifier.
func (s *Sequence) Next() string {
	id := s.Prefix + strconv.Itoa(s.next)
	s.next++
	return id
}

// Timestamp issues prefix+<unix millis>. Two calls within the same
// millisecond still yield distinct identifiers.
type Timestamp struct {
	Prefix string
	Now    func() time.Time
	last   int64
}

// NewTimestamp returns a timestamp source reading the wall clock.
func NewTimestamp(prefix string) *Timestamp {
	return &Timestamp{Prefix: prefix, Now: time.Now}
}

// Next returns the next identifier.
func (t *Timestamp) Next() string {
	ms := t.Now().UnixMilli()
	if ms <= t.last {
		ms = t.last + 1
	}
	t.last = ms
	return t.Prefix + strconv.FormatInt(ms, 10)
}

// NextAfter returns the first sequence number, at least floor, that is
// greater than every numeric suffix of ids carrying prefix.
func NextAfter(prefix string, ids []string, floor int) int {
	next := floor
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil {
			continue
		}
		if n+1 > next {
			next = n + 1
		}
	}
	return next
}

// IDs returns the identifiers of records, in order.
func IDs[T Record[T]](records []T) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.RecordID()
	}
	return out
}
