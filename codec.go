package versioned

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

// Snapshot encodings start with a kind byte, followed by length-prefixed
// slices of individually marshaled elements.
const (
	kindList byte = 'L'
	kindMap  byte = 'M'
)

func appendLength(buf []byte, n int) []byte {
	var tmpbuf [binary.MaxVarintLen64]byte
	len := binary.PutUvarint(tmpbuf[:], uint64(n))
	return append(buf, tmpbuf[:len]...)
}

func appendBodies(buf []byte, bodies [][]byte) []byte {
	buf = appendLength(buf, len(bodies))
	for _, body := range bodies {
		buf = appendLength(buf, len(body))
		buf = append(buf, body...)
	}
	return buf
}

func marshalAll[T any](l []T, marshal func(interface{}) ([]byte, error)) ([][]byte, error) {
	bodies := make([][]byte, len(l))
	for i, elem := range l {
		body, err := marshal(elem)
		if err != nil {
			return nil, fmt.Errorf("marshal element %d: %w", i, err)
		}
		bodies[i] = body
	}
	return bodies, nil
}

// decodeLength reads a count or body length. Either is bounded by the bytes
// that follow it.
func decodeLength(buf []byte, n *int) ([]byte, error) {
	k, used := binary.Uvarint(buf)
	if used <= 0 {
		return nil, errors.New("bad length")
	}
	rest := buf[used:]
	if k > uint64(len(rest)) {
		return nil, errors.New("bad length")
	}
	*n = int(k)
	return rest, nil
}

func decodeBytes(buf []byte, body *[]byte) ([]byte, error) {
	var err error
	var n int
	buf, err = decodeLength(buf, &n)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return buf, nil
	}
	if len(buf) < n {
		return nil, errors.New("bad body length")
	}
	*body = buf[:n]
	return buf[n:], nil
}

func decodeEfaceSlice[T any](buf []byte, l *[]T, unmarshal func([]byte, interface{}) error) ([]byte, error) {
	var err error
	var total int
	buf, err = decodeLength(buf, &total)
	if err != nil {
		return nil, err
	}
	if total > len(buf) {
		return nil, fmt.Errorf("bad element count %d", total)
	}
	out := make([]T, total)
	for i := 0; i < total; i++ {
		var body []byte
		buf, err = decodeBytes(buf, &body)
		if err != nil {
			return nil, err
		}
		if body != nil {
			err = unmarshal(body, &out[i])
			if err != nil {
				return nil, fmt.Errorf("unmarshal element %d: %w", i, err)
			}
		}
	}
	*l = out
	return buf, nil
}

func encodeList[E any](elems []E, marshal func(interface{}) ([]byte, error)) ([]byte, error) {
	bodies, err := marshalAll(elems, marshal)
	if err != nil {
		return nil, err
	}
	return appendBodies([]byte{kindList}, bodies), nil
}

func decodeList[E any](buf []byte, unmarshal func([]byte, interface{}) error) ([]E, error) {
	if len(buf) == 0 || buf[0] != kindList {
		return nil, errors.New("not a list snapshot")
	}
	var elems []E
	rest, err := decodeEfaceSlice(buf[1:], &elems, unmarshal)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%d trailing bytes", len(rest))
	}
	return elems, nil
}

// encodeMap encodes entries sorted by their marshaled keys, then values, so
// the encoding does not depend on insertion order.
func encodeMap[K comparable, V any](entries []Entry[K, V], marshal func(interface{}) ([]byte, error)) ([]byte, error) {
	type encoded struct{ key, value []byte }
	encs := make([]encoded, len(entries))
	for i, e := range entries {
		k, err := marshal(e.Key)
		if err != nil {
			return nil, fmt.Errorf("marshal key %v: %w", e.Key, err)
		}
		v, err := marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal value for %v: %w", e.Key, err)
		}
		encs[i] = encoded{k, v}
	}
	// distinct keys may marshal alike; their values break the tie
	sort.Slice(encs, func(i, j int) bool {
		if c := bytes.Compare(encs[i].key, encs[j].key); c != 0 {
			return c < 0
		}
		return bytes.Compare(encs[i].value, encs[j].value) < 0
	})
	keys := make([][]byte, len(encs))
	values := make([][]byte, len(encs))
	for i := range encs {
		keys[i] = encs[i].key
		values[i] = encs[i].value
	}
	buf := appendBodies([]byte{kindMap}, keys)
	return appendBodies(buf, values), nil
}

func decodeMap[K comparable, V any](buf []byte, unmarshal func([]byte, interface{}) error) ([]Entry[K, V], error) {
	if len(buf) == 0 || buf[0] != kindMap {
		return nil, errors.New("not a map snapshot")
	}
	var keys []K
	var values []V
	buf, err := decodeEfaceSlice(buf[1:], &keys, unmarshal)
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	buf, err = decodeEfaceSlice(buf, &values, unmarshal)
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}
	if len(keys) != len(values) {
		return nil, errors.New("mismatched keys and values")
	}
	if len(buf) != 0 {
		return nil, fmt.Errorf("%d trailing bytes", len(buf))
	}
	entries := make([]Entry[K, V], len(keys))
	for i := range keys {
		entries[i] = Entry[K, V]{keys[i], values[i]}
	}
	return entries, nil
}
