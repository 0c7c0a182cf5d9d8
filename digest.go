package versioned

import (
	"encoding/base64"

	"github.com/minio/blake2b-simd"
)

func listDigest[E any](v listView[E]) ([32]byte, error) {
	marshal := defaultMarshal
	if v.store != nil {
		marshal = v.store.marshal
	}
	encoded, err := encodeList(listToSlice(v), marshal)
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(encoded), nil
}

func mapDigest[K comparable, V any](v mapView[K, V]) ([32]byte, error) {
	marshal := defaultMarshal
	if v.store != nil {
		marshal = v.store.marshal
	}
	encoded, err := encodeMap(mapEntries(v), marshal)
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(encoded), nil
}

func mapEntries[K comparable, V any](v mapView[K, V]) []Entry[K, V] {
	entries := make([]Entry[K, V], 0, v.Size())
	_ = iterMap(v, func(k K, val V) error {
		entries = append(entries, Entry[K, V]{k, val})
		return nil
	})
	return entries
}

// contentName names an encoded snapshot by its hash.
func contentName(encoded []byte) string {
	hash := blake2b.Sum256(encoded)
	return base64.RawURLEncoding.EncodeToString(hash[:])
}
