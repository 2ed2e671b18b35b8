package utils

import (
	"bytes"
	"encoding/json"
	"sort"
)

type OrderedKV[T any] struct {
	Value T
	Order int64
}

type OrderedKVMap[T any] map[string]OrderedKV[T]

// Entry is a key/value pair returned by Entries.
type Entry[T any] struct {
	Key   string
	Value T
}

// Put stores value under key. The first order recorded for a key is kept,
// so overwriting a value never moves it.
func (om OrderedKVMap[T]) Put(key string, value T, order int64) {
	if existing, ok := om[key]; ok {
		order = existing.Order
	}
	om[key] = OrderedKV[T]{Value: value, Order: order}
}

// Lookup returns the value stored under key.
func (om OrderedKVMap[T]) Lookup(key string) (T, bool) {
	kv, ok := om[key]
	return kv.Value, ok
}

// Entries returns the pairs sorted by order, ties broken by key.
func (om OrderedKVMap[T]) Entries() []Entry[T] {
	type pair struct {
		key   string
		value T
		order int64
	}
	pairs := make([]pair, 0, len(om))
	for k, v := range om {
		pairs = append(pairs, pair{
			key:   k,
			value: v.Value,
			order: v.Order,
		})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].order == pairs[j].order {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].order < pairs[j].order
	})

	entries := make([]Entry[T], len(pairs))
	for i, p := range pairs {
		entries[i] = Entry[T]{Key: p.key, Value: p.value}
	}
	return entries
}

func (om OrderedKVMap[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range om.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valueBytes, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(valueBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
