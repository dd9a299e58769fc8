package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ProductMap is an insertion-ordered map of products keyed by product id.
//
// It is the only shape products are held in. Legacy documents and some server
// payloads carry products as a JSON list; those are keyed by each entry's id
// (or its list index when the id is missing) while decoding.
type ProductMap struct {
	keys  []string
	items map[string]Product
}

// NewProductMap builds a map keyed by each product's id.
func NewProductMap(products ...Product) *ProductMap {
	m := &ProductMap{}
	for _, p := range products {
		m.Set(string(p.ID), p)
	}
	return m
}

func (m *ProductMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *ProductMap) Has(id string) bool {
	if m == nil {
		return false
	}
	_, ok := m.items[id]
	return ok
}

func (m *ProductMap) Get(id string) (Product, bool) {
	if m == nil {
		return Product{}, false
	}
	p, ok := m.items[id]
	return p, ok
}

// Set overwrites an existing entry in place or appends a new one.
func (m *ProductMap) Set(id string, p Product) {
	if m.items == nil {
		m.items = map[string]Product{}
	}
	if _, ok := m.items[id]; !ok {
		m.keys = append(m.keys, id)
	}
	m.items[id] = p
}

func (m *ProductMap) Delete(id string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.items[id]; !ok {
		return false
	}
	delete(m.items, id)
	idx := m.IndexOf(id)
	m.keys = append(m.keys[:idx:idx], m.keys[idx+1:]...)
	return true
}

func (m *ProductMap) IndexOf(id string) int {
	if m == nil {
		return -1
	}
	for i, k := range m.keys {
		if k == id {
			return i
		}
	}
	return -1
}

// ReplaceAt overwrites the slot at index with a product stored under a new key.
// The slot keeps its position. It fails when the index is out of range or the
// new key is already used by another slot.
func (m *ProductMap) ReplaceAt(index int, id string, p Product) bool {
	if m == nil || index < 0 || index >= len(m.keys) {
		return false
	}
	old := m.keys[index]
	if id != old && m.Has(id) {
		return false
	}
	delete(m.items, old)
	m.keys[index] = id
	m.items[id] = p
	return true
}

func (m *ProductMap) Keys() []string {
	if m == nil {
		return []string{}
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *ProductMap) Values() []Product {
	if m == nil {
		return []Product{}
	}
	out := make([]Product, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.items[k])
	}
	return out
}

// Clone returns a shallow copy that can be mutated independently.
func (m *ProductMap) Clone() *ProductMap {
	out := &ProductMap{}
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out.Set(k, m.items[k])
	}
	return out
}

func (m ProductMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.items[k])
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *ProductMap) UnmarshalJSON(data []byte) error {
	*m = ProductMap{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '[':
		var list []Product
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		for i, p := range list {
			key := string(p.ID)
			if key == "" {
				key = strconv.Itoa(i)
				p.ID = ProductID(key)
			}
			m.Set(key, p)
		}
		return nil
	case '{':
		return m.decodeObject(trimmed)
	default:
		return fmt.Errorf("products: unexpected json value %q", string(trimmed[:1]))
	}
}

// decodeObject walks the object token by token so key order survives.
func (m *ProductMap) decodeObject(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("products: unexpected key %v", tok)
		}
		var p Product
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("product %s: %w", key, err)
		}
		if p.ID == "" {
			p.ID = ProductID(key)
		}
		m.Set(key, p)
	}
	_, err := dec.Token()
	return err
}
