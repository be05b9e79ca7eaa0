package aggregate

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// Distribution is a label -> count mapping that remembers insertion order
// and marshals to a JSON object in that order. The zero value is empty and
// ready to use.
type Distribution struct {
	keys   []string
	counts map[string]int
}

// Add increments the count of key by n, appending key on first sight.
func (d *Distribution) Add(key string, n int) {
	if d.counts == nil {
		d.counts = make(map[string]int)
	}
	if _, ok := d.counts[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.counts[key] += n
}

// Get returns the count of key, or 0.
func (d Distribution) Get(key string) int { return d.counts[key] }

// Keys returns the labels in insertion order.
func (d Distribution) Keys() []string { return append([]string(nil), d.keys...) }

// Len returns the number of labels.
func (d Distribution) Len() int { return len(d.keys) }

// Top returns a new distribution with the n largest counts. Equal counts
// keep their insertion order.
func (d Distribution) Top(n int) Distribution {
	keys := d.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		return d.counts[keys[i]] > d.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	var out Distribution
	for _, k := range keys {
		out.Add(k, d.counts[k])
	}
	return out
}

// MarshalJSON encodes the distribution as an ordered JSON object.
func (d Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(d.counts[k]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the input.
func (d *Distribution) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	if _, err := dec.Token(); err != nil {
		return err
	}
	*d = Distribution{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var n int
		if err := dec.Decode(&n); err != nil {
			return err
		}
		d.Add(key, n)
	}
	_, err := dec.Token()
	return err
}
