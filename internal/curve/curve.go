package curve

import (
	"encoding/json"
	"math"
	"sort"
)

// Key is a single keyframe of a response curve.
type Key struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

// Curve maps an input in [0,1] to an output value by interpolating between
// keyframes. The zero Curve is the identity.
//
// A Curve is a value type: With and Copy return fresh key slices, so a
// snapshot can be evaluated concurrently without locking.
type Curve struct {
	keys []Key
}

// Linear returns the identity curve on [0,1].
func Linear() Curve {
	return New(Key{0, 0}, Key{1, 1})
}

// New builds a curve from keys. Keys are sorted by time.
func New(keys ...Key) Curve {
	ks := make([]Key, len(keys))
	copy(ks, keys)
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].Time < ks[j].Time })
	return Curve{keys: ks}
}

// Keys returns a copy of the keyframes.
func (c Curve) Keys() []Key {
	out := make([]Key, len(c.keys))
	copy(out, c.keys)
	return out
}

// Copy returns a curve that shares no memory with c.
func (c Curve) Copy() Curve {
	return Curve{keys: c.Keys()}
}

// Len returns the number of keyframes.
func (c Curve) Len() int { return len(c.keys) }

// Evaluate returns the curve value at t. Outside the key range the first or
// last value is held.
func (c Curve) Evaluate(t float64) float64 {
	switch len(c.keys) {
	case 0:
		return t
	case 1:
		return c.keys[0].Value
	}
	first, last := c.keys[0], c.keys[len(c.keys)-1]
	if t <= first.Time {
		return first.Value
	}
	if t >= last.Time {
		return last.Value
	}
	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Time > t })
	a, b := c.keys[i-1], c.keys[i]
	span := b.Time - a.Time
	if span <= 0 {
		return b.Value
	}
	f := smooth((t - a.Time) / span)
	return a.Value + (b.Value-a.Value)*f
}

// smooth eases between keys so the curve has no visible kinks at keyframes.
func smooth(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}

// MarshalJSON encodes the curve as its key list.
func (c Curve) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.keys)
}

// UnmarshalJSON decodes a key list.
func (c *Curve) UnmarshalJSON(data []byte) error {
	var keys []Key
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*c = New(keys...)
	return nil
}
