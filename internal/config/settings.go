package config

import "sync"

// Settings owns the live, editable generation parameters. Every setter
// re-validates, and readers only ever get deep copies.
type Settings struct {
	mu       sync.RWMutex
	params   Parameters
	watchers []func(Parameters)
}

// NewSettings creates a holder initialised with p (validated).
func NewSettings(p Parameters) *Settings {
	p = p.Clone()
	p.Validate()
	return &Settings{params: p}
}

// Snapshot returns an immutable copy of the current parameters.
func (s *Settings) Snapshot() Parameters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.Clone()
}

// Watch registers fn to be called with a snapshot after every change.
func (s *Settings) Watch(fn func(Parameters)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

// Update applies fn to the live parameters and then clamps them.
func (s *Settings) Update(fn func(p *Parameters)) {
	s.mu.Lock()
	fn(&s.params)
	s.params.Validate()
	snap := s.params.Clone()
	watchers := make([]func(Parameters), len(s.watchers))
	copy(watchers, s.watchers)
	s.mu.Unlock()

	for _, w := range watchers {
		w(snap)
	}
}

// Replace swaps in a whole new parameter set.
func (s *Settings) Replace(p Parameters) {
	p = p.Clone()
	s.Update(func(dst *Parameters) { *dst = p })
}

// Octaves returns the stored octave count.
func (s *Settings) Octaves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.Octaves
}

// SetOctaves sets the octave count, clamped to >= 0.
func (s *Settings) SetOctaves(n int) {
	s.Update(func(p *Parameters) { p.Octaves = n })
}

// Lacunarity returns the stored lacunarity.
func (s *Settings) Lacunarity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.Lacunarity
}

// SetLacunarity sets the lacunarity, clamped to >= 1.
func (s *Settings) SetLacunarity(l float64) {
	s.Update(func(p *Parameters) { p.Lacunarity = l })
}

// SetSeed sets the noise seed.
func (s *Settings) SetSeed(seed int64) {
	s.Update(func(p *Parameters) { p.Seed = seed })
}

// SetSimplificationLevel sets the mesh LOD. The value is not clamped here;
// the mesh builder rejects levels it cannot honour.
func (s *Settings) SetSimplificationLevel(lod int) {
	s.Update(func(p *Parameters) { p.SimplificationLevel = lod })
}
