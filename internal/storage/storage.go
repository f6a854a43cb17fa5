package storage

import (
	"errors"
	"sync"
)

var (
	// ErrInvalidRollPreset indicates the provided preset violates validation rules.
	ErrInvalidRollPreset = errors.New("roll preset must have positive roll dimensions, a non-negative drop allowance, and an extra factor >= 1.0")
)

// RollPreset holds the service-wide defaults applied when a calculation
// request omits roll dimensions or waste policy fields. All lengths are in
// meters.
type RollPreset struct {
	RollWidth     float64
	RollLength    float64
	DropAllowance float64
	ExtraFactor   float64
}

var defaultRollPreset = RollPreset{
	// Standard European roll: 0.53 m x 10.05 m.
	RollWidth:     0.53,
	RollLength:    10.05,
	DropAllowance: 0,
	ExtraFactor:   1.0,
}

// Storage provides access to the roll preset used by the calculate endpoint.
type Storage interface {
	GetRollPreset() (RollPreset, error)
	SetRollPreset(preset RollPreset) error
}

// MemoryStorage keeps the roll preset in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu     sync.RWMutex
	preset RollPreset
}

// NewMemoryStorage initialises storage with the default roll preset.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{preset: defaultRollPreset}
}

// DefaultRollPreset returns the built-in default preset.
func DefaultRollPreset() RollPreset {
	return defaultRollPreset
}

// GetRollPreset returns the currently configured preset.
func (s *MemoryStorage) GetRollPreset() (RollPreset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.preset, nil
}

// SetRollPreset validates and stores the provided preset.
func (s *MemoryStorage) SetRollPreset(preset RollPreset) error {
	if err := validatePreset(preset); err != nil {
		return err
	}

	s.mu.Lock()
	s.preset = preset
	s.mu.Unlock()

	return nil
}

func validatePreset(preset RollPreset) error {
	if preset.RollWidth <= 0 || preset.RollLength <= 0 {
		return ErrInvalidRollPreset
	}
	if preset.DropAllowance < 0 {
		return ErrInvalidRollPreset
	}
	if preset.ExtraFactor < 1.0 {
		return ErrInvalidRollPreset
	}
	return nil
}
