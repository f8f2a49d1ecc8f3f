package algorithms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"erosion-engine/internal/algorithms/morphological"
	"erosion-engine/internal/morph"
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithm defines the interface for grid processing algorithms
type Algorithm interface {
	Process(input *morph.Grid, params map[string]interface{}) (*morph.Grid, error)
	ProcessWithContext(ctx context.Context, input *morph.Grid, params map[string]interface{}) (*morph.Grid, error)
	ValidateParameters(params map[string]interface{}) error
	GetDefaultParameters() map[string]interface{}
	GetName() string
	GetDescription() string
}

type Manager struct {
	algorithms map[string]Algorithm
	parameters map[string]map[string]interface{}
	mu         sync.RWMutex
}

func NewManager() *Manager {
	manager := &Manager{
		algorithms: make(map[string]Algorithm),
		parameters: make(map[string]map[string]interface{}),
	}

	manager.registerAlgorithms()
	manager.initializeDefaultParameters()

	return manager
}

func (m *Manager) registerAlgorithms() {
	for _, alg := range []Algorithm{
		morphological.NewProcessor(morph.Erosion, "Replace each sample with the minimum of its neighbourhood"),
		morphological.NewProcessor(morph.Dilation, "Replace each sample with the maximum of its neighbourhood"),
		morphological.NewProcessor(morph.Median, "Replace each sample with the median of its neighbourhood"),
		morphological.NewProcessor(morph.Opening, "Erosion followed by dilation, removes small bright detail"),
		morphological.NewProcessor(morph.Closing, "Dilation followed by erosion, fills small dark gaps"),
	} {
		m.algorithms[alg.GetName()] = alg
	}
}

func (m *Manager) initializeDefaultParameters() {
	for name, algorithm := range m.algorithms {
		m.parameters[name] = algorithm.GetDefaultParameters()
	}
}

func (m *Manager) GetAlgorithm(name string) (Algorithm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if algorithm, exists := m.algorithms[name]; exists {
		return algorithm, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
}

// GetAvailableAlgorithms returns the registered names in sorted order.
func (m *Manager) GetAvailableAlgorithms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.algorithms))
	for name := range m.algorithms {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (m *Manager) GetParameters(algorithm string) map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]interface{})
	for k, v := range m.parameters[algorithm] {
		result[k] = v
	}
	return result
}

func (m *Manager) SetParameter(algorithm, name string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	params, exists := m.parameters[algorithm]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}

	candidate := make(map[string]interface{}, len(params))
	for k, v := range params {
		candidate[k] = v
	}
	candidate[name] = value

	if err := m.algorithms[algorithm].ValidateParameters(candidate); err != nil {
		return err
	}

	params[name] = value
	return nil
}

// MergeParameters overlays overrides on the stored parameters of algorithm
// and validates the result without storing it.
func (m *Manager) MergeParameters(algorithm string, overrides map[string]interface{}) (map[string]interface{}, error) {
	alg, err := m.GetAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}

	merged := m.GetParameters(algorithm)
	for k, v := range overrides {
		merged[k] = v
	}

	if err := alg.ValidateParameters(merged); err != nil {
		return nil, err
	}

	return merged, nil
}
