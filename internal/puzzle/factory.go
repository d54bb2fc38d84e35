package puzzle

import (
	"slices"
	"sync"

	apperrors "github.com/agbru/puzzlebook/internal/errors"
)

// SolverFactory resolves solver names to implementations.
type SolverFactory interface {
	// Get returns the solver registered under name.
	Get(name string) (Solver, error)
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns every registered solver keyed by name.
	GetAll() map[string]Solver
	// Register adds or replaces a solver.
	Register(name string, creator func() Solver) error
}

// DefaultFactory is a concurrency-safe SolverFactory that creates each
// solver lazily and caches the instance.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() Solver
	cache    map[string]Solver
}

// NewDefaultFactory returns a factory with the built-in solvers registered
// as "iterative", "periodic" and "inclusion".
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators: make(map[string]func() Solver),
		cache:    make(map[string]Solver),
	}
	f.creators["iterative"] = func() Solver { return IterativeSolver{} }
	f.creators["periodic"] = func() Solver { return PeriodicSolver{} }
	f.creators["inclusion"] = func() Solver { return InclusionSolver{} }
	return f
}

// Register implements SolverFactory.
func (f *DefaultFactory) Register(name string, creator func() Solver) error {
	if name == "" {
		return apperrors.NewConfigError("solver name must not be empty")
	}
	if creator == nil {
		return apperrors.NewConfigError("solver %q has no constructor", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
	delete(f.cache, name)
	return nil
}

// Get implements SolverFactory.
func (f *DefaultFactory) Get(name string) (Solver, error) {
	f.mu.RLock()
	if s, ok := f.cache[name]; ok {
		f.mu.RUnlock()
		return s, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.cache[name]; ok {
		return s, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, apperrors.NewConfigError("unknown solver %q%s", name, didYouMean(name, f.namesLocked()))
	}
	s := creator()
	f.cache[name] = s
	return s, nil
}

// List implements SolverFactory.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.namesLocked()
}

// GetAll implements SolverFactory.
func (f *DefaultFactory) GetAll() map[string]Solver {
	all := make(map[string]Solver)
	for _, name := range f.List() {
		if s, err := f.Get(name); err == nil {
			all[name] = s
		}
	}
	return all
}

func (f *DefaultFactory) namesLocked() []string {
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
