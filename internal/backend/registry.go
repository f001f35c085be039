// Package backend keeps the named compute strategies a program can run on.
//
// A program resolves its backend once at startup and hands the result to the
// code that builds tensors and layers:
//
//	b, err := backend.Resolve("cpu")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	attn, err := nn.NewSelfAttention(cfg, b)
package backend

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/fusionlab-ml/fusionlab/internal/backend/cpu"
	"github.com/fusionlab-ml/fusionlab/internal/parallel"
	"github.com/fusionlab-ml/fusionlab/internal/tensor"
)

// Names of the built-in strategies.
const (
	CPU       = "cpu"        // CPU kernels, batched products spread over all cores
	CPUSerial = "cpu-serial" // CPU kernels on the calling goroutine
	Reference = "reference"  // naive float64 loops, for cross-checking
)

// ErrUnknownBackend is returned by Resolve for names that were never registered.
var ErrUnknownBackend = errors.New("backend: unknown backend")

// Factory creates a backend instance.
type Factory func() tensor.Backend

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

func init() {
	Register(CPU, func() tensor.Backend {
		return cpu.New(cpu.WithName(CPU))
	})
	Register(CPUSerial, func() tensor.Backend {
		return cpu.New(cpu.WithParallel(parallel.Serial()), cpu.WithName(CPUSerial))
	})
	Register(Reference, func() tensor.Backend {
		return tensor.NewReferenceBackend()
	})
}

// Register makes a factory available under name, replacing any previous
// registration. It panics on an empty name or nil factory.
func Register(name string, factory Factory) {
	if name == "" {
		panic("backend: Register with empty name")
	}
	if factory == nil {
		panic("backend: Register of nil factory for " + name)
	}
	mu.Lock()
	defer mu.Unlock()
	factories[name] = factory
}

// Resolve creates the backend registered under name.
func Resolve(name string) (tensor.Backend, error) {
	mu.RLock()
	factory, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownBackend, name, Names())
	}
	return factory(), nil
}

// Names returns the registered names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
