package immstruct

import (
	"iter"
	"strings"
	"sync"

	"github.com/benbjohnson/immutable"
	"github.com/omniscientjs/immstruct/metrics"
)

type keyComparer struct{}

func (keyComparer) Compare(a, b string) int {
	return strings.Compare(a, b)
}

// Instances is a registry of structures by key. It is safe for concurrent
// use; the structures it holds are not.
type Instances struct {
	mu       sync.Mutex
	m        *immutable.SortedMap[string, *Structure]
	defaults []Option
	metrics  *metrics.Metrics
}

// NewInstances returns an empty registry. defaults are applied to every
// structure it creates, before the options given at creation.
func NewInstances(defaults ...Option) *Instances {
	o := &options{}
	for _, opt := range defaults {
		opt(o)
	}
	return &Instances{
		m:        immutable.NewSortedMap[string, *Structure](keyComparer{}),
		defaults: defaults,
		metrics:  o.metrics,
	}
}

// Get returns the structure named key, creating it with opts if it does
// not exist. An empty key always creates a structure under a random key.
func (in *Instances) Get(key string, opts ...Option) (*Structure, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if key != "" {
		if s, ok := in.m.Get(key); ok {
			return s, nil
		}
	}
	all := make([]Option, 0, len(in.defaults)+len(opts)+1)
	all = append(all, in.defaults...)
	all = append(all, opts...)
	all = append(all, WithKey(key))
	s, err := New(all...)
	if err != nil {
		return nil, err
	}
	in.m = in.m.Set(s.Key(), s)
	return s, nil
}

// WithHistory is Get for a structure with an undo log of at most limit
// snapshots.
func (in *Instances) WithHistory(key string, limit int, opts ...Option) (*Structure, error) {
	return in.Get(key, append([]Option{WithHistory(limit)}, opts...)...)
}

// Instance returns the structure named key, if any.
func (in *Instances) Instance(key string) (*Structure, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.m.Get(key)
}

// All iterates over the registered structures in key order, as registered
// when All was called.
func (in *Instances) All() iter.Seq2[string, *Structure] {
	in.mu.Lock()
	m := in.m
	in.mu.Unlock()
	return func(yield func(string, *Structure) bool) {
		itr := m.Iterator()
		for !itr.Done() {
			k, s, _ := itr.Next()
			if !yield(k, s) {
				return
			}
		}
	}
}

func (in *Instances) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.m.Len()
}

// Remove unregisters the structure named key, reporting whether it was
// registered.
func (in *Instances) Remove(key string) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	if _, ok := in.m.Get(key); !ok {
		return false
	}
	in.m = in.m.Delete(key)
	in.metrics.Forget(key)
	return true
}

// Clear unregisters every structure.
func (in *Instances) Clear() {
	in.mu.Lock()
	defer in.mu.Unlock()
	itr := in.m.Iterator()
	for !itr.Done() {
		k, _, _ := itr.Next()
		in.metrics.Forget(k)
	}
	in.m = immutable.NewSortedMap[string, *Structure](keyComparer{})
}
