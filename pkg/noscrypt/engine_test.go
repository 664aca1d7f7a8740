package noscrypt_test

import (
	"errors"
	"sync"

	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/softengine"
)

var errInjected = errors.New("injected engine failure")

// fakeEngine wraps the soft engine, counts calls and fails on demand.
type fakeEngine struct {
	softengine.Engine

	mu          sync.Mutex
	inits       int
	reseeds     int
	destroys    int
	stateSize   int
	failInit    bool
	failReseed  bool
	failDestroy bool
	failSign    bool
	rejectAll   bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{stateSize: softengine.StateSize}
}

func (f *fakeEngine) StateSize() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateSize
}

func (f *fakeEngine) InitState(state, entropy []byte) error {
	f.mu.Lock()
	f.inits++
	fail := f.failInit
	f.mu.Unlock()
	if fail {
		return errInjected
	}
	return f.Engine.InitState(state, entropy)
}

func (f *fakeEngine) ReseedState(state, entropy []byte) error {
	f.mu.Lock()
	f.reseeds++
	fail := f.failReseed
	f.mu.Unlock()
	if fail {
		return errInjected
	}
	return f.Engine.ReseedState(state, entropy)
}

func (f *fakeEngine) DestroyState(state []byte) error {
	f.mu.Lock()
	f.destroys++
	fail := f.failDestroy
	f.mu.Unlock()
	if fail {
		return errInjected
	}
	return f.Engine.DestroyState(state)
}

func (f *fakeEngine) ValidateSecret(state, secret []byte) (bool, error) {
	f.mu.Lock()
	reject := f.rejectAll
	f.mu.Unlock()
	if reject {
		return false, nil
	}
	return f.Engine.ValidateSecret(state, secret)
}

func (f *fakeEngine) Sign(state, secret, entropy, message []byte) ([]byte, error) {
	f.mu.Lock()
	fail := f.failSign
	f.mu.Unlock()
	if fail {
		return nil, errInjected
	}
	return f.Engine.Sign(state, secret, entropy, message)
}

func (f *fakeEngine) counts() (inits, reseeds, destroys int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inits, f.reseeds, f.destroys
}

func (f *fakeEngine) set(fn func(*fakeEngine)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

// failingReader returns err on every read.
type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }
