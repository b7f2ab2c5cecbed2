package mdacademic

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alnah/go-mdacademic/internal/native"
)

func TestLibraryLoader_LoadsOnce(t *testing.T) {
	t.Parallel()

	var opens atomic.Int32
	lib := newFakeEngine().library(true)
	l := &libraryLoader{open: func() (*native.Library, error) {
		opens.Add(1)
		return lib, nil
	}}

	var wg sync.WaitGroup
	got := make([]*native.Library, 16)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i], _ = l.get()
		}()
	}
	wg.Wait()

	if n := opens.Load(); n != 1 {
		t.Errorf("open called %d times, want 1", n)
	}
	for i, g := range got {
		if g != lib {
			t.Errorf("caller %d got a different instance", i)
		}
	}
}

func TestLibraryLoader_CachesFailure(t *testing.T) {
	t.Parallel()

	var opens atomic.Int32
	loadErr := &Error{Kind: KindLibraryLoad, Msg: "failed to load", Path: "/nope.so"}
	l := &libraryLoader{open: func() (*native.Library, error) {
		opens.Add(1)
		return nil, loadErr
	}}

	for i := 0; i < 3; i++ {
		if _, err := l.get(); !errors.Is(err, ErrLibraryLoad) {
			t.Errorf("attempt %d: error = %v, want ErrLibraryLoad", i+1, err)
		}
	}
	if n := opens.Load(); n != 1 {
		t.Errorf("open called %d times, want 1", n)
	}
}

func TestFakeLibraryVersion(t *testing.T) {
	t.Parallel()

	lib := newFakeEngine().library(false)
	if v := lib.Version(); v != "0.1.0" {
		t.Errorf("Version() = %q, want 0.1.0", v)
	}
}
