package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

func seqReducer() *todo.Reducer {
	var mu sync.Mutex
	n := 0
	return &todo.Reducer{NewID: func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}}
}

func TestDispatch_AppliesAndNotifies(t *testing.T) {
	var got []Change
	s := New(todo.NewState(), WithReducer(seqReducer()), WithListener(func(c Change) error {
		got = append(got, c)
		return nil
	}))

	if err := s.Dispatch(todo.Add{Title: "A"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("listener calls = %d, want 1", len(got))
	}
	if len(got[0].Prev.Items) != 0 || len(got[0].Next.Items) != 1 {
		t.Errorf("change = %+v, want empty prev and one item next", got[0])
	}
	if got[0].Action.Type() != todo.TypeAdd {
		t.Errorf("Action.Type() = %q, want %q", got[0].Action.Type(), todo.TypeAdd)
	}
	if !s.State().Equal(got[0].Next) {
		t.Error("State() differs from Change.Next")
	}
}

func TestDispatch_ListenerOrder(t *testing.T) {
	var order []string
	s := New(todo.NewState())
	for _, name := range []string{"first", "second", "third"} {
		s.Subscribe(func(Change) error {
			order = append(order, name)
			return nil
		})
	}

	if err := s.Dispatch(todo.ResetFilter{}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if fmt.Sprint(order) != "[first second third]" {
		t.Errorf("order = %v, want [first second third]", order)
	}
}

func TestDispatch_ReduceErrorSkipsListeners(t *testing.T) {
	called := false
	s := New(todo.NewState(), WithListener(func(Change) error {
		called = true
		return nil
	}))

	err := s.Dispatch(nil)

	if !errors.Is(err, todo.ErrUnknownAction) {
		t.Errorf("err = %v, want ErrUnknownAction", err)
	}
	if called {
		t.Error("listener ran after reduce error")
	}
	if !s.State().Equal(todo.NewState()) {
		t.Error("state changed after reduce error")
	}
}

func TestDispatch_ListenerErrorKeepsTransition(t *testing.T) {
	errDisk := errors.New("disk full")
	secondRan := false
	s := New(todo.NewState(),
		WithListener(func(Change) error { return errDisk }),
		WithListener(func(Change) error {
			secondRan = true
			return nil
		}),
	)

	err := s.Dispatch(todo.Add{Title: "A"})

	if !errors.Is(err, errDisk) {
		t.Errorf("err = %v, want wrapped disk error", err)
	}
	if len(s.State().Items) != 1 {
		t.Errorf("len(Items) = %d, want 1", len(s.State().Items))
	}
	if !secondRan {
		t.Error("second listener did not run")
	}
}

func TestDispatch_Serialized(t *testing.T) {
	const n = 100
	var prevLens []int
	s := New(todo.NewState(), WithReducer(seqReducer()), WithListener(func(c Change) error {
		prevLens = append(prevLens, len(c.Prev.Items))
		return nil
	}))

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Dispatch(todo.Add{Title: fmt.Sprintf("t%d", i)}); err != nil {
				t.Errorf("Dispatch: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(s.State().Items) != n {
		t.Fatalf("len(Items) = %d, want %d", len(s.State().Items), n)
	}
	for i, l := range prevLens {
		if l != i {
			t.Fatalf("transition %d saw %d previous items, want %d", i, l, i)
		}
	}
}

func TestNew_CopiesInitial(t *testing.T) {
	initial := todo.State{Items: []todo.Item{{ID: "1", Title: "a"}}, FilteredItems: []todo.Item{}}
	s := New(initial)

	initial.Items[0].Title = "changed"

	if s.State().Items[0].Title != "a" {
		t.Error("store shares memory with the initial state")
	}
}
