package core

import (
	"fmt"
	"runtime/debug"
)

// Fault is a recovered panic raised while processing a single simulated object
type Fault struct {
	Value any
	Stack []byte
}

func (f *Fault) Error() string {
	return fmt.Sprintf("recovered fault: %v", f.Value)
}

// Guard runs fn and converts a panic into a *Fault error
// Batch updates wrap each object in Guard so one bad entity cannot abort the frame
func Guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Fault{Value: r, Stack: debug.Stack()}
		}
	}()
	fn()
	return nil
}

// Go runs fn in a new goroutine, passing any panic to onCrash instead of killing the process
// onCrash nil re-panics
func Go(fn func(), onCrash func(*Fault)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				f := &Fault{Value: r, Stack: debug.Stack()}
				if onCrash == nil {
					panic(f)
				}
				onCrash(f)
			}
		}()
		fn()
	}()
}
