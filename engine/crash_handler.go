package engine

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var crashHooks struct {
	mu  sync.Mutex
	fns []func()
}

// OnCrash registers cleanup run before a crash report is printed
// The terminal backend registers its screen restore here
func OnCrash(fn func()) {
	crashHooks.mu.Lock()
	defer crashHooks.mu.Unlock()
	crashHooks.fns = append(crashHooks.fns, fn)
}

func runCrashHooks() {
	crashHooks.mu.Lock()
	fns := append([]func(){}, crashHooks.fns...)
	crashHooks.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		func() {
			defer func() { _ = recover() }() // a failing hook must not mask the original panic
			fns[i]()
		}()
	}
}

// HandleCrash restores the terminal, prints the panic and stack, and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}
	runCrashHooks()

	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the go keyword for anything that runs while the screen is owned
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
