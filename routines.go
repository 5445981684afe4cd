package main

import (
	"fmt"
	"runtime"
)

// Guard runs f and returns a panic inside it as an error carrying the stack.
func Guard(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = HandlePanic(r)
		}
	}()
	return f()
}

func HandlePanic(panic any) error {
	buf := make([]byte, 100000)
	n := runtime.Stack(buf, false)
	buf = buf[:n]

	return fmt.Errorf("panic: %v\n\n%s", panic, string(buf))
}
