package util

import (
	"fmt"
)

// SafeCall runs fn such that panics are recovered and nice error messages are constructed. desc
// identifies the call in error messages, e.g. a task id.
func SafeCall(desc string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = fmt.Errorf("Task Panic: %w\nTask: %s\n%s", anErr, desc, GetTrace())
			} else {
				err = fmt.Errorf("Task Panic: %v\nTask: %s\n%s", r, desc, GetTrace())
			}
		} else if err != nil {
			err = fmt.Errorf("Task Error: %w\nTask: %s", err, desc)
		}
	}()
	err = fn()
	return
}
