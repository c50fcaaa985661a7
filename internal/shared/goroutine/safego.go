// Package goroutine launches background work that must not take the process down.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

// SafeGo runs fn in a new goroutine. A panic inside fn is logged with its
// stack trace and swallowed.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("background task panicked",
					"task", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
