package guard

import (
	"log/slog"
	"runtime/debug"
)

// Run calls fn and recovers any panic raised by it. A recovered panic is logged to log at error level
// with msg, the panic value, the stack and the attributes passed. Run reports false if fn panicked.
func Run(log *slog.Logger, msg string, fn func(), attrs ...any) (ok bool) {
	if fn == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			if log == nil {
				log = slog.Default()
			}
			args := append(attrs[:len(attrs):len(attrs)], "panic", r, "stack", string(debug.Stack()))
			log.Error(msg, args...)
			ok = false
		}
	}()
	fn()
	return true
}
