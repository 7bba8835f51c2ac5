// Package scope provides guards that run a deferred action when the scope
// that owns them ends, gated on whether that scope is failing.
//
// Three policies are available:
//
//   - [Exit] runs the action on every exit.
//   - [Fail] runs the action only when the scope exits by panic (or, with
//     [Guard.CloseErr], by a non-nil error result).
//   - [Success] runs the action only when the scope exits normally.
//
// # Usage
//
// A guard is bound to a scope by deferring one of its close methods right
// after it is created:
//
//	func Rotate(ctx context.Context) (err error) {
//	    staged := stage(ctx)
//	    defer scope.Fail(staged.Discard).CloseErr(&err)
//
//	    return promote(ctx, staged)
//	}
//
// [Guard.Close] must be deferred directly, not called from inside another
// deferred closure: it calls recover itself to see whether a panic is
// unwinding through the frame that deferred it. A panic that was already in
// flight when the guard was created (for example a guard built inside a
// deferred function during an outer panic) is not visible to it, so such a
// guard only reacts to failures raised after its own construction. Any
// recovered value is re-panicked unchanged once the guard has been evaluated.
//
// [Guard.Finish] evaluates the guard with an explicit failure flag for code
// that tracks failure itself.
//
// # Lifecycle
//
// A guard starts armed and becomes disarmed exactly once: by [Guard.Release],
// by [Guard.Move] (the returned guard takes over the obligation), or by
// being closed. The action is disarmed before it runs, so it can never run
// twice.
//
// # Caller obligations
//
// Actions should not panic. A panicking action propagates normally when the
// scope is exiting cleanly. When a panic is already unwinding, the original
// panic is re-raised after the action so an outer recover still sees it, and
// the action's panic is only reported by the runtime if the program dies.
//
// runtime.Goexit (and therefore t.FailNow) is not a panic; recover cannot
// observe it and guards treat it as a normal exit.
//
// Guards are not safe for concurrent use. Hand a guard to another goroutine
// with [Guard.Move] rather than sharing it.
package scope
