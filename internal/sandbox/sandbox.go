// Package sandbox evaluates call-shaped JavaScript fragments in an isolated
// goja runtime that exposes exactly one host binding.
package sandbox

import (
	"context"
	"errors"
	"fmt"

	"github.com/dop251/goja"
)

// Arg forces one deferred argument. Arguments arrive as zero-argument thunks;
// non-function values are passed through unchanged.
type Arg func() (any, error)

// Func is a host function reachable from evaluated source.
type Func func(args []Arg) (any, error)

// Binding describes the value exposed under the keyword. With Call set the
// keyword is callable; Methods become properties of it. A Binding without
// Call is a plain object, so calling the keyword directly is a TypeError.
type Binding struct {
	Call    Func
	Methods map[string]Func
}

// ScriptError is a failure raised while running a fragment.
type ScriptError struct {
	Message string
	Cause   error
}

func (e *ScriptError) Error() string { return e.Message }

func (e *ScriptError) Unwrap() error { return e.Cause }

// Evaluator runs fragments against a single keyword binding.
type Evaluator struct {
	keyword string
	binding Binding
}

// New creates an Evaluator exposing binding as keyword.
func New(keyword string, binding Binding) *Evaluator {
	return &Evaluator{keyword: keyword, binding: binding}
}

// Eval runs src as a program in a fresh runtime and returns the exported
// completion value. Nothing is shared between calls.
func (e *Evaluator) Eval(ctx context.Context, src string) (result any, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vm := goja.New()
	if err := vm.Set(e.keyword, e.bind(vm)); err != nil {
		return nil, fmt.Errorf("bind %s: %w", e.keyword, err)
	}

	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer stop()

	v, err := vm.RunString(src)
	if err != nil {
		// An interrupt raised while a host function forces a thunk may
		// surface as a thrown error rather than an InterruptedError.
		if cerr := ctx.Err(); cerr != nil {
			return nil, interruptError(cerr)
		}
		return nil, scriptError(err)
	}
	return v.Export(), nil
}

func (e *Evaluator) bind(vm *goja.Runtime) goja.Value {
	var obj *goja.Object
	if e.binding.Call != nil {
		obj = vm.ToValue(hostFunc(vm, e.binding.Call)).ToObject(vm)
	} else {
		obj = vm.NewObject()
	}
	for name, fn := range e.binding.Methods {
		// Set only fails on frozen objects.
		_ = obj.Set(name, hostFunc(vm, fn))
	}
	return obj
}

// hostFunc adapts fn to a native goja function. Thunks are forced with an
// undefined receiver; a failure inside one is rethrown as the original value.
func hostFunc(vm *goja.Runtime, fn Func) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		args := make([]Arg, len(call.Arguments))
		for i, a := range call.Arguments {
			args[i] = force(a)
		}

		out, err := fn(args)
		if err != nil {
			var exc *goja.Exception
			if errors.As(err, &exc) {
				panic(exc.Value())
			}
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(out)
	}
}

func force(v goja.Value) Arg {
	return func() (any, error) {
		thunk, ok := goja.AssertFunction(v)
		if !ok {
			return v.Export(), nil
		}
		out, err := thunk(goja.Undefined())
		if err != nil {
			return nil, err
		}
		return out.Export(), nil
	}
}

// scriptError reduces a goja failure to the thrown error's message.
func scriptError(err error) *ScriptError {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if cause, ok := interrupted.Value().(error); ok {
			return interruptError(cause)
		}
		return &ScriptError{Message: "evaluation interrupted: " + fmt.Sprint(interrupted.Value()), Cause: err}
	}

	var exc *goja.Exception
	if errors.As(err, &exc) {
		if obj, ok := exc.Value().(*goja.Object); ok {
			if msg := obj.Get("message"); msg != nil && !goja.IsUndefined(msg) {
				return &ScriptError{Message: msg.String(), Cause: err}
			}
		}
		if exc.Value() != nil {
			return &ScriptError{Message: exc.Value().String(), Cause: err}
		}
	}

	return &ScriptError{Message: err.Error(), Cause: err}
}

func interruptError(cause error) *ScriptError {
	return &ScriptError{Message: "evaluation interrupted: " + cause.Error(), Cause: cause}
}
