package interp

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// MaxNativeParams is the maximum number of parameters of a native function.
const MaxNativeParams = 5

// Native is a procedure wrapping a Go function. Arguments are converted from
// text to the function's parameter types, and the function's result is
// converted back to text.
//
// Supported parameter types are bool, all sized and unsized integer types,
// float32, float64 and string (or types with one of these as underlying type).
// The function may return nothing, a single value of a supported type, an error,
// or a (value, error) pair.
type Native struct {
	name   string
	fn     reflect.Value
	params []converter
	result formatter // nil for functions without a value result
	errOut bool      // last result is an error
}

type converter func(string) (reflect.Value, error)

type formatter func(reflect.Value) string

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// NewNative inspects a Go function and wraps it as a procedure. It is an error
// if the function's signature is not supported.
func NewNative(name string, fn interface{}) (*Native, error) {
	if fn == nil {
		return nil, fmt.Errorf("native procedure '%s': function is nil", name)
	}
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("native procedure '%s': %s is not a function", name, t)
	}
	if t.IsVariadic() {
		return nil, fmt.Errorf("native procedure '%s': variadic functions not supported", name)
	}
	if t.NumIn() > MaxNativeParams {
		return nil, fmt.Errorf("native procedure '%s': at most %d parameters supported, have %d",
			name, MaxNativeParams, t.NumIn())
	}
	n := &Native{name: name, fn: v}
	for i := 0; i < t.NumIn(); i++ {
		conv := converterFor(t.In(i))
		if conv == nil {
			return nil, fmt.Errorf("native procedure '%s': unsupported parameter type %s", name, t.In(i))
		}
		n.params = append(n.params, conv)
	}
	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) == errorType {
			n.errOut = true
		} else if n.result = formatterFor(t.Out(0)); n.result == nil {
			return nil, fmt.Errorf("native procedure '%s': unsupported result type %s", name, t.Out(0))
		}
	case 2:
		if t.Out(1) != errorType {
			return nil, fmt.Errorf("native procedure '%s': second result must be an error", name)
		}
		n.errOut = true
		if n.result = formatterFor(t.Out(0)); n.result == nil {
			return nil, fmt.Errorf("native procedure '%s': unsupported result type %s", name, t.Out(0))
		}
	default:
		return nil, fmt.Errorf("native procedure '%s': too many results", name)
	}
	return n, nil
}

// Name returns the name the function has been registered with.
func (n *Native) Name() string {
	return n.name
}

// Arity returns the number of parameters of the wrapped function.
func (n *Native) Arity() int {
	return len(n.params)
}

func (n *Native) String() string {
	return fmt.Sprintf("native %s/%d", n.name, len(n.params))
}

// Call converts the arguments, calls the wrapped function and stores its
// result in the result register. Panics of the wrapped function are turned
// into script errors.
func (n *Native) Call(intp *Interp, args []string) (code Code) {
	if len(args)-1 != len(n.params) {
		return intp.Fail(ArityMismatch,
			"wrong number of arguments to procedure '%s': expected %d, got %d",
			n.name, len(n.params), len(args)-1)
	}
	in := make([]reflect.Value, len(n.params))
	for i, conv := range n.params {
		v, err := conv(args[i+1])
		if err != nil {
			return intp.Fail(ConversionError, "procedure '%s', argument %d: %v", n.name, i+1, err)
		}
		in[i] = v
	}
	defer func() {
		if r := recover(); r != nil {
			code = intp.Fail(UserError, "procedure '%s' failed: %v", n.name, r)
		}
	}()
	out := n.fn.Call(in)
	if n.errOut {
		if e := out[len(out)-1]; !e.IsNil() {
			return intp.Fail(UserError, "%s: %v", n.name, e.Interface())
		}
	}
	if n.result != nil {
		intp.SetResult(n.result(out[0]))
	} else {
		intp.SetResult("")
	}
	return OK
}

// --- Conversions -----------------------------------------------------------

func converterFor(t reflect.Type) converter {
	switch t.Kind() {
	case reflect.String:
		return func(s string) (reflect.Value, error) {
			v := reflect.New(t).Elem()
			v.SetString(s)
			return v, nil
		}
	case reflect.Bool:
		return func(s string) (reflect.Value, error) {
			b, err := parseBool(s)
			if err != nil {
				return reflect.Value{}, err
			}
			v := reflect.New(t).Elem()
			v.SetBool(b)
			return v, nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(s string) (reflect.Value, error) {
			i, err := parseInt(s, t.Bits())
			if err != nil {
				return reflect.Value{}, err
			}
			v := reflect.New(t).Elem()
			v.SetInt(i)
			return v, nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(s string) (reflect.Value, error) {
			u, err := parseUint(s, t.Bits())
			if err != nil {
				return reflect.Value{}, err
			}
			v := reflect.New(t).Elem()
			v.SetUint(u)
			return v, nil
		}
	case reflect.Float32, reflect.Float64:
		return func(s string) (reflect.Value, error) {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), t.Bits())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("not a number: '%s'", s)
			}
			v := reflect.New(t).Elem()
			v.SetFloat(f)
			return v, nil
		}
	}
	return nil
}

func formatterFor(t reflect.Type) formatter {
	switch t.Kind() {
	case reflect.String:
		return func(v reflect.Value) string { return v.String() }
	case reflect.Bool:
		return func(v reflect.Value) string {
			if v.Bool() {
				return "1"
			}
			return "0"
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(v reflect.Value) string { return strconv.FormatInt(v.Int(), 10) }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(v reflect.Value) string { return strconv.FormatUint(v.Uint(), 10) }
	case reflect.Float32, reflect.Float64:
		return func(v reflect.Value) string { return fmt.Sprintf("%f", v.Float()) }
	}
	return nil
}

var errNotANumber = errors.New("not a number")

// parseBool accepts true/false (and the other spellings of strconv.ParseBool)
// as well as any number, which is true if it is not zero.
func parseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false, fmt.Errorf("not a boolean: '%s'", s)
	}
	return f != 0, nil
}

// parseInt accepts decimal integers and numbers with a fractional part,
// which are truncated towards zero. Values out of range are rejected.
func parseInt(s string, bits int) (int64, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, bits); err == nil {
		return i, nil
	}
	f, err := parseFloatFallback(s)
	if err != nil {
		return 0, err
	}
	f = math.Trunc(f)
	lo, hi := -math.Ldexp(1, bits-1), math.Ldexp(1, bits-1)
	if f < lo || f >= hi {
		return 0, fmt.Errorf("number out of range: '%s'", s)
	}
	return int64(f), nil
}

func parseUint(s string, bits int) (uint64, error) {
	s = strings.TrimSpace(s)
	if u, err := strconv.ParseUint(s, 10, bits); err == nil {
		return u, nil
	}
	f, err := parseFloatFallback(s)
	if err != nil {
		return 0, err
	}
	f = math.Trunc(f)
	if f < 0 || f >= math.Ldexp(1, bits) {
		return 0, fmt.Errorf("number out of range: '%s'", s)
	}
	return uint64(f), nil
}

func parseFloatFallback(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: '%s'", errNotANumber, s)
	}
	return f, nil
}
