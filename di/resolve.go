package di

import "fmt"

// Resolve resolves a component with type safety, returning an error when
// the component is missing or has an unexpected type.
func Resolve[T any](c *Container, key string) (T, error) {
	var zero T
	instance, err := c.Resolve(key)
	if err != nil {
		return zero, err
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: component %q is %T, expected %T", key, instance, zero)
	}
	return result, nil
}

// MustResolve resolves a component with type safety and panics on error.
// Use during startup wiring where a missing component is a programming error.
func MustResolve[T any](c *Container, key string) T {
	result, err := Resolve[T](c, key)
	if err != nil {
		panic(err)
	}
	return result
}

// TryResolve resolves an optional component, returning false when it is
// not registered or has a different type.
func TryResolve[T any](c *Container, key string) (T, bool) {
	result, err := Resolve[T](c, key)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}
