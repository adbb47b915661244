package enum

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	enumManager = map[string]any{}
	enumMutex   sync.RWMutex
)

type enum[T comparable] struct {
	toEnum map[string]T
}

// New registers the value under its string form so it can be parsed back
// with ToEnum.
func New[T comparable](value T) T {
	v := reflect.ValueOf(value)
	t := v.Type()

	enumMutex.Lock()
	defer enumMutex.Unlock()

	if _, ok := enumManager[typeKey(t)]; !ok {
		enumManager[typeKey(t)] = enum[T]{toEnum: make(map[string]T)}
	}

	enumManager[typeKey(t)].(enum[T]).toEnum[fmt.Sprint(value)] = value
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	var defaultT T

	enumMutex.RLock()
	defer enumMutex.RUnlock()

	e, ok := enumManager[typeKey(reflect.TypeOf(defaultT))]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

func typeKey(t reflect.Type) string {
	return t.PkgPath() + "." + t.Name()
}
