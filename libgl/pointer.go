package libgl

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Pointer returns the address of the first element of a slice or the value behind a pointer.
// Raw uintptr and unsafe.Pointer values are passed through.
// Empty slices yield nil.
func Pointer(data any) unsafe.Pointer {
	if data == nil {
		return nil
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Ptr:
		return unsafe.Pointer(v.Elem().UnsafeAddr())
	case reflect.Uintptr:
		return unsafe.Pointer(data.(uintptr))
	case reflect.UnsafePointer:
		return data.(unsafe.Pointer)
	case reflect.Slice:
		if v.Len() == 0 {
			return nil
		}
		return unsafe.Pointer(v.Index(0).UnsafeAddr())
	}
	panic(fmt.Errorf("unsupported type %s; must be a slice, uintptr or pointer to a value", v.Type()))
}
