package health

import "reflect"

// isNil catches typed nil pointers stored in the Checker interface
func isNil(c Checker) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
