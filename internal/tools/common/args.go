package common

import "fmt"

// StringArg returns the named argument as a string. Non-string values
// are formatted with %v; absent or nil values yield "".
func StringArg(args map[string]any, key string) string {
	val, ok := args[key]
	if !ok || val == nil {
		return ""
	}
	if s, isStr := val.(string); isStr {
		return s
	}
	return fmt.Sprintf("%v", val)
}
