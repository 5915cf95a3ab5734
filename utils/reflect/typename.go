/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package reflect

import (
	"fmt"
	"reflect"
	"strings"
)

// TypeName returns the short display name of t: generic-aware, without
// package paths.
func TypeName(t reflect.Type) string {
	return MakeGenericTypeName(t)
}

// TypeFullName returns the package-qualified name of t, or its Go syntax
// form for unnamed types.
func TypeFullName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// MakeGenericTypeName formats t with its type arguments expanded
// recursively and every package qualifier removed:
//
//	Dict[string,example.com/x.List[int]] -> Dict[string, List[int]]
//	map[string][]*x.Wall                  -> map[string][]*Wall
func MakeGenericTypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Name() != "" {
		return formatTypeString(t.Name())
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + MakeGenericTypeName(t.Elem())
	case reflect.Slice:
		return "[]" + MakeGenericTypeName(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), MakeGenericTypeName(t.Elem()))
	case reflect.Map:
		return "map[" + MakeGenericTypeName(t.Key()) + "]" + MakeGenericTypeName(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + MakeGenericTypeName(t.Elem())
		case reflect.SendDir:
			return "chan<- " + MakeGenericTypeName(t.Elem())
		default:
			return "chan " + MakeGenericTypeName(t.Elem())
		}
	case reflect.Func, reflect.Struct, reflect.Interface:
		return stripQualifiers(t.String())
	}
	return t.String()
}

// formatTypeString rewrites a type string as printed by reflect.
func formatTypeString(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return s
	case strings.HasPrefix(s, "*"):
		return "*" + formatTypeString(s[1:])
	case strings.HasPrefix(s, "[]"):
		return "[]" + formatTypeString(s[2:])
	case strings.HasPrefix(s, "map["):
		end := matchBracket(s, 3)
		return "map[" + formatTypeString(s[4:end]) + "]" + formatTypeString(s[end+1:])
	case strings.HasPrefix(s, "["):
		end := matchBracket(s, 0)
		return s[:end+1] + formatTypeString(s[end+1:])
	case strings.HasPrefix(s, "<-chan "):
		return "<-chan " + formatTypeString(s[len("<-chan "):])
	case strings.HasPrefix(s, "chan<- "):
		return "chan<- " + formatTypeString(s[len("chan<- "):])
	case strings.HasPrefix(s, "chan "):
		return "chan " + formatTypeString(s[len("chan "):])
	case strings.HasPrefix(s, "func("), strings.HasPrefix(s, "struct {"), strings.HasPrefix(s, "interface {"):
		return stripQualifiers(s)
	}

	open := strings.IndexByte(s, '[')
	if open < 0 {
		return shortName(s)
	}
	end := matchBracket(s, open)
	args := splitTopLevel(s[open+1 : end])
	for i := range args {
		args[i] = formatTypeString(args[i])
	}
	return shortName(s[:open]) + "[" + strings.Join(args, ", ") + "]"
}

// shortName drops the import path and package name from a qualified name.
func shortName(s string) string {
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// stripQualifiers shortens every qualified identifier inside a func,
// struct or interface literal. A leading "..." stays in place.
func stripQualifiers(s string) string {
	var b strings.Builder
	start := -1
	flush := func(end int) {
		if start >= 0 {
			b.WriteString(shortName(s[start:end]))
			start = -1
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if identByte(c) && (c != '.' || start >= 0) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		b.WriteByte(c)
	}
	flush(len(s))
	return b.String()
}

// identByte reports whether c can appear in a package-qualified name.
func identByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '.', c == '/', c == '-', c >= 0x80:
		return true
	}
	return false
}

// matchBracket returns the index of the ']' closing the '[' at open.
// The last index of s is returned for unbalanced input.
func matchBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s) - 1
}

// splitTopLevel splits a type argument list at commas outside brackets
// and parentheses.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
