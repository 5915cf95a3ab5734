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

package descriptors

import (
	"reflect"
	"strings"

	"dirpx.dev/lookup/apis"
	uref "dirpx.dev/lookup/utils/reflect"
)

// Error describes error values: member evaluation failures surface as
// values described by Error. The name is the error text and the
// description the error type.
type Error struct {
	Value error
}

// NewError returns an Error describer; v must implement error.
func NewError(v any) apis.Describer {
	err, _ := v.(error)
	return Error{Value: err}
}

// Name implements apis.Describer.
func (d Error) Name() string {
	if d.Value == nil {
		return nilName
	}
	text, ok := safeString(d.Value.Error)
	if !ok {
		return "<error text unavailable>"
	}
	return text
}

// Description implements apis.Describer.
func (d Error) Description() string {
	if d.Value == nil {
		return ""
	}
	return strings.TrimPrefix(uref.TypeName(reflect.TypeOf(d.Value)), "*")
}
