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

package snoop

import (
	"reflect"

	"dirpx.dev/lookup/apis"
	uref "dirpx.dev/lookup/utils/reflect"
	"dirpx.dev/lookup/utils/safe"
)

// redirect replaces v while its describer asks to, up to MaxRedirects
// steps, and returns the final value with its describer. Past the limit
// the value becomes a *RedirectLimitError. MaxRedirects == 0 disables
// redirection.
func (e *Engine) redirect(v any, doc apis.Document, target string) (any, apis.Describer) {
	d := e.dsp.Describe(v, nil, e.cfg)
	for step := 0; ; step++ {
		r, ok := d.(apis.Redirector)
		if !ok || e.cfg.MaxRedirects == 0 {
			return v, d
		}
		if step >= e.cfg.MaxRedirects {
			err := &RedirectLimitError{Steps: step, Last: uref.TypeName(reflect.TypeOf(v))}
			e.log.Error("redirect limit reached", "member", target, "steps", step, "type", err.Last)
			return err, e.dsp.Describe(err, nil, e.cfg)
		}

		var redirected bool
		res := safe.Call(func() (any, error) {
			nv, ok := r.Redirect(doc, target)
			redirected = ok
			return nv, nil
		})
		if res.Err != nil {
			e.log.Debug("redirect panicked", "member", target, "error", res.Err)
			return res.Err, e.dsp.Describe(res.Err, nil, e.cfg)
		}
		if !redirected {
			return v, d
		}
		v = res.Value
		d = e.dsp.Describe(v, nil, e.cfg)
	}
}
