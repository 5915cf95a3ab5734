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
	"errors"
	"fmt"
	"reflect"
	"time"
	"unicode"

	"dirpx.dev/lookup/apis"
	"dirpx.dev/lookup/descriptors"
	"dirpx.dev/lookup/extension"
	"dirpx.dev/lookup/statics"
	uref "dirpx.dev/lookup/utils/reflect"
	"dirpx.dev/lookup/utils/safe"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// level carries what every member of one level shares.
type level struct {
	lv      reflect.Value
	lvl     uref.Level
	desc    apis.Describer
	typ     string
	typFull string
	doc     apis.Document
	iface   any
}

// buildLevel appends the members declared at lvl.
func (e *Engine) buildLevel(out []*Descriptor, lv reflect.Value, lvl uref.Level, doc apis.Document) []*Descriptor {
	iface := levelInterface(lv)
	l := level{
		lv:      lv,
		lvl:     lvl,
		desc:    e.dsp.Describe(iface, lvl.Type, e.cfg),
		typ:     uref.TypeName(lvl.Type),
		typFull: uref.TypeFullName(lvl.Type),
		doc:     doc,
		iface:   iface,
	}

	var methods []*Descriptor
	for _, name := range lvl.Methods {
		d, prop := e.method(l, name)
		if d == nil {
			continue
		}
		if prop {
			out = append(out, d)
		} else {
			methods = append(methods, d)
		}
	}
	out = append(out, methods...)

	if lvl.Type.Kind() == reflect.Struct {
		var events []*Descriptor
		for _, i := range lvl.Fields {
			d, event := e.field(l, i)
			if d == nil {
				continue
			}
			if event {
				events = append(events, d)
			} else {
				out = append(out, d)
			}
		}
		out = append(out, events...)
	}

	if e.cfg.IncludeStatic {
		for _, m := range e.stats.Members(lvl.Type) {
			out = append(out, e.staticMember(m, lvl.Type, lvl.Depth, doc))
		}
	}

	if e.cfg.IncludeExtensions {
		out = e.extensions(out, l)
	}
	return out
}

// method builds the descriptor for one declared method. prop reports
// whether the method is shown as a property. A nil descriptor means the
// method is skipped.
func (e *Engine) method(l level, name string) (d *Descriptor, prop bool) {
	if _, ok := sideEffects[name]; ok {
		e.log.Debug("member skipped", "type", l.typ, "member", name, "reason", "changes lock state")
		return nil, false
	}
	m := methodValue(l.lv, name)
	if !m.IsValid() {
		return nil, false
	}
	mt := m.Type()

	if prop, ok := setterTarget(name, mt); ok {
		if methodValue(l.lv, prop).IsValid() {
			// Backing setter of a readable property.
			return nil, false
		}
		err := &NotSupportedError{Member: prop, Reason: "property has no getter"}
		return e.member(l, prop, Property, err, 0, nil), true
	}

	getter := isGetter(mt)
	if mt.NumIn() == 0 {
		switch {
		case getter:
			return e.invoke(l, name, Property, m, mt), true
		case mt.NumOut() == 0:
			// Void methods only have side effects.
			return nil, false
		default:
			return e.invoke(l, name, Method, m, mt), false
		}
	}

	attrs := Method
	if mt.NumIn() == 1 && getter && !mt.IsVariadic() {
		attrs = Property
	}
	return e.parameterized(l, name, attrs, mt), attrs == Property
}

// parameterized offers a member with parameters to the level describer's
// resolver and falls back to a placeholder or nothing.
func (e *Engine) parameterized(l level, name string, attrs MemberAttributes, mt reflect.Type) *Descriptor {
	params := make([]reflect.Type, mt.NumIn())
	for i := range params {
		params[i] = mt.In(i)
	}

	if r, ok := l.desc.(apis.MemberResolver); ok {
		var resolved bool
		res := safe.Call(func() (any, error) {
			v, ok := r.ResolveMember(l.doc, name, params)
			resolved = ok
			return v, nil
		})
		if res.Err != nil {
			e.log.Debug("member resolver panicked", "type", l.typ, "member", name, "error", res.Err)
			return e.member(l, name, attrs, res.Err, res.Elapsed, nil)
		}
		if resolved {
			var declared reflect.Type
			if mt.NumOut() > 0 {
				declared = mt.Out(0)
			}
			return e.resolved(l, name, attrs, res.Value, res.Elapsed, declared)
		}
	}

	if !e.cfg.IncludeUnsupported {
		return nil
	}
	err := &NotSupportedError{Member: name, Reason: fmt.Sprintf("requires %d parameter(s)", len(params))}
	return e.member(l, name, attrs, err, 0, nil)
}

// resolved turns a resolver result into a member. A ResolveSet collapses
// to its only variant; with several variants the set is kept and its
// display name becomes the declared result type.
func (e *Engine) resolved(l level, name string, attrs MemberAttributes, v any, elapsed time.Duration, declared reflect.Type) *Descriptor {
	set, ok := v.(*descriptors.ResolveSet)
	if !ok {
		return e.member(l, name, attrs, v, elapsed, nil)
	}
	switch set.Len() {
	case 0:
		return e.member(l, name, attrs, nil, elapsed, nil)
	case 1:
		return e.member(l, name, attrs, set.Variants()[0].Result, elapsed, nil)
	}
	return e.member(l, name, attrs, set, elapsed, declared)
}

// invoke calls a zero-argument method.
func (e *Engine) invoke(l level, name string, attrs MemberAttributes, m reflect.Value, mt reflect.Type) *Descriptor {
	res := safe.Call(func() (any, error) {
		return unpack(m.Call(nil), mt)
	})
	v := res.Value
	if res.Err != nil {
		v = res.Err
		if safe.IsPanic(res.Err) {
			e.log.Debug("member panicked", "type", l.typ, "member", name, "error", res.Err)
		}
	}
	return e.member(l, name, attrs, v, res.Elapsed, nil)
}

// field builds the descriptor for one declared field. event reports
// whether the field is shown as an event. A nil descriptor means the
// field is filtered out.
func (e *Engine) field(l level, i int) (d *Descriptor, event bool) {
	sf := l.lvl.Type.Field(i)
	var attrs MemberAttributes
	if !sf.IsExported() {
		if !e.cfg.IncludePrivate {
			return nil, false
		}
		attrs |= Private
	}

	if isEvent(sf.Type) {
		if !e.cfg.IncludeEvents {
			return nil, false
		}
		// Events are recorded by handler type only.
		return e.member(l, sf.Name, attrs|Event, sf.Type, 0, nil), true
	}

	if !e.cfg.IncludeFields {
		return nil, false
	}
	fv, ok := uref.Expose(l.lv.Field(i))
	if !ok {
		err := &InvocationError{Member: sf.Name, Err: errors.New("field is not addressable")}
		return e.member(l, sf.Name, attrs|Field, err, 0, nil), false
	}
	return e.member(l, sf.Name, attrs|Field, fv.Interface(), 0, nil), false
}

// staticMember builds the descriptor for one registered static member.
func (e *Engine) staticMember(m statics.Member, owner reflect.Type, depth int, doc apis.Document) *Descriptor {
	d := &Descriptor{
		Name:         m.Name,
		Type:         uref.TypeName(owner),
		TypeFullName: uref.TypeFullName(owner),
		Depth:        depth,
		Attributes:   Field | Static,
	}
	v := m.Value
	if m.IsProducer() {
		d.Attributes = Method | Static
		fn := reflect.ValueOf(m.Value)
		res := safe.Call(func() (any, error) {
			return unpack(fn.Call(nil), fn.Type())
		})
		v, d.Elapsed = res.Value, res.Elapsed
		if res.Err != nil {
			v = res.Err
		}
		e.reportSlow(d.Type, m.Name, res.Elapsed)
	}
	d.Value = e.newObject(v, doc, m.Name)
	return d
}

// extensions appends the computed members of a level: those of the
// level describer first, then those registered for the level type.
func (e *Engine) extensions(out []*Descriptor, l level) []*Descriptor {
	mgr := extension.NewManager()
	if p, ok := l.desc.(apis.ExtensionProvider); ok {
		res := safe.Call(func() (any, error) {
			p.RegisterExtensions(l.doc, mgr)
			return nil, nil
		})
		if res.Err != nil {
			e.log.Debug("extension provider panicked", "type", l.typ, "error", res.Err)
		}
	}
	for _, p := range e.exts.Providers(l.lvl.Type) {
		res := safe.Call(func() (any, error) {
			p(l.doc, l.iface, mgr)
			return nil, nil
		})
		if res.Err != nil {
			e.log.Debug("extension provider panicked", "type", l.typ, "error", res.Err)
		}
	}
	for _, en := range mgr.Entries() {
		v := en.Value
		if en.Err != nil {
			v = en.Err
		}
		out = append(out, e.member(l, en.Name, Method|Extension, v, en.Elapsed, nil))
	}
	return out
}

// member assembles a member descriptor. When declared is non-nil the
// value's display name is rewritten to the declared type name.
func (e *Engine) member(l level, name string, attrs MemberAttributes, v any, elapsed time.Duration, declared reflect.Type) *Descriptor {
	e.reportSlow(l.typ, name, elapsed)
	obj := e.newObject(v, l.doc, name)
	if declared != nil {
		obj.desc.Name = uref.TypeName(declared)
	}
	return &Descriptor{
		Name:         name,
		Type:         l.typ,
		TypeFullName: l.typFull,
		Depth:        l.lvl.Depth,
		Attributes:   attrs,
		Value:        obj,
		Elapsed:      elapsed,
	}
}

func (e *Engine) reportSlow(typ, name string, elapsed time.Duration) {
	if e.cfg.SlowCallThreshold > 0 && elapsed >= e.cfg.SlowCallThreshold {
		e.log.Debug("slow member", "type", typ, "member", name, "elapsed", elapsed)
	}
}

// methodValue looks name up on the pointer of an addressable value first,
// so pointer-receiver methods are found.
func methodValue(lv reflect.Value, name string) reflect.Value {
	if lv.CanAddr() {
		if m := lv.Addr().MethodByName(name); m.IsValid() {
			return m
		}
	}
	return lv.MethodByName(name)
}

// sideEffects lists argument-free methods that change the value they
// are called on, such as acquiring a lock.
var sideEffects = map[string]struct{}{
	"TryLock":  {},
	"TryRLock": {},
}

// setterTarget reports whether mt is a setter named SetX and returns X.
func setterTarget(name string, mt reflect.Type) (string, bool) {
	if len(name) <= 3 || name[:3] != "Set" || !unicode.IsUpper(rune(name[3])) {
		return "", false
	}
	if mt.NumIn() != 1 || mt.IsVariadic() {
		return "", false
	}
	switch mt.NumOut() {
	case 0:
	case 1:
		if mt.Out(0) != errorType {
			return "", false
		}
	default:
		return "", false
	}
	return name[3:], true
}

// isGetter reports whether mt returns T or (T, error).
func isGetter(mt reflect.Type) bool {
	switch mt.NumOut() {
	case 1:
		return true
	case 2:
		return mt.Out(1) == errorType
	}
	return false
}

// isEvent reports whether fields of type t are shown as events.
func isEvent(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan:
		return true
	case reflect.Func:
		return uref.SeqArity(t) == 0
	}
	return false
}

// unpack converts call results to a member value. A trailing error result
// that is non-nil becomes the failure; several other results become []any.
func unpack(outs []reflect.Value, mt reflect.Type) (any, error) {
	n := len(outs)
	if n > 1 && mt.Out(n-1) == errorType {
		if err, _ := uref.Interface(outs[n-1]).(error); err != nil {
			return nil, err
		}
		outs = outs[:n-1]
	}
	switch len(outs) {
	case 0:
		return nil, nil
	case 1:
		return uref.Interface(outs[0]), nil
	}
	vals := make([]any, len(outs))
	for i, o := range outs {
		vals[i] = uref.Interface(o)
	}
	return vals, nil
}
