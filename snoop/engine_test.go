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

package snoop_test

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/lookup/apis"
	"dirpx.dev/lookup/builder"
	"dirpx.dev/lookup/config"
	"dirpx.dev/lookup/extension"
	"dirpx.dev/lookup/snoop"
	"dirpx.dev/lookup/statics"
)

// newEngine wires an engine over a fresh registry holding the given
// registrations.
func newEngine(t *testing.T, cfg apis.Config, regs map[reflect.Type]apis.Factory, opts ...snoop.Option) *snoop.Engine {
	t.Helper()
	b := builder.New()
	reg := b.BuildRegistry(cfg, nil, nil)
	for typ, f := range regs {
		require.NoError(t, reg.Register(typ, f))
	}
	return snoop.New(cfg, b.BuildDispatcher(cfg, reg, nil, nil), opts...)
}

func names(members []*snoop.Descriptor) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.Name)
	}
	return out
}

func member(t *testing.T, members []*snoop.Descriptor, name string) *snoop.Descriptor {
	t.Helper()
	for _, m := range members {
		if m.Name == name {
			return m
		}
	}
	require.Failf(t, "member not found", "%q in %v", name, names(members))
	return nil
}

func TestNew_NilDispatcherPanics(t *testing.T) {
	assert.Panics(t, func() { snoop.New(config.DefaultConfig(), nil) })
}

func TestBuild_Nil(t *testing.T) {
	e := newEngine(t, config.DefaultConfig(), nil)

	members := e.Build(nil, nil)
	require.NotNil(t, members)
	assert.Empty(t, members)

	o := e.Snoop(nil, nil)
	assert.True(t, o.IsNil())
	assert.False(t, o.HasMembers())
	assert.Equal(t, "<null>", o.Descriptor().Name)
	assert.Empty(t, o.GetMembers())
}

func TestBuild_LevelsBaseFirst(t *testing.T) {
	e := newEngine(t, config.DefaultConfig(), nil)

	members := e.Build(&derived{base: base{ID: 1, secret: "s"}, Extra: "x"}, nil)
	assert.Equal(t, []string{"Crash", "Fail", "Label", "Value", "Pair", "ID", "Shout", "Extra"}, names(members))

	for _, m := range members[:6] {
		assert.Equal(t, 0, m.Depth, m.Name)
		assert.Equal(t, "base", m.Type, m.Name)
	}
	for _, m := range members[6:] {
		assert.Equal(t, 1, m.Depth, m.Name)
		assert.Equal(t, "derived", m.Type, m.Name)
	}
}

func TestBuild_LevelIsolation(t *testing.T) {
	e := newEngine(t, config.DefaultConfig(), nil)

	members := e.Build(&sign{plate: plate{Tag: "bt"}, Tag: "dt"}, nil)
	require.Len(t, members, 4)

	want := []struct {
		depth int
		typ   string
		name  string
		value any
	}{
		{0, "plate", "Label", "plate-label"},
		{0, "plate", "Tag", "bt"},
		{1, "sign", "Label", "sign-label"},
		{1, "sign", "Tag", "dt"},
	}
	for i, w := range want {
		assert.Equal(t, w.depth, members[i].Depth, i)
		assert.Equal(t, w.typ, members[i].Type, i)
		assert.Equal(t, w.name, members[i].Name, i)
		assert.Equal(t, w.value, members[i].Value.Value(), i)
	}
}

func TestBuild_SkipsLockingMethods(t *testing.T) {
	e := newEngine(t, config.DefaultConfig(), nil)

	g := &guarded{N: 1}
	members := e.Build(g, nil)
	assert.NotContains(t, names(members), "TryLock")
	assert.Contains(t, names(members), "N")
	require.True(t, g.TryLock())
	g.Unlock()

	s := &shared{}
	members = e.Build(s, nil)
	assert.NotContains(t, names(members), "TryLock")
	assert.NotContains(t, names(members), "TryRLock")
	require.True(t, s.TryLock())
	s.Unlock()
}

func TestBuild_Properties(t *testing.T) {
	e := newEngine(t, config.DefaultConfig(), nil)
	members := e.Build(&derived{base: base{ID: 4}}, nil)

	v := member(t, members, "Value")
	assert.Equal(t, snoop.Property, v.Attributes)
	assert.Equal(t, 40, v.Value.Value())

	fail := member(t, members, "Fail")
	assert.ErrorIs(t, fail.Value.Value().(error), errBoom)

	crash := member(t, members, "Crash")
	var pe *snoop.PanicError
	require.ErrorAs(t, crash.Value.Value().(error), &pe)

	label := member(t, members, "Label")
	assert.Equal(t, snoop.Property, label.Attributes)
	assert.ErrorIs(t, label.Value.Value().(error), snoop.ErrNotSupported)

	pair := member(t, members, "Pair")
	assert.Equal(t, snoop.Method, pair.Attributes)
	assert.Equal(t, []any{4, "pair"}, pair.Value.Value())

	for _, hidden := range []string{"SetValue", "SetLabel", "Reset", "Lookup", "Sum"} {
		assert.NotContains(t, names(members), hidden)
	}
}

func TestBuild_Unsupported(t *testing.T) {
	e := newEngine(t, config.NewConfig(config.WithIncludeUnsupported(true)), nil)
	members := e.Build(&base{}, nil)

	lookup := member(t, members, "Lookup")
	assert.Equal(t, snoop.Property, lookup.Attributes)
	assert.ErrorIs(t, lookup.Value.Value().(error), snoop.ErrNotSupported)

	sum := member(t, members, "Sum")
	assert.Equal(t, snoop.Method, sum.Attributes)
	var nse *snoop.NotSupportedError
	require.ErrorAs(t, sum.Value.Value().(error), &nse)
	assert.Equal(t, "Sum", nse.Member)
}

func TestBuild_Resolver(t *testing.T) {
	e := newEngine(t, config.DefaultConfig(), map[reflect.Type]apis.Factory{
		reflect.TypeOf(base{}): newBaseDescriber,
	})
	members := e.Build(&base{ID: 7}, nil)

	lookup := member(t, members, "Lookup")
	assert.Equal(t, snoop.Property, lookup.Attributes)
	// Several variants keep the set and show the declared result type.
	assert.Equal(t, "string", lookup.Value.Descriptor().Name)
	items := lookup.Value.Enumerate()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Name)
	assert.Equal(t, "alpha", items[0].Value.Value())
	assert.Equal(t, "b", items[1].Name)

	sum := member(t, members, "Sum")
	assert.Equal(t, snoop.Method, sum.Attributes)
	assert.Equal(t, 9, sum.Value.Value())
}

func TestBuild_Fields(t *testing.T) {
	v := &derived{base: base{ID: 1, secret: "s", OnChange: func(int) {}, feed: make(chan int)}}

	t.Run("default", func(t *testing.T) {
		members := newEngine(t, config.DefaultConfig(), nil).Build(v, nil)
		assert.Contains(t, names(members), "ID")
		assert.NotContains(t, names(members), "secret")
		assert.NotContains(t, names(members), "OnChange")
		assert.NotContains(t, names(members), "feed")
	})

	t.Run("no fields", func(t *testing.T) {
		members := newEngine(t, config.NewConfig(config.WithIncludeFields(false)), nil).Build(v, nil)
		assert.NotContains(t, names(members), "ID")
		assert.NotContains(t, names(members), "Extra")
	})

	t.Run("private and events", func(t *testing.T) {
		cfg := config.NewConfig(config.WithIncludePrivate(true), config.WithIncludeEvents(true))
		members := newEngine(t, cfg, nil).Build(v, nil)

		secret := member(t, members, "secret")
		assert.Equal(t, snoop.Field|snoop.Private, secret.Attributes)
		assert.Equal(t, "s", secret.Value.Value())

		change := member(t, members, "OnChange")
		assert.Equal(t, snoop.Event, change.Attributes)
		assert.Equal(t, reflect.TypeOf(func(int) {}), change.Value.Value())

		feed := member(t, members, "feed")
		assert.Equal(t, snoop.Event|snoop.Private, feed.Attributes)
	})
}

func TestBuild_Statics(t *testing.T) {
	st := statics.NewRegistry()
	require.NoError(t, st.Register(reflect.TypeOf(base{}), "Version", 3))
	require.NoError(t, st.Register(reflect.TypeOf(base{}), "Make", func() *base { return &base{ID: 9} }))

	t.Run("instance path honours the toggle", func(t *testing.T) {
		e := newEngine(t, config.DefaultConfig(), nil, snoop.WithStatics(st))
		assert.NotContains(t, names(e.Build(&derived{}, nil)), "Version")

		e = newEngine(t, config.NewConfig(config.WithIncludeStatic(true)), nil, snoop.WithStatics(st))
		members := e.Build(&derived{}, nil)
		version := member(t, members, "Version")
		assert.Equal(t, snoop.Field|snoop.Static, version.Attributes)
		assert.Equal(t, 0, version.Depth)
		assert.Equal(t, 3, version.Value.Value())
	})

	t.Run("static path", func(t *testing.T) {
		e := newEngine(t, config.DefaultConfig(), nil, snoop.WithStatics(st))
		members := e.BuildStatic(reflect.TypeOf(base{}))
		assert.Equal(t, []string{"Version", "Make"}, names(members))
		assert.Equal(t, snoop.Method|snoop.Static, members[1].Attributes)
		assert.Equal(t, 9, members[1].Value.Value().(*base).ID)

		o := e.SnoopStatic(reflect.TypeOf(base{}))
		assert.True(t, o.IsStatic())
		assert.True(t, o.HasMembers())
		assert.Len(t, o.GetMembers(), 2)

		assert.False(t, e.SnoopStatic(reflect.TypeOf(derived{})).HasMembers())
		assert.True(t, e.SnoopStatic(nil).IsNil())
	})
}

func TestBuild_Extensions(t *testing.T) {
	ex := extension.NewRegistry()
	require.NoError(t, ex.Register(reflect.TypeOf(base{}), func(_ apis.Document, v any, m apis.ExtensionManager) {
		extension.Bind(m, "Double", v.(*base), func(b *base) (any, error) { return b.ID * 2, nil })
	}))
	regs := map[reflect.Type]apis.Factory{reflect.TypeOf(base{}): newBaseDescriber}

	e := newEngine(t, config.DefaultConfig(), regs, snoop.WithExtensions(ex))
	members := e.Build(&derived{base: base{ID: 5}}, &note{title: "plan"})

	doc := member(t, members, "Doc")
	assert.Equal(t, snoop.Method|snoop.Extension, doc.Attributes)
	assert.Equal(t, "plan", doc.Value.Value())
	double := member(t, members, "Double")
	assert.Equal(t, 10, double.Value.Value())
	assert.Less(t, indexOf(members, "Doc"), indexOf(members, "Double"))

	e = newEngine(t, config.NewConfig(config.WithIncludeExtensions(false)), regs, snoop.WithExtensions(ex))
	assert.NotContains(t, names(e.Build(&derived{}, nil)), "Double")
}

func indexOf(members []*snoop.Descriptor, name string) int {
	for i, m := range members {
		if m.Name == name {
			return i
		}
	}
	return -1
}

func TestBuild_NilEmbeddedPointer(t *testing.T) {
	type outer struct {
		*base
		Tag string
	}
	e := newEngine(t, config.DefaultConfig(), nil)

	var members []*snoop.Descriptor
	require.NotPanics(t, func() { members = e.Build(&outer{Tag: "t"}, nil) })
	assert.Equal(t, []string{"Tag"}, names(members))
}

func TestBuild_SlowCallsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := config.NewConfig(config.WithSlowCallThreshold(1))
	e := newEngine(t, cfg, nil, snoop.WithLogger(log))

	members := e.Build(slow{}, nil)
	require.Len(t, members, 1)
	assert.Positive(t, members[0].Elapsed)
	assert.Contains(t, buf.String(), "slow member")
	assert.Contains(t, buf.String(), "member=Nap")
}

func TestObject_Describers(t *testing.T) {
	e := newEngine(t, config.DefaultConfig(), nil)

	assert.Equal(t, "badge!", e.Snoop(badge{}, nil).Descriptor().Name)

	var d *snoop.Descriptor
	require.NotPanics(t, func() { d = e.Snoop(crashy{}, nil).Descriptor() })
	assert.Equal(t, "snoop_test.crashDescriber", d.Name)

	d = e.Snoop(&derived{}, nil).Descriptor()
	assert.Equal(t, "*derived", d.Type)
	assert.NotNil(t, d.Describer)
}

func TestObject_Document(t *testing.T) {
	e := newEngine(t, config.DefaultConfig(), nil)
	n, other := &note{title: "n"}, &note{title: "other"}

	assert.Same(t, n, e.Snoop(owned{d: n}, other).Document())
	assert.Same(t, other, e.Snoop(owned{}, other).Document())
	assert.Same(t, n, e.Snoop(n, other).Document())
	assert.Same(t, other, e.Snoop(42, other).Document())
}

func TestObject_HasMembers(t *testing.T) {
	e := newEngine(t, config.DefaultConfig(), nil)
	assert.False(t, e.Snoop(3, nil).HasMembers())
	assert.False(t, e.Snoop("x", nil).HasMembers())
	assert.True(t, e.Snoop(&derived{}, nil).HasMembers())
	assert.True(t, e.Snoop([]int{1}, nil).HasMembers())
}

func TestRedirect(t *testing.T) {
	regs := map[reflect.Type]apis.Factory{reflect.TypeOf(hop{}): newHopDescriber}

	t.Run("settles", func(t *testing.T) {
		e := newEngine(t, config.DefaultConfig(), regs)
		assert.Equal(t, hop{n: 2, max: 2}, e.Snoop(hop{max: 2}, nil).Value())
	})

	t.Run("limit", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		e := newEngine(t, config.NewConfig(config.WithMaxRedirects(3)), regs, snoop.WithLogger(log))

		o := e.Snoop(hop{max: -1}, nil)
		err, ok := o.Value().(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, snoop.ErrRedirectLimit)
		var rle *snoop.RedirectLimitError
		require.ErrorAs(t, err, &rle)
		assert.Equal(t, 3, rle.Steps)
		assert.Contains(t, buf.String(), "redirect limit reached")
	})

	t.Run("disabled", func(t *testing.T) {
		e := newEngine(t, config.NewConfig(config.WithMaxRedirects(0)), regs)
		assert.Equal(t, hop{max: -1}, e.Snoop(hop{max: -1}, nil).Value())
	})
}

func TestAttributes_String(t *testing.T) {
	assert.Equal(t, "None", snoop.MemberAttributes(0).String())
	assert.Equal(t, "Field|Private", (snoop.Field | snoop.Private).String())
	assert.Equal(t, "Method|Extension", (snoop.Method | snoop.Extension).String())
	assert.True(t, (snoop.Field | snoop.Static).Has(snoop.Static))
}

func TestErrors(t *testing.T) {
	assert.ErrorIs(t, &snoop.NotSupportedError{Member: "X"}, snoop.ErrNotSupported)
	assert.ErrorIs(t, &snoop.RedirectLimitError{Steps: 1}, snoop.ErrRedirectLimit)
	assert.False(t, errors.Is(&snoop.NotSupportedError{}, snoop.ErrRedirectLimit))

	ie := &snoop.InvocationError{Member: "X", Err: errBoom}
	assert.ErrorIs(t, ie, errBoom)
	assert.Equal(t, "X: boom", ie.Error())
}
