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

package apis

import "time"

// Config carries read-only snooping knobs consumed by the builder and the
// dispatch strategies. It is passed by value and should be treated as
// immutable by implementations.
type Config struct {
	// IncludePrivate adds unexported struct fields to member lists.
	IncludePrivate bool

	// IncludeStatic adds members registered in the statics registry to
	// every instance level whose type has static members.
	IncludeStatic bool

	// IncludeFields adds struct fields to member lists.
	IncludeFields bool

	// IncludeEvents adds func- and chan-typed fields to member lists.
	// Events are never invoked or received from.
	IncludeEvents bool

	// IncludeUnsupported keeps members the builder cannot evaluate
	// (parameterized methods without a resolver) as ErrNotSupported
	// placeholders instead of dropping them.
	IncludeUnsupported bool

	// IncludeExtensions merges computed extension members into member lists.
	IncludeExtensions bool

	// MaxUnwrap limits pointer dereferencing when a value or a registered
	// type is normalized. Acts as a safety guard against pointer chains.
	MaxUnwrap int

	// MaxRedirects bounds the redirection loop applied to every snooped value.
	MaxRedirects int

	// MaxItems limits how many children an enumerable value is flattened to.
	MaxItems int

	// Workers bounds the number of builds running concurrently on behalf
	// of asynchronous callers.
	Workers int

	// HierarchyCacheSize is the capacity of the per-type level metadata cache.
	HierarchyCacheSize int

	// SlowCallThreshold marks member invocations slower than this value in
	// debug logs. Zero disables the report.
	SlowCallThreshold time.Duration
}
