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

// ExtensionManager collects computed members for one snooped value.
type ExtensionManager interface {
	// Register invokes fn immediately and records its result, or its
	// error, under name.
	Register(name string, fn func() (any, error))
}

// ExtensionProvider is implemented by describers that attach computed
// members to the value they describe.
type ExtensionProvider interface {
	RegisterExtensions(doc Document, m ExtensionManager)
}
