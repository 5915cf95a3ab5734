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

// Document is the host context a snooped value belongs to. It is opaque
// to the builder and only handed to describers so they can re-enter the
// host model.
type Document interface {
	Title() string
}

// DocumentOwner is implemented by host values that know their document.
type DocumentOwner interface {
	Document() Document
}
