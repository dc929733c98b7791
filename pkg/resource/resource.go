// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package resource

// Resource is implemented by anything managed by a Manager.  A resource is
// registered uninitialised, and initialised either on registration, on first
// use or explicitly.
type Resource interface {
	// Key returns the key this resource was created with.
	Key() RKey
	// IsInitialised checks whether Init has succeeded since the last DeInit.
	IsInitialised() bool
	// Init acquires whatever the resource represents.
	Init() error
	// DeInit releases whatever the resource represents.
	DeInit() error
}

// Factory constructs an uninitialised resource for a given key.
type Factory func(RKey) Resource
