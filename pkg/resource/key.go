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

import "fmt"

// RKey identifies a resource.  The upper 8 bits encode the type of resource,
// and the lower 24 bits a tag unique amongst resources of that type.  The zero
// key is reserved as invalid.
type RKey uint32

// NewRKey packs a resource type and tag into a key.  Bits of the tag beyond
// the lower 24 are discarded.
func NewRKey(typ uint8, tag uint32) RKey {
	return RKey(uint32(typ)<<24 | (tag & 0x00FFFFFF))
}

// Type returns the type of resource this key identifies.
func (k RKey) Type() uint8 {
	return uint8(k >> 24)
}

// Tag returns the tag of the resource this key identifies.
func (k RKey) Tag() uint32 {
	return uint32(k) & 0x00FFFFFF
}

// IsValid checks whether this key can identify a resource.
func (k RKey) IsValid() bool {
	return k != 0
}

func (k RKey) String() string {
	return fmt.Sprintf("%d:%d", k.Type(), k.Tag())
}
