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

import (
	"errors"
	"fmt"

	"github.com/dglib/go-dglib/pkg/util/collection/iter"
	"github.com/dglib/go-dglib/pkg/util/collection/sortedmap"
	log "github.com/sirupsen/logrus"
)

// Option configures the behaviour of a Manager.
type Option uint32

const (
	// Default behaviour: resources stay initialised until explicitly
	// deinitialised.
	Default Option = 0
	// AutoDeinit deinitialises a resource once its number of users drops to
	// zero.
	AutoDeinit Option = 1
)

var (
	// ErrInvalidKey indicates an attempt to register the reserved zero key.
	ErrInvalidKey = errors.New("invalid resource key")
	// ErrDuplicate indicates an attempt to register a key twice.
	ErrDuplicate = errors.New("duplicate resource key")
	// ErrNotFound indicates a key which has not been registered.
	ErrNotFound = errors.New("resource not registered")
	// ErrInUse indicates an attempt to deinitialise a resource which still
	// has users, without forcing.
	ErrInUse = errors.New("resource in use")
)

// entry records a registered resource along with its number of users.
type entry struct {
	resource Resource
	users    uint32
}

// Manager tracks registered resources in a map ordered by key, counting the
// handles which refer to each.  A Manager is not safe for concurrent use.
type Manager struct {
	options   Option
	resources *sortedmap.Map[RKey, entry]
}

// NewManager constructs a manager with no registered resources.
func NewManager(options ...Option) *Manager {
	var m = &Manager{Default, sortedmap.New[RKey, entry]()}
	//
	for _, o := range options {
		m.options |= o
	}
	//
	return m
}

// SetOptions replaces the options of this manager.
func (m *Manager) SetOptions(options Option) {
	m.options = options
}

// CheckOption checks whether a given option is set.
func (m *Manager) CheckOption(option Option) bool {
	return m.options&option == option
}

// Size returns the number of registered resources.
func (m *Manager) Size() int {
	return m.resources.Size()
}

// Keys returns an iterator over the registered keys in ascending order.
func (m *Manager) Keys() iter.Iterator[RKey] {
	return m.resources.Keys()
}

// Users returns the number of live handles for a given resource.
func (m *Manager) Users(key RKey) (uint32, bool) {
	e, ok := m.resources.Get(key)
	return e.users, ok
}

// Register a new resource constructed by the given factory, optionally
// initialising it.  Nothing is registered if initialisation fails.
func (m *Manager) Register(key RKey, factory Factory, init bool) error {
	if !key.IsValid() {
		return ErrInvalidKey
	} else if m.resources.Contains(key) {
		return fmt.Errorf("%w (%s)", ErrDuplicate, key)
	}
	//
	res := factory(key)
	//
	if init {
		if err := res.Init(); err != nil {
			return fmt.Errorf("initialising resource %s: %w", key, err)
		}
	}
	//
	m.resources.Insert(key, entry{res, 0})
	log.Debugf("registered resource %s (initialised %t)", key, res.IsInitialised())
	//
	return nil
}

// Get returns a handle to a registered resource, initialising it if
// necessary.  The handle counts as a user until it is released.
func (m *Manager) Get(key RKey) (*Handle, error) {
	res, err := m.registerUser(key)
	if err != nil {
		return nil, err
	}
	//
	return &Handle{m, key, res}, nil
}

// Init initialises a registered resource, if it is not already.
func (m *Manager) Init(key RKey) error {
	index, ok := m.resources.Find(key)
	if !ok {
		return fmt.Errorf("%w (%s)", ErrNotFound, key)
	}
	//
	return initialise(m.resources.Value(index).resource)
}

// InitAll initialises every registered resource, returning the combined
// errors of any which failed.
func (m *Manager) InitAll() error {
	var errs []error
	//
	for i := range m.resources.Size() {
		if err := initialise(m.resources.Value(i).resource); err != nil {
			errs = append(errs, err)
		}
	}
	//
	return errors.Join(errs...)
}

// Deinit deinitialises a registered resource.  Unless forced, this fails for
// resources which still have users.
func (m *Manager) Deinit(key RKey, force bool) error {
	index, ok := m.resources.Find(key)
	if !ok {
		return fmt.Errorf("%w (%s)", ErrNotFound, key)
	}
	//
	return m.deinitAt(index, force)
}

// DeinitAll deinitialises every registered resource.  Unless forced, resources
// with users are skipped and reported in the returned error.
func (m *Manager) DeinitAll(force bool) error {
	var errs []error
	//
	for i := range m.resources.Size() {
		if err := m.deinitAt(i, force); err != nil {
			errs = append(errs, err)
		}
	}
	//
	return errors.Join(errs...)
}

func (m *Manager) deinitAt(index int, force bool) error {
	var e = m.resources.Value(index)
	//
	if !e.resource.IsInitialised() {
		return nil
	} else if e.users != 0 && !force {
		return fmt.Errorf("%w (%s has %d users)", ErrInUse, e.resource.Key(), e.users)
	} else if err := e.resource.DeInit(); err != nil {
		return fmt.Errorf("deinitialising resource %s: %w", e.resource.Key(), err)
	}
	//
	log.Debugf("deinitialised resource %s", e.resource.Key())
	//
	return nil
}

// Add a user to a resource, initialising it if necessary.
func (m *Manager) registerUser(key RKey) (Resource, error) {
	index, ok := m.resources.Find(key)
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrNotFound, key)
	}
	//
	e := m.resources.ValueRef(index)
	//
	if err := initialise(e.resource); err != nil {
		return nil, err
	}
	//
	e.users++
	//
	return e.resource, nil
}

// Remove a user from a resource, deinitialising it if it has no users left
// and the AutoDeinit option is set.
func (m *Manager) deregisterUser(key RKey) {
	index, ok := m.resources.Find(key)
	if !ok {
		log.Errorf("releasing handle to unregistered resource %s", key)
		return
	}
	//
	e := m.resources.ValueRef(index)
	//
	if e.users > 0 {
		e.users--
	}
	//
	if e.users == 0 && m.CheckOption(AutoDeinit) {
		if err := m.deinitAt(index, false); err != nil {
			log.Error(err)
		}
	}
}

func initialise(res Resource) error {
	if res.IsInitialised() {
		return nil
	} else if err := res.Init(); err != nil {
		return fmt.Errorf("initialising resource %s: %w", res.Key(), err)
	}
	//
	log.Debugf("initialised resource %s", res.Key())
	//
	return nil
}

// Handle is a counted reference to a managed resource.  Each handle must be
// released exactly once; releasing again has no effect.
type Handle struct {
	manager  *Manager
	key      RKey
	resource Resource
}

// Key returns the key of the resource this handle refers to.
func (h *Handle) Key() RKey {
	return h.key
}

// Resource returns the resource this handle refers to, or nil once released.
func (h *Handle) Resource() Resource {
	return h.resource
}

// Clone returns a new handle to the same resource, counted as a separate
// user.
func (h *Handle) Clone() (*Handle, error) {
	if h.resource == nil {
		return nil, fmt.Errorf("cloning released handle to %s", h.key)
	}
	//
	return h.manager.Get(h.key)
}

// Release this handle, removing it as a user of its resource.
func (h *Handle) Release() {
	if h.resource == nil {
		return
	}
	//
	h.resource = nil
	h.manager.deregisterUser(h.key)
}
