// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package ewasm

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
)

// This file provides a registry for Engine implementations.
//
// The host itself does not ship an ewasm engine; engines are provided by
// separate packages which register a factory from their init code. Including
// such a package makes the engine available here under its registered name.

// NewEngine looks up the given name (case-insensitive) in the registry and
// creates a new Engine using the optional configuration. Without a
// configuration, the implementation applies its defaults. An error is
// returned if no factory was registered under the name.
func NewEngine(name string, config ...any) (Engine, error) {
	if len(config) > 1 {
		return nil, fmt.Errorf("invalid configuration: too many arguments")
	}
	factory := GetEngineFactory(name)
	if factory == nil {
		return nil, fmt.Errorf("engine not found: %s", name)
	}
	c := any(nil)
	if len(config) > 0 {
		c = config[0]
	}
	return factory(c)
}

// GetEngineFactory looks up the given name (case-insensitive) in the
// registry. The result is nil if no factory was registered under the name.
func GetEngineFactory(name string) EngineFactory {
	engineRegistryLock.Lock()
	defer engineRegistryLock.Unlock()
	return engineRegistry[strings.ToLower(name)]
}

// GetAllRegisteredEngines obtains all registered engine factories.
func GetAllRegisteredEngines() map[string]EngineFactory {
	engineRegistryLock.Lock()
	defer engineRegistryLock.Unlock()
	return maps.Clone(engineRegistry)
}

// RegisterEngineFactory registers a new Engine implementation for general
// use in the binary. The name is not case-sensitive. An error is returned if
// a factory was already bound to the same name or the factory is nil. This
// function is mainly intended to be used in package initialization code.
func RegisterEngineFactory(name string, factory EngineFactory) error {
	key := strings.ToLower(name)
	if factory == nil {
		return fmt.Errorf("invalid initialization: cannot register nil-factory using `%s`", key)
	}
	engineRegistryLock.Lock()
	defer engineRegistryLock.Unlock()
	if _, found := engineRegistry[key]; found {
		return fmt.Errorf("invalid initialization: multiple factories registered for `%s`", key)
	}
	engineRegistry[key] = factory
	return nil
}

// EngineFactory is a function creating a new Engine from an engine-specific
// configuration.
type EngineFactory func(config any) (Engine, error)

var engineRegistry = map[string]EngineFactory{}

var engineRegistryLock sync.Mutex
