// Copyright 2025 Fusionlab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package backend selects a compute backend by name.
//
// Programs resolve the backend once, typically from a flag, and pass it to
// every constructor:
//
//	b, err := backend.Resolve(*backendFlag)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	attn, err := nn.NewSelfAttention(cfg, b)
//
// Built-in names are "cpu", "cpu-serial" and "reference".
package backend

import (
	"github.com/fusionlab-ml/fusionlab/internal/backend"
	"github.com/fusionlab-ml/fusionlab/tensor"
)

// Built-in backend names.
const (
	CPU       = backend.CPU
	CPUSerial = backend.CPUSerial
	Reference = backend.Reference
)

// ErrUnknownBackend is returned by Resolve for unregistered names.
var ErrUnknownBackend = backend.ErrUnknownBackend

// Factory creates a backend instance.
type Factory = backend.Factory

// Register makes factory available under name, replacing any previous
// registration.
func Register(name string, factory Factory) {
	backend.Register(name, factory)
}

// Resolve creates the backend registered under name.
func Resolve(name string) (tensor.Backend, error) {
	return backend.Resolve(name)
}

// Names returns the registered backend names in sorted order.
func Names() []string {
	return backend.Names()
}
