package models

import (
	"errors"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

// Resolver maps a (module, call) name pair to its numeric indices. It fails
// with *LookupError when either name is unknown.
type Resolver interface {
	Resolve(module, call string) (ModuleCallIndex, error)
}

type moduleEntry struct {
	index uint8
	calls map[string]uint8
	names []string
}

// Snapshot is an immutable name table taken from runtime metadata.
type Snapshot struct {
	modules map[string]*moduleEntry
	byIndex map[uint8]string
}

// ModuleCalls lists one module's calls in index order.
type ModuleCalls struct {
	Name  string
	Index uint8
	Calls []string
}

// NewSnapshot builds a Snapshot; each call's index is its position in Calls.
func NewSnapshot(modules ...ModuleCalls) (*Snapshot, error) {
	s := &Snapshot{
		modules: make(map[string]*moduleEntry, len(modules)),
		byIndex: make(map[uint8]string, len(modules)),
	}
	for _, m := range modules {
		if _, ok := s.modules[m.Name]; ok {
			return nil, fmt.Errorf("duplicate module %q", m.Name)
		}
		if other, ok := s.byIndex[m.Index]; ok {
			return nil, fmt.Errorf("modules %q and %q share index %d", other, m.Name, m.Index)
		}
		if len(m.Calls) > 256 {
			return nil, fmt.Errorf("module %q has %d calls, at most 256 fit a call index", m.Name, len(m.Calls))
		}
		e := &moduleEntry{
			index: m.Index,
			calls: make(map[string]uint8, len(m.Calls)),
			names: append([]string(nil), m.Calls...),
		}
		for i, c := range m.Calls {
			e.calls[c] = uint8(i)
		}
		s.modules[m.Name] = e
		s.byIndex[m.Index] = m.Name
	}
	return s, nil
}

// NewSnapshotFromMetadata collects the callable modules of V12 metadata.
func NewSnapshotFromMetadata(meta *types.Metadata) (*Snapshot, error) {
	if !meta.IsMetadataV12 {
		return nil, errors.New("only metadata v12 can be snapshotted, use MetadataResolver instead")
	}
	var mods []ModuleCalls
	for _, mod := range meta.AsMetadataV12.Modules {
		if !mod.HasCalls {
			continue
		}
		mc := ModuleCalls{Name: string(mod.Name), Index: uint8(mod.Index)}
		for _, c := range mod.Calls {
			mc.Calls = append(mc.Calls, string(c.Name))
		}
		mods = append(mods, mc)
	}
	return NewSnapshot(mods...)
}

func (s *Snapshot) Resolve(module, call string) (ModuleCallIndex, error) {
	m, ok := s.modules[module]
	if !ok {
		return ModuleCallIndex{}, &LookupError{Module: module, Call: call, MissingModule: true}
	}
	c, ok := m.calls[call]
	if !ok {
		return ModuleCallIndex{}, &LookupError{Module: module, Call: call}
	}
	return ModuleCallIndex{Module: m.index, Call: c}, nil
}

// Name is the reverse of Resolve.
func (s *Snapshot) Name(index ModuleCallIndex) (module, call string, ok bool) {
	module, ok = s.byIndex[index.Module]
	if !ok {
		return "", "", false
	}
	names := s.modules[module].names
	if int(index.Call) >= len(names) {
		return "", "", false
	}
	return module, names[index.Call], true
}

// MetadataResolver resolves names directly against gsrpc metadata of any version.
type MetadataResolver struct {
	Meta *types.Metadata
}

func (r MetadataResolver) Resolve(module, call string) (ModuleCallIndex, error) {
	ci, err := r.Meta.FindCallIndex(module + "." + call)
	if err != nil {
		return ModuleCallIndex{}, &LookupError{Module: module, Call: call, Err: err}
	}
	return ModuleCallIndex{Module: ci.SectionIndex, Call: ci.MethodIndex}, nil
}
