package models

import (
	"errors"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_Resolve(t *testing.T) {
	s := testSnapshot(t)

	idx, err := s.Resolve("TemplateModule", "do_something0")
	require.NoError(t, err)
	assert.Equal(t, ModuleCallIndex{Module: 9, Call: 1}, idx)
	assert.Equal(t, "9.1", idx.String())

	m, c, ok := s.Name(idx)
	require.True(t, ok)
	assert.Equal(t, "TemplateModule", m)
	assert.Equal(t, "do_something0", c)
}

func TestSnapshot_LookupErrors(t *testing.T) {
	s := testSnapshot(t)

	cases := []struct {
		module, call  string
		missingModule bool
	}{
		{"Nope", "remark", true},
		{"System", "nope", false},
		{"system", "remark", true},
	}
	for _, c := range cases {
		idx, err := s.Resolve(c.module, c.call)
		var le *LookupError
		require.True(t, errors.As(err, &le), "%s.%s", c.module, c.call)
		assert.Equal(t, c.missingModule, le.MissingModule)
		assert.Equal(t, ModuleCallIndex{}, idx)
	}

	_, _, ok := s.Name(ModuleCallIndex{Module: 9, Call: 7})
	assert.False(t, ok)
	_, _, ok = s.Name(ModuleCallIndex{Module: 200})
	assert.False(t, ok)
}

func TestNewSnapshot_Rejects(t *testing.T) {
	_, err := NewSnapshot(
		ModuleCalls{Name: "A", Index: 1},
		ModuleCalls{Name: "A", Index: 2},
	)
	assert.Error(t, err)

	_, err = NewSnapshot(
		ModuleCalls{Name: "A", Index: 1},
		ModuleCalls{Name: "B", Index: 1},
	)
	assert.Error(t, err)

	_, err = NewSnapshot(ModuleCalls{Name: "A", Calls: make([]string, 257)})
	assert.Error(t, err)
}

func TestNewSnapshotFromMetadata(t *testing.T) {
	meta := &types.Metadata{IsMetadataV12: true}
	meta.AsMetadataV12.Modules = []types.ModuleMetadataV12{
		{Name: "System", Index: 0, HasCalls: true, Calls: []types.FunctionMetadataV4{{Name: "fill_block"}, {Name: "remark"}}},
		{Name: "RandomnessCollectiveFlip", Index: 1},
		{Name: "TemplateModule", Index: 9, HasCalls: true, Calls: []types.FunctionMetadataV4{{Name: "do_something"}}},
	}

	s, err := NewSnapshotFromMetadata(meta)
	require.NoError(t, err)

	idx, err := s.Resolve("System", "remark")
	require.NoError(t, err)
	assert.Equal(t, ModuleCallIndex{Module: 0, Call: 1}, idx)

	_, err = s.Resolve("RandomnessCollectiveFlip", "anything")
	var le *LookupError
	require.ErrorAs(t, err, &le)
	assert.True(t, le.MissingModule)

	_, err = NewSnapshotFromMetadata(&types.Metadata{IsMetadataV11: true})
	assert.Error(t, err)
}
