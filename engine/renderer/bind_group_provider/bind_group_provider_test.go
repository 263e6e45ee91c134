package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProviderKeepsLabel(t *testing.T) {
	p := NewBindGroupProvider("Camera", WithIndexCount(36), WithInstanceCount(4))

	assert.Equal(t, "Camera", p.Label())
	assert.Equal(t, 36, p.IndexCount())
	assert.Equal(t, 4, p.InstanceCount())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
}

func TestReleaseWithoutGPUResources(t *testing.T) {
	p := NewBindGroupProvider("Empty", WithIndexCount(6))
	p.SetBuffer(0, nil)

	assert.NotPanics(t, p.Release)
	assert.Zero(t, p.IndexCount())
	assert.Nil(t, p.Buffer(0))
}
