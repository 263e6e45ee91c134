package bind_group_provider

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithIndexCount presets the index count, used by providers whose buffers are attached later.
//
// Parameters:
//   - count: the number of indices the draw call will issue
//
// Returns:
//   - BindGroupProviderOption: a function that sets the index count for this provider
func WithIndexCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.indexCount = count
	}
}

// WithInstanceCount presets the instance count of an instance provider.
//
// Parameters:
//   - count: the number of instances described by the provider's vertex buffer
//
// Returns:
//   - BindGroupProviderOption: a function that sets the instance count for this provider
func WithInstanceCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.instanceCount = count
	}
}
