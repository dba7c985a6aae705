package spirv

// capabilityRequires lists, per capability, the capabilities it implicitly
// declares in the grammar. Capabilities without an entry require nothing.
var capabilityRequires = map[Capability][]Capability{
	CapabilityShader:                             {CapabilityMatrix},
	CapabilityGeometry:                           {CapabilityShader},
	CapabilityTessellation:                       {CapabilityShader},
	CapabilityVector16:                           {CapabilityKernel},
	CapabilityFloat16Buffer:                      {CapabilityKernel},
	CapabilityInt64Atomics:                       {CapabilityInt64},
	CapabilityImageBasic:                         {CapabilityKernel},
	CapabilityImageReadWrite:                     {CapabilityImageBasic},
	CapabilityImageMipmap:                        {CapabilityImageBasic},
	CapabilityPipes:                              {CapabilityKernel},
	CapabilityDeviceEnqueue:                      {CapabilityKernel},
	CapabilityLiteralSampler:                     {CapabilityKernel},
	CapabilityAtomicStorage:                      {CapabilityShader},
	CapabilityTessellationPointSize:              {CapabilityTessellation},
	CapabilityGeometryPointSize:                  {CapabilityGeometry},
	CapabilityImageGatherExtended:                {CapabilityShader},
	CapabilityStorageImageMultisample:            {CapabilityShader},
	CapabilityUniformBufferArrayDynamicIndexing:  {CapabilityShader},
	CapabilitySampledImageArrayDynamicIndexing:   {CapabilityShader},
	CapabilityStorageBufferArrayDynamicIndexing:  {CapabilityShader},
	CapabilityStorageImageArrayDynamicIndexing:   {CapabilityShader},
	CapabilityClipDistance:                       {CapabilityShader},
	CapabilityCullDistance:                       {CapabilityShader},
	CapabilityImageCubeArray:                     {CapabilitySampledCubeArray},
	CapabilitySampleRateShading:                  {CapabilityShader},
	CapabilityImageRect:                          {CapabilitySampledRect},
	CapabilitySampledRect:                        {CapabilityShader},
	CapabilityGenericPointer:                     {CapabilityAddresses},
	CapabilityInputAttachment:                    {CapabilityShader},
	CapabilitySparseResidency:                    {CapabilityShader},
	CapabilityMinLod:                             {CapabilityShader},
	CapabilityImage1D:                            {CapabilitySampled1D},
	CapabilitySampledCubeArray:                   {CapabilityShader},
	CapabilityImageBuffer:                        {CapabilitySampledBuffer},
	CapabilityImageMSArray:                       {CapabilityShader},
	CapabilityStorageImageExtendedFormats:        {CapabilityShader},
	CapabilityImageQuery:                         {CapabilityShader},
	CapabilityDerivativeControl:                  {CapabilityShader},
	CapabilityInterpolationFunction:              {CapabilityShader},
	CapabilityTransformFeedback:                  {CapabilityShader},
	CapabilityGeometryStreams:                    {CapabilityGeometry},
	CapabilityStorageImageReadWithoutFormat:      {CapabilityShader},
	CapabilityStorageImageWriteWithoutFormat:     {CapabilityShader},
	CapabilityMultiViewport:                      {CapabilityGeometry},
	CapabilitySubgroupDispatch:                   {CapabilityDeviceEnqueue},
	CapabilityNamedBarrier:                       {CapabilityKernel},
	CapabilityPipeStorage:                        {CapabilityPipes},
	CapabilityGroupNonUniformVote:                {CapabilityGroupNonUniform},
	CapabilityGroupNonUniformArithmetic:          {CapabilityGroupNonUniform},
	CapabilityGroupNonUniformBallot:              {CapabilityGroupNonUniform},
	CapabilityGroupNonUniformShuffle:             {CapabilityGroupNonUniform},
	CapabilityGroupNonUniformShuffleRelative:     {CapabilityGroupNonUniform},
	CapabilityGroupNonUniformClustered:           {CapabilityGroupNonUniform},
	CapabilityGroupNonUniformQuad:                {CapabilityGroupNonUniform},
	CapabilityDrawParameters:                     {CapabilityShader},
	CapabilityUniformAndStorageBuffer16BitAccess: {CapabilityStorageBuffer16BitAccess},
	CapabilityMultiView:                          {CapabilityShader},
	CapabilityVariablePointersStorageBuffer:      {CapabilityShader},
	CapabilityVariablePointers:                   {CapabilityVariablePointersStorageBuffer},
}

// Requires returns the capabilities c directly depends on. The returned
// slice is shared and must not be modified.
func (c Capability) Requires() []Capability {
	return capabilityRequires[c]
}
