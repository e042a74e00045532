// Package halshader bridges compiled shader permutations to wgpu HAL
// shader modules. A HAL-backed implementation of the drawing capability
// interface uses it to turn the pipeline's generated permutations into
// device shader modules.
package halshader

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/hwdraw"
)

// Module creates a HAL shader module from a compiled permutation. The
// permutation's SPIR-V words are consumed directly; the WGSL text is kept
// only as a label aid.
func Module(device hal.Device, module hwdraw.ShaderModule) (hal.ShaderModule, error) {
	if len(module.SPIRV) == 0 {
		return nil, fmt.Errorf("halshader: %s: no SPIR-V words", module.Label)
	}
	sm, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: module.Label,
		Source: hal.ShaderSource{
			SPIRV: module.SPIRV,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("halshader: %s: %w", module.Label, err)
	}
	return sm, nil
}
