//go:build !nogpu

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/stroke.wgsl
var strokeShaderSource string

// compileShader compiles WGSL to SPIR-V words.
func compileShader(source string) ([]uint32, error) {
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile stroke shader: %w", err)
	}
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("compile stroke shader: SPIR-V length %d is not word aligned", len(spirv))
	}
	return spirvWords(spirv), nil
}

// spirvWords converts little-endian SPIR-V bytes to 32-bit words.
func spirvWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words
}

func createShaderModule(device hal.Device, label string, source string) (hal.ShaderModule, error) {
	code, err := compileShader(source)
	if err != nil {
		return nil, err
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: code},
	})
}
