package model

import (
	"testing"

	vm "local/vector_math"
)

func TestUboBytesMatchDeclaredSize(t *testing.T) {
	ubo := UniformBufferObject{
		View:       vm.NewUnitMat(4),
		Projection: vm.NewUnitMat(4),
	}
	b := ubo.Bytes()
	if len(b) != int(SizeOfUbo()) {
		t.Errorf("UBO serializes to %d Byte, declared size is %d Byte", len(b), SizeOfUbo())
	}
}

func TestModelPushConstantsSize(t *testing.T) {
	// One 4x4 float32 model matrix
	if ModelPushConstantsSize() != 64 {
		t.Errorf("Expected 64 Byte of push constants, got %d", ModelPushConstantsSize())
	}
}
