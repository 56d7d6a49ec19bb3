package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestAllOfAinB(t *testing.T) {
	b := []string{"VK_KHR_surface", "VK_KHR_swapchain", "VK_EXT_debug_utils"}
	if !AllOfAinB([]string{"VK_KHR_swapchain"}, b) {
		t.Errorf("Expected subset to be reported as contained")
	}
	if !AllOfAinB([]string{}, b) {
		t.Errorf("Empty set is contained in everything")
	}
	if AllOfAinB([]string{"VK_KHR_swapchain", "VK_missing"}, b) {
		t.Errorf("Expected missing element to be detected")
	}
}

func TestRawBytesOfVec3Slice(t *testing.T) {
	type v3 struct{ X, Y, Z float32 }
	in := []v3{{1, 2, 3}, {4, 5, 6}}
	out := RawBytes(in)
	if len(out) != 24 {
		t.Errorf("Expected 24 Byte for 2 tightly packed 3-float structs, got %d", len(out))
	}
}

func TestToByteArr(t *testing.T) {
	in := []float32{1}
	out := ToByteArr(in)
	if len(out) != 4 {
		t.Fatalf("Expected 4 Byte, got %d", len(out))
	}
	// 1.0f little endian -> 0x3f800000
	if out[0] != 0x00 || out[1] != 0x00 || out[2] != 0x80 || out[3] != 0x3f {
		t.Errorf("Unexpected byte representation of 1.0: %v", out)
	}
}

func TestAsUint32Arr(t *testing.T) {
	in := []byte{0x01, 0x00, 0x00, 0x00, 0xff, 0x00, 0x00, 0x00}
	out := AsUint32Arr(in)
	if len(out) != 2 {
		t.Fatalf("Expected 2 words, got %d", len(out))
	}
	if out[0] != 1 || out[1] != 255 {
		t.Errorf("Unexpected words: %v", out)
	}
}

func TestTerminatedStr(t *testing.T) {
	if TerminatedStr("abc") != "abc\x00" {
		t.Errorf("Expected terminator to be appended")
	}
	if TerminatedStr("abc\x00") != "abc\x00" {
		t.Errorf("Already terminated strings must not change")
	}
}

func TestErrDeviceAllocationWrapping(t *testing.T) {
	err := fmt.Errorf("%w: device memory (1024 bytes): some driver detail", ErrDeviceAllocation)
	if !errors.Is(err, ErrDeviceAllocation) {
		t.Errorf("Wrapped allocation errors should still match ErrDeviceAllocation")
	}
}
