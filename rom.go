// rom.go - ROM image loading for Nimbus16

package main

import (
	"fmt"
	"os"
)

// LoadROM reads a ROM image from filename. The image must be exactly
// ROMSize bytes - the processor's reset/IRQ/NMI vectors live at fixed
// offsets from the end of this exact-sized window, so a short or long
// image would silently misplace them rather than merely truncate.
func LoadROM(filename string) ([]byte, error) {
	image, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("loading ROM image: %w", err)
	}
	if len(image) != ROMSize {
		return nil, fmt.Errorf("loading ROM image: %s is %d bytes, want exactly %d", filename, len(image), ROMSize)
	}
	return image, nil
}
