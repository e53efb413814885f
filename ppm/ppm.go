// Package ppm writes a decoded image out as a binary (P6) PPM file, an
// external collaborator in the sense of spec §1: a format the core
// decoder neither knows about nor depends on. Grounded on the
// teacher's utils.CreatePPM, generalized to take the decoder's actual
// RGBA8 output instead of writing bytes inline during the decode loop.
package ppm

import (
	"bufio"
	"fmt"
	"os"

	"pngo/pngo"
)

// Write encodes img as a binary PPM file at path, dropping the alpha
// channel (PPM has no alpha plane).
func Write(path string, img *pngo.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return err
	}

	for i := 0; i < len(img.Data); i += 4 {
		if _, err := w.Write(img.Data[i : i+3]); err != nil {
			return err
		}
	}

	return w.Flush()
}
