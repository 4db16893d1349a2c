package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyMask indicates a mask with no rows or no columns
	ErrEmptyMask = errors.New("mask must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths
	ErrNonRectangular = errors.New("all mask rows must have the same length")
)

// Mask is a binary raster. Non-zero cells are foreground (road/path pixels).
type Mask struct {
	Height int
	Width  int
	Pix    []uint8 // row-major, len = Height*Width
}

// NewMask creates an all-background mask
func NewMask(height, width int) *Mask {
	return &Mask{
		Height: height,
		Width:  width,
		Pix:    make([]uint8, height*width),
	}
}

// MaskFromRows builds a mask from a rectangular 2D array
func MaskFromRows(rows [][]int) (*Mask, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMask
	}
	w := len(rows[0])
	m := NewMask(len(rows), w)
	for r, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, r, len(row), w)
		}
		for c, v := range row {
			if v != 0 {
				m.Pix[r*w+c] = 1
			}
		}
	}
	return m, nil
}

// InBounds reports whether (row, col) lies within the mask
func (m *Mask) InBounds(row, col int) bool {
	return row >= 0 && row < m.Height && col >= 0 && col < m.Width
}

// Set reports whether (row, col) is an in-bounds foreground cell
func (m *Mask) Set(row, col int) bool {
	return m.InBounds(row, col) && m.Pix[row*m.Width+col] != 0
}

// SetCell marks (row, col) as foreground or background. Out-of-bounds writes are ignored.
func (m *Mask) SetCell(row, col int, on bool) {
	if !m.InBounds(row, col) {
		return
	}
	if on {
		m.Pix[row*m.Width+col] = 1
	} else {
		m.Pix[row*m.Width+col] = 0
	}
}

// Count returns the number of foreground cells
func (m *Mask) Count() int {
	count := 0
	for _, v := range m.Pix {
		if v != 0 {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the mask
func (m *Mask) Clone() *Mask {
	clone := NewMask(m.Height, m.Width)
	copy(clone.Pix, m.Pix)
	return clone
}

// MaskFromImage thresholds an image. Pixels brighter than 127 are foreground.
func MaskFromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dy(), b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			gray := (r*299 + g*587 + bl*114 + 500) / 1000 >> 8
			if gray > 127 {
				m.Pix[(y-b.Min.Y)*m.Width+(x-b.Min.X)] = 1
			}
		}
	}
	return m
}

// LoadMask reads a mask from a PNG image or a JSON 2D array, chosen by extension
func LoadMask(filename string) (*Mask, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		f, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open mask: %w", err)
		}
		defer f.Close()

		img, err := png.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode mask image: %w", err)
		}
		return MaskFromImage(img), nil

	case ".json":
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read mask: %w", err)
		}
		var rows [][]int
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal mask: %w", err)
		}
		return MaskFromRows(rows)
	}

	return nil, fmt.Errorf("unsupported mask format %q (want .png or .json)", filepath.Ext(filename))
}
