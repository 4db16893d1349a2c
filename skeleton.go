package main

// Skeletonizer thins a binary mask to a 1-pixel-wide skeleton.
// Implementations must be deterministic.
type Skeletonizer func(mask *Mask) *Mask

// ZhangSuenThinning applies the Zhang–Suen thinning algorithm and returns a
// new mask. Cells outside the raster count as background.
func ZhangSuenThinning(mask *Mask) *Mask {
	out := mask.Clone()

	changed := true
	for changed {
		changed = false
		for step := 0; step < 2; step++ {
			toRemove := make([]Node, 0)
			for r := 0; r < out.Height; r++ {
				for c := 0; c < out.Width; c++ {
					if !out.Set(r, c) {
						continue
					}

					// p[1..8] = P2..P9, clockwise from north
					p := [9]int{
						1,
						boolToInt(out.Set(r-1, c)),
						boolToInt(out.Set(r-1, c+1)),
						boolToInt(out.Set(r, c+1)),
						boolToInt(out.Set(r+1, c+1)),
						boolToInt(out.Set(r+1, c)),
						boolToInt(out.Set(r+1, c-1)),
						boolToInt(out.Set(r, c-1)),
						boolToInt(out.Set(r-1, c-1)),
					}

					n := p[1] + p[2] + p[3] + p[4] + p[5] + p[6] + p[7] + p[8]
					if n < 2 || n > 6 {
						continue
					}

					// 0->1 transitions around the ring
					transitions := 0
					for i := 1; i <= 8; i++ {
						if p[i] == 0 && p[i%8+1] == 1 {
							transitions++
						}
					}
					if transitions != 1 {
						continue
					}

					if step == 0 {
						if p[1]*p[3]*p[5] != 0 || p[3]*p[5]*p[7] != 0 {
							continue
						}
					} else {
						if p[1]*p[3]*p[7] != 0 || p[1]*p[5]*p[7] != 0 {
							continue
						}
					}

					toRemove = append(toRemove, Node{Row: r, Col: c})
				}
			}
			if len(toRemove) > 0 {
				changed = true
				for _, n := range toRemove {
					out.SetCell(n.Row, n.Col, false)
				}
			}
		}
	}

	return out
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
