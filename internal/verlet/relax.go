package verlet

// MinSeparation is the stick length below which a correction is skipped
// because its direction is undefined.
const MinSeparation = 1e-9

// Relax runs one Gauss-Seidel pass over sticks, moving each pair towards its
// rest length. Later sticks see corrections made by earlier ones. A pinned
// endpoint never moves; if both are pinned the stick stays as it is.
func Relax(points []Point, sticks []Stick) {
	for _, s := range sticks {
		a := &points[s.A]
		b := &points[s.B]
		delta := b.Pos.Sub(a.Pos)
		dist := delta.Len()
		if dist < MinSeparation {
			continue
		}
		offset := delta.Mul((s.RestLength - dist) / dist / 2)
		if !a.Pinned {
			a.Pos = a.Pos.Sub(offset)
		}
		if !b.Pinned {
			b.Pos = b.Pos.Add(offset)
		}
	}
}
