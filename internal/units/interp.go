package units

// Linspace returns n evenly spaced values from start to end, both included.
func Linspace(start, end float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = end
	return out
}

// LinspaceVec interpolates each component of start..end over n points.
func LinspaceVec(start, end []float64, n int) [][]float64 {
	if n <= 0 || len(start) != len(end) {
		return nil
	}
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, len(start))
	}
	for j := range start {
		col := Linspace(start[j], end[j], n)
		for i := range out {
			out[i][j] = col[i]
		}
	}
	return out
}
