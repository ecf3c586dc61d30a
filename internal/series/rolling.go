package series

// RollingMean computes the k-point moving average over the rows' counts.
// The result is aligned index-for-index with rows; positions with fewer than
// k points available are nil rather than padded with partial windows.
func RollingMean(rows []Row, k int) []*float64 {
	if k <= 0 {
		return nil
	}
	out := make([]*float64, len(rows))
	var sum float64
	for i, r := range rows {
		sum += r.Count
		if i >= k {
			sum -= rows[i-k].Count
		}
		if i >= k-1 {
			mean := sum / float64(k)
			out[i] = &mean
		}
	}
	return out
}
