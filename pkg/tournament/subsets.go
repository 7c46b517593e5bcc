package tournament

// Subsets enumerates all k-element subsets of {0, ..., n-1} in
// lexicographic order, as index combinations (not permutations).
func Subsets(n, k int) [][]int {
	if k <= 0 || k > n {
		return nil
	}
	var out [][]int
	combo := make([]int, k)
	for i := range combo {
		combo[i] = i
	}
	for {
		out = append(out, append([]int(nil), combo...))
		i := k - 1
		for i >= 0 && combo[i] == i+n-k {
			i--
		}
		if i < 0 {
			break
		}
		combo[i]++
		for j := i + 1; j < k; j++ {
			combo[j] = combo[j-1] + 1
		}
	}
	return out
}
