package problemgen

// dedup drops questions whose normalized text already appeared earlier in
// the batch, keeping first occurrences in order.
func dedup(b Batch) (Batch, int) {
	seen := make(map[string]struct{}, len(b))
	out := b[:0:0]
	for _, q := range b {
		key := normalize(q.Text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, q)
	}
	return out, len(b) - len(out)
}
