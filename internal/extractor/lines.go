package extractor

import (
	"math"
	"sort"
	"strings"
)

// DefaultTolerance is the vertical band, in PDF points, within which
// fragments are treated as sitting on one baseline.
const DefaultTolerance = 3.0

// ReconstructLines rebuilds reading-order lines from positioned fragments.
// Fragments are bucketed by round(Y/tolerance); buckets run top to bottom
// and fragments inside a bucket run left to right. Pages keep their order.
func ReconstructLines(pages [][]Fragment, tolerance float64) []string {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	var lines []string
	for _, frags := range pages {
		rowMap := make(map[int][]Fragment)
		for _, f := range frags {
			if strings.TrimSpace(f.Text) == "" {
				continue
			}
			key := int(math.Round(f.Y / tolerance))
			rowMap[key] = append(rowMap[key], f)
		}

		keys := make([]int, 0, len(rowMap))
		for k := range rowMap {
			keys = append(keys, k)
		}
		// PDF Y goes bottom-to-top.
		sort.Sort(sort.Reverse(sort.IntSlice(keys)))

		for _, k := range keys {
			items := rowMap[k]
			sort.SliceStable(items, func(a, b int) bool {
				return items[a].X < items[b].X
			})
			parts := make([]string, len(items))
			for i, item := range items {
				parts[i] = item.Text
			}
			line := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}
