package classifier

import "sort"

// Node is one decision tree node. Leaves carry the class probability
// distribution observed in their training partition.
type Node struct {
	Leaf      bool       `json:"leaf"`
	Feature   int        `json:"feature,omitempty"`
	Threshold float64    `json:"threshold,omitempty"`
	Left      *Node      `json:"left,omitempty"`
	Right     *Node      `json:"right,omitempty"`
	Probs     [3]float64 `json:"probs,omitempty"`
}

func (n *Node) classify(x []float64) [3]float64 {
	for !n.Leaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Probs
}

// buildTree grows a CART tree by greedy Gini splitting. Growth stops at
// maxDepth, below minSamplesSplit, or on a pure partition.
func buildTree(samples [][]float64, labels []int, depth, maxDepth, minSamplesSplit int) *Node {
	counts := classCounts(labels)

	if depth >= maxDepth || len(samples) < minSamplesSplit || isPure(counts) {
		return leaf(counts, len(labels))
	}

	feature, threshold, ok := bestSplit(samples, labels)
	if !ok {
		return leaf(counts, len(labels))
	}

	var leftX, rightX [][]float64
	var leftY, rightY []int
	for i, s := range samples {
		if s[feature] <= threshold {
			leftX = append(leftX, s)
			leftY = append(leftY, labels[i])
		} else {
			rightX = append(rightX, s)
			rightY = append(rightY, labels[i])
		}
	}
	if len(leftY) == 0 || len(rightY) == 0 {
		return leaf(counts, len(labels))
	}

	return &Node{
		Feature:   feature,
		Threshold: threshold,
		Left:      buildTree(leftX, leftY, depth+1, maxDepth, minSamplesSplit),
		Right:     buildTree(rightX, rightY, depth+1, maxDepth, minSamplesSplit),
	}
}

func leaf(counts [3]int, total int) *Node {
	n := &Node{Leaf: true}
	if total == 0 {
		return n
	}
	for i, c := range counts {
		n.Probs[i] = float64(c) / float64(total)
	}
	return n
}

func classCounts(labels []int) [3]int {
	var counts [3]int
	for _, l := range labels {
		counts[l]++
	}
	return counts
}

func isPure(counts [3]int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

// bestSplit scans every feature and every midpoint between adjacent distinct
// values, returning the split minimizing weighted Gini impurity.
func bestSplit(samples [][]float64, labels []int) (feature int, threshold float64, ok bool) {
	n := len(samples)
	if n < 2 {
		return 0, 0, false
	}
	nFeatures := len(samples[0])

	bestGini := gini(classCounts(labels), n)
	found := false

	order := make([]int, n)
	for f := 0; f < nFeatures; f++ {
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			return samples[order[a]][f] < samples[order[b]][f]
		})

		var leftCounts [3]int
		rightCounts := classCounts(labels)

		for i := 0; i < n-1; i++ {
			label := labels[order[i]]
			leftCounts[label]++
			rightCounts[label]--

			cur := samples[order[i]][f]
			next := samples[order[i+1]][f]
			if cur == next {
				continue
			}

			left := i + 1
			right := n - left
			weighted := (float64(left)*gini(leftCounts, left) +
				float64(right)*gini(rightCounts, right)) / float64(n)

			if weighted < bestGini {
				bestGini = weighted
				feature = f
				threshold = (cur + next) / 2
				found = true
			}
		}
	}

	return feature, threshold, found
}

func gini(counts [3]int, total int) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		impurity -= p * p
	}
	return impurity
}
