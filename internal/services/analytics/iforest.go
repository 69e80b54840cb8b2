package analytics

import (
	"math"
	"math/rand"
)

// isolationForest is an ensemble of randomly built isolation trees.
// Anomalous points isolate in fewer splits, so shorter average path
// lengths mean more anomalous. Scores follow the standard construction
// s(x) = 2^(-E[h(x)]/c(n)) in (0, 1), higher meaning more isolated.
// Building from a fixed seed makes the whole fit deterministic.
type isolationForest struct {
	trees      []*isoNode
	sampleSize int
}

// isoNode is one node of an isolation tree. Leaves carry the size of
// the sample partition that ended there.
type isoNode struct {
	splitAttr int
	splitVal  float64
	left      *isoNode
	right     *isoNode
	size      int
}

// fitIsolationForest builds the ensemble over the feature matrix.
// Each tree sees a subsample of at most sampleSize points drawn
// without replacement.
func fitIsolationForest(features [][]float64, trees, sampleSize int, seed int64) *isolationForest {
	rng := rand.New(rand.NewSource(seed))

	n := len(features)
	if sampleSize > n {
		sampleSize = n
	}
	maxDepth := int(math.Ceil(math.Log2(float64(sampleSize)))) + 1

	forest := &isolationForest{sampleSize: sampleSize}
	for i := 0; i < trees; i++ {
		sample := features
		if sampleSize < n {
			perm := rng.Perm(n)
			sample = make([][]float64, sampleSize)
			for j := 0; j < sampleSize; j++ {
				sample[j] = features[perm[j]]
			}
		}
		forest.trees = append(forest.trees, buildIsoTree(sample, rng, 0, maxDepth))
	}
	return forest
}

func buildIsoTree(sample [][]float64, rng *rand.Rand, depth, maxDepth int) *isoNode {
	if depth >= maxDepth || len(sample) <= 1 {
		return &isoNode{size: len(sample)}
	}

	// Candidate attributes are those with any spread left in this
	// partition; without spread the partition cannot be split further.
	dims := len(sample[0])
	var candidates []int
	for attr := 0; attr < dims; attr++ {
		lo, hi := attrRange(sample, attr)
		if hi > lo {
			candidates = append(candidates, attr)
		}
	}
	if len(candidates) == 0 {
		return &isoNode{size: len(sample)}
	}

	attr := candidates[rng.Intn(len(candidates))]
	lo, hi := attrRange(sample, attr)
	split := lo + rng.Float64()*(hi-lo)

	var left, right [][]float64
	for _, point := range sample {
		if point[attr] < split {
			left = append(left, point)
		} else {
			right = append(right, point)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &isoNode{size: len(sample)}
	}

	return &isoNode{
		splitAttr: attr,
		splitVal:  split,
		left:      buildIsoTree(left, rng, depth+1, maxDepth),
		right:     buildIsoTree(right, rng, depth+1, maxDepth),
		size:      len(sample),
	}
}

func attrRange(sample [][]float64, attr int) (float64, float64) {
	lo, hi := sample[0][attr], sample[0][attr]
	for _, point := range sample[1:] {
		if point[attr] < lo {
			lo = point[attr]
		}
		if point[attr] > hi {
			hi = point[attr]
		}
	}
	return lo, hi
}

// score returns the anomaly score of one point: 2^(-E[h(x)]/c(n)),
// where h is the path length through each tree and c(n) the expected
// path length of an unsuccessful BST search over n points.
func (f *isolationForest) score(point []float64) float64 {
	if len(f.trees) == 0 {
		return 0
	}
	c := averagePathLength(f.sampleSize)
	if c == 0 {
		// Degenerate fit over a single point; 0.5 is the neutral score.
		return 0.5
	}
	total := 0.0
	for _, tree := range f.trees {
		total += pathLength(point, tree, 0)
	}
	mean := total / float64(len(f.trees))
	return math.Pow(2, -mean/c)
}

func pathLength(point []float64, node *isoNode, depth int) float64 {
	if node.left == nil {
		return float64(depth) + averagePathLength(node.size)
	}
	if point[node.splitAttr] < node.splitVal {
		return pathLength(point, node.left, depth+1)
	}
	return pathLength(point, node.right, depth+1)
}

// averagePathLength is c(n), the normalization term from the isolation
// forest construction. 0.5772156649 is the Euler-Mascheroni constant.
func averagePathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	if n == 2 {
		return 1
	}
	h := math.Log(float64(n-1)) + 0.5772156649
	return 2*h - 2*float64(n-1)/float64(n)
}
