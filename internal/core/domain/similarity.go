package domain

// SimilarPair is an unordered pair of corpus positions with their cosine
// similarity. I is always less than J.
type SimilarPair struct {
	I     int
	J     int
	Score float64

	// RecordI and RecordJ are the record ids at I and J, when known.
	RecordI string
	RecordJ string
}

// Neighbor is a single corpus position ranked against a query vector.
type Neighbor struct {
	// Index is the corpus position of the match.
	Index int

	// RecordID is the article identifier of the match.
	RecordID string

	// Similarity is the cosine similarity in [-1, 1].
	Similarity float64

	// Distance is the cosine distance in [0, 2], 1 - Similarity.
	Distance float64
}

// NeighborReport holds both query forms for one query vector.
type NeighborReport struct {
	// Target is the record id of the stored query vector. It is empty
	// for free-text queries.
	Target string

	// Similar is ranked by descending similarity over every stored vector.
	Similar []Neighbor

	// Nearest is ranked by ascending distance through the HNSW graph.
	Nearest []Neighbor

	// Agreement is the fraction of Similar ids also present in Nearest.
	// Values below 1 are approximate-search misses.
	Agreement float64
}

// MetricCosine is the only distance metric used by the pipeline.
const MetricCosine = "cosine"

// SimilarityFromDistance converts a cosine distance to a similarity.
func SimilarityFromDistance(d float64) float64 {
	return 1 - d
}
