package algorithms

// Community represents a detected community
type Community struct {
	ID      int
	Nodes   []int64
	Size    int
	Density float64 // Edge density within community
}

// CommunityDetectionResult contains detected communities
type CommunityDetectionResult struct {
	Communities   []*Community
	Modularity    float64       // Quality measure of the partitioning
	NodeCommunity map[int64]int // Node ID -> Community ID
	Levels        int
}

// Count returns the number of communities
func (r *CommunityDetectionResult) Count() int {
	return len(r.Communities)
}
