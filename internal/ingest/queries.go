package ingest

import "fmt"

// SearchQueries is the fixed list a full run covers, in run order.
var SearchQueries = []string{
	"remote software engineer",
	"remote developer",
	"remote frontend engineer",
	"remote backend engineer",
	"remote full stack developer",
	"remote devops engineer",
	"remote data scientist",
	"remote data analyst",
	"remote product manager",
	"remote product designer",
	"remote UX designer",
	"remote marketing manager",
	"remote content writer",
	"remote customer success",
	"remote technical writer",
	"work from anywhere developer",
	"work from anywhere engineer",
	"digital nomad friendly",
	"remote machine learning engineer",
	"remote cloud engineer",
}

// Partition returns the contiguous slice of queries owned by batch when the
// list is split into total chunks of ceil(len/total). The last chunk may be
// shorter and trailing batches may own nothing.
func Partition(queries []string, batch, total int) ([]string, error) {
	if total < 1 {
		return nil, fmt.Errorf("total batches must be positive, got %d", total)
	}
	if batch < 0 || batch >= total {
		return nil, fmt.Errorf("batch %d out of range [0, %d)", batch, total)
	}

	size := (len(queries) + total - 1) / total
	start := batch * size
	if start >= len(queries) {
		return []string{}, nil
	}
	end := start + size
	if end > len(queries) {
		end = len(queries)
	}

	return queries[start:end], nil
}
