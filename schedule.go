// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package hashsum

import (
	"sort"
)

// Helper struct for sorting jobs based on input size
type lane struct {
	size int64
	pos  int
}

type lanes []lane

func (lns lanes) Len() int      { return len(lns) }
func (lns lanes) Swap(i, j int) { lns[i], lns[j] = lns[j], lns[i] }

// Less orders known sizes largest first and unknown sizes last, keeping
// input order among equals.
func (lns lanes) Less(i, j int) bool {
	a, b := lns[i], lns[j]
	switch {
	case a.size < 0 && b.size < 0:
		return a.pos < b.pos
	case a.size < 0:
		return false
	case b.size < 0:
		return true
	case a.size != b.size:
		return a.size > b.size
	}
	return a.pos < b.pos
}

// scheduleJobs returns job indices in the order they should be started so
// that long inputs do not end up running alone at the tail of a batch.
func scheduleJobs(jobs []Job) []int {
	sorted := make(lanes, len(jobs))
	for i, job := range jobs {
		sorted[i] = lane{size: job.Size, pos: i}
	}
	sort.Sort(sorted)

	order := make([]int, len(sorted))
	for i, l := range sorted {
		order[i] = l.pos
	}
	return order
}
