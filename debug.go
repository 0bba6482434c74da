package qraft

import (
	"fmt"
	"os"
	"time"
)

// debugLog prints render time and triangle counts to stderr.
func (s *Scene) debugLog(stats FrameStats, elapsed time.Duration) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[qraft] frame %d | render: %v | instances: %d | triangles: %d | drawn: %d\n",
		s.frame, elapsed, stats.Instances, stats.Triangles, stats.Drawn)
	_, _ = fmt.Fprintf(os.Stderr,
		"[qraft] culled: back-face %d | offscreen %d | unprojectable %d\n",
		stats.BackFace, stats.Offscreen, stats.Unprojectable)
	if stats.Err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[qraft] frame %d skipped: %v\n", s.frame, stats.Err)
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(g *Group) {
	depth := 0
	for p := g; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[qraft] warning: tree depth %d exceeds %d (group %q)\n",
			depth, debugMaxTreeDepth, g.Name)
	}
}

// debugCheckChildCount warns on stderr if a group has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(g *Group) {
	if len(g.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[qraft] warning: group %q has %d children (threshold %d)\n",
			g.Name, len(g.children), debugMaxChildCount)
	}
}
