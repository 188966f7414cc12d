package search

import "fmt"

// formatInfo renders one UCI "info" line for a completed iterative-deepening
// iteration, mirroring the teacher's inline fmt.Println call in rootsearch.
func formatInfo(depth int, score int32, nodes uint64, pv PVLine) string {
	return fmt.Sprintf("info depth %d score %s nodes %d pv%s", depth, scoreToUCI(score), nodes, pvSuffix(pv))
}

func pvSuffix(pv PVLine) string {
	s := pv.String()
	if s == "" {
		return ""
	}
	return " " + s
}

// scoreToUCI renders score as "cp N" or "mate N", the way the teacher's
// getMateOrCPScore does (adapted from the Blunder engine, per its comment).
func scoreToUCI(score int32) string {
	if score >= Checkmate {
		pliesToMate := MaxScore - score
		if pliesToMate < 0 {
			pliesToMate = 0
		}
		return fmt.Sprintf("mate %d", (pliesToMate+1)/2)
	}
	if score <= -Checkmate {
		pliesToMate := MaxScore + score
		if pliesToMate < 0 {
			pliesToMate = 0
		}
		return fmt.Sprintf("mate %d", -(pliesToMate+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}
