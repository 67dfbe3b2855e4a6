package engine

import (
	"fmt"
	"math"
)

// lmrTable[depth][moveNumber] holds the late-move reduction in plies.
var lmrTable [MaxDepth + 1][64]int

func init() {
	for d := 1; d <= MaxDepth; d++ {
		for m := 1; m < 64; m++ {
			lmrTable[d][m] = int(0.75 + math.Log(float64(d))*math.Log(float64(m))/2.25)
		}
	}
}

// formatScore renders a score for an info line: centipawns, or moves to
// mate with the mating side's sign.
func formatScore(score int) string {
	if score >= mateThreshold {
		return fmt.Sprintf("mate %d", (MateValue-score+1)/2)
	}
	if score <= -mateThreshold {
		return fmt.Sprintf("mate %d", -(MateValue+score+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}
