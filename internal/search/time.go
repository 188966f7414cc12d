package search

import "time"

// timeHandler paces iterative deepening against a UCI-provided clock. The
// teacher's own time_management.go declares this shape (StartTime,
// TimeStatus, Update) but calls UpdateStability/ShouldExtendTime/ExtendTime/
// SoftTimeExceeded/ShouldStopEarly from search.go without ever defining
// them, so those five are designed here from their call sites: best-move
// stability across iterations (the same best move; the score is not
// compared) shortens the session; instability lengthens it, up to a hard cap.
type timeHandler struct {
	start            time.Time
	softDeadline     time.Time
	hardDeadline     time.Time
	usingCustomDepth bool

	stableIterations int
	lastBestMove     uint16
	lastScore        int32
	extended         bool
}

const (
	overheadMs  = 30
	minMoveMs   = 5
	maxFraction = 0.7
	panicMs     = 1000
	panicFrac   = 0.9
)

func (th *timeHandler) init(remainingMs, incrementMs, movesLeftHint int, useCustomDepth bool) {
	th.usingCustomDepth = useCustomDepth
	th.stableIterations = 0
	th.lastBestMove = 0
	th.lastScore = 0
	th.extended = false

	if useCustomDepth {
		return
	}

	movesLeft := movesLeftHint
	if movesLeft <= 0 {
		movesLeft = 30
	}

	var moveTime int
	if incrementMs > 0 {
		if remainingMs < panicMs {
			moveTime = int(float64(incrementMs) * panicFrac)
		} else {
			moveTime = remainingMs/movesLeft + incrementMs
		}
	} else {
		moveTime = remainingMs / 40
	}

	if moveTime < minMoveMs {
		moveTime = minMoveMs
	}
	if cap := int(float64(remainingMs) * maxFraction); moveTime > cap {
		moveTime = cap
	}
	if moveTime > remainingMs-overheadMs {
		moveTime = remainingMs - overheadMs
	}
	if moveTime < minMoveMs {
		moveTime = minMoveMs
	}

	th.start = time.Now()
	th.softDeadline = th.start.Add(time.Duration(moveTime) * time.Millisecond)
	th.hardDeadline = th.start.Add(time.Duration(moveTime*3) * time.Millisecond)
}

// timeUp reports whether the hard deadline has passed; checked periodically
// mid-search to abort.
func (th *timeHandler) timeUp() bool {
	if th.usingCustomDepth {
		return false
	}
	return time.Now().After(th.hardDeadline)
}

// softTimeExceeded reports whether the soft per-move budget has passed,
// checked only between iterative-deepening iterations.
func (th *timeHandler) softTimeExceeded() bool {
	if th.usingCustomDepth {
		return false
	}
	return time.Now().After(th.softDeadline)
}

// updateStability tracks whether the best move changed between iterations;
// a stable best move across 4+ iterations lets the search stop as soon as
// the soft budget is exceeded instead of extending.
func (th *timeHandler) updateStability(score int32, best uint16) {
	if best == th.lastBestMove {
		th.stableIterations++
	} else {
		th.stableIterations = 0
	}
	th.lastBestMove = best
	th.lastScore = score
}

// shouldExtendTime reports whether the search should keep going past the
// soft deadline: true while the best move has been stable for fewer than 4
// iterations and no extension has been granted yet. The score is not
// consulted, so a sharp score drop alone does not extend the time.
func (th *timeHandler) shouldExtendTime() bool {
	if th.usingCustomDepth || th.extended {
		return false
	}
	return th.stableIterations < 4
}

// extendTime grants one extension of the soft deadline out toward the hard
// deadline, used at most once per search.
func (th *timeHandler) extendTime() {
	if th.extended {
		return
	}
	th.extended = true
	if th.hardDeadline.After(th.softDeadline) {
		th.softDeadline = th.start.Add(th.hardDeadline.Sub(th.start) * 2 / 3)
	}
}

// shouldStopEarly reports whether iterative deepening should stop before
// even starting another iteration, because a stable best move has already
// consumed most of the soft budget.
func (th *timeHandler) shouldStopEarly() bool {
	if th.usingCustomDepth {
		return false
	}
	if th.stableIterations < 6 {
		return false
	}
	softBudget := th.softDeadline.Sub(th.start)
	return time.Since(th.start) > softBudget/2
}
