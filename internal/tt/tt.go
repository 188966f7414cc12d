// Package tt implements a clustered transposition table: four entries per
// cluster, generation+depth replacement, and mate-score normalization by
// search ply so stored mate scores stay meaningful across calls at different
// plies.
package tt

import "chess-engine/internal/board"

// Bound records which side of the search window an entry's score is valid
// on, the same three-way split the teacher calls AlphaFlag/BetaFlag/ExactFlag.
type Bound uint8

const (
	BoundNone  Bound = iota
	BoundExact       // score is exact
	BoundLower       // score is a lower bound (failed high, beta cutoff)
	BoundUpper       // score is an upper bound (failed low, all-node)
)

const clusterSize = 4

// Unusable is returned by Probe's score when the stored entry can't be used.
const Unusable = -32750

// Checkmate mirrors the search package's mate-score threshold; scores beyond
// it are mate scores and get ply-normalized on store/probe.
const Checkmate = 20000

// Entry is one transposition table slot.
type Entry struct {
	Key        uint64
	Move       board.Move
	Score      int16
	Depth      int8
	Bound      Bound
	Generation uint8
}

// Table is a fixed-size, power-of-two-free (modulo-indexed) cluster table.
// Not safe for concurrent use by multiple searcher goroutines without
// external synchronization.
type Table struct {
	entries      []Entry
	clusterCount uint64
	generation   uint8
}

// New allocates a table sized to approximately sizeMB megabytes.
func New(sizeMB int) *Table {
	t := &Table{}
	t.Resize(sizeMB)
	return t
}

// Resize reallocates the table to approximately sizeMB megabytes, discarding
// all entries.
func (t *Table) Resize(sizeMB int) {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	const entrySize = uint64(16) // Key(8)+Move(2)+Score(2)+Depth(1)+Bound(1)+Generation(1), rounded
	totalBytes := uint64(sizeMB) * 1024 * 1024
	clusterBytes := entrySize * clusterSize
	clusterCount := totalBytes / clusterBytes
	if clusterCount == 0 {
		clusterCount = 1
	}
	t.clusterCount = clusterCount
	t.entries = make([]Entry, clusterCount*clusterSize)
	t.generation = 0
}

// Clear zeroes every entry without reallocating, for the UCI "Clear Hash"
// option and ucinewgame.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = Entry{}
	}
	t.generation = 0
}

// NewSearch bumps the generation counter, used by Store's replacement policy
// to prefer entries from the current search over stale ones from a previous
// position.
func (t *Table) NewSearch() {
	t.generation++
}

func (t *Table) clusterBase(key uint64) int {
	return int((key % t.clusterCount) * clusterSize)
}

// Probe looks up key and returns the raw entry (zero value if absent) plus
// whether it was found.
func (t *Table) Probe(key uint64) (Entry, bool) {
	if t.clusterCount == 0 {
		return Entry{}, false
	}
	base := t.clusterBase(key)
	for i := 0; i < clusterSize; i++ {
		e := t.entries[base+i]
		if e.Key == key && (e.Key != 0 || e.Bound != BoundNone) {
			return e, true
		}
	}
	return Entry{}, false
}

// Usable reports whether the (already-probed) entry can resolve the
// alpha/beta window at depth/ply without searching further, and returns the
// ply-denormalized score to use.
func Usable(e Entry, found bool, depth int, alpha, beta int32, ply int) (score int32, ok bool) {
	if !found || int(e.Depth) < depth {
		return Unusable, false
	}
	norm := int32(e.Score)
	if norm > Checkmate {
		norm -= int32(ply)
	} else if norm < -Checkmate {
		norm += int32(ply)
	}
	switch e.Bound {
	case BoundExact:
		return norm, true
	case BoundLower:
		if norm >= beta {
			return norm, true
		}
	case BoundUpper:
		if norm <= alpha {
			return norm, true
		}
	}
	return Unusable, false
}

// Store writes an entry into key's cluster, preferring (in order) an
// existing slot for the same key, an empty slot, then the shallowest/oldest
// entry in the cluster — the teacher's replacement policy, extended with a
// generation check so a fresher search always displaces a stale one
// regardless of depth.
func (t *Table) Store(key uint64, move board.Move, score int32, depth int, bound Bound, ply int) {
	if t.clusterCount == 0 {
		return
	}
	if score > Checkmate {
		score += int32(ply)
	} else if score < -Checkmate {
		score -= int32(ply)
	}

	base := t.clusterBase(key)
	target := -1
	for i := 0; i < clusterSize; i++ {
		if t.entries[base+i].Key == key {
			target = base + i
			break
		}
	}
	if target == -1 {
		for i := 0; i < clusterSize; i++ {
			if t.entries[base+i].Bound == BoundNone {
				target = base + i
				break
			}
		}
	}
	if target == -1 {
		target = base
		worst := t.entries[base]
		for i := 1; i < clusterSize; i++ {
			e := t.entries[base+i]
			if e.Generation != t.generation && worst.Generation == t.generation {
				target = base + i
				worst = e
				continue
			}
			if (e.Generation != t.generation) == (worst.Generation != t.generation) && e.Depth < worst.Depth {
				target = base + i
				worst = e
			}
		}
	}

	t.entries[target] = Entry{
		Key:        key,
		Move:       move,
		Score:      int16(score),
		Depth:      int8(depth),
		Bound:      bound,
		Generation: t.generation,
	}
}

// Hashfull estimates, in permille, how full the table is (sampled over the
// first 1000 clusters, as UCI's "hashfull" info field expects).
func (t *Table) Hashfull() int {
	if t.clusterCount == 0 {
		return 0
	}
	sample := t.clusterCount
	if sample > 1000 {
		sample = 1000
	}
	used := 0
	for i := uint64(0); i < sample; i++ {
		base := int(i * clusterSize)
		for j := 0; j < clusterSize; j++ {
			if t.entries[base+j].Bound != BoundNone {
				used++
			}
		}
	}
	return used * 1000 / int(sample*clusterSize)
}
