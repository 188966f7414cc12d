package search

// cutStatistics collects counts for each pruning/cutoff mechanism, surfaced
// only through logging diagnostics, never the UCI protocol itself.
type cutStatistics struct {
	ttCutoffs         uint64
	nullMoveCutoffs   uint64
	staticNullCutoffs uint64
	futilityPrunes    uint64
	lateMovePrunes    uint64
	betaCutoffs       uint64
	qStandPatCutoffs  uint64
	qBetaCutoffs      uint64
}

func (c *cutStatistics) reset() {
	*c = cutStatistics{}
}
