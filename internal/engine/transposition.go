package engine

import (
	"unsafe"

	"github.com/pkg/errors"
	"github.com/trilltino/xfchess/internal/board"
)

// SlotsPerBucket is the number of entries probed per hash bucket.
const SlotsPerBucket = 5

// MaxHashMB bounds the table size accepted by NewTranspositionTable.
const MaxHashMB = 1 << 16

// TTEntry is a cached search result. There is no bound flag: a hit with
// enough depth is used as an exact score.
type TTEntry struct {
	Key      PositionKey
	Move     board.Move
	Score    int32
	Depth    int8
	Priority int32
	valid    bool
}

type bucket [SlotsPerBucket]TTEntry

// TranspositionTable is a fixed-size, bucketed result cache. It is owned
// by one engine and is not safe for concurrent use.
type TranspositionTable struct {
	buckets []bucket

	// Statistics
	probes uint64
	hits   uint64
	stores uint64
}

// NewTranspositionTable creates a transposition table with the given size in MB.
func NewTranspositionTable(sizeMB int) (*TranspositionTable, error) {
	if sizeMB <= 0 || sizeMB > MaxHashMB {
		return nil, errors.Wrapf(ErrInvalidHashSize, "%d MB", sizeMB)
	}
	n := sizeMB * 1024 * 1024 / int(unsafe.Sizeof(bucket{}))
	if n == 0 {
		return nil, errors.Wrapf(ErrInvalidHashSize, "%d MB holds no bucket", sizeMB)
	}
	return &TranspositionTable{buckets: make([]bucket, n)}, nil
}

// Probe returns the entry stored for key, if any.
func (tt *TranspositionTable) Probe(key PositionKey) (TTEntry, bool) {
	tt.probes++
	b := &tt.buckets[key.Index(len(tt.buckets))]
	for i := range b {
		if b[i].valid && b[i].Key == key {
			tt.hits++
			return b[i], true
		}
	}
	return TTEntry{}, false
}

// Store saves a result. A slot already holding key is overwritten;
// otherwise the slot with the lowest priority (empty slots first) is.
func (tt *TranspositionTable) Store(key PositionKey, move board.Move, score, depth, priority int) {
	tt.stores++
	b := &tt.buckets[key.Index(len(tt.buckets))]
	victim := 0
	for i := range b {
		if b[i].valid && b[i].Key == key {
			victim = i
			break
		}
		if !b[i].valid {
			if b[victim].valid {
				victim = i
			}
			continue
		}
		if b[victim].valid && b[i].Priority < b[victim].Priority {
			victim = i
		}
	}
	b[victim] = TTEntry{
		Key:      key,
		Move:     board.NewMove(move.From, move.To),
		Score:    int32(score),
		Depth:    int8(depth),
		Priority: int32(priority),
		valid:    true,
	}
}

// Priority is the replacement priority of a result searched to depth at
// the given game ply: deeper and more recent entries are kept longer.
func Priority(depth, recency int) int {
	return depth*10 + recency
}

// Clear empties the table and resets the statistics.
func (tt *TranspositionTable) Clear() {
	clear(tt.buckets)
	tt.probes, tt.hits, tt.stores = 0, 0, 0
}

// Len returns the number of occupied slots.
func (tt *TranspositionTable) Len() int {
	n := 0
	for i := range tt.buckets {
		for j := range tt.buckets[i] {
			if tt.buckets[i][j].valid {
				n++
			}
		}
	}
	return n
}

// Capacity returns the total number of slots.
func (tt *TranspositionTable) Capacity() int {
	return len(tt.buckets) * SlotsPerBucket
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// scoreToTT makes a mate score relative to the node being stored.
func scoreToTT(score, ply int) int {
	if score > mateThreshold {
		return score + ply
	}
	if score < -mateThreshold {
		return score - ply
	}
	return score
}

// scoreFromTT converts a stored mate score back to the current ply.
func scoreFromTT(score, ply int) int {
	if score > mateThreshold {
		return score - ply
	}
	if score < -mateThreshold {
		return score + ply
	}
	return score
}
