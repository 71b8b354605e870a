package game

import (
	"encoding/binary"
	"hash/fnv"
)

// History is the per-session record the pilot consults to notice when it is
// repeating itself: a bounded FIFO of state fingerprints plus the last few
// chosen headings. One History belongs to exactly one game session and is
// cleared on restart; it is never shared.
type History struct {
	capacity int
	keys     []uint64
	counts   map[uint64]int

	headings    []Direction
	headingsCap int
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		capacity:    capacity,
		counts:      make(map[uint64]int, capacity),
		headingsCap: HeadingHistoryLength,
	}
}

// Fingerprint canonically encodes the full body sequence plus the food cell
// into a comparable key. Structural, not string based: FNV-1a over the
// little-endian coordinate stream. Equal states always collide; unequal
// states collide only with hash probability.
func Fingerprint(body Body, food Cell) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeCell := func(c Cell) {
		binary.LittleEndian.PutUint32(buf[0:4], uint32(int32(c.X)))
		binary.LittleEndian.PutUint32(buf[4:8], uint32(int32(c.Y)))
		h.Write(buf[:])
	}
	writeCell(food)
	for _, c := range body {
		writeCell(c)
	}
	return h.Sum64()
}

// RecordAndCheckLoop appends key to the FIFO, evicting the oldest entry once
// full, and reports whether key was already present before this insertion.
func (h *History) RecordAndCheckLoop(key uint64) bool {
	seen := h.counts[key] > 0

	if len(h.keys) == h.capacity {
		oldest := h.keys[0]
		h.keys = h.keys[1:]
		h.counts[oldest]--
		if h.counts[oldest] == 0 {
			delete(h.counts, oldest)
		}
	}
	h.keys = append(h.keys, key)
	h.counts[key]++

	return seen
}

// Contains reports membership without recording anything. The move evaluator
// uses this on simulated states; only the finally chosen state is recorded.
func (h *History) Contains(key uint64) bool {
	return h.counts[key] > 0
}

// RecordHeading appends the chosen heading, keeping only the most recent
// entries.
func (h *History) RecordHeading(d Direction) {
	h.headings = append(h.headings, d)
	if len(h.headings) > h.headingsCap {
		h.headings = h.headings[len(h.headings)-h.headingsCap:]
	}
}

// Oscillating reports an A-B-A back-and-forth pattern within the last window
// headings: some position i where heading i+2 repeats heading i and heading
// i+1 is its reversal. Advisory only; stalling behind the tail legitimately
// revisits nearby states.
func (h *History) Oscillating(window int) bool {
	recent := h.headings
	if window < len(recent) {
		recent = recent[len(recent)-window:]
	}
	for i := 0; i+2 < len(recent); i++ {
		if recent[i] == recent[i+2] && recent[i].IsOpposite(recent[i+1]) {
			return true
		}
	}
	return false
}

// Reset clears all recorded state. Called when the game session restarts.
func (h *History) Reset() {
	h.keys = h.keys[:0]
	h.headings = h.headings[:0]
	h.counts = make(map[uint64]int, h.capacity)
}
