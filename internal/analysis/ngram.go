package analysis

import (
	"sort"

	"github.com/SeamusWaldron/hypercube/internal/storage"
	"github.com/SeamusWaldron/hypercube/internal/turn"
)

// maxOccurrences caps the sample occurrences kept per n-gram.
const maxOccurrences = 10

// unknownToken marks notation that is not in the move catalog.
const unknownToken = 0xFF

// tokens maps every notation in the catalog to a stable token. A move's
// forward turn is even and its inverse odd.
var tokens = func() map[string]uint8 {
	moves := append(append(append([]turn.Move{}, turn.SliceMoves()...), turn.WholeMoves()...), turn.PairedMoves()...)
	moves = append(moves, turn.Gyro)

	t := make(map[string]uint8, 2*len(moves))
	for i, m := range moves {
		t[m.Name] = uint8(2 * i)
		t[m.Name+"'"] = uint8(2*i + 1)
	}
	return t
}()

// Token returns the token for a notation string.
func Token(notation string) uint8 {
	if tok, ok := tokens[notation]; ok {
		return tok
	}
	return unknownToken
}

// NGram represents a repeated move sequence.
type NGram struct {
	N           int               `json:"n"`
	Sequence    []string          `json:"sequence"`
	Tokens      []uint8           `json:"-"`
	Count       int               `json:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty"`
}

// NGramOccurrence represents where an n-gram was found.
type NGramOccurrence struct {
	SolveID    string `json:"solve_id,omitempty"`
	StartIndex int    `json:"start_index"`
	TsMs       int64  `json:"ts_ms"`
}

// NGramReport contains the results of n-gram mining.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"` // Keyed by n
}

// RollingHash implements Rabin-Karp rolling hash for efficient n-gram detection.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1) for removal
	window []uint8
	n      int
}

// NewRollingHash creates a new rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   257,
		n:      n,
		window: make([]uint8, 0, n),
	}

	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}

	return rh
}

// Roll adds a token, dropping the oldest one once the window is full.
func (rh *RollingHash) Roll(token uint8) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
		return
	}

	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)

	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []uint8 {
	result := make([]uint8, len(rh.window))
	copy(result, rh.window)
	return result
}

// Ready returns true if the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

// ngramEntry tracks n-gram occurrences during mining.
type ngramEntry struct {
	tokens      []uint8
	first       int
	count       int
	occurrences []NGramOccurrence
}

// MineNGrams finds the top-K most frequent n-grams for each n in [minN, maxN].
// Only sequences seen at least twice are reported.
func MineNGrams(moves []storage.MoveRecord, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{
		TopNGrams: make(map[int][]NGram),
	}

	if minN < 1 || len(moves) < minN {
		return report
	}

	toks := make([]uint8, len(moves))
	for i, m := range moves {
		toks[i] = Token(m.Notation)
	}

	for n := minN; n <= maxN && n <= len(moves); n++ {
		if ngrams := mineNGramsForN(toks, moves, n, topK); len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}

	return report
}

func mineNGramsForN(toks []uint8, moves []storage.MoveRecord, n, topK int) []NGram {
	counts := make(map[uint64][]*ngramEntry)
	var order []*ngramEntry
	rh := NewRollingHash(n)

	for i, tok := range toks {
		rh.Roll(tok)
		if !rh.Ready() {
			continue
		}

		start := i - n + 1
		occ := NGramOccurrence{StartIndex: start, TsMs: moves[start].TsMs}
		window := rh.Window()

		var entry *ngramEntry
		for _, e := range counts[rh.Hash()] {
			if slicesEqual(e.tokens, window) {
				entry = e
				break
			}
		}
		if entry == nil {
			entry = &ngramEntry{tokens: window, first: start}
			counts[rh.Hash()] = append(counts[rh.Hash()], entry)
			order = append(order, entry)
		}
		entry.count++
		if len(entry.occurrences) < maxOccurrences {
			entry.occurrences = append(entry.occurrences, occ)
		}
	}

	entries := make([]*ngramEntry, 0, len(order))
	for _, e := range order {
		if e.count >= 2 {
			entries = append(entries, e)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})
	if len(entries) > topK {
		entries = entries[:topK]
	}

	result := make([]NGram, len(entries))
	for i, e := range entries {
		seq := make([]string, n)
		for j := range seq {
			seq[j] = moves[e.first+j].Notation
		}
		result[i] = NGram{
			N:           n,
			Sequence:    seq,
			Tokens:      e.tokens,
			Count:       e.count,
			Occurrences: e.occurrences,
		}
	}

	return result
}

// slicesEqual compares two uint8 slices.
func slicesEqual(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MineNGramsAcrossSolves aggregates per-solve reports, keyed by solve ID.
func MineNGramsAcrossSolves(solveNGrams map[string]*NGramReport, topK int) *NGramReport {
	report := &NGramReport{
		TopNGrams: make(map[int][]NGram),
	}

	// Walk solves in a fixed order so sample occurrences are stable.
	ids := make([]string, 0, len(solveNGrams))
	for id := range solveNGrams {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	aggregated := make(map[int]map[string]*NGram)
	var keys []string

	for _, solveID := range ids {
		for n, ngrams := range solveNGrams[solveID].TopNGrams {
			if aggregated[n] == nil {
				aggregated[n] = make(map[string]*NGram)
			}
			for _, ng := range ngrams {
				key := string(ng.Tokens)
				existing, ok := aggregated[n][key]
				if !ok {
					existing = &NGram{
						N:        ng.N,
						Sequence: ng.Sequence,
						Tokens:   ng.Tokens,
					}
					aggregated[n][key] = existing
					keys = append(keys, key)
				}
				existing.Count += ng.Count
				for _, occ := range ng.Occurrences {
					if len(existing.Occurrences) >= maxOccurrences {
						break
					}
					occ.SolveID = solveID
					existing.Occurrences = append(existing.Occurrences, occ)
				}
			}
		}
	}

	for n, byKey := range aggregated {
		ngrams := make([]NGram, 0, len(byKey))
		for _, key := range keys {
			if ng, ok := byKey[key]; ok {
				ngrams = append(ngrams, *ng)
			}
		}

		sort.SliceStable(ngrams, func(i, j int) bool {
			return ngrams[i].Count > ngrams[j].Count
		})
		if len(ngrams) > topK {
			ngrams = ngrams[:topK]
		}
		report.TopNGrams[n] = ngrams
	}

	return report
}
