package dxt1

import "sync"

// expand5 and expand6 hold the 8-bit expansions of 5- and 6-bit channel
// codes using the standard bit-replication rule.
var (
	expand5 [32]uint8
	expand6 [64]uint8
)

func init() {
	for c := 0; c < 32; c++ {
		expand5[c] = uint8(c<<3 | c>>2)
	}
	for c := 0; c < 64; c++ {
		expand6[c] = uint8(c<<2 | c>>4)
	}
}

// optimalMatch5 and optimalMatch6 map an 8-bit channel value to the
// endpoint code pair whose 2/3:1/3 interpolant is closest to it. Searching
// ordered pairs under that single interpolant covers every index choice:
// equal codes reproduce a plain endpoint and swapping roles reproduces the
// 1/3:2/3 entry.
//
// Built lazily once and read-only afterwards; safe for concurrent readers.
var (
	optimalTablesOnce sync.Once
	optimalMatch5     [256][2]uint8
	optimalMatch6     [256][2]uint8
)

func optimalTables() (*[256][2]uint8, *[256][2]uint8) {
	optimalTablesOnce.Do(buildOptimalTables)
	return &optimalMatch5, &optimalMatch6
}

func buildOptimalTables() {
	buildOptimalTable(&optimalMatch5, expand5[:])
	buildOptimalTable(&optimalMatch6, expand6[:])
}

func buildOptimalTable(table *[256][2]uint8, expand []uint8) {
	size := len(expand)
	for target := 0; target < 256; target++ {
		bestErr := -1
		for a := 0; a < size; a++ {
			ea := int(expand[a])
			for b := 0; b < size; b++ {
				// err is |(2*ea+eb)/3 - target| scaled by 3 to stay integral.
				err := 2*ea + int(expand[b]) - 3*target
				if err < 0 {
					err = -err
				}
				if bestErr < 0 || err < bestErr {
					bestErr = err
					table[target][0] = uint8(a)
					table[target][1] = uint8(b)
				}
			}
		}
	}
}
