/*
Package dxt1 implements a fixed-rate DXT1 (BC1) block compressor.

It converts a 4x4 tile of 16 color samples, with optional per-pixel
weights and a per-channel importance vector, into an 8-byte packed block
minimizing weighted mean squared error. Several strategies of increasing
cost are provided (single-color optimal, weighted single-color fit,
least-squares endpoint fit, bounding-box exhaustive search, cluster fit),
plus a dispatcher that picks the cheapest acceptable candidate.

All entry points are pure and safe for concurrent use across independent
blocks. The only shared state is a set of read-only lookup tables built
once on first use.
*/
package dxt1
