// Package source locates langtable documents in ordered search roots and
// opens them, decompressing gzip and zstd encoded copies transparently.
package source
