package source

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies how a resolved document is stored.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

// candidates lists the stored forms tried for every document, in order.
var candidates = []Compression{CompressionNone, CompressionGzip, CompressionZstd}

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// Suffix returns the file name suffix of the stored form.
func (c Compression) Suffix() string {
	switch c {
	case CompressionGzip:
		return ".gz"
	case CompressionZstd:
		return ".zst"
	default:
		return ""
	}
}

// decompressor closes the decoding stream and then the file under it.
type decompressor struct {
	io.Reader
	closeDecoder func() error
	file         io.Closer
}

func (d *decompressor) Close() error {
	var decErr error
	if d.closeDecoder != nil {
		decErr = d.closeDecoder()
	}
	return errors.Join(decErr, d.file.Close())
}

func decode(f io.ReadCloser, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return f, nil
	case CompressionGzip:
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("open gzip stream: %w", err), f.Close())
		}
		return &decompressor{Reader: zr, closeDecoder: zr.Close, file: f}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, errors.Join(fmt.Errorf("open zstd stream: %w", err), f.Close())
		}
		return &decompressor{
			Reader: zr,
			closeDecoder: func() error {
				zr.Close()
				return nil
			},
			file: f,
		}, nil
	default:
		return nil, errors.Join(fmt.Errorf("unknown compression %d", c), f.Close())
	}
}
