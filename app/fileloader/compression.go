package fileloader

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// CompressionType is the container format wrapping a source file.
type CompressionType int

const (
	CompressionNone CompressionType = iota
	CompressionGzip
	CompressionBzip2
	CompressionXZ
)

// codec pairs a container's leading bytes with a reader constructor.
type codec struct {
	name  string
	magic []byte
	open  func(io.Reader) (io.Reader, error)
}

var codecs = map[CompressionType]codec{
	CompressionGzip: {
		name:  "gzip",
		magic: []byte{0x1f, 0x8b},
		open:  func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) },
	},
	CompressionBzip2: {
		name:  "bzip2",
		magic: []byte("BZh"),
		open:  func(r io.Reader) (io.Reader, error) { return bzip2.NewReader(r), nil },
	},
	CompressionXZ: {
		name:  "xz",
		magic: []byte{0xfd, '7', 'z', 'X', 'Z', 0x00},
		open:  func(r io.Reader) (io.Reader, error) { return xz.NewReader(r) },
	},
}

func (ct CompressionType) String() string {
	if c, ok := codecs[ct]; ok {
		return c.name
	}
	return "none"
}

// DetectCompressionByMagic inspects the leading bytes of data.
func DetectCompressionByMagic(data []byte) CompressionType {
	for _, ct := range []CompressionType{CompressionGzip, CompressionBzip2, CompressionXZ} {
		if bytes.HasPrefix(data, codecs[ct].magic) {
			return ct
		}
	}
	return CompressionNone
}

// DecompressionResult holds inflated bytes. Warning is set when the stream
// ended early and Data is a prefix of the real content.
type DecompressionResult struct {
	Data    []byte
	Warning string
}

// Decompress inflates data. A stream that breaks part way through yields the
// bytes recovered so far plus a warning; it fails only when nothing came out.
func Decompress(data []byte, ct CompressionType) (*DecompressionResult, error) {
	if ct == CompressionNone {
		return &DecompressionResult{Data: data}, nil
	}
	c, ok := codecs[ct]
	if !ok {
		return nil, fmt.Errorf("unsupported compression type: %d", int(ct))
	}

	r, err := c.open(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s stream: %w", c.name, err)
	}
	if closer, ok := r.(io.Closer); ok {
		defer closer.Close()
	}

	var out bytes.Buffer
	if _, err := io.Copy(&out, r); err != nil {
		if out.Len() == 0 {
			return nil, fmt.Errorf("%s decompression failed: %w", c.name, err)
		}
		return &DecompressionResult{
			Data:    out.Bytes(),
			Warning: fmt.Sprintf("%s stream truncated after %d bytes: %v", c.name, out.Len(), err),
		}, nil
	}
	return &DecompressionResult{Data: out.Bytes()}, nil
}
