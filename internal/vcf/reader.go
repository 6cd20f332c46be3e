package vcf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Reader yields the decoded lines of a VCF file one at a time.
// Gzip and BGZF input is decompressed transparently.
type Reader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
}

// Open opens a VCF file for reading. Use "-" for stdin.
func Open(path string) (*Reader, error) {
	if path == "-" {
		return NewReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	r, err := NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	r.file = file
	return r, nil
}

// NewReader creates a Reader over r. If r starts with the gzip magic
// number (0x1f, 0x8b) the stream is decompressed.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read vcf header: %w", err)
	}

	vr := &Reader{reader: br}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		vr.gzipReader, err = gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		vr.reader = bufio.NewReader(vr.gzipReader)
	}

	return vr, nil
}

// Next returns the next line without its terminator ("\n" or "\r\n").
// It returns io.EOF when there are no more lines.
func (r *Reader) Next() (string, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", fmt.Errorf("read line %d: %w", r.lineNumber+1, err)
		}
		if line == "" {
			return "", io.EOF
		}
		// Last line without trailing newline.
	}
	r.lineNumber++

	return strings.TrimRight(line, "\r\n"), nil
}

// LineNumber returns the number of the line most recently returned by Next.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Close closes the underlying file and decompressor.
func (r *Reader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
