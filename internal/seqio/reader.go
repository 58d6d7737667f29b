package seqio

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/agbru/rnafold/internal/nussinov"
)

// Record is one named sequence.
type Record struct {
	ID  string
	Seq nussinov.Sequence
}

// maxLineSize bounds a single input line; raw single-line inputs of long
// sequences need more than bufio's default.
const maxLineSize = 64 << 20

// Normalize strips whitespace and upper-cases s. Other symbols, including T,
// are kept as given and simply never pair.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, s)
}

// FromString wraps a command-line sequence as a record.
func FromString(s string) Record {
	return Record{ID: "sequence", Seq: nussinov.NewSequence(Normalize(s))}
}

// ReadRecords reads every record from r. Input whose first non-blank line
// starts with '>' is FASTA; anything else is a raw sequence spread over any
// number of lines. Lines starting with ';' are comments. ctx is checked
// between lines.
func ReadRecords(ctx context.Context, r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		records []Record
		id      string
		buf     bytes.Buffer
		fasta   bool
		started bool
	)
	flush := func() {
		if !started {
			return
		}
		records = append(records, Record{ID: id, Seq: nussinov.NewSequence(Normalize(buf.String()))})
		buf.Reset()
	}

	for lineNo := 1; sc.Scan(); lineNo++ {
		if lineNo%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			flush()
			fasta, started = true, true
			id = parseHeaderID(line[1:], len(records)+1)
			continue
		}
		if !started {
			started = true
			id = "input"
		}
		buf.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading sequence: %w", err)
	}
	flush()

	if len(records) == 0 {
		return nil, fmt.Errorf("no sequence found")
	}
	if !fasta && len(records) > 1 {
		return records[:1], nil
	}
	return records, nil
}

// parseHeaderID takes the first word of a FASTA header, or a positional
// name when the header is empty.
func parseHeaderID(header string, pos int) string {
	if fields := strings.Fields(header); len(fields) > 0 {
		return fields[0]
	}
	return fmt.Sprintf("record%d", pos)
}

// ReadFile reads records from path. "-" reads stdin; gzip input is detected
// by its magic number or a .gz suffix.
func ReadFile(ctx context.Context, path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	records, err := ReadRecords(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}
