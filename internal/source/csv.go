package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/vk/pivotaxis/internal/axis"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// CSV streams rows from a delimited text file whose first non-blank record is
// the header.
type CSV struct {
	closers []io.Closer
	reader  *csv.Reader
	header  header
	line    int
}

// OpenCSV opens path. Files ending in .gz are decompressed on the fly.
func OpenCSV(path string) (*CSV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	s := &CSV{closers: []io.Closer{f}}

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		s.closers = append(s.closers, zr)
		r = zr
	}
	if err := s.init(r); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// NewCSV reads CSV data from r. The caller keeps ownership of r.
func NewCSV(r io.Reader) (*CSV, error) {
	s := &CSV{}
	if err := s.init(r); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CSV) init(r io.Reader) error {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = br.Discard(len(byteOrderMark))
	}
	s.reader = csv.NewReader(br)
	s.reader.TrimLeadingSpace = true
	s.reader.FieldsPerRecord = -1

	for {
		record, err := s.read()
		if errors.Is(err, io.EOF) {
			return errors.New("csv has no header row")
		}
		if err != nil {
			return err
		}
		if isBlank(record) {
			continue
		}
		s.header, err = newHeader(record)
		return err
	}
}

func (s *CSV) read() ([]string, error) {
	record, err := s.reader.Read()
	if err == nil {
		s.line++
	} else if !errors.Is(err, io.EOF) {
		err = fmt.Errorf("failed to read csv record %d: %w", s.line+1, err)
	}
	return record, err
}

// Next returns the next non-blank record.
func (s *CSV) Next(ctx context.Context) (axis.Row, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := s.read()
		if err != nil {
			return nil, err
		}
		if !isBlank(record) {
			return s.header.row(record), nil
		}
	}
}

// Close releases the underlying file, innermost reader first.
func (s *CSV) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	s.closers = nil
	return errors.Join(errs...)
}
