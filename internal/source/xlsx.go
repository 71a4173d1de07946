package source

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/pivotaxis/internal/axis"
	"github.com/xuri/excelize/v2"
)

// XLSX streams rows from one worksheet. The first non-blank row is the header.
type XLSX struct {
	file   *excelize.File
	rows   *excelize.Rows
	header header
}

// OpenXLSX opens the named sheet of path, or the first sheet when sheet is
// empty.
func OpenXLSX(path, sheet string) (*XLSX, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	s := &XLSX{file: f}
	if err := s.init(sheet); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *XLSX) init(sheet string) error {
	if sheet == "" {
		sheets := s.file.GetSheetList()
		if len(sheets) == 0 {
			return errors.New("excel file has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := s.file.Rows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read rows from sheet %q: %w", sheet, err)
	}
	s.rows = rows

	for {
		record, err := s.read()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("sheet %q has no header row", sheet)
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

func (s *XLSX) read() ([]string, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return nil, fmt.Errorf("failed to iterate xlsx rows: %w", err)
		}
		return nil, io.EOF
	}
	return s.rows.Columns()
}

// Next returns the next non-blank row.
func (s *XLSX) Next(ctx context.Context) (axis.Row, error) {
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

func (s *XLSX) Close() error {
	var errs []error
	if s.rows != nil {
		errs = append(errs, s.rows.Close())
	}
	errs = append(errs, s.file.Close())
	return errors.Join(errs...)
}
