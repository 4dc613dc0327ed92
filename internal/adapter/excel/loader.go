package excel

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Parser turns one worksheet into typed rows.
type Parser[T any] func(f *excelize.File, sheet string) ([]T, error)

// FileLoader reads a workbook from the local filesystem.
type FileLoader[T any] struct {
	path  string
	sheet string
	parse Parser[T]
}

// NewFileLoader reads sheet from path; an empty sheet means the first one.
func NewFileLoader[T any](path, sheet string, parse Parser[T]) *FileLoader[T] {
	return &FileLoader[T]{path: path, sheet: sheet, parse: parse}
}

func (l *FileLoader[T]) Source() string {
	return "file://" + l.path
}

func (l *FileLoader[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return l.parse(f, l.sheet)
}

// ObjectReader fetches an object body from object storage.
type ObjectReader interface {
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
	Bucket() string
}

// ObjectLoader reads a workbook stored in a bucket.
type ObjectLoader[T any] struct {
	objects ObjectReader
	key     string
	sheet   string
	parse   Parser[T]
}

func NewObjectLoader[T any](objects ObjectReader, key, sheet string, parse Parser[T]) *ObjectLoader[T] {
	return &ObjectLoader[T]{objects: objects, key: key, sheet: sheet, parse: parse}
}

func (l *ObjectLoader[T]) Source() string {
	return fmt.Sprintf("s3://%s/%s", l.objects.Bucket(), l.key)
}

func (l *ObjectLoader[T]) Load(ctx context.Context) ([]T, error) {
	body, err := l.objects.GetObject(ctx, l.key)
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", l.key, err)
	}
	defer body.Close()

	f, err := excelize.OpenReader(body)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return l.parse(f, l.sheet)
}

// rows returns every row of sheet with raw cell values, header first.
func rows(f *excelize.File, sheet string) ([][]string, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	out, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return out, nil
}
