// Package pagesource serves router pages from saved page dumps on disk.
package pagesource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"routerscrape/internal/router"
	"routerscrape/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("routerscrape.internal.pagesource")

var (
	ErrPageNotFound = errors.New("page dump not found")
	ErrNoTable      = errors.New("no table matched selector")
)

// Selectors locate the data inside a page dump.
type Selectors struct {
	// StatisticsTable selects the counter table of the statistics pages.
	StatisticsTable string `json:"statistics_table"`
	// Body is the element whose innerText is the device info text.
	Body string `json:"body"`
	// SystemLog selects the textarea holding the raw log.
	SystemLog string `json:"system_log"`
}

func DefaultSelectors() Selectors {
	return Selectors{
		StatisticsTable: `table[bordercolor="#CCCCCC"]`,
		Body:            "body",
		SystemLog:       "textarea",
	}
}

// Dir reads pages from files in one directory. Files ending in .txt are
// taken as already extracted text, anything else is parsed as HTML.
type Dir struct {
	root      string
	files     map[router.Page]string
	selectors Selectors
}

// NewDir creates a Dir. files overrides the file name of single pages,
// other pages are read from "<page>.html".
func NewDir(root string, files map[string]string, selectors Selectors) Dir {
	overrides := make(map[router.Page]string, len(files))
	for page, name := range files {
		overrides[router.Page(page)] = name
	}
	return Dir{
		root:      root,
		files:     overrides,
		selectors: selectors,
	}
}

func (d Dir) path(page router.Page) string {
	name, ok := d.files[page]
	if !ok {
		name = string(page) + ".html"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.root, name)
}

func (d Dir) read(page router.Page) (string, []byte, error) {
	path := d.path(page)
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return path, nil, fmt.Errorf("%w: %s (%s)", ErrPageNotFound, page, path)
	}
	if err != nil {
		return path, nil, err
	}
	return path, contents, nil
}

func parse(path string, contents []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(contents))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func (d Dir) Grid(ctx context.Context, page router.Page) ([][]string, error) {
	ctx, span := tracer.Start(ctx, "Grid")
	defer span.End()
	span.SetAttributes(attribute.String("page", string(page)))

	path, contents, err := d.read(page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read page")
		return nil, err
	}
	doc, err := parse(path, contents)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse page")
		return nil, err
	}
	table := doc.Find(d.selectors.StatisticsTable)
	if table.Length() == 0 {
		err := fmt.Errorf("%w: %s in %s", ErrNoTable, d.selectors.StatisticsTable, page)
		span.RecordError(err)
		span.SetStatus(codes.Error, "select table")
		return nil, err
	}
	return htmlutil.TableGrid(ctx, table), nil
}

func (d Dir) Text(ctx context.Context, page router.Page) (string, error) {
	_, span := tracer.Start(ctx, "Text")
	defer span.End()
	span.SetAttributes(attribute.String("page", string(page)))

	path, contents, err := d.read(page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read page")
		return "", err
	}
	if filepath.Ext(path) == ".txt" {
		return string(contents), nil
	}

	doc, err := parse(path, contents)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse page")
		return "", err
	}
	if page == router.PageSystemLog {
		return htmlutil.TextAreaValue(doc.Find(d.selectors.SystemLog)), nil
	}
	text := htmlutil.SelectionText(doc.Find(d.selectors.Body))
	span.SetAttributes(attribute.Int("length", len(text)))
	return text, nil
}
