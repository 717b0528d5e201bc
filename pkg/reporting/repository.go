// Package reporting builds report documents from inspection data and keeps
// them in storage.
package reporting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
	"p9e.in/agentreport/models"
	"p9e.in/agentreport/pkg/document"
	"p9e.in/agentreport/pkg/storage"
)

// photosPerPage is the size of the 2x2 photo grid.
const photosPerPage = 4

type Config struct {
	Driver       document.Driver
	Store        storage.Store
	TemplatesDir string
	Dictionary   Dictionary
	// Index is optional.
	Index  DocumentIndex
	Logger *zap.Logger
}

// Repository creates, lists and updates report documents.
type Repository struct {
	driver       document.Driver
	store        storage.Store
	templatesDir string
	dict         Dictionary
	index        DocumentIndex
	pictures     PictureLoader
	log          *zap.Logger
	now          func() time.Time
}

func NewRepository(cfg Config) *Repository {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{
		driver:       cfg.Driver,
		store:        cfg.Store,
		templatesDir: cfg.TemplatesDir,
		dict:         cfg.Dictionary,
		index:        cfg.Index,
		pictures:     StorePictures{Store: cfg.Store},
		log:          log.Named("repository"),
		now:          time.Now,
	}
}

// File is a stored document with its content.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (r *Repository) file(name string, data []byte) *File {
	return &File{Name: name, ContentType: r.driver.ContentType(), Data: data}
}

// BuildReportName is "{number}_{order}_{suppliers}_{cargos}_{units}.{ext}"
// with slashes removed.
func (r *Repository) BuildReportName(rep models.Report) string {
	name := fmt.Sprintf("%s_%s_%s_%s_%s.%s",
		rep.Number,
		rep.Order,
		strings.Join(rep.Suppliers(), "_"),
		strings.Join(rep.Cargos(), "_"),
		strings.Join(rep.TransportUnitNumbers(), "_"),
		r.driver.Ext(),
	)
	return norm.NFC.String(strings.ReplaceAll(name, "/", ""))
}

// CreateReport fills the templates of the report kind and stores the result.
func (r *Repository) CreateReport(ctx context.Context, rep models.Report, author string) (*File, error) {
	rep.Kind = rep.Kind.Normalize()
	// translation fills the units; keep the caller's slice untouched
	rep.TransportUnits = append([]models.TransportUnit(nil), rep.TransportUnits...)
	header := filepath.Join(r.templatesDir, rep.Kind.TemplateDir(), HeaderTemplate+"."+r.driver.Ext())
	doc, err := r.driver.Load(header)
	if err != nil {
		return nil, err
	}

	b := &builder{
		driver:       r.driver,
		templatesDir: r.templatesDir,
		dict:         r.dict,
		report:       rep,
		pictures:     r.pictures,
		now:          r.now,
	}
	if err := strategyFor(b).Execute(ctx, doc); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	name := r.BuildReportName(rep)
	if err := r.store.Put(ctx, name, bytes.NewReader(buf.Bytes())); err != nil {
		return nil, fmt.Errorf("store report: %w", err)
	}
	r.log.Info("report saved", zap.String("name", name), zap.Int("size", buf.Len()))
	r.record(ctx, name, b.report, int64(buf.Len()), author)
	return r.file(name, buf.Bytes()), nil
}

func (r *Repository) record(ctx context.Context, name string, rep models.Report, size int64, author string) {
	if r.index == nil {
		return
	}
	entry, err := newIndexEntry(name, rep, size, author)
	if err == nil {
		err = r.index.Record(ctx, entry)
	}
	if err != nil {
		r.log.Warn("failed to index report", zap.String("name", name), zap.Error(err))
	}
}

// ListReports describes every stored document.
func (r *Repository) ListReports(ctx context.Context) ([]storage.Info, error) {
	return r.store.List(ctx)
}

func unescape(name string) string {
	if u, err := url.PathUnescape(name); err == nil {
		return u
	}
	return name
}

// OpenReport returns a stored document. name may be URL-escaped.
func (r *Repository) OpenReport(ctx context.Context, name string) (*File, error) {
	name = unescape(name)
	data, err := r.read(ctx, name)
	if err != nil {
		return nil, err
	}
	return r.file(name, data), nil
}

func (r *Repository) read(ctx context.Context, name string) ([]byte, error) {
	rc, err := r.store.Open(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrDraftDocumentNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// UpdateReport replaces the content of an existing document.
func (r *Repository) UpdateReport(ctx context.Context, name string, content io.Reader) (string, error) {
	name = unescape(name)
	if _, err := r.store.Stat(ctx, name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrDraftDocumentNotFound, name)
		}
		return "", err
	}
	if err := r.store.Put(ctx, name, content); err != nil {
		return "", fmt.Errorf("store report: %w", err)
	}
	r.log.Info("report replaced", zap.String("name", name))
	return name, nil
}

// AddPictures appends a landscape section with the unit photos, four per
// page, to the document previously generated for rep.
func (r *Repository) AddPictures(ctx context.Context, rep models.Report) (*File, error) {
	rep.Kind = rep.Kind.Normalize()
	name := r.BuildReportName(rep)
	data, err := r.read(ctx, name)
	if err != nil {
		return nil, err
	}
	doc, err := r.driver.Open(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	tmplPath := filepath.Join(r.templatesDir, rep.Kind.TemplateDir(), PhotosTemplate+"."+r.driver.Ext())
	tmpl, err := r.driver.LoadTemplate(tmplPath)
	if err != nil {
		return nil, err
	}
	grid, ok := tmpl.Table(0)
	if !ok {
		return nil, fmt.Errorf("%w: photos table is missing", ErrTemplateCorrupted)
	}

	doc.AddSection(true)
	for _, unit := range rep.TransportUnits {
		doc.AppendParagraph(unit.Number, document.DefaultStyle)
		for start := 0; start < len(unit.Photos); start += photosPerPage {
			chunk := unit.Photos[start:min(start+photosPerPage, len(unit.Photos))]
			images, err := r.loadPhotos(ctx, chunk)
			if err != nil {
				return nil, err
			}
			fillPhotosTable(doc.AppendTable(grid.Clone()), images)
			doc.AddPageBreak()
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	if err := r.store.Put(ctx, name, bytes.NewReader(buf.Bytes())); err != nil {
		return nil, fmt.Errorf("store report: %w", err)
	}
	r.log.Info("photos added", zap.String("name", name))
	return r.file(name, buf.Bytes()), nil
}

// loadPhotos decodes and rotates photos; entries without a file are skipped.
func (r *Repository) loadPhotos(ctx context.Context, photos []models.Photo) ([][]byte, error) {
	var out [][]byte
	for _, p := range photos {
		if p.File == "" {
			continue
		}
		raw, err := r.pictures.Load(ctx, p.File)
		if err != nil {
			return nil, fmt.Errorf("photo %d: %w", p.ID, err)
		}
		if len(raw) == 0 {
			continue
		}
		img, err := rotatePNG(raw, p.Rotation)
		if err != nil {
			return nil, fmt.Errorf("photo %d: %w", p.ID, err)
		}
		out = append(out, img)
	}
	return out, nil
}
