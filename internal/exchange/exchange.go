package exchange

import (
	"context"
	"fmt"
	"os"

	"github.com/roach88/scout/internal/audit"
	"github.com/roach88/scout/internal/model"
	"github.com/roach88/scout/internal/store"
)

// DefaultSeparator is the CSV field separator.
const DefaultSeparator = ','

// DefaultQRScale is the edge length of one QR module in pixels.
const DefaultQRScale = 5

// Store is the part of the store the adapters read and write.
type Store interface {
	Dump(ctx context.Context, kind model.Kind, columns []string) ([]store.Row, error)
	ImportTeams(ctx context.Context, teams []model.Team) ([]model.Team, error)
	ImportMatches(ctx context.Context, matches []model.Match) error
}

// Exchanger exports and imports records of one store.
type Exchanger struct {
	store     Store
	sink      audit.Sink
	separator rune
	qrScale   int
}

// Option configures an Exchanger.
type Option func(*Exchanger)

// WithSink sets where export and import messages are reported.
func WithSink(sink audit.Sink) Option {
	return func(x *Exchanger) {
		if sink != nil {
			x.sink = sink
		}
	}
}

// WithSeparator sets the CSV field separator.
func WithSeparator(sep rune) Option {
	return func(x *Exchanger) {
		if sep != 0 {
			x.separator = sep
		}
	}
}

// WithQRScale sets the pixel size of one QR module. Values below 1 are
// ignored.
func WithQRScale(scale int) Option {
	return func(x *Exchanger) {
		if scale > 0 {
			x.qrScale = scale
		}
	}
}

// New creates an Exchanger over s.
func New(s Store, opts ...Option) *Exchanger {
	x := &Exchanger{
		store:     s,
		sink:      audit.Discard,
		separator: DefaultSeparator,
		qrScale:   DefaultQRScale,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// ExportJSON writes every row of kind to path as JSON, replacing the file.
func (x *Exchanger) ExportJSON(ctx context.Context, kind model.Kind, path string) error {
	data, err := x.encodeJSON(ctx, kind)
	if err != nil {
		return x.fail("export json", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return x.fail("export json", err)
	}

	x.sink.Log("JSON data exported to "+path, audit.SeverityInfo)
	return nil
}

// ExportCSV writes every row of kind to path as CSV, replacing the file.
func (x *Exchanger) ExportCSV(ctx context.Context, kind model.Kind, path string) error {
	_, err := x.exportCSV(ctx, kind, path)
	return err
}

// ExportCSVWithQR writes the CSV export of kind to csvPath, then encodes
// the same payload as a QR image at qrPath.
func (x *Exchanger) ExportCSVWithQR(ctx context.Context, kind model.Kind, csvPath, qrPath string) error {
	data, err := x.exportCSV(ctx, kind, csvPath)
	if err != nil {
		return err
	}
	return x.ExportQR(string(data), qrPath)
}

// ExportCSVQR encodes the CSV export of kind as a QR image at path
// without writing the CSV itself.
func (x *Exchanger) ExportCSVQR(ctx context.Context, kind model.Kind, path string) error {
	data, err := x.encodeCSV(ctx, kind)
	if err != nil {
		return x.fail("export qr", err)
	}
	return x.ExportQR(string(data), path)
}

func (x *Exchanger) exportCSV(ctx context.Context, kind model.Kind, path string) ([]byte, error) {
	data, err := x.encodeCSV(ctx, kind)
	if err != nil {
		return nil, x.fail("export csv", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, x.fail("export csv", err)
	}

	x.sink.Log("CSV data exported to "+path, audit.SeverityInfo)
	return data, nil
}

// ExportQR encodes content as a QR code and writes it to path as a PNG.
func (x *Exchanger) ExportQR(content, path string) error {
	data, err := encodeQR(content, x.qrScale)
	if err != nil {
		return x.fail("export qr", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return x.fail("export qr", fmt.Errorf("write qr code: %w", err))
	}

	x.sink.Log("QR code generated and saved to "+path, audit.SeverityInfo)
	return nil
}

// ImportCSV reads the CSV file at path and stores its rows as records of
// kind. It returns the number of records stored.
//
// Every line is parsed before anything is written; a malformed line fails
// the whole import with a *ParseError and leaves the store untouched.
// Team rows are stored under freshly allocated uids.
func (x *Exchanger) ImportCSV(ctx context.Context, kind model.Kind, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, x.fail("import csv", err)
	}
	defer f.Close()

	n, err := x.readCSV(ctx, kind, f)
	if err != nil {
		return 0, x.fail("import csv", err)
	}

	x.sink.Log(fmt.Sprintf("Data imported from %s to %s", path, kind.Table()), audit.SeverityInfo)
	return n, nil
}

func (x *Exchanger) fail(op string, err error) error {
	err = fmt.Errorf("%s: %w", op, err)
	x.sink.Log(err.Error(), audit.SeverityError)
	return err
}
