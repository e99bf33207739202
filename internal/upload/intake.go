package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/transcontinental/portal/internal/metrics"
	"github.com/transcontinental/portal/internal/storage"
)

const (
	FieldBillOfLading      = "billOfLading"
	FieldPackingList       = "packingList"
	FieldCommercialInvoice = "commercialInvoice"

	MaxFilesPerRequest = 22
)

var (
	namePattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}(\.[a-z0-9]{1,10})?$`)
	extPattern  = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)
)

// Result maps form fields to the references of the files stored for them.
type Result struct {
	BillOfLading      []string `json:"billOfLading"`
	PackingList       *string  `json:"packingList,omitempty"`
	CommercialInvoice *string  `json:"commercialInvoice,omitempty"`
}

type Intake struct {
	store        BlobStore
	prefix       string
	maxFileBytes int64
	logger       *zap.Logger
	newName      func(ext string) string
}

func NewIntake(store BlobStore, urlPrefix string, maxFileBytes int64, logger *zap.Logger) *Intake {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Intake{
		store:        store,
		prefix:       urlPrefix,
		maxFileBytes: maxFileBytes,
		logger:       logger,
		newName:      func(ext string) string { return uuid.NewString() + ext },
	}
}

func (in *Intake) MaxFileBytes() int64 {
	return in.maxFileBytes
}

// Accept stores every file part of a multipart request. When any file is too
// large, or anything else fails, the files already stored for this request are
// removed again.
func (in *Intake) Accept(ctx context.Context, mr *multipart.Reader) (*Result, error) {
	res := &Result{BillOfLading: []string{}}
	var stored []string

	rollback := func() {
		for _, name := range stored {
			if err := in.store.Remove(ctx, name); err != nil {
				in.logger.Warn("failed to remove blob", zap.String("name", name), zap.Error(err))
			}
		}
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			rollback()
			return nil, in.readError(err)
		}

		ref, err := in.acceptPart(ctx, part, res, len(stored))
		_ = part.Close()
		if err != nil {
			rollback()
			return nil, err
		}
		if ref != "" {
			stored = append(stored, strings.TrimPrefix(ref, in.prefix))
		}
	}

	if len(stored) == 0 {
		metrics.UploadsRejectedTotal.WithLabelValues("empty").Inc()
		return nil, fmt.Errorf("%w: no files uploaded", storage.ErrInvalidInput)
	}
	return res, nil
}

// acceptPart stores one part and records its reference in res. It returns an
// empty reference for parts that are skipped.
func (in *Intake) acceptPart(ctx context.Context, part *multipart.Part, res *Result, count int) (string, error) {
	field := part.FormName()
	if part.FileName() == "" {
		return "", nil
	}
	switch field {
	case FieldBillOfLading:
	case FieldPackingList:
		if res.PackingList != nil {
			return "", nil
		}
	case FieldCommercialInvoice:
		if res.CommercialInvoice != nil {
			return "", nil
		}
	default:
		return "", nil
	}

	if count >= MaxFilesPerRequest {
		metrics.UploadsRejectedTotal.WithLabelValues("too_many_files").Inc()
		return "", fmt.Errorf("%w: at most %d files per upload", storage.ErrInvalidInput, MaxFilesPerRequest)
	}

	name := in.newName(extension(part.FileName()))
	n, err := in.store.Put(ctx, name, part, in.maxFileBytes)
	if err != nil {
		if errors.Is(err, ErrTooLarge) {
			metrics.UploadsRejectedTotal.WithLabelValues("too_large").Inc()
			return "", fmt.Errorf("%w: %s exceeds %d bytes", storage.ErrPayloadTooLarge, part.FileName(), in.maxFileBytes)
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", in.readError(err)
		}
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	ref := in.prefix + name
	switch field {
	case FieldBillOfLading:
		res.BillOfLading = append(res.BillOfLading, ref)
	case FieldPackingList:
		res.PackingList = &ref
	case FieldCommercialInvoice:
		res.CommercialInvoice = &ref
	}

	metrics.UploadedFilesTotal.WithLabelValues(field).Inc()
	metrics.UploadedBytesTotal.Add(float64(n))
	in.logger.Debug("file stored", zap.String("field", field), zap.String("ref", ref), zap.Int64("bytes", n))
	return ref, nil
}

func (in *Intake) readError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		metrics.UploadsRejectedTotal.WithLabelValues("too_large").Inc()
		return fmt.Errorf("%w: request body too large", storage.ErrPayloadTooLarge)
	}
	return fmt.Errorf("%w: malformed multipart body: %v", storage.ErrInvalidInput, err)
}

// Exists reports whether ref names a stored file.
func (in *Intake) Exists(ctx context.Context, ref string) (bool, error) {
	name, ok := in.nameFromRef(ref)
	if !ok {
		return false, nil
	}
	return in.store.Exists(ctx, name)
}

// Open returns the bytes stored under name together with a content type.
func (in *Intake) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if !namePattern.MatchString(name) {
		return nil, "", storage.ErrNotFound
	}
	rc, err := in.store.Open(ctx, name)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return nil, "", storage.ErrNotFound
		}
		return nil, "", err
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return rc, contentType, nil
}

func (in *Intake) nameFromRef(ref string) (string, bool) {
	if !strings.HasPrefix(ref, in.prefix) {
		return "", false
	}
	name := strings.TrimPrefix(ref, in.prefix)
	return name, namePattern.MatchString(name)
}

func extension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !extPattern.MatchString(ext) {
		return ""
	}
	return ext
}
