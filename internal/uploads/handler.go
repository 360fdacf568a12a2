package uploads

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/JaimeStill/web-quickstart/pkg/handlers"
	"github.com/JaimeStill/web-quickstart/pkg/middleware"
	"github.com/JaimeStill/web-quickstart/pkg/pagination"
	"github.com/JaimeStill/web-quickstart/pkg/routes"
	"github.com/JaimeStill/web-quickstart/pkg/storage"
	"github.com/JaimeStill/web-quickstart/pkg/web"
)

// UploadPage is the template rendered for the upload form.
const UploadPage = "upload.html"

// FileField is the form field carrying the uploaded file.
const FileField = "the_file"

// Handler provides the upload views and the upload listing endpoint.
type Handler struct {
	sys           System
	templates     *web.TemplateSet
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// NewHandler creates an uploads handler. Request bodies larger than
// maxUploadSize are rejected with 413.
func NewHandler(sys System, templates *web.TemplateSet, logger *slog.Logger, pagination pagination.Config, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		templates:     templates,
		logger:        logger.With("handler", "uploads"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the upload form views.
func (h *Handler) Routes() routes.Group {
	upload := h.limit(handlers.Handle(h.Upload))
	upload2 := h.limit(handlers.Handle(h.UploadSecure))

	return routes.Group{
		Description: "File uploads",
		Routes: []routes.Route{
			{Name: "upload", Method: "GET", Pattern: "/upload", Handler: upload},
			{Name: "upload", Method: "POST", Pattern: "/upload", Handler: upload},
			{Name: "upload2", Method: "GET", Pattern: "/upload2", Handler: upload2},
			{Name: "upload2", Method: "POST", Pattern: "/upload2", Handler: upload2},
		},
	}
}

// APIRoutes returns the JSON listing of recorded uploads.
func (h *Handler) APIRoutes() routes.Group {
	return routes.Group{
		Prefix:      "/uploads",
		Description: "Recorded uploads",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
		},
	}
}

// Upload saves the_file under a fixed key.
func (h *Handler) Upload(r *http.Request) any {
	if r.Method == http.MethodGet {
		return h.form(r)
	}

	file, filename, err := h.file(r)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := h.sys.Save(r.Context(), FixedKey, filename, file); err != nil {
		return h.fail(err)
	}
	return "Saved"
}

// UploadSecure saves the_file under its sanitised client filename.
func (h *Handler) UploadSecure(r *http.Request) any {
	if r.Method == http.MethodGet {
		return h.form(r)
	}

	file, filename, err := h.file(r)
	if err != nil {
		return err
	}
	defer file.Close()

	key := storage.SecureFilename(filename)
	if key == "" {
		return handlers.AbortWith(http.StatusBadRequest, ErrInvalidFilename)
	}

	if _, err := h.sys.Save(r.Context(), key, filename, file); err != nil {
		return h.fail(err)
	}
	return "Saved"
}

// List returns one page of recorded uploads, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) file(r *http.Request) (multipart.File, string, error) {
	file, header, err := handlers.File(r, FileField)
	if err != nil {
		if errors.Is(err, handlers.ErrMissingKey) {
			return nil, "", handlers.AbortWith(http.StatusBadRequest, fmt.Errorf("%w: %w", ErrNoFile, err))
		}
		return nil, "", err
	}
	return file, handlers.ClientFilename(header), nil
}

func (h *Handler) form(r *http.Request) any {
	return h.templates.Response(UploadPage, web.Vars{"action": r.URL.Path})
}

func (h *Handler) fail(err error) any {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return handlers.AbortWith(http.StatusRequestEntityTooLarge, err)
	}

	status := MapHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("upload failed", "error", err)
	}
	return handlers.AbortWith(status, err)
}

func (h *Handler) limit(next http.HandlerFunc) http.HandlerFunc {
	return middleware.MaxBytes(h.maxUploadSize)(next).ServeHTTP
}
