package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/photo-report/internal/config"
	"github.com/kozaktomas/photo-report/internal/report"
)

// ReportHandler handles the draft report endpoints.
type ReportHandler struct {
	config   *config.Config
	store    *DraftStore
	composer *report.Composer
}

// NewReportHandler creates a new report handler.
func NewReportHandler(cfg *config.Config, store *DraftStore, composer *report.Composer) *ReportHandler {
	return &ReportHandler{
		config:   cfg,
		store:    store,
		composer: composer,
	}
}

// updateReportRequest is the request body for updating report metadata.
type updateReportRequest struct {
	ProjectName string `json:"project_name"`
	Author      string `json:"author"`
	Date        string `json:"date,omitempty"`
}

// pageSummary describes one draft page in API responses.
type pageSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageCount  int    `json:"image_count"`
}

// reportResponse describes the whole draft in API responses.
type reportResponse struct {
	ProjectName string        `json:"project_name"`
	Author      string        `json:"author"`
	Date        string        `json:"date,omitempty"`
	Pages       []pageSummary `json:"pages"`
}

func summarizePage(dp DraftPage) pageSummary {
	return pageSummary{
		ID:          dp.ID,
		Title:       dp.Title,
		Description: dp.Description,
		ImageCount:  len(dp.Images),
	}
}

func (h *ReportHandler) draftResponse(sessionID string) reportResponse {
	meta, _ := h.store.Meta(sessionID)
	pages := h.store.ListPages(sessionID)

	resp := reportResponse{
		ProjectName: meta.ProjectName,
		Author:      meta.Author,
		Pages:       make([]pageSummary, 0, len(pages)),
	}
	if !meta.Date.IsZero() {
		resp.Date = meta.Date.Format("2006-01-02")
	}
	for _, dp := range pages {
		resp.Pages = append(resp.Pages, summarizePage(dp))
	}
	return resp
}

// readUploadedImages reads multipart image files into memory.
func readUploadedImages(files []*multipart.FileHeader) ([][]byte, error) {
	blobs := make([][]byte, 0, len(files))
	for _, fileHeader := range files {
		if err := func() error {
			file, err := fileHeader.Open()
			if err != nil {
				return fmt.Errorf("failed to open file: %s", fileHeader.Filename)
			}
			defer file.Close()

			blob, err := io.ReadAll(file)
			if err != nil {
				return fmt.Errorf("failed to read file: %s", fileHeader.Filename)
			}

			blobs = append(blobs, blob)
			return nil
		}(); err != nil {
			return nil, err
		}
	}
	return blobs, nil
}

// GetReport returns the session's draft report.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	sessionID := requireSession(w, r)
	if sessionID == "" {
		return
	}

	respondJSON(w, http.StatusOK, h.draftResponse(sessionID))
}

// UpdateReport sets the report metadata of the session's draft.
func (h *ReportHandler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	sessionID := requireSession(w, r)
	if sessionID == "" {
		return
	}

	var req updateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	meta := report.Meta{
		ProjectName: req.ProjectName,
		Author:      req.Author,
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		meta.Date = date
	}

	h.store.SetMeta(sessionID, meta)
	respondJSON(w, http.StatusOK, h.draftResponse(sessionID))
}

// ClearReport discards the session's draft entirely.
func (h *ReportHandler) ClearReport(w http.ResponseWriter, r *http.Request) {
	sessionID := requireSession(w, r)
	if sessionID == "" {
		return
	}

	h.store.Delete(sessionID)
	respondJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

// AddPage appends a new page to the session's draft.
func (h *ReportHandler) AddPage(w http.ResponseWriter, r *http.Request) {
	sessionID := requireSession(w, r)
	if sessionID == "" {
		return
	}

	if err := r.ParseMultipartForm(int64(h.config.Web.MaxUploadMB) << 20); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no images provided")
		return
	}

	blobs, err := readUploadedImages(files)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	page := report.Page{
		Images:      blobs,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if err := report.Validate(page); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	dp := h.store.AddPage(sessionID, page)
	respondJSON(w, http.StatusCreated, summarizePage(dp))
}

// UpdatePage replaces the title, description and optionally the images
// of an existing page.
func (h *ReportHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	sessionID := requireSession(w, r)
	if sessionID == "" {
		return
	}
	pageID := chi.URLParam(r, "id")

	existing, ok := h.store.GetPage(sessionID, pageID)
	if !ok {
		respondError(w, http.StatusNotFound, "page not found")
		return
	}

	if err := r.ParseMultipartForm(int64(h.config.Web.MaxUploadMB) << 20); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	var blobs [][]byte
	if files := r.MultipartForm.File["images"]; len(files) > 0 {
		var err error
		blobs, err = readUploadedImages(files)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	candidate := report.Page{
		Images:      existing.Images,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if blobs != nil {
		candidate.Images = blobs
	}
	if err := report.Validate(candidate); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	dp, ok := h.store.UpdatePage(sessionID, pageID, candidate.Title, candidate.Description, blobs)
	if !ok {
		respondError(w, http.StatusNotFound, "page not found")
		return
	}
	respondJSON(w, http.StatusOK, summarizePage(dp))
}

// DeletePage removes a page from the session's draft.
func (h *ReportHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	sessionID := requireSession(w, r)
	if sessionID == "" {
		return
	}
	pageID := chi.URLParam(r, "id")

	if !h.store.RemovePage(sessionID, pageID) {
		respondError(w, http.StatusNotFound, "page not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Thumbnail renders the preview image of one draft page as PNG.
func (h *ReportHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	sessionID := requireSession(w, r)
	if sessionID == "" {
		return
	}
	pageID := chi.URLParam(r, "id")

	dp, ok := h.store.GetPage(sessionID, pageID)
	if !ok {
		respondError(w, http.StatusNotFound, "page not found")
		return
	}

	img, err := h.composer.Compose(dp.Page)
	if err != nil {
		log.Printf("warning: thumbnail composition failed for page %s (%s): %v",
			sanitizeForLog(pageID), sanitizeForLog(dp.Title), err)
		respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("failed to compose thumbnail: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := report.EncodePNG(&buf, img); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode thumbnail: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

// ExportPDF renders the session's draft into the final PDF document.
func (h *ReportHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	sessionID := requireSession(w, r)
	if sessionID == "" {
		return
	}

	meta, _ := h.store.Meta(sessionID)
	if err := report.ValidateMeta(meta); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	pages := h.store.Pages(sessionID)
	if len(pages) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "report has no pages")
		return
	}

	builder := report.NewBuilder(meta)
	builder.SetJPEGQuality(h.config.Render.JPEGQuality)
	for _, page := range pages {
		if err := builder.AddPage(page); err != nil {
			respondError(w, http.StatusInternalServerError, fmt.Sprintf("PDF generation failed: %v", err))
			return
		}
	}
	pdfData, err := builder.Finalize()
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("PDF generation failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.Filename(meta.ProjectName)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfData)))
	w.Write(pdfData)
}
