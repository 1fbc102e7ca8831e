package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/archetype-tools/proteusview/internal/export"
	"github.com/archetype-tools/proteusview/internal/glossary"
	"github.com/archetype-tools/proteusview/internal/model"
	"github.com/archetype-tools/proteusview/internal/parser"
	"github.com/archetype-tools/proteusview/internal/render"
)

// handleRender parses the uploaded document and returns the rendered
// HTML fragment for on-screen display.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}

	opts := s.renderOptions(r, doc, &export.BaseURLResolver{
		IconBase: s.cfg.IconBaseURL,
		FileBase: s.cfg.FileBaseURL,
	})
	fragment := s.renderer.Render(doc, opts)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, fragment)
}

// handleExportHTML returns a complete standalone page with the default
// stylesheet inlined and, when an assets directory is configured,
// referenced images embedded as data URIs.
func (s *Server) handleExportHTML(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}

	var assets render.AssetResolver = &export.BaseURLResolver{
		IconBase: s.cfg.IconBaseURL,
		FileBase: s.cfg.FileBaseURL,
	}
	if s.cfg.AssetsDir != "" {
		assets = export.NewDataURIResolver(os.DirFS(s.cfg.AssetsDir))
	}

	opts := s.renderOptions(r, doc, assets)
	fragment := s.renderer.Render(doc, opts)
	page := export.Page(fragment, export.PageOptions{
		Title: doc.Root.Name(),
		Lang:  opts.Locale.Lang(),
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="document.html"`)
	io.WriteString(w, page)
}

// handleExportPDF renders the standalone page and streams it through the
// configured PDF converter. Deployments without a converter get a 501.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if s.pdf == nil {
		jsonError(w, "PDF export is not configured on this server", http.StatusNotImplemented)
		return
	}

	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}

	var assets render.AssetResolver = &export.BaseURLResolver{
		IconBase: s.cfg.IconBaseURL,
		FileBase: s.cfg.FileBaseURL,
	}
	if s.cfg.AssetsDir != "" {
		assets = export.NewDataURIResolver(os.DirFS(s.cfg.AssetsDir))
	}

	opts := s.renderOptions(r, doc, assets)
	fragment := s.renderer.Render(doc, opts)
	page := export.Page(fragment, export.PageOptions{
		Title: doc.Root.Name(),
		Lang:  opts.Locale.Lang(),
	})

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="document.pdf"`)
	if err := s.pdf.Export(r.Context(), page, w); err != nil {
		// Headers are already out; all we can do is log.
		s.log.Error("pdf export failed", "error", err)
	}
}

// handleLanguages lists the loaded label dictionary languages.
func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"languages": s.bundle.Languages(),
		"default":   s.cfg.DefaultLanguage,
	})
}

// readDocument decodes the request body, enforcing the upload limit.
// Raw bodies select a parser by content type; multipart uploads select
// by filename. It writes the error response itself on failure.
func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (*model.Document, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return s.readUploadedDocument(w, r)
	}

	p, err := parser.ForContentType(contentType)
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnsupportedMediaType)
		return nil, false
	}

	doc, err := p.Parse(r.Body)
	if err != nil {
		jsonError(w, fmt.Sprintf("invalid document: %v", err), http.StatusBadRequest)
		return nil, false
	}
	return doc, true
}

// readUploadedDocument handles a document sent as a multipart file
// field, the way desktop clients upload saved .xml/.json files.
func (s *Server) readUploadedDocument(w http.ResponseWriter, r *http.Request) (*model.Document, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	if !parser.IsSupportedExtension(header.Filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(header.Filename)), http.StatusBadRequest)
		return nil, false
	}
	p, err := parser.ForFile(header.Filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	doc, err := p.Parse(file)
	if err != nil {
		jsonError(w, fmt.Sprintf("invalid document: %v", err), http.StatusBadRequest)
		return nil, false
	}
	return doc, true
}

// renderOptions assembles the per-request render options: language from
// the lang query parameter, glossary highlighting unless glossary=false.
func (s *Server) renderOptions(r *http.Request, doc *model.Document, assets render.AssetResolver) render.Options {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = s.cfg.DefaultLanguage
	}

	opts := render.Options{
		Locale:          s.bundle.Locale(lang),
		Assets:          assets,
		MaxHeadingDepth: s.cfg.MaxHeadingDepth,
	}
	if r.URL.Query().Get("glossary") != "false" {
		opts.Highlighter = glossary.FromDocument(doc)
	}
	return opts
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
