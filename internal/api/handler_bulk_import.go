package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mill-maintenance-backend/internal/bulkimport"
	"mill-maintenance-backend/internal/export"
)

// maxUploadBytes caps workbook uploads for the file preview.
const maxUploadBytes = 10 << 20

// columnAssignment moves a field onto one column; whichever column held the
// field before falls back to ignore.
type columnAssignment struct {
	Column int    `json:"column"`
	Field  string `json:"field"`
}

type previewRequest struct {
	ImportType bulkimport.ImportType `json:"importType"`
	Text       string                `json:"text"`
	Mapping    bulkimport.Mapping    `json:"mapping"`
	Assign     *columnAssignment     `json:"assign"`
}

type previewResponse struct {
	ImportType   bulkimport.ImportType `json:"importType"`
	Fields       []bulkimport.Field    `json:"fields"`
	Header       []string              `json:"header"`
	Columns      int                   `json:"columns"`
	Mapping      bulkimport.Mapping    `json:"mapping"`
	Rows         []bulkimport.Row      `json:"rows"`
	ValidCount   int                   `json:"validCount"`
	InvalidCount int                   `json:"invalidCount"`
}

type importRequest struct {
	ImportType bulkimport.ImportType  `json:"importType"`
	Records    []map[string]cellValue `json:"records"`
}

type rowErrors struct {
	Index  int      `json:"index"`
	Errors []string `json:"errors"`
}

// ImportTemplates handles GET /api/bulk-import/templates.
func (h *Handler) ImportTemplates(c *gin.Context) {
	out := make([]*bulkimport.Template, 0, len(bulkimport.Types()))
	for _, t := range bulkimport.Types() {
		tmpl, _ := bulkimport.Lookup(t)
		out = append(out, tmpl)
	}
	c.JSON(http.StatusOK, out)
}

// PreviewImport handles POST /api/bulk-import/preview: parse pasted text,
// apply the mapping (plus an optional single-column reassignment) and tag
// every row valid or invalid. Nothing is written.
func (h *Handler) PreviewImport(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	h.preview(c, req)
}

// PreviewImportFile handles POST /api/bulk-import/preview/file, a multipart
// upload of an .xlsx workbook whose first sheet is treated as pasted text.
func (h *Handler) PreviewImportFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}
	defer file.Close()

	text, err := export.SheetText(file)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	h.preview(c, previewRequest{ImportType: bulkimport.ImportType(c.PostForm("importType")), Text: text})
}

func (h *Handler) preview(c *gin.Context, req previewRequest) {
	tmpl, err := bulkimport.Lookup(req.ImportType)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	table := bulkimport.Parse(req.Text)
	mapping := bulkimport.DefaultMapping(tmpl, table.Columns)
	if req.Mapping != nil {
		mapping = req.Mapping.Fit(table.Columns)
	}
	if req.Assign != nil {
		if err := mapping.Assign(req.Assign.Column, req.Assign.Field); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	if err := mapping.Check(tmpl); err != nil {
		badRequest(c, err.Error())
		return
	}

	rows := bulkimport.Process(tmpl, mapping, table)
	resp := previewResponse{
		ImportType: tmpl.Type,
		Fields:     tmpl.Fields,
		Header:     table.Header,
		Columns:    table.Columns,
		Mapping:    mapping,
		Rows:       rows,
	}
	for _, r := range rows {
		if r.Status == bulkimport.StatusValid {
			resp.ValidCount++
		} else {
			resp.InvalidCount++
		}
	}
	c.JSON(http.StatusOK, resp)
}

// BulkImport handles POST /api/bulk-import. Records are re-validated on the
// server; only valid ones are written, all in one transaction.
func (h *Handler) BulkImport(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	tmpl, err := bulkimport.Lookup(req.ImportType)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if len(req.Records) == 0 {
		badRequest(c, "records are required")
		return
	}

	var (
		valid    []bulkimport.Record
		rejected = []rowErrors{}
	)
	for i, values := range req.Records {
		raw := make(map[string]string, len(values))
		for k, v := range values {
			raw[k] = string(v)
		}
		rec, ok := bulkimport.FromValues(tmpl, raw)
		if !ok {
			rejected = append(rejected, rowErrors{Index: i, Errors: []string{"record is empty"}})
			continue
		}
		if errs := bulkimport.Validate(tmpl, rec); len(errs) > 0 {
			rejected = append(rejected, rowErrors{Index: i, Errors: errs})
			continue
		}
		valid = append(valid, rec)
	}

	batch, err := bulkimport.Materialize(tmpl, valid)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	counts, err := h.store.ImportBatch(c.Request.Context(), batch)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.log.Info("bulk import committed",
		zap.String("import_type", string(tmpl.Type)),
		zap.Int("imported", len(valid)),
		zap.Int("skipped", len(rejected)),
	)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"importCount": len(valid),
		"skipped":     len(rejected),
		"counts":      counts,
		"errors":      rejected,
	})
}
