package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/statement-points/internal/ingest"
	"github.com/insightdelivered/statement-points/internal/logger"
	"github.com/insightdelivered/statement-points/internal/models"
	"github.com/insightdelivered/statement-points/internal/writer"
)

// ParseResponse is the JSON response from /api/parse.
type ParseResponse struct {
	Success      bool                    `json:"success"`
	Error        string                  `json:"error,omitempty"`
	Transactions []models.Transaction    `json:"transactions"`
	Statements   []*models.StatementInfo `json:"statements"`
	Errors       []ingest.FileError      `json:"errors,omitempty"`
	Stats        models.CategoryStats    `json:"stats"`
	Count        int                     `json:"count"`
	CSV          string                  `json:"csv,omitempty"`
}

func (s *Server) handleParse(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to parse form: %v", err))
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		return writeError(c, fiber.StatusBadRequest, "No files uploaded. Use form field 'files'.")
	}

	files := make([]ingest.File, 0, len(headers))
	for _, fh := range headers {
		data, err := readUpload(fh)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to read %q: %v", fh.Filename, err))
		}
		files = append(files, ingest.File{Name: fh.Filename, Data: data})
	}

	ctx := c.UserContext()
	res, err := s.ingest.Ingest(ctx, files)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Error().Err(err).Msg("ingest failed")
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	// nil marshals to JSON null, not []
	txns := res.Transactions
	if txns == nil {
		txns = []models.Transaction{}
	}
	resp := ParseResponse{
		Success:      !res.Empty(),
		Transactions: txns,
		Statements:   res.Statements,
		Errors:       res.Errors,
		Stats:        res.Stats,
		Count:        len(txns),
	}
	if res.Empty() {
		resp.Error = "No transactions found"
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	}

	if c.FormValue("csv") != "false" {
		var buf bytes.Buffer
		if err := (&writer.CSVWriter{}).WriteTransactions(&buf, txns); err != nil {
			return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
		}
		resp.CSV = buf.String()
	}
	return c.JSON(resp)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
