package api

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/luvnft/Palm/internal/application/usecases"
)

// multipart field carrying the image
const uploadFieldName = "image"

const (
	msgNoFile        = "No file uploaded."
	msgInternalError = "Internal Server Error"
)

var ErrNoFile = errors.New("no file uploaded")

//go:embed static/index.html
var indexHTML []byte

type ReadingHandler struct {
	readingUseCase *usecases.ReadingUseCase
}

func NewReadingHandler(readingUseCase *usecases.ReadingUseCase) *ReadingHandler {
	return &ReadingHandler{
		readingUseCase: readingUseCase,
	}
}

func (h *ReadingHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexHTML)
}

func (h *ReadingHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// HandleUpload relays one uploaded image to the model and returns its text.
func (h *ReadingHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	data, mimeType, err := readUploadedFile(r, uploadFieldName)
	if err != nil {
		if errors.Is(err, ErrNoFile) {
			h.sendError(w, msgNoFile, http.StatusBadRequest)
			return
		}
		slog.Error("failed to read upload", "error", err)
		h.sendError(w, msgInternalError, http.StatusInternalServerError)
		return
	}

	output, err := h.readingUseCase.Execute(r.Context(), usecases.ReadingInput{
		ImageData: data,
		MimeType:  mimeType,
	})
	if err != nil {
		slog.Error("reading failed", "error", err)
		h.sendError(w, msgInternalError, http.StatusInternalServerError)
		return
	}

	slog.Info("reading completed", "requestID", output.RequestID, "result", output.Text)

	h.sendJSON(w, map[string]string{"result": output.Text}, http.StatusOK)
}

// readUploadedFile streams the multipart body and keeps the first file part
// named field in memory. Other parts are skipped.
func readUploadedFile(r *http.Request, field string) ([]byte, string, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		// multipart以外のリクエストはファイル無しとして扱う
		return nil, "", fmt.Errorf("%w: %v", ErrNoFile, err)
	}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			return nil, "", ErrNoFile
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read multipart body: %w", err)
		}

		if part.FormName() != field || part.FileName() == "" {
			part.Close()
			continue
		}

		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, "", fmt.Errorf("failed to read uploaded file: %w", err)
		}

		return data, part.Header.Get("Content-Type"), nil
	}
}

func (h *ReadingHandler) sendJSON(w http.ResponseWriter, body any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func (h *ReadingHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, map[string]string{"error": message}, statusCode)
}
