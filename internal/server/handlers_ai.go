package server

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"avplanner/internal/perception"
)

// ingestRequest is the wire shape shared by /ai and /chat. The image payload
// is base64 with an optional filename for mime-type detection.
type ingestRequest struct {
	Prompt string `json:"prompt"`
	Image  *struct {
		Name string `json:"name"`
		Data string `json:"data"`
	} `json:"image"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	var image *perception.ImagePart
	if req.Image != nil && req.Image.Data != "" {
		data, err := base64.StdEncoding.DecodeString(req.Image.Data)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid image encoding: %w", err))
			return
		}
		image = &perception.ImagePart{
			MIMEType: imageMIMEType(req.Image.Name),
			Data:     data,
		}
	}

	res, err := s.pipeline.Ingest(r.Context(), req.Prompt, image)
	if err != nil {
		writeIngestError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func imageMIMEType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/png"
	}
}
