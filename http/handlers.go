package http

import (
	"net/http"
	"strconv"

	"github.com/fwojciec/bookvox"
)

type cleanTextRequest struct {
	Text         string `json:"text"`
	IsDoublePage bool   `json:"isDoublePage"`
	Tier         string `json:"tier"`
}

// handleCleanText is fail-soft: once the input is accepted the response is
// 200, carrying the original text and an error when correction failed.
func (s *Server) handleCleanText(w http.ResponseWriter, r *http.Request) {
	var req cleanTextRequest
	if err := decode(r, cleanTextSchema, &req); err != nil {
		s.Error(w, r, err)
		return
	}
	tier := s.DefaultTier
	if req.Tier != "" {
		t, err := bookvox.ParseTier(req.Tier)
		if err != nil {
			s.Error(w, r, err)
			return
		}
		tier = t
	}
	if s.Cleaner == nil {
		s.Error(w, r, bookvox.Errorf(bookvox.EUNAVAILABLE, "cleaning not configured"))
		return
	}

	result, err := s.Cleaner.Clean(r.Context(), &bookvox.RawTranscript{Text: req.Text, IsDoublePage: req.IsDoublePage}, tier)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type visionExtractRequest struct {
	Image        string `json:"image"`
	IsDoublePage bool   `json:"isDoublePage"`
}

type visionExtractResponse struct {
	ExtractedText string `json:"extractedText"`
	Error         string `json:"error,omitempty"`
}

// handleVisionExtract rejects bad input with 400 and reports every other
// failure as 500 with an empty extractedText.
func (s *Server) handleVisionExtract(w http.ResponseWriter, r *http.Request) {
	var req visionExtractRequest
	if err := decode(r, visionExtractSchema, &req); err != nil {
		s.Error(w, r, err)
		return
	}
	img, err := bookvox.ParseDataURL(req.Image)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	img.IsDoublePage = req.IsDoublePage

	if s.Extractor == nil {
		writeJSON(w, http.StatusInternalServerError, visionExtractResponse{Error: "vision extraction not configured"})
		return
	}
	text, err := s.Extractor.Extract(r.Context(), img)
	if err != nil {
		if bookvox.ErrorCode(err) == bookvox.EINVALID {
			s.Error(w, r, err)
			return
		}
		s.Logger.Error("vision extract", "err", err)
		writeJSON(w, http.StatusInternalServerError, visionExtractResponse{Error: bookvox.ErrorMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, visionExtractResponse{ExtractedText: text})
}

type ttsRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	var req ttsRequest
	if err := decode(r, ttsSchema, &req); err != nil {
		s.Error(w, r, err)
		return
	}
	if s.Synthesizer == nil {
		s.Error(w, r, bookvox.Errorf(bookvox.EUNAVAILABLE, "speech synthesis not configured"))
		return
	}

	audio, err := s.Synthesizer.Synthesize(r.Context(), req.Text)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", audio.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(audio.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio.Data)
}
