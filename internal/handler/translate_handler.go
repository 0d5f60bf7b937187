package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rimaylabs/rimay/internal/config"
	"github.com/rimaylabs/rimay/internal/lexicon"
	"github.com/rimaylabs/rimay/internal/metrics"
	"github.com/rimaylabs/rimay/internal/model"
	"github.com/rimaylabs/rimay/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TranslateHandler dispatches translation requests: it validates and
// normalizes the input, answers alphabet symbols from the fast path, and
// otherwise consults the model guard. It never blocks on the model load.
type TranslateHandler struct {
	cfg     *config.Config
	guard   *model.Guard
	invoker *model.Invoker
}

// NewTranslateHandler creates the translation dispatcher.
func NewTranslateHandler(cfg *config.Config, guard *model.Guard, invoker *model.Invoker) *TranslateHandler {
	return &TranslateHandler{
		cfg:     cfg,
		guard:   guard,
		invoker: invoker,
	}
}

// HandleTranslate handles POST /traducir.
func (h *TranslateHandler) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			metrics.RecordRequest("invalid")
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error: "El cuerpo de la solicitud es demasiado grande",
			})
			return
		}
		metrics.RecordRequest("invalid")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No se envió información"})
		return
	}

	if len(body) == 0 {
		metrics.RecordRequest("invalid")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No se envió información"})
		return
	}

	texto, errResp := extractTexto(body)
	if errResp != nil {
		metrics.RecordRequest("invalid")
		writeJSON(w, http.StatusBadRequest, *errResp)
		return
	}

	texto = normalize(texto)
	if texto == "" {
		metrics.RecordRequest("invalid")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No se envió texto"})
		return
	}

	if utf8.RuneCountInString(texto) > h.cfg.MaxTextLength {
		metrics.RecordRequest("invalid")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "El texto es demasiado largo"})
		return
	}

	// Alphabet symbols translate to themselves without touching the model.
	if lexicon.IsLiteral(texto) {
		metrics.RecordRequest("literal")
		metrics.RecordLiteralHit()
		writeJSON(w, http.StatusOK, translationResponse{
			TextoES:    texto,
			Traduccion: texto,
			Ms:         0,
		})
		return
	}

	bundle, observed := h.guard.GetOrTrigger()
	if bundle == nil {
		h.respondNotReady(w, observed)
		return
	}

	start := time.Now()
	traduccion, err := h.invoker.Translate(r.Context(), bundle, texto)
	elapsed := time.Since(start)
	metrics.RecordTranslation(elapsed, err == nil, len(texto))

	if err != nil {
		metrics.RecordRequest("translation_error")
		logger.Base().Error("translation failed",
			zap.Error(err),
			zap.Int("text_length", len(texto)),
			zap.Duration("elapsed", elapsed),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "La traducción falló"})
		return
	}

	metrics.RecordRequest("ok")
	writeJSON(w, http.StatusOK, translationResponse{
		TextoES:    texto,
		Traduccion: traduccion,
		Ms:         elapsed.Milliseconds(),
	})
}

// respondNotReady maps the state observed by GetOrTrigger to the loading or
// unavailable answer. A request that found the last load failed reports the
// failure detail; the retry it triggered proceeds in the background.
func (h *TranslateHandler) respondNotReady(w http.ResponseWriter, snap model.Snapshot) {
	if snap.State == model.StateError {
		metrics.RecordRequest("model_error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:  "El modelo de traducción no está disponible",
			Detail: snap.LastError,
		})
		return
	}

	metrics.RecordRequest("loading")
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{
		Error:  "El modelo de traducción se está cargando, intente más tarde",
		Status: "loading",
	})
}

// extractTexto parses the payload and pulls out the "texto" field,
// distinguishing a malformed payload from a wrong-typed field.
func extractTexto(body []byte) (string, *errorResponse) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &errorResponse{Error: "Formato JSON inválido"}
	}

	raw, ok := payload["texto"]
	if !ok {
		return "", nil
	}

	// Unmarshalling JSON null into a string is a no-op, so reject it
	// explicitly as a type mismatch.
	var texto string
	if string(raw) == "null" {
		return "", &errorResponse{Error: "El campo 'texto' debe ser string"}
	}
	if err := json.Unmarshal(raw, &texto); err != nil {
		return "", &errorResponse{Error: "El campo 'texto' debe ser string"}
	}
	return texto, nil
}

// normalize trims surrounding whitespace and lower-cases with Spanish
// casing rules so accented characters and ñ fold correctly.
func normalize(texto string) string {
	return cases.Lower(language.Spanish).String(strings.TrimSpace(texto))
}
