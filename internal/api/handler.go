package api

import (
	"errors"
	"fmt"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/wgomg/kwextract/internal/batch"
	"github.com/wgomg/kwextract/internal/config"
	"github.com/wgomg/kwextract/internal/processor"
	"github.com/wgomg/kwextract/internal/utils"
	"github.com/wgomg/kwextract/internal/utils/httputils"
)

const (
	// MaxBatchDocuments bounds the number of documents accepted by one batch
	// request.
	MaxBatchDocuments = 1000
	// MaxPOSPatterns bounds the POS patterns one request may override.
	MaxPOSPatterns = 32
)

type Handler struct {
	logger    *utils.Logger
	cfg       *config.Config
	resources *processor.Resources
	patterns  *utils.PatternCache
	extractor *processor.Extractor
}

func NewHandler(
	logger *utils.Logger,
	cfg *config.Config,
	resources *processor.Resources,
	patterns *utils.PatternCache,
) (*Handler, error) {
	if patterns == nil {
		patterns = utils.NewPatternCache()
	}

	extractor, err := processor.NewExtractor(cfg.Extraction, resources, patterns, logger)
	if err != nil {
		return nil, err
	}

	return &Handler{
		logger:    logger,
		cfg:       cfg,
		resources: resources,
		patterns:  patterns,
		extractor: extractor,
	}, nil
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	if err := httputils.LogRequestBody(r, logger); err != nil {
		logger.Error("Failed to read request body: %v", err)
		httputils.HandleError(w, err)
		return
	}

	var req ExtractRequest
	if err := httputils.DecodeJSON(w, r, &req); err != nil {
		logger.Error("JSON decode error: %v", err)
		httputils.HandleError(w, err)
		return
	}
	if req.Document == nil {
		httputils.HandleError(w, httputils.NewHTTPError(http.StatusBadRequest, "document is required"))
		return
	}

	extractor, err := h.extractorFor(req.Options, logger)
	if err != nil {
		logger.Error("Invalid extraction options: %v", err)
		httputils.HandleError(w, toHTTPError(err))
		return
	}

	batch.NormalizeDocument(req.Document)

	runner := batch.NewRunner(extractor, 1, logger)
	results, err := runner.RunDocuments(r.Context(), []*processor.Document{req.Document})
	if err != nil {
		logger.Error("Extraction failed: %v", err)
		httputils.HandleError(w, toHTTPError(err))
		return
	}

	res := results[0]
	logger.Info("Extracted %d keywords from %d tokens", len(res.Keywords), res.NumTokens)

	httputils.SuccessResponse(w, "Keywords extracted", newExtractResponse(res, req.Options))
}

func (h *Handler) HandleExtractBatch(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	if err := httputils.LogRequestBody(r, logger); err != nil {
		logger.Error("Failed to read request body: %v", err)
		httputils.HandleError(w, err)
		return
	}

	var req BatchRequest
	if err := httputils.DecodeJSON(w, r, &req); err != nil {
		logger.Error("JSON decode error: %v", err)
		httputils.HandleError(w, err)
		return
	}
	if len(req.Documents) == 0 {
		httputils.HandleError(w, httputils.NewHTTPError(http.StatusBadRequest, "documents must not be empty"))
		return
	}
	if len(req.Documents) > MaxBatchDocuments {
		httputils.HandleError(w, httputils.NewHTTPError(
			http.StatusRequestEntityTooLarge,
			fmt.Sprintf("at most %d documents per batch", MaxBatchDocuments),
		))
		return
	}
	for i, doc := range req.Documents {
		if doc == nil {
			httputils.HandleError(w, httputils.NewHTTPError(
				http.StatusBadRequest,
				fmt.Sprintf("document %d is null", i),
			))
			return
		}
		batch.NormalizeDocument(doc)
	}

	extractor, err := h.extractorFor(req.Options, logger)
	if err != nil {
		logger.Error("Invalid extraction options: %v", err)
		httputils.HandleError(w, toHTTPError(err))
		return
	}

	runner := batch.NewRunner(extractor, h.cfg.Batch.Workers, logger)
	results, err := runner.RunDocuments(r.Context(), req.Documents)
	if err != nil {
		logger.Error("Batch extraction failed: %v", err)
		httputils.HandleError(w, toHTTPError(err))
		return
	}

	resp := BatchResponse{
		Total:   len(results),
		Results: make([]ExtractResponse, len(results)),
	}
	for i, res := range results {
		if res.Skipped {
			resp.Skipped++
		}
		resp.Results[i] = newExtractResponse(res, req.Options)
	}

	logger.Info("Processed batch of %d documents (%d skipped)", resp.Total, resp.Skipped)

	httputils.SuccessResponse(w, "Batch processed", resp)
}

// extractorFor returns the shared extractor unless the request overrides
// part of the extraction configuration.
func (h *Handler) extractorFor(opts ExtractOptions, logger *utils.Logger) (*processor.Extractor, error) {
	if !opts.overridesConfig() {
		return h.extractor, nil
	}

	if len(opts.POSPatterns) > MaxPOSPatterns {
		return nil, httputils.NewHTTPError(
			http.StatusBadRequest,
			fmt.Sprintf("at most %d pos_patterns per request", MaxPOSPatterns),
		)
	}

	cfg := h.cfg.Extraction.Clone()
	if opts.POSPatterns != nil {
		cfg.POSPatterns = append([]string(nil), opts.POSPatterns...)
	}
	if opts.Lemma != nil {
		cfg.UseLemma = *opts.Lemma
	}
	if opts.Window != nil {
		cfg.Window = *opts.Window
	}
	if opts.Threshold != nil {
		cfg.Threshold = *opts.Threshold
	}
	if opts.SkipConnectorFilter != nil {
		cfg.SkipConnectorFilter = *opts.SkipConnectorFilter
	}

	return processor.NewExtractor(cfg, h.resources, h.patterns, logger)
}

func (h *Handler) requestLogger(r *http.Request) *utils.Logger {
	return h.logger.With("request_id", chimiddleware.GetReqID(r.Context()))
}

func toHTTPError(err error) error {
	var vErr *processor.ValidationError
	if errors.As(err, &vErr) {
		return httputils.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	var cErr *processor.ConfigError
	if errors.As(err, &cErr) {
		return httputils.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return err
}
