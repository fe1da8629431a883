package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"

	"plant-id/api/internal/metrics"
	"plant-id/api/internal/util"
	"plant-id/api/internal/vision"
	"plant-id/api/internal/vision/types"
)

const (
	msgNoImage      = "No image provided"
	msgBadBody      = "Invalid request body"
	msgBadPayload   = "Invalid image payload"
	msgTooLarge     = "Image too large"
	msgIdentifyFail = "Failed to identify plant"
)

// Identify serves POST /api/identify.
func (h *Handle) Identify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only", "")
		return
	}
	start := time.Now()
	logger := requestLogger(r)
	outcome := metrics.OutcomeBadInput
	defer func() { metrics.ObserveIdentify(outcome, time.Since(start)) }()

	// base64 inflates by 4/3; leave room for the JSON envelope.
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxImageBytes/3*4+64<<10)
	var req types.IdentifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgTooLarge, "")
			return
		}
		logger.WithError(err).Debug("bad request body")
		writeError(w, http.StatusBadRequest, msgBadBody, "")
		return
	}

	image := strings.TrimSpace(req.Image)
	if image == "" {
		writeError(w, http.StatusBadRequest, msgNoImage, "")
		return
	}
	if err := h.checkPayload(image); err != nil {
		logger.WithError(err).Debug("bad image payload")
		if errors.Is(err, errPayloadTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgTooLarge, "")
			return
		}
		writeError(w, http.StatusBadRequest, msgBadPayload, "")
		return
	}

	eng, err := h.engs.GetEngine(h.providerFor(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown provider", err.Error())
		return
	}
	if !vision.Available(eng) {
		outcome = metrics.OutcomeDemo
		logger.Debug("no provider credential, serving demo result")
		writeJSON(w, http.StatusOK, vision.Demo())
		return
	}

	ctx := r.Context()
	if d := h.deadline(r); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	logger = logger.WithFields(log.Fields{"provider": eng.Name(), "model": eng.GetModel()})
	out, err := vision.Identify(ctx, eng, image)
	switch {
	case err == nil:
		outcome = metrics.OutcomeSuccess
		logger.WithFields(log.Fields{
			"confidence": out.Confidence,
			"duration":   time.Since(start).String(),
		}).Info("plant identified")
		writeJSON(w, http.StatusOK, out)
	case vision.IsUpstream(err):
		outcome = metrics.OutcomeUpstream
		logger.WithError(err).Warn("provider call failed")
		writeError(w, http.StatusBadGateway, msgIdentifyFail, util.Truncate(err.Error(), 512))
	default:
		outcome = metrics.OutcomeParse
		logger.WithError(err).Warn("provider reply rejected")
		writeError(w, http.StatusInternalServerError, msgIdentifyFail, util.Truncate(err.Error(), 512))
	}
}

var errPayloadTooLarge = errors.New("image payload too large")

// checkPayload rejects data URIs and bare base64 that do not decode, or that
// decode to more than MaxImageBytes. http(s) URLs are passed through.
func (h *Handle) checkPayload(image string) error {
	if util.IsHTTPURL(image) {
		return nil
	}
	var (
		raw []byte
		err error
	)
	if util.IsDataURL(image) {
		raw, _, err = util.DecodeDataURL(image)
	} else {
		raw, err = util.DecodeBase64(image)
	}
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return errors.New("empty image")
	}
	if int64(len(raw)) > h.opts.MaxImageBytes {
		return errPayloadTooLarge
	}
	return nil
}

func (h *Handle) providerFor(r *http.Request) string {
	if p := strings.TrimSpace(r.URL.Query().Get("provider")); p != "" {
		return p
	}
	return h.opts.Provider
}
