package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/Vilis322/roomsizer/internal/calculator"
	"github.com/Vilis322/roomsizer/internal/domain"
	"github.com/Vilis322/roomsizer/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// CalculatorFactory builds a rolls calculator for one request. The production
// factory returns the strip-based implementation; tests substitute fakes.
type CalculatorFactory func(rollWidth, rollLength float64, room *domain.Room, policy domain.WastePolicy) (calculator.Calculator, error)

// Handler wires the roll preset storage and calculator into HTTP handlers.
// Every calculate request builds its own Room and calculator; nothing from
// the domain is shared between requests.
type Handler struct {
	storage       storage.Storage
	newCalculator CalculatorFactory

	clock func() time.Time

	mu              sync.RWMutex
	presetUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithCalculatorFactory overrides the calculator strategy used for calculate
// requests.
func WithCalculatorFactory(factory CalculatorFactory) HandlerOption {
	return func(h *Handler) {
		h.newCalculator = factory
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		storage: store,
		newCalculator: func(rollWidth, rollLength float64, room *domain.Room, policy domain.WastePolicy) (calculator.Calculator, error) {
			return calculator.New(rollWidth, rollLength, room, policy)
		},
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.presetUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetRollPreset(w http.ResponseWriter, r *http.Request) {
	_ = r
	preset, err := h.storage.GetRollPreset()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, presetToResponse(preset, h.currentPresetUpdatedAt(), ""))
}

func (h *Handler) handlePutRollPreset(w http.ResponseWriter, r *http.Request) {
	var req rollPresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	preset := storage.RollPreset{
		RollWidth:     req.RollWidth,
		RollLength:    req.RollLength,
		DropAllowance: req.DropAllowance,
		ExtraFactor:   req.ExtraFactor,
	}
	if err := h.storage.SetRollPreset(preset); err != nil {
		if errors.Is(err, storage.ErrInvalidRollPreset) {
			writeError(w, http.StatusBadRequest, "Invalid roll preset", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markPresetUpdated()

	stored, err := h.storage.GetRollPreset()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, presetToResponse(stored, h.currentPresetUpdatedAt(), "Roll preset updated successfully"))
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	preset, err := h.storage.GetRollPreset()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	rollWidth := preset.RollWidth
	if req.RollWidth != nil {
		rollWidth = *req.RollWidth
	}
	rollLength := preset.RollLength
	if req.RollLength != nil {
		rollLength = *req.RollLength
	}
	dropAllowance := preset.DropAllowance
	if req.DropAllowance != nil {
		dropAllowance = *req.DropAllowance
	}
	extraFactor := preset.ExtraFactor
	if req.ExtraFactor != nil {
		extraFactor = *req.ExtraFactor
	}

	policy, err := domain.NewWastePolicy(dropAllowance, extraFactor)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	room, err := domain.NewRoom(req.Room.Width, req.Room.Length, req.Room.Height)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	for _, op := range req.Openings {
		kind, err := domain.ParseOpeningKind(op.Kind)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid opening", err.Error())
			return
		}
		opening, err := domain.NewOpening(op.Width, op.Height, kind)
		if err != nil {
			writeValidationError(w, err)
			return
		}
		if err := room.AddOpening(opening); err != nil {
			writeValidationError(w, err)
			return
		}
	}

	calc, err := h.newCalculator(rollWidth, rollLength, room, policy)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	wallpaper := calculator.NewWallpaperWith(calc)

	start := time.Now()
	rolls, calcErr := wallpaper.RollsNeeded()
	elapsed := time.Since(start)

	if calcErr != nil {
		var tooShort *calculator.RollTooShortError
		switch {
		case errors.As(calcErr, &tooShort):
			suggestion := fmt.Sprintf("Use a roll of at least %.2f m or reduce the drop allowance", tooShort.StripHeight)
			writeError(w, http.StatusUnprocessableEntity, "Roll too short", calcErr.Error(), suggestion)
		default:
			writeInternalError(w, calcErr)
		}
		return
	}

	netArea, err := room.NetWallArea()
	if err != nil {
		writeValidationError(w, err)
		return
	}

	resp := calculateResponse{
		RollsNeeded:       rolls,
		WallArea:          round2(room.WallArea()),
		NetWallArea:       round2(netArea),
		Perimeter:         round2(room.Perimeter()),
		CalculationTimeMs: elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) currentPresetUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.presetUpdatedAt
}

func (h *Handler) markPresetUpdated() {
	h.mu.Lock()
	h.presetUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type roomPayload struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

type openingPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Kind   string  `json:"kind"`
}

type calculateRequest struct {
	Room          roomPayload      `json:"room"`
	RollWidth     *float64         `json:"rollWidth"`
	RollLength    *float64         `json:"rollLength"`
	DropAllowance *float64         `json:"dropAllowance"`
	ExtraFactor   *float64         `json:"extraFactor"`
	Openings      []openingPayload `json:"openings"`
}

type calculateResponse struct {
	RollsNeeded       int     `json:"rollsNeeded"`
	WallArea          float64 `json:"wallArea"`
	NetWallArea       float64 `json:"netWallArea"`
	Perimeter         float64 `json:"perimeter"`
	CalculationTimeMs int64   `json:"calculationTimeMs"`
}

type rollPresetRequest struct {
	RollWidth     float64 `json:"rollWidth"`
	RollLength    float64 `json:"rollLength"`
	DropAllowance float64 `json:"dropAllowance"`
	ExtraFactor   float64 `json:"extraFactor"`
}

type rollPresetResponse struct {
	RollWidth     float64   `json:"rollWidth"`
	RollLength    float64   `json:"rollLength"`
	DropAllowance float64   `json:"dropAllowance"`
	ExtraFactor   float64   `json:"extraFactor"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Message       string    `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Field      string `json:"field,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func presetToResponse(preset storage.RollPreset, updatedAt time.Time, message string) rollPresetResponse {
	return rollPresetResponse{
		RollWidth:     preset.RollWidth,
		RollLength:    preset.RollLength,
		DropAllowance: preset.DropAllowance,
		ExtraFactor:   preset.ExtraFactor,
		UpdatedAt:     updatedAt,
		Message:       message,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

// writeValidationError maps domain validation failures to a 400 response
// carrying the offending field name.
func writeValidationError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp := errorResponse{
			Error:   "Validation failed",
			Details: verr.Detail,
			Field:   verr.Field,
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	writeError(w, http.StatusBadRequest, "Validation failed", err.Error())
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
