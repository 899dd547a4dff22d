// Package server exposes the affordability report engine over a small JSON
// HTTP API. Configurations are posted as YAML and results returned as JSON,
// with a CSV rendering included for download.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmolina/homeplan/internal/config"
	"github.com/dmolina/homeplan/internal/report"
	"github.com/dmolina/homeplan/pkg/constants"
	"github.com/dmolina/homeplan/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the report API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Report API endpoint (YAML configuration body)
	mux.HandleFunc("/api/report", h.handleReport)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Liveness endpoint
	mux.HandleFunc("/api/healthz", h.handleHealthz)

	return mux
}

type reportResponse struct {
	Reports  []scenarioReport `json:"reports"`
	CSV      string           `json:"csv"`
	Warnings []string         `json:"warnings,omitempty"`
	Duration string           `json:"duration"`
}

type scenarioReport struct {
	Scenario    string      `json:"scenario"`
	Income      float64     `json:"income"`
	Savings     float64     `json:"savings"`
	SavingsRate float64     `json:"savingsRate"`
	Rows        []reportRow `json:"rows"`
}

type reportRow struct {
	House           string   `json:"house"`
	Price           float64  `json:"price"`
	Target          float64  `json:"target"`
	Months          int      `json:"months"`
	Reachable       bool     `json:"reachable"`
	AchievementDate string   `json:"achievementDate,omitempty"`
	Quota           float64  `json:"quota"`
	Ratio           *float64 `json:"ratio,omitempty"`
	RiskBand        int      `json:"riskBand,omitempty"`
	RiskLabel       string   `json:"riskLabel,omitempty"`
	Projection      float64  `json:"projection,omitempty"`
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	configBytes, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read configuration: %v", err))
		return
	}

	var conf config.Configuration
	if err := yaml.Unmarshal(configBytes, &conf); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err))
		return
	}

	warnings := conf.ValidateConfiguration()
	conf.Resolve(h.logger)
	results := report.Build(h.logger, conf)

	response := reportResponse{
		Reports:  make([]scenarioReport, 0, len(results)),
		CSV:      output.CsvString(results),
		Warnings: warnings,
		Duration: time.Since(start).String(),
	}
	for _, result := range results {
		response.Reports = append(response.Reports, toScenarioReport(result))
	}

	h.logger.Debug("served report",
		zap.String("op", "server.handleReport"),
		zap.Int("scenarios", len(results)),
		zap.Duration("duration", time.Since(start)),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func toScenarioReport(result report.Report) scenarioReport {
	sr := scenarioReport{
		Scenario:    result.Scenario,
		Income:      result.Income,
		Savings:     result.Savings,
		SavingsRate: result.SavingsRate,
		Rows:        make([]reportRow, 0, len(result.Rows)),
	}
	for _, row := range result.Rows {
		out := reportRow{
			House:           row.House,
			Price:           row.Price,
			Target:          row.Target,
			Months:          row.Months,
			Reachable:       row.Reachable,
			AchievementDate: row.AchievementDate,
			Quota:           row.Quota,
			Projection:      row.Projection,
		}
		if row.RatioDefined {
			ratio := row.Ratio
			out.Ratio = &ratio
			out.RiskBand = row.Risk.Band
			out.RiskLabel = row.Risk.Label
		}
		sr.Rows = append(sr.Rows, out)
	}
	return sr
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.logger.Warn(msg,
		zap.String("op", "server.handleReport"),
		zap.Int("status", status),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
