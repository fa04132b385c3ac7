package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/dsp/signal"
	"github.com/cwbudde/algo-eq/dsp/spectrum"
	"github.com/cwbudde/algo-eq/dsp/stft"
)

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "equalizer backend reachable",
	})
}

func (s *Server) handleEqualize(w http.ResponseWriter, r *http.Request) {
	var req equalizeRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := validateSignal(req.Signal, req.SampleRate); err != nil {
		s.badRequest(w, err)
		return
	}

	bands := toBands(req.Bands)
	for _, band := range bands {
		if err := band.Validate(); err != nil {
			s.badRequest(w, err)
			return
		}
	}

	equalizer := eq.NewEqualizer(core.WithSampleRate(req.SampleRate))

	out, err := equalizer.Apply(req.Signal, bands)
	degraded := err != nil
	if degraded {
		// Best-effort: Apply already degraded to the unmodified signal.
		s.log.Warn("equalize degraded to pass-through",
			zap.Int("samples", len(req.Signal)),
			zap.Float64("sample_rate", req.SampleRate),
			zap.Error(err),
		)
	} else {
		s.log.Info("equalize",
			zap.Int("samples", len(req.Signal)),
			zap.Int("bands", len(bands)),
			zap.Float64("sample_rate", req.SampleRate),
		)
	}

	writeJSON(w, http.StatusOK, equalizeResponse{
		Signal:     out,
		SampleRate: req.SampleRate,
		Degraded:   degraded,
	})
}

func (s *Server) handleSpectrum(w http.ResponseWriter, r *http.Request) {
	var req spectrumRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := validateSignal(req.Signal, req.SampleRate); err != nil {
		s.badRequest(w, err)
		return
	}

	analyzer := spectrum.NewAnalyzer(
		core.WithSampleRate(req.SampleRate),
		core.WithBlockSize(req.TargetLength),
	)

	res := analyzer.Compute(req.Signal)
	writeJSON(w, http.StatusOK, spectrumResponse{
		Frequencies: emptyNotNull(res.Frequencies),
		Magnitude:   emptyNotNull(res.Magnitude),
	})
}

func (s *Server) handleSpectrogram(w http.ResponseWriter, r *http.Request) {
	var req spectrogramRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := validateSignal(req.Signal, req.SampleRate); err != nil {
		s.badRequest(w, err)
		return
	}

	opts := []stft.Option{stft.WithFFTSize(req.NFFT), stft.WithHopLength(req.HopLength)}
	if req.DBScale {
		opts = append(opts, stft.WithDBScale())
	}

	engine := stft.NewEngine([]core.ProcessorOption{core.WithSampleRate(req.SampleRate)}, opts...)

	frames := engine.Compute(req.Signal)
	if frames == nil {
		frames = [][]float64{}
	}

	writeJSON(w, http.StatusOK, spectrogramResponse{
		Frames:      frames,
		Frequencies: engine.Frequencies(),
	})
}

func (s *Server) handleResponseCurve(w http.ResponseWriter, r *http.Request) {
	var req responseCurveRequest
	if !s.decode(w, r, &req) {
		return
	}

	bands := toBands(req.Bands)
	for _, band := range bands {
		if err := band.Validate(); err != nil {
			s.badRequest(w, err)
			return
		}
	}

	curve := eq.FrequencyResponse(bands, req.NPoints)
	writeJSON(w, http.StatusOK, spectrumResponse{
		Frequencies: curve.Frequencies,
		Magnitude:   curve.Magnitude,
	})
}

func (s *Server) handleBands(w http.ResponseWriter, r *http.Request) {
	num := queryInt(r, "num", 10)
	minFreq := queryFloat(r, "min", 20)
	maxFreq := queryFloat(r, "max", 20000)

	bands, err := eq.DefaultBands(num, minFreq, maxFreq)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]bandPayload{"bands": toBandPayloads(bands)})
}

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if !s.decode(w, r, &req) {
		return
	}

	if req.SampleRate <= 0 {
		s.badRequest(w, fmt.Errorf("api: sample rate must be > 0: %v", req.SampleRate))
		return
	}
	if req.Duration <= 0 || req.Duration > maxSignalSeconds {
		s.badRequest(w, fmt.Errorf("api: duration must be in (0, %v] seconds: %v", maxSignalSeconds, req.Duration))
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = 1
	}

	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(req.SampleRate)},
		signal.WithSeed(seed),
	)

	out, timeAxis, err := gen.Synthesize(req.Frequencies, req.Duration)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	writeJSON(w, http.StatusOK, synthesizeResponse{Signal: out, Time: timeAxis})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		s.badRequest(w, fmt.Errorf("api: decode request: %v", err))
		return false
	}
	return true
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	s.log.Warn("bad request", zap.Error(err))
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func validateSignal(sig []float64, sampleRate float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("api: sample rate must be > 0: %v", sampleRate)
	}

	if max := int(maxSignalSeconds * sampleRate); len(sig) > max {
		return fmt.Errorf("api: signal too long: %d samples exceeds %v seconds at %v Hz", len(sig), maxSignalSeconds, sampleRate)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func emptyNotNull(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}

	var out int
	if _, err := fmt.Sscanf(v, "%d", &out); err != nil {
		return def
	}
	return out
}

func queryFloat(r *http.Request, key string, def float64) float64 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}

	var out float64
	if _, err := fmt.Sscanf(v, "%g", &out); err != nil {
		return def
	}
	return out
}
