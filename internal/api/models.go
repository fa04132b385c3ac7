package api

import "github.com/cwbudde/algo-eq/dsp/eq"

// bandPayload is the wire form of an equalizer band.
type bandPayload struct {
	ID         int     `json:"id,omitempty"`
	LowFreq    float64 `json:"low_freq"`
	HighFreq   float64 `json:"high_freq"`
	Scale      float64 `json:"scale"`
	CenterFreq float64 `json:"center_freq,omitempty"`
	Label      string  `json:"label,omitempty"`
}

func (p bandPayload) toBand() eq.Band {
	return eq.Band{
		ID:         p.ID,
		LowFreq:    p.LowFreq,
		HighFreq:   p.HighFreq,
		Scale:      p.Scale,
		CenterFreq: p.CenterFreq,
		Label:      p.Label,
	}
}

func toBandPayloads(bands []eq.Band) []bandPayload {
	out := make([]bandPayload, len(bands))
	for i, b := range bands {
		out[i] = bandPayload{
			ID:         b.ID,
			LowFreq:    b.LowFreq,
			HighFreq:   b.HighFreq,
			Scale:      b.Scale,
			CenterFreq: b.CenterFreq,
			Label:      b.Label,
		}
	}
	return out
}

func toBands(payloads []bandPayload) []eq.Band {
	out := make([]eq.Band, len(payloads))
	for i, p := range payloads {
		out[i] = p.toBand()
	}
	return out
}

type equalizeRequest struct {
	Signal     []float64     `json:"signal"`
	SampleRate float64       `json:"sample_rate"`
	Bands      []bandPayload `json:"bands"`
}

type equalizeResponse struct {
	Signal     []float64 `json:"signal"`
	SampleRate float64   `json:"sample_rate"`
	Degraded   bool      `json:"degraded,omitempty"`
}

type spectrumRequest struct {
	Signal       []float64 `json:"signal"`
	SampleRate   float64   `json:"sample_rate"`
	TargetLength int       `json:"target_length,omitempty"`
}

type spectrumResponse struct {
	Frequencies []float64 `json:"frequencies"`
	Magnitude   []float64 `json:"magnitude"`
}

type spectrogramRequest struct {
	Signal     []float64 `json:"signal"`
	SampleRate float64   `json:"sample_rate"`
	NFFT       int       `json:"n_fft,omitempty"`
	HopLength  int       `json:"hop_length,omitempty"`
	DBScale    bool      `json:"db_scale,omitempty"`
}

type spectrogramResponse struct {
	Frames      [][]float64 `json:"frames"`
	Frequencies []float64   `json:"frequencies"`
}

type responseCurveRequest struct {
	Bands   []bandPayload `json:"bands"`
	NPoints int           `json:"n_points,omitempty"`
}

type synthesizeRequest struct {
	Frequencies []float64 `json:"frequencies"`
	Duration    float64   `json:"duration"`
	SampleRate  float64   `json:"sample_rate"`
	Seed        int64     `json:"seed,omitempty"`
}

type synthesizeResponse struct {
	Signal []float64 `json:"signal"`
	Time   []float64 `json:"time"`
}

type errorResponse struct {
	Error string `json:"error"`
}
