package driver

import (
	"encoding/json"
	"fmt"

	"minic/internal/diag"
	"minic/internal/observ"
	"minic/internal/source"
)

type timingPayload struct {
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic adds an OBS6001 info diagnostic whose note carries
// the report as JSON. It bypasses the bag cap so a full bag still gets it.
func appendTimingDiagnostic(bag *diag.Bag, path string, report observ.Report) {
	payload := timingPayload{Path: path, TotalMS: report.TotalMS, Phases: report.Phases}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	d := diag.New(diag.SevInfo, diag.ObsTimings, source.Location{}, fmt.Sprintf("timings: total %.2f ms", report.TotalMS)).
		WithNote(source.Location{}, string(data))
	if bag.Add(d) {
		return
	}
	overflow := diag.NewBag(0)
	overflow.Add(d)
	bag.Merge(overflow)
}
