package reconcile

import (
	"time"

	"github.com/andina-hr/timeclock-backend-go/internal/config"
)

// Options are the reconciliation policy knobs, materialized once into the
// snapshot so no component reaches into ambient configuration.
type Options struct {
	ShiftCap        time.Duration // daily overtime cap
	LactationCap    time.Duration // cap while a lactation period is active
	Tolerance       time.Duration // lone punch to boundary matching window
	GraceWindowDays int
	GraceLimit      int
	FallbackMode    string // "employee" or "department"
	Workers         int
}

func OptionsFromConfig(cfg config.ReconcileConfig) Options {
	return Options{
		ShiftCap:        time.Duration(cfg.ShiftMaxHours * float64(time.Hour)),
		LactationCap:    time.Duration(cfg.LactationMaxHours * float64(time.Hour)),
		Tolerance:       time.Duration(cfg.ToleranceHours * float64(time.Hour)),
		GraceWindowDays: cfg.GraceWindowDays,
		GraceLimit:      cfg.GraceLimit,
		FallbackMode:    cfg.FallbackMode,
		Workers:         cfg.Workers,
	}
}
