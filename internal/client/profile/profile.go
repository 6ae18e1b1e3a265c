// Package profile translates the financial profile between the
// application enum and the backend's lowercase strings.
//
// Reads are tolerant: case and surrounding whitespace are ignored, the
// historical synonym "arrojado" is accepted for AGRESSIVO, and anything
// unrecognized (including the empty string) degrades to MODERADO.
// Writes are conservative: AGRESSIVO is always sent as "agressivo", with
// "arrojado" offered only as an explicit fallback for stricter endpoints.
package profile

import (
	"strings"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
)

// Backend encodings.
const (
	BackendConservador = "conservador"
	BackendModerado    = "moderado"
	BackendAgressivo   = "agressivo"
	BackendArrojado    = "arrojado"
)

// FromBackend maps a backend profile string to the enum.
func FromBackend(raw string) models.FinancialProfile {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case BackendConservador:
		return models.ProfileConservador
	case BackendModerado:
		return models.ProfileModerado
	case BackendAgressivo, BackendArrojado:
		return models.ProfileAgressivo
	default:
		return models.ProfileModerado
	}
}

// ToBackend maps the enum to the backend's canonical encoding.
func ToBackend(p models.FinancialProfile) string {
	switch p {
	case models.ProfileConservador:
		return BackendConservador
	case models.ProfileAgressivo:
		return BackendAgressivo
	default:
		return BackendModerado
	}
}

// ToBackendWithFallback returns the primary encoding and the one to retry
// with if the primary is rejected. Only AGRESSIVO has a distinct fallback;
// for the other values both results are equal.
func ToBackendWithFallback(p models.FinancialProfile) (primary, fallback string) {
	if p != models.ProfileAgressivo {
		v := ToBackend(p)
		return v, v
	}
	return BackendAgressivo, BackendArrojado
}
