package config

import (
	"fmt"
	"strings"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
)

// Persona names accepted by the comparison endpoints.
const (
	PersonaDefault  = "default"
	PersonaBusiness = "business"
	PersonaBudget   = "budget"
	PersonaFamily   = "family"
)

// personaWeights maps each travel persona to its scoring weight vector.
// Every vector must sum to 1; MustValidatePersonas enforces this at startup
// so a bad table fails fast instead of surfacing per-request.
var personaWeights = map[string]domain.Weights{
	PersonaDefault: {
		Safety:      0.20,
		Reliability: 0.20,
		Comfort:     0.20,
		Service:     0.20,
		Value:       0.20,
	},
	PersonaBusiness: {
		Safety:      0.20,
		Reliability: 0.30,
		Comfort:     0.25,
		Service:     0.15,
		Value:       0.10,
	},
	PersonaBudget: {
		Safety:      0.15,
		Reliability: 0.15,
		Comfort:     0.10,
		Service:     0.10,
		Value:       0.50,
	},
	PersonaFamily: {
		Safety:      0.35,
		Reliability: 0.20,
		Comfort:     0.20,
		Service:     0.15,
		Value:       0.10,
	},
}

// PersonaWeights returns the weight vector for the given persona.
// An empty persona resolves to the default vector. Unknown personas
// return a wrapped ErrUnknownPersona.
func PersonaWeights(persona string) (domain.Weights, error) {
	name := strings.ToLower(strings.TrimSpace(persona))
	if name == "" {
		name = PersonaDefault
	}
	w, ok := personaWeights[name]
	if !ok {
		return domain.Weights{}, fmt.Errorf("%w: %q", domain.ErrUnknownPersona, persona)
	}
	return w, nil
}

// Personas lists the known persona names.
func Personas() []string {
	names := make([]string, 0, len(personaWeights))
	for name := range personaWeights {
		names = append(names, name)
	}
	return names
}

// MustValidatePersonas panics if any persona weight vector is invalid.
// Called once from main() during startup.
func MustValidatePersonas() {
	for name, w := range personaWeights {
		if err := w.Validate(); err != nil {
			panic(fmt.Sprintf("persona %q has invalid weights: %v", name, err))
		}
	}
}
