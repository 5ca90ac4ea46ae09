// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator is built once with WithRequiredStructEnabled.
// Fields are reported by their JSON names, and two custom tags cover the
// request vocabulary:
//
//   - band: empty, or low, medium, high in any case
//   - business: a business type that is not blank once normalized
//
// # Usage
//
//	type RecommendationRequest struct {
//	    Latitude  *float64 `json:"latitude" validate:"required,latitude"`
//	    Longitude *float64 `json:"longitude" validate:"required,longitude"`
//	    Business  string   `json:"business_type" validate:"business"`
//	    Intensity string   `json:"crowd_intensity" validate:"band"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// ToAPIError produces the VALIDATION_ERROR shape: one error carries its field,
// tag and value in Details; several are listed under Details["fields"].
package validation
