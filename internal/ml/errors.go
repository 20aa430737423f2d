// Package ml provides the client for the win-probability classifier service.
package ml

import "errors"

var (
	// ErrClassifierUnavailable indicates the classifier service is unreachable
	ErrClassifierUnavailable = errors.New("classifier service unavailable")

	// ErrInvalidPrediction indicates the returned probability is outside [0, 1]
	ErrInvalidPrediction = errors.New("invalid prediction response")

	// ErrInvalidFeatures indicates the feature vector has the wrong shape
	ErrInvalidFeatures = errors.New("invalid feature vector")

	// ErrTimeout indicates the prediction request timed out
	ErrTimeout = errors.New("prediction request timeout")
)
