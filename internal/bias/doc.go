// Package bias defines the shared domain types for the bias-analysis core:
// reasoning chains, evidence, detected biases, feedback events, sensitivity
// profiles and alerts.
//
// The package is a leaf. It owns no services and holds no state; every other
// internal package consumes these types. Callers own the ReasoningChain they
// pass in - the core only reads it, except the correction engine, which
// returns a new cloned-and-modified copy and never mutates the original.
//
// All probability-like fields (severity, confidence, relevance, reliability,
// sensitivity) live in [0,1] and stay there after any adjustment. Use
// Clamp01 rather than trusting arithmetic to land in range.
package bias
