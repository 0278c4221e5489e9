// Package recognizer implements heuristic detection of cognitive biases
// in reasoning chains and raw text.
//
// Two independent pipelines share one output type:
//
//   - DetectBiases runs nine structural detectors over a ReasoningChain.
//     Each detector is an entry in a rule table pairing a bias type with
//     a detection function; scores come from configuration, not control
//     flow, so deployments can tune strictness without code changes.
//
//   - DetectFromText applies a declarative phrase/keyword-set library to
//     unstructured text: case-insensitive substring matching plus
//     order-independent all-words matching against the token set. Each
//     additional match nudges severity and confidence upward to reflect
//     corroborating signal strength.
//
// The recognizer holds no mutable state and is safe for unrestricted
// concurrent use.
package recognizer
