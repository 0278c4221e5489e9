// Package correction rewrites biased reasoning chains.
//
// The engine dispatches on bias type to one of eight strategies. Each
// strategy clones the chain, annotates the copy with counter-evidence or
// alternative reasoning steps, and estimates how much of the bias's
// impact the annotation removes. The original chain is never mutated.
//
// Bandwagon bias deliberately has no registered strategy: social-proof
// reasoning needs requirements the chain does not carry, so the engine
// reports ErrNoStrategy rather than fabricating a correction. The
// corrector package still provides manual guidance for it.
package correction
