// Package anneal is a small simulated-annealing driver for any Proposer
// (propose / accept / reject) such as calibrate.Calibrator.
//
// Schedule:
//
//	T = InitialTemperature
//	for step in 1..Steps:                    (major iteration)
//	    for attempt in 1..Attempts:          (minor iterations)
//	        f  = p.Propose()
//	        skip (count as rejected) if p is a Pender and !p.Pending()
//	        Δ  = f - current
//	        accept if Δ > 0 or U(0,1) < exp(Δ/T)
//	        accepted: p.Accept(); r.Report(true); current = f
//	        rejected: p.Reject()
//	        stop the step after Successes acceptances
//	    r.Report(false)
//	    T *= Factor
//
// The driver bounds wall time: the context is checked before every
// proposal. RNG streams are deterministic for a given Seed (0 selects a
// fixed default seed).
package anneal
