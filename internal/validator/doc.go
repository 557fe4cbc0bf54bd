// Package validator assigns a release version to a package. It prompts for
// a candidate, checks the registry for a collision and re-prompts on
// collision, up to a fixed number of attempts.
//
// The states are:
//
//	PROMPT -> CHECKING -> ACCEPTED
//	                   -> COLLIDED -> PROMPT (while attempts remain)
//	                               -> exhausted (terminal failure)
package validator
