/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package foos

import "errors"

// Reasons a game is left out of the rating pass. These never abort a pass;
// they are reported in Result.Skipped.
var (
	ErrMissingParticipant   = errors.New("missing participant")
	ErrDuplicateParticipant = errors.New("player occupies more than one slot")
	ErrMalformedScore       = errors.New("malformed score")
	ErrDegenerateOutcome    = errors.New("degenerate outcome")
)

// ErrMissingField is returned by the normalizer when a record lacks a column
// the league tables are required to have. Unlike the skip reasons above it
// means the upstream data contract is broken.
var ErrMissingField = errors.New("missing required field")
