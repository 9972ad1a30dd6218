/*
 *  annotate.go
 *  mirbench
 *
 *  Created by Haibao Tang on 12/12/19
 *  Copyright © 2019 Haibao Tang. All rights reserved.
 */

package mirbench

import (
	"path/filepath"
)

// Annotator intersects the alignments of one tool with the miRBase loci
type Annotator struct {
	Runner  Runner
	Dir     string
	Overlap float64
}

// Run writes `mirbase.bed` in the tool directory unless it exists already, and
// returns its absolute path
func (r *Annotator) Run(input, mirbase string) (string, error) {
	output := filepath.Join(r.Dir, AnnotationFile)
	if IsNewerFile(input, output) {
		log.Warningf("`%s` is older than `%s` but will be reused", output, input)
	}
	overlap := r.Overlap
	if overlap <= 0 {
		overlap = DefaultOverlap
	}
	p := BedtoolsIntersect{Bed: true, WriteBoth: true, SameStrand: true,
		Fraction: overlap, A: input, B: mirbase}
	if err := runStep(r.Runner, output, p, r.Dir, output, "Annotate `"+input+"` with miRBase"); err != nil {
		return "", err
	}
	return output, nil
}
