/*
 *  eland.go
 *  mirbench
 *
 *  Created by Haibao Tang on 12/12/19
 *  Copyright © 2019 Haibao Tang. All rights reserved.
 */

package mirbench

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ElandColumns is the minimum number of columns in a sRNAmapper hit line
const ElandColumns = 7

// FormatElandLine converts one sRNAmapper hit into a 12-column BED line. The end is
// the start plus the length of the matched sequence, the strand comes from the
// seventh column and the remaining fields are fillers.
func FormatElandLine(line string) (string, error) {
	cols := strings.Split(strings.TrimSpace(line), "\t")
	if len(cols) < ElandColumns {
		return "", errors.Errorf("expect at least %d columns, got %d", ElandColumns, len(cols))
	}
	start, err := strconv.Atoi(cols[1])
	if err != nil {
		return "", errors.Wrapf(err, "bad start `%s`", cols[1])
	}
	return fmt.Sprintf("%s\t%s\t%d\t%s\t1\t%s\t1\t1\t1\t1\t1\t1",
		cols[0], cols[1], start+len(cols[2]), cols[3], cols[6]), nil
}

// ElandToBed rewrites the sRNAmapper hits in elandfile as bedfile
func ElandToBed(elandfile, bedfile string) error {
	log.Noticef("Parse elandfile `%s`", elandfile)
	f, err := os.Create(bedfile)
	if err != nil {
		return errors.Wrapf(err, "cannot create `%s`", bedfile)
	}
	w := bufio.NewWriter(f)

	nHits := 0
	err = readLines(elandfile, func(i int, row string) error {
		bedline, ferr := FormatElandLine(row)
		if ferr != nil {
			return ferr
		}
		fmt.Fprintln(w, bedline)
		nHits++
		return nil
	})
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.Wrapf(cerr, "cannot close `%s`", bedfile)
	}
	if err != nil {
		// A partial BED would be picked up by the next run
		os.Remove(bedfile)
		return err
	}
	log.Noticef("A total of %d hits written to `%s`", nHits, bedfile)
	return nil
}
