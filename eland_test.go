/*
 *  eland_test.go
 *  mirbench
 *
 *  Created by Haibao Tang on 12/12/19
 *  Copyright © 2019 Haibao Tang. All rights reserved.
 */

package mirbench_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanghaibao/mirbench"
)

func TestFormatElandLine(t *testing.T) {
	got, err := mirbench.FormatElandLine("chr1\t100\tACGTACGTAC\tread1\t0\t1\t+\n")
	require.NoError(t, err)
	assert.Equal(t, "chr1\t100\t110\tread1\t1\t+\t1\t1\t1\t1\t1\t1", got)
}

func TestFormatElandLineErrors(t *testing.T) {
	_, err := mirbench.FormatElandLine("chr1\t100\tACGT\tread1")
	assert.Error(t, err)
	_, err = mirbench.FormatElandLine("chr1\tstart\tACGT\tread1\t0\t1\t+")
	assert.Error(t, err)
}

func TestElandToBed(t *testing.T) {
	dir := t.TempDir()
	elandfile := filepath.Join(dir, "hits.eland")
	bedfile := filepath.Join(dir, "srnamapper_map.bed")
	writeFile(t, elandfile, "chr1\t10\tACGTA\tr1\t0\t1\t-\n\nchr2\t5\tAC\tr2\t0\t1\t+")

	require.NoError(t, mirbench.ElandToBed(elandfile, bedfile))
	assert.Equal(t, "chr1\t10\t15\tr1\t1\t-\t1\t1\t1\t1\t1\t1\n"+
		"chr2\t5\t7\tr2\t1\t+\t1\t1\t1\t1\t1\t1\n", readFile(t, bedfile))
}

func TestElandToBedReportsLine(t *testing.T) {
	dir := t.TempDir()
	elandfile := filepath.Join(dir, "hits.eland")
	writeFile(t, elandfile, "chr1\t10\tACGTA\tr1\t0\t1\t-\nbroken\n")

	err := mirbench.ElandToBed(elandfile, filepath.Join(dir, "out.bed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hits.eland:2")
	assert.False(t, mirbench.IsThere(filepath.Join(dir, "out.bed")))
}

func TestElandToBedEmpty(t *testing.T) {
	dir := t.TempDir()
	elandfile := filepath.Join(dir, "hits.eland")
	writeFile(t, elandfile, "")

	bedfile := filepath.Join(dir, "out.bed")
	require.NoError(t, mirbench.ElandToBed(elandfile, bedfile))
	assert.True(t, mirbench.IsThere(bedfile))
	assert.Equal(t, "", readFile(t, bedfile))
}
