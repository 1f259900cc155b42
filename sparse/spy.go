// SPDX-License-Identifier: MIT

// Package sparse - spy dump.
//
// The spy dump is a MatrixMarket coordinate file whose value column carries
// the owning image instead of the matrix value:
//
//	%%MatrixMarket matrix coordinate integer general
//	% Matrix sparsity:      0.2500
//	% Load imbalance:       1.0000
//	% Communication Volume: 0
//	% <title>
//	<rows> <cols> <nonzeros>
//	<row> <col> <image>
//	...
//
// Rows and columns are written 0-based, as stored. The spyplot package reads
// this format back for plotting.

package sparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SpyHeader is the first line of every spy dump.
const SpyHeader = "%%MatrixMarket matrix coordinate integer general"

// SpyExt is the file extension used by SpyFile.
const SpyExt = ".mtx"

// Spy writes the spy dump of the current partition to w.
func (m *Matrix) Spy(w io.Writer, title string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bw := bufio.NewWriter(w)
	sparsity := 0.0
	if size := m.rows * m.cols; size > 0 {
		sparsity = float64(m.nz) / float64(size)
	}
	imbalance := "n/a"
	if eps, err := m.loadImbalance(); err == nil {
		imbalance = fmt.Sprintf("%.4f", eps)
	}

	fmt.Fprintln(bw, SpyHeader)
	fmt.Fprintf(bw, "%% Matrix sparsity:      %.4f\n", sparsity)
	fmt.Fprintf(bw, "%% Load imbalance:       %s\n", imbalance)
	fmt.Fprintf(bw, "%% Communication Volume: %d\n", m.communicationVolume())
	fmt.Fprintf(bw, "%% %s\n", oneLine(title))
	fmt.Fprintf(bw, "%d %d %d\n", m.rows, m.cols, m.nz)
	for s, img := range m.images {
		for _, t := range img.All() {
			fmt.Fprintf(bw, "%d %d %d\n", t.Row(), t.Col(), s)
		}
	}
	if err := bw.Flush(); err != nil {
		return opErrorf(ctxSpy, err)
	}

	return nil
}

// SpyFile writes the spy dump into dir as <title>.mtx, or <title>_<k>.mtx
// with the smallest free k ≥ 1 when that name is taken, and returns the path.
// dir is created when missing.
func (m *Matrix) SpyFile(dir, title string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", opErrorf(ctxSpy, err)
	}
	base := fileSafe(title)
	name := filepath.Join(dir, base+SpyExt)
	var f *os.File
	var err error
	for k := 1; ; k++ {
		f, err = os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", opErrorf(ctxSpy, err)
		}
		name = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, k, SpyExt))
	}

	if err = m.Spy(f, title); err != nil {
		_ = f.Close()

		return "", err
	}
	if err = f.Close(); err != nil {
		return "", opErrorf(ctxSpy, err)
	}
	m.logger.Info("spy saved", "path", name)

	return name, nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// fileSafe turns a title into a file name stem.
func fileSafe(title string) string {
	stem := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == 0:
			return '_'
		case r == ' ' || r == '\t' || r == '\n':
			return '_'
		}

		return r
	}, strings.TrimSpace(title))
	if stem == "" || stem == "." || stem == ".." {
		return "anonymous"
	}

	return stem
}
