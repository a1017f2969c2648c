// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunk splits parsed documents into overlapping paragraph chunks.
// Paragraphs are separated by a blank line; a sliding window of Size
// paragraphs advances by Step paragraphs, and every chunk carries the
// metadata of its document.
package chunk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/docsearch/pkg/types"
)

// Separator splits a body into paragraphs and joins paragraphs into chunks.
const Separator = "\n\n"

// ErrInvalidArgument is returned for non-positive window parameters.
var ErrInvalidArgument = errors.New("invalid argument")

// SlidingWindow returns windows of up to size elements of seq, starting at
// 0 and advancing by step. It stops after the first window that reaches
// the end of seq. An empty seq yields no windows.
func SlidingWindow(seq []string, size, step int) ([]types.Window, error) {
	if size <= 0 || step <= 0 {
		return nil, fmt.Errorf("%w: size and step must be positive (size=%d, step=%d)", ErrInvalidArgument, size, step)
	}

	n := len(seq)
	windows := []types.Window{}
	for i := 0; i < n; i += step {
		end := min(i+size, n)
		windows = append(windows, types.Window{
			Start:   i,
			Content: strings.Join(seq[i:end], Separator),
		})
		if i+size >= n {
			break
		}
	}
	return windows, nil
}
