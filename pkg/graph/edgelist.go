package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadEdgeList parses a whitespace-separated "u v" edge list, one edge per
// line. Blank lines and lines starting with '#' are skipped. The node count
// is 1 + the highest ID mentioned.
func ReadEdgeList(r io.Reader) (*Graph, error) {
	type pair struct{ u, v uint64 }
	var (
		edges []pair
		maxID uint64
		line  int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: %w (want \"u v\", got %q)", line, ErrBadEdgeList, text)
		}
		u, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrBadEdgeList, err)
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrBadEdgeList, err)
		}
		edges = append(edges, pair{u, v})
		if u > maxID {
			maxID = u
		}
		if v > maxID {
			maxID = v
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading edge list: %w", err)
	}
	if len(edges) == 0 {
		return nil, fmt.Errorf("edge list: %w", ErrNoNodes)
	}
	b, err := NewBuilder(int(maxID) + 1)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if err := b.AddEdge(e.u, e.v); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}
