package export

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-seiz/pkg/seiz"
)

// ErrCorruptSnapshot is returned when a snapshot frame fails its checksum
// or length checks.
var ErrCorruptSnapshot = errors.New("corrupt snapshot frame")

// Frame layout: step uint64 | compressedLen uint32 | crc32(compressed)
// uint32 | compressed payload. The payload is the raw compartment bytes for
// all nodes, snappy-compressed.
const snapshotHeaderSize = 8 + 4 + 4

// SnapshotWriter appends per-step node-state snapshots to a log for
// external visualization and replay tooling.
type SnapshotWriter struct {
	f *os.File
	w *bufio.Writer

	frames            uint64
	bytesUncompressed uint64
	bytesCompressed   uint64
}

// NewSnapshotWriter creates (or truncates) a snapshot log at path.
func NewSnapshotWriter(path string) (*SnapshotWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot log: %w", err)
	}
	return &SnapshotWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// Append writes one step's full node-state snapshot.
func (sw *SnapshotWriter) Append(step int, states []seiz.Compartment) error {
	raw := make([]byte, len(states))
	for i, st := range states {
		raw[i] = byte(st)
	}
	compressed := snappy.Encode(nil, raw)

	var header [snapshotHeaderSize]byte
	binary.LittleEndian.PutUint64(header[0:8], uint64(step))
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(compressed)))
	binary.LittleEndian.PutUint32(header[12:16], crc32.ChecksumIEEE(compressed))

	if _, err := sw.w.Write(header[:]); err != nil {
		return fmt.Errorf("writing snapshot header: %w", err)
	}
	if _, err := sw.w.Write(compressed); err != nil {
		return fmt.Errorf("writing snapshot payload: %w", err)
	}

	sw.frames++
	sw.bytesUncompressed += uint64(len(raw))
	sw.bytesCompressed += uint64(len(compressed))
	return nil
}

// Stats reports how many frames were written and the byte totals before and
// after compression.
func (sw *SnapshotWriter) Stats() (frames, uncompressed, compressed uint64) {
	return sw.frames, sw.bytesUncompressed, sw.bytesCompressed
}

// Close flushes and closes the log.
func (sw *SnapshotWriter) Close() error {
	if err := sw.w.Flush(); err != nil {
		sw.f.Close()
		return fmt.Errorf("flushing snapshot log: %w", err)
	}
	return sw.f.Close()
}

// SnapshotReader iterates over a snapshot log.
type SnapshotReader struct {
	f *os.File
	r *bufio.Reader
}

// OpenSnapshotLog opens a snapshot log for reading.
func OpenSnapshotLog(path string) (*SnapshotReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot log: %w", err)
	}
	return &SnapshotReader{f: f, r: bufio.NewReader(f)}, nil
}

// Next returns the next snapshot frame, or io.EOF after the last one.
func (sr *SnapshotReader) Next() (step int, states []seiz.Compartment, err error) {
	var header [snapshotHeaderSize]byte
	if _, err := io.ReadFull(sr.r, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil, io.EOF
		}
		return 0, nil, fmt.Errorf("reading snapshot header: %w", err)
	}
	step = int(binary.LittleEndian.Uint64(header[0:8]))
	length := binary.LittleEndian.Uint32(header[8:12])
	sum := binary.LittleEndian.Uint32(header[12:16])

	compressed := make([]byte, length)
	if _, err := io.ReadFull(sr.r, compressed); err != nil {
		return 0, nil, fmt.Errorf("reading snapshot payload: %w", err)
	}
	if crc32.ChecksumIEEE(compressed) != sum {
		return 0, nil, fmt.Errorf("step %d: %w: checksum mismatch", step, ErrCorruptSnapshot)
	}
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return 0, nil, fmt.Errorf("step %d: %w: %v", step, ErrCorruptSnapshot, err)
	}

	states = make([]seiz.Compartment, len(raw))
	for i, b := range raw {
		states[i] = seiz.Compartment(b)
	}
	return step, states, nil
}

// Close closes the log.
func (sr *SnapshotReader) Close() error {
	return sr.f.Close()
}
