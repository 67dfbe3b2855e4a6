// Package nnue implements the incrementally updated network evaluator.
// The network is a perspective net: 768 boolean inputs per side (piece kind
// on square, own pieces and enemy pieces separated, squares mirrored for
// Black), one shared hidden layer kept as two per-perspective accumulators,
// and a single output neuron with SCReLU activation.
package nnue

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"peregrine/chess"
)

const (
	// InputSize is the feature count per perspective: 2 sides x 6 piece
	// kinds x 64 squares.
	InputSize = 768
	// HiddenSize is the accumulator width per perspective.
	HiddenSize = 256

	// Quantisation constants. Hidden activations are clamped to [0, QA],
	// output weights are scaled by QB, the final score by Scale.
	QA    = 255
	QB    = 64
	Scale = 400
)

// Weight file header.
const (
	fileMagic   uint32 = 0x4E4E4750 // "PGNN" little endian
	fileVersion uint16 = 1
)

// Network holds the quantised weights. Immutable after loading; shared by
// every accumulator for the process lifetime.
type Network struct {
	// FeatureWeights is feature-major: row i holds the HiddenSize weights
	// of input feature i.
	FeatureWeights [InputSize * HiddenSize]int16
	FeatureBias    [HiddenSize]int16
	// OutputWeights: first HiddenSize entries weigh the side-to-move
	// accumulator, the rest the opponent's.
	OutputWeights [2 * HiddenSize]int16
	OutputBias    int16
}

type fileHeader struct {
	Magic      uint32
	Version    uint16
	InputSize  uint32
	HiddenSize uint32
}

// LoadNetwork reads a weight file. Any shape or size mismatch is an error:
// a silently misloaded network would misevaluate every position, so the
// caller is expected to treat failure as fatal.
func LoadNetwork(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nnue: %w", err)
	}
	defer f.Close()
	net, err := ReadNetwork(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("nnue: %s: %w", path, err)
	}
	return net, nil
}

// ReadNetwork parses the binary weight layout: header, feature weights,
// feature bias, output weights, output bias, all little endian int16.
func ReadNetwork(r io.Reader) (*Network, error) {
	var h fileHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if h.Magic != fileMagic {
		return nil, fmt.Errorf("bad magic 0x%08X, want 0x%08X", h.Magic, fileMagic)
	}
	if h.Version != fileVersion {
		return nil, fmt.Errorf("unsupported version %d, want %d", h.Version, fileVersion)
	}
	if h.InputSize != InputSize || h.HiddenSize != HiddenSize {
		return nil, fmt.Errorf("network shape %dx%d, want %dx%d", h.InputSize, h.HiddenSize, InputSize, HiddenSize)
	}

	net := &Network{}
	for _, part := range []interface{}{
		&net.FeatureWeights, &net.FeatureBias, &net.OutputWeights, &net.OutputBias,
	} {
		if err := binary.Read(r, binary.LittleEndian, part); err != nil {
			return nil, fmt.Errorf("truncated weight file: %w", err)
		}
	}
	if _, err := io.ReadFull(r, make([]byte, 1)); err != io.EOF {
		return nil, errors.New("trailing data after weights")
	}
	return net, nil
}

// WriteTo serialises the network in the load layout.
func (n *Network) WriteTo(w io.Writer) error {
	h := fileHeader{Magic: fileMagic, Version: fileVersion, InputSize: InputSize, HiddenSize: HiddenSize}
	for _, part := range []interface{}{
		h, &n.FeatureWeights, &n.FeatureBias, &n.OutputWeights, &n.OutputBias,
	} {
		if err := binary.Write(w, binary.LittleEndian, part); err != nil {
			return fmt.Errorf("nnue: writing weights: %w", err)
		}
	}
	return nil
}

// GenerateNetwork builds a deterministic pseudo-random network. The weights
// carry no chess knowledge; the result is for smoke tests and plumbing
// checks, not play strength.
func GenerateNetwork(seed uint64) *Network {
	s := seed | 1
	next := func() uint64 {
		s ^= s >> 12
		s ^= s << 25
		s ^= s >> 27
		return s * 0x2545F4914F6CDD1D
	}
	net := &Network{}
	for i := range net.FeatureWeights {
		net.FeatureWeights[i] = int16(next()%33) - 16
	}
	for i := range net.FeatureBias {
		net.FeatureBias[i] = int16(next()%65) - 32
	}
	for i := range net.OutputWeights {
		net.OutputWeights[i] = int16(next()%33) - 16
	}
	return net
}

// featureIndex maps a piece on a square to the input feature slot as seen
// from one perspective. The perspective's own pieces occupy the first 384
// features; the board is mirrored vertically for Black.
func featureIndex(perspective chess.Color, p chess.Piece, sq chess.Square) int {
	rel := int(sq)
	side := 0
	if p.Color() != perspective {
		side = 1
	}
	if perspective == chess.Black {
		rel ^= 56
	}
	return side*384 + (int(p.Type())-1)*64 + rel
}
