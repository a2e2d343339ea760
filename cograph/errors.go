package cograph

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrPartition      = errors.New("partition target must be at least 1")
	ErrStructureParse = errors.New("malformed cotree structure")
	ErrEncodingRange  = errors.New("vertex count outside graph6 range")
	ErrBadGraph6      = errors.New("bad graph6 encoding")
	ErrNilNode        = errors.New("nil structure")
	ErrUnknownOp      = errors.New("unknown cotree operator")
	ErrLeafChildren   = errors.New("leaf has children")
	ErrTooFewChildren = errors.New("join or union has fewer than two children")
	ErrDuplicate      = errors.New("duplicate graph")
	ErrVertexCount    = errors.New("unexpected vertex count")
	ErrDisconnected   = errors.New("graph is not connected")
	ErrBadOpts        = errors.New("bad generation param")
)

// StructureParseError reports malformed structure text reaching the encoder.
type StructureParseError struct {
	Input    string // full text that failed to parse
	Offset   int    // byte offset of the offending token
	Fragment string // text at (or near) Offset
	Msg      string
}

func (err *StructureParseError) Error() string {
	return fmt.Sprintf("%v at offset %d near %q: %s", ErrStructureParse, err.Offset, err.Fragment, err.Msg)
}

func (err *StructureParseError) Unwrap() error {
	return ErrStructureParse
}

// EncodingRangeError reports a vertex count the graph6 encoder does not represent.
type EncodingRangeError struct {
	N   int
	Max int
}

func (err *EncodingRangeError) Error() string {
	return fmt.Sprintf("%v: n = %d (max %d)", ErrEncodingRange, err.N, err.Max)
}

func (err *EncodingRangeError) Unwrap() error {
	return ErrEncodingRange
}

// PipelineStage names the phase of a generation run an error came from.
type PipelineStage string

const (
	StageEnumerate PipelineStage = "enumerate"
	StageScratch   PipelineStage = "scratch"
	StageEncode    PipelineStage = "encode"
	StageOutput    PipelineStage = "output"
)

// PipelineError is returned when a generation run aborts.
// Output already written for earlier batches is left in place and must be treated as invalid.
type PipelineError struct {
	Stage       PipelineStage
	Structure   string // offending structure, if the failure is tied to one
	ScratchPath string // scratch file left behind, if any
	Err         error
}

func (err *PipelineError) Error() string {
	msg := fmt.Sprintf("%s failed", err.Stage)
	if err.Structure != "" {
		msg += fmt.Sprintf(" on %q", err.Structure)
	}
	if err.ScratchPath != "" {
		msg += fmt.Sprintf(" (scratch %s)", err.ScratchPath)
	}
	return msg + ": " + err.Err.Error()
}

func (err *PipelineError) Unwrap() error {
	return err.Err
}
