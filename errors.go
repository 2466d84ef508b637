package cohort

import (
	"fmt"

	"github.com/hupe1980/cohort/core"
	"github.com/hupe1980/cohort/distance"
	"github.com/hupe1980/cohort/graph"
	"github.com/hupe1980/cohort/kmeans"
	"github.com/hupe1980/cohort/record"
)

var (
	// ErrInvalidInput is the root of every input validation error.
	ErrInvalidInput = core.ErrInvalidInput

	// ErrEmptyDataset is returned for a dataset without entities.
	ErrEmptyDataset = record.ErrEmptyDataset

	// ErrInvalidK is returned when k is zero or exceeds the number of entities.
	ErrInvalidK = kmeans.ErrInvalidK

	// ErrInvalidCoreK is returned for a negative core order.
	ErrInvalidCoreK = graph.ErrInvalidCoreK
)

// ErrDimensionMismatch indicates feature vectors of different lengths.
type ErrDimensionMismatch = distance.ErrDimensionMismatch

// Stage names a step of the analysis pipeline.
type Stage string

const (
	StageSegment     Stage = "segment"
	StageCommunities Stage = "communities"
	StageDescribe    Stage = "describe"
)

// ErrStage records which pipeline stage failed.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrStage struct {
	Stage Stage
	cause error
}

func (e *ErrStage) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.cause)
}

func (e *ErrStage) Unwrap() error { return e.cause }

func stageError(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &ErrStage{Stage: stage, cause: err}
}
