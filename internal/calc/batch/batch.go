package batch

import (
	"fmt"

	mises "Mises/internal/calc/mises"
)

const MaxItems = 100

type Input struct {
	Items []mises.Input `json:"items"`
}

type Result struct {
	Results []mises.Result `json:"results"`
}

func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("%w: no items", mises.ErrInvalidInput)
	}
	if len(in.Items) > MaxItems {
		return Result{}, fmt.Errorf("%w: %d items, at most %d allowed", mises.ErrInvalidInput, len(in.Items), MaxItems)
	}
	out := Result{Results: make([]mises.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := mises.Calculate(item)
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
