package consolidate

import "github.com/runledger/runledger/model"

// maxStepDepth bounds step tree recursion. The wire format cannot carry
// cycles, but a hostile or buggy producer can still nest arbitrarily
// deep; anything beyond this is truncated.
const maxStepDepth = 64

// NormalizeSteps converts a runner-reported step tree into the
// pass/fail tree used for reporting, stripping control sequences from
// titles.
func NormalizeSteps(steps []model.Step) []model.StepNode {
	return normalizeSteps(steps, 0)
}

func normalizeSteps(steps []model.Step, depth int) []model.StepNode {
	if len(steps) == 0 || depth >= maxStepDepth {
		return nil
	}
	nodes := make([]model.StepNode, 0, len(steps))
	for _, s := range steps {
		nodes = append(nodes, model.StepNode{
			Title:    stripControl(s.Title),
			Passed:   s.Error == "",
			Duration: s.Duration,
			Steps:    normalizeSteps(s.Steps, depth+1),
		})
	}
	return nodes
}
