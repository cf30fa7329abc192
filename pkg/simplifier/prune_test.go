package simplifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPruneDropsVacuousKeys(t *testing.T) {
	in := map[string]any{
		"id":       "1:1",
		"fills":    []any{},
		"strokes":  map[string]any{},
		"layout":   nil,
		"children": []any{"kept"},
	}

	got := Prune(in)

	assert.Equal(t, map[string]any{
		"id":       "1:1",
		"children": []any{"kept"},
	}, got)
}

func TestPruneNestedEmpties(t *testing.T) {
	// A map whose only content collapses to empty is itself dropped.
	in := map[string]any{
		"node": map[string]any{
			"textStyle": map[string]any{
				"lineHeight": nil,
			},
		},
		"name": "Frame",
	}

	got := Prune(in)

	assert.Equal(t, map[string]any{"name": "Frame"}, got)
}

func TestPruneKeepsArrayElements(t *testing.T) {
	// Array elements are pruned in place, never removed, so positions of
	// sibling nodes stay stable.
	in := []any{
		map[string]any{"id": "1:1", "fills": []any{}},
		map[string]any{"id": "1:2"},
	}

	got := Prune(in)

	assert.Equal(t, []any{
		map[string]any{"id": "1:1"},
		map[string]any{"id": "1:2"},
	}, got)
}

func TestPruneKeepsMeaningfulValues(t *testing.T) {
	in := map[string]any{
		"opacity": 0.0,
		"visible": false,
		"name":    "",
	}

	// Scalars survive regardless of zero-ness; only containers are judged.
	assert.Equal(t, in, Prune(in))
}

func TestPruneIdempotent(t *testing.T) {
	in := map[string]any{
		"nodes": []any{
			map[string]any{
				"id":       "1:1",
				"children": []any{map[string]any{"id": "2:1", "layout": map[string]any{}}},
			},
		},
		"components": map[string]any{},
	}

	once := Prune(in)
	twice := Prune(once)

	assert.Equal(t, once, twice)
}
