package simplifier

// LimitDepth truncates a simplified tree to maxLayers layers for incremental
// exploration. Layer 1 is the input slice itself: with maxLayers == 1 the
// top-level nodes survive but lose their children, with maxLayers == 2
// exactly one level of descendants is kept, and so on. The input tree is
// never mutated; nodes along the walk are shallow-cloned. A maxLayers below
// 1 returns the input unchanged.
func LimitDepth(nodes []SimplifiedNode, maxLayers int) []SimplifiedNode {
	if maxLayers < 1 {
		return nodes
	}
	return limitDepth(nodes, maxLayers, 1)
}

func limitDepth(nodes []SimplifiedNode, maxLayers, currentLayer int) []SimplifiedNode {
	if nodes == nil {
		return nil
	}

	out := make([]SimplifiedNode, len(nodes))
	for i, node := range nodes {
		clone := node
		if currentLayer == maxLayers {
			clone.Children = nil
		} else {
			clone.Children = limitDepth(node.Children, maxLayers, currentLayer+1)
		}
		out[i] = clone
	}
	return out
}
