package reactive

import (
	"sort"

	"github.com/m1gwings/treedrawer/tree"
)

// GetDependencyTree walks d's current dependency set and everything it in
// turn depends on, and renders the result as a tree for devtools-style
// inspection. The walk is iterative (an explicit stack, not recursion) so
// it doesn't blow the call stack on a deep graph, and a visited set guards
// against rendering a cycle twice.
func GetDependencyTree(d derivation) *tree.Tree {
	root := tree.NewTree(tree.NodeString(d.nodeName()))

	type frame struct {
		node derivation
		out  *tree.Tree
	}

	visited := map[nodeID]bool{d.nodeID(): true}
	stack := []frame{{d, root}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		hv, ok := f.node.(hasObserving)
		if !ok {
			continue
		}
		deps := hv.observingSnapshot()
		sort.Slice(deps, func(i, j int) bool { return deps[i].nodeName() < deps[j].nodeName() })

		for _, dep := range deps {
			if visited[dep.nodeID()] {
				continue
			}
			visited[dep.nodeID()] = true
			child := f.out.AddChild(tree.NodeString(dep.nodeName()))
			if asDerivation, ok := dep.(derivation); ok {
				stack = append(stack, frame{asDerivation, child})
			}
		}
	}

	return root
}

// GetObserverTree walks o's current observer set and everything that in
// turn observes those, the mirror image of GetDependencyTree.
func GetObserverTree(o observable) *tree.Tree {
	root := tree.NewTree(tree.NodeString(o.nodeName()))

	type frame struct {
		node observable
		out  *tree.Tree
	}

	visited := map[nodeID]bool{o.nodeID(): true}
	stack := []frame{{o, root}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		obs := f.node.observerSnapshot()
		sort.Slice(obs, func(i, j int) bool { return obs[i].nodeName() < obs[j].nodeName() })

		for _, d := range obs {
			if visited[d.nodeID()] {
				continue
			}
			visited[d.nodeID()] = true
			child := f.out.AddChild(tree.NodeString(d.nodeName()))
			if asObservable, ok := d.(observable); ok {
				stack = append(stack, frame{asObservable, child})
			}
		}
	}

	return root
}
