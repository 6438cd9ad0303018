package document

import (
	"github.com/DiscordGophers/dr-manual/element"
	"github.com/pkg/errors"
)

// Node is an item in the nested view of the ordering. Container nodes hold
// the open bracket item and their children; the close bracket is implied.
type Node struct {
	Item     *Item
	Children []*Node
}

// Leaf reports whether the node is a content element.
func (n *Node) Leaf() bool {
	return n.Item.Meta == ""
}

// Tree folds the bracketed ordering into nested nodes.
func (d *Document) Tree() ([]*Node, error) {
	root := &Node{}
	stack := []*Node{root}

	for i, ref := range d.Ordering {
		it, ok := d.Items[ref.ItemID]
		if !ok {
			return nil, errors.Wrapf(ErrNotFound, "ordering[%d] references item %d", i, ref.ItemID)
		}
		top := stack[len(stack)-1]

		switch it.Meta {
		case element.Open:
			n := &Node{Item: it}
			top.Children = append(top.Children, n)
			stack = append(stack, n)
		case element.Close:
			if len(stack) == 1 || top.Item.Type != it.Type {
				return nil, errors.Wrapf(ErrUnbalanced, "unexpected close of %s at %d", it.Type, i)
			}
			stack = stack[:len(stack)-1]
		default:
			top.Children = append(top.Children, &Node{Item: it})
		}
	}

	if len(stack) > 1 {
		return nil, errors.Wrapf(ErrUnbalanced, "%s left open", stack[len(stack)-1].Item.Type)
	}
	return root.Children, nil
}

// Walk visits nodes depth first, stopping early when fn returns false.
func Walk(nodes []*Node, fn func(n *Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []*Node, depth int, fn func(*Node, int) bool) bool {
	for _, n := range nodes {
		if !fn(n, depth) {
			return false
		}
		if !walk(n.Children, depth+1, fn) {
			return false
		}
	}
	return true
}
