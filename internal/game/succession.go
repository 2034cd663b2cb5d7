package game

import (
	"sort"

	"github.com/user/house-eternal/internal/types"
)

// CalculateSuccessionLine returns the ordered heirs of rootID under law.
//
// The line is a pre-order walk over living descendants: each child is
// listed immediately before their own descendants, so a senior branch is
// exhausted before the next sibling's. Children are ordered per law at every
// level. The root is never part of its own line, and a root missing from
// the table yields an empty line.
func CalculateSuccessionLine(rootID string, characters map[string]*types.Character, law types.SuccessionLaw) []string {
	line := []string{}
	root, ok := characters[rootID]
	if !ok {
		return line
	}

	visited := map[string]bool{rootID: true}
	stack := pushReversed(nil, livingChildren(root, characters, law))

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// malformed data can list a descendant twice
		if visited[c.ID] {
			continue
		}
		visited[c.ID] = true
		line = append(line, c.ID)

		stack = pushReversed(stack, livingChildren(c, characters, law))
	}

	return line
}

// livingChildren returns the parent's living children ordered by law
func livingChildren(parent *types.Character, characters map[string]*types.Character, law types.SuccessionLaw) []*types.Character {
	children := make([]*types.Character, 0, len(parent.ChildrenIDs))
	for _, id := range parent.ChildrenIDs {
		child, ok := characters[id]
		if !ok || !child.Alive {
			continue
		}
		children = append(children, child)
	}

	switch law {
	case types.LawUltimogeniture:
		sort.SliceStable(children, func(i, j int) bool {
			return children[i].BirthWeek > children[j].BirthWeek
		})
	case types.LawElective:
		sort.SliceStable(children, func(i, j int) bool {
			return electiveScore(children[i]) > electiveScore(children[j])
		})
	case types.LawPrimogeniture, types.LawGavelkind:
		// gavelkind orders like primogeniture; titles are not split
		fallthrough
	default:
		sort.SliceStable(children, func(i, j int) bool {
			return children[i].BirthWeek < children[j].BirthWeek
		})
	}

	return children
}

func electiveScore(c *types.Character) int {
	return c.Skills.Diplomacy + c.Skills.Stewardship
}

func pushReversed(stack, items []*types.Character) []*types.Character {
	for i := len(items) - 1; i >= 0; i-- {
		stack = append(stack, items[i])
	}
	return stack
}
