package render

import (
	"strings"

	"golang.org/x/net/html"
)

// DefaultSlot is the slot name for unnamed slots and unassigned content.
const DefaultSlot = "__default__"

// SlotGroups maps a slot name to the light-DOM nodes assigned to it, in
// document order.
type SlotGroups map[string][]*html.Node

// normalizeSlotName maps blank names and "default" to DefaultSlot.
func normalizeSlotName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == "default" {
		return DefaultSlot
	}
	return name
}

// GroupSlots assigns host's children to slots. Elements go to the slot
// named by slotAttr (default slot when absent or blank), non-blank text
// goes to the default slot, and whitespace-only text and comments are
// dropped.
func GroupSlots(host *html.Node, slotAttr string) SlotGroups {
	groups := make(SlotGroups)
	for c := host.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			name, _ := getAttr(c, slotAttr)
			name = normalizeSlotName(name)
			groups[name] = append(groups[name], c)
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				groups[DefaultSlot] = append(groups[DefaultSlot], c)
			}
		}
	}
	return groups
}

// DistributeSlots replaces every <slot> under root by reference. A slot
// with assigned nodes is replaced by deep copies of them; an empty slot is
// replaced by its own fallback children, which are then searched for
// further slots. Assigned copies are never searched.
//
// It returns the light-DOM nodes consumed by named (non-default) slots.
// On a tree without slots it does nothing.
func DistributeSlots(root *html.Node, groups SlotGroups) map[*html.Node]bool {
	consumed := make(map[*html.Node]bool)

	var walk func(parent *html.Node)
	walk = func(parent *html.Node) {
		for c := parent.FirstChild; c != nil; {
			if !isElement(c, "slot") {
				walk(c)
				c = c.NextSibling
				continue
			}

			slot := c
			name, _ := getAttr(slot, "name")
			name = normalizeSlotName(name)

			if assigned := groups[name]; len(assigned) > 0 {
				for _, n := range assigned {
					parent.InsertBefore(cloneNode(n), slot)
					if name != DefaultSlot {
						consumed[n] = true
					}
				}
				c = slot.NextSibling
				parent.RemoveChild(slot)
				continue
			}

			// Fallback: hoist the slot's children into its place and
			// continue the scan at the first hoisted node.
			first := slot.FirstChild
			for fc := slot.FirstChild; fc != nil; {
				next := fc.NextSibling
				slot.RemoveChild(fc)
				parent.InsertBefore(fc, slot)
				fc = next
			}
			if first == nil {
				first = slot.NextSibling
			}
			parent.RemoveChild(slot)
			c = first
		}
	}
	walk(root)

	return consumed
}
