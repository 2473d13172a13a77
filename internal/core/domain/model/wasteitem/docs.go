// Package wasteitem contains the WasteItem aggregate: a quantity of one waste class
// moving through the regulated lifecycle.
//
// WasteItem is where the lifecycle tables are enforced. A transition must be in the
// transition table, its guard must be proven by evidence, its quantity must be
// admissible and a certificate may only attach to a certifiable target. A partial
// transition splits the consumed quantity off into a new item that carries its parent
// id; the remainder stays with the original item, in its current state and holder.
package wasteitem
