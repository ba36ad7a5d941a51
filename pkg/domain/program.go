package domain

// Program is the ordered top-level command sequence the user has authored.
//
// Programs are never mutated in place. Every edit operation returns a new
// Program that shares every node not on the path from the root to the edited
// node, so hosts can detect change with a referential comparison and keep old
// snapshots around for free.
type Program []Command

// RootContainer addresses the top-level Program in Insert and
// SetActiveContainer calls.
const RootContainer = ""

// Insert appends cmd to the child list addressed by containerID and returns
// the rebuilt Program. RootContainer targets the top level. A non-root
// containerID must resolve to an existing Repeat node, otherwise the input
// Program is returned unchanged together with ErrInvalidContainer.
func Insert(p Program, containerID string, cmd Command) (Program, error) {
	if containerID == RootContainer {
		out := make(Program, len(p), len(p)+1)
		copy(out, p)
		return append(out, cmd), nil
	}

	out, ok := insertInto(p, containerID, cmd)
	if !ok {
		return p, ErrInvalidContainer
	}
	return out, nil
}

// insertInto rebuilds the path down to the repeat node with the given id and
// appends cmd to its body. Reports false if no such repeat node exists.
func insertInto(list []Command, containerID string, cmd Command) ([]Command, bool) {
	for i, c := range list {
		rep, isRepeat := c.(*Repeat)
		if !isRepeat {
			continue
		}
		if rep.id == containerID {
			body := make([]Command, len(rep.Body), len(rep.Body)+1)
			copy(body, rep.Body)
			cp := *rep
			cp.Body = append(body, cmd)
			return replaceAt(list, i, &cp), true
		}
		if body, ok := insertInto(rep.Body, containerID, cmd); ok {
			cp := *rep
			cp.Body = body
			return replaceAt(list, i, &cp), true
		}
	}
	return nil, false
}

// Remove deletes the node with commandID from wherever it occurs in the tree,
// subtree included when the node is a repeat block. Removing an unknown id is
// a no-op that returns the input Program unchanged.
func Remove(p Program, commandID string) Program {
	out, ok := removeFrom(p, commandID)
	if !ok {
		return p
	}
	return out
}

func removeFrom(list []Command, commandID string) ([]Command, bool) {
	for i, c := range list {
		if c.ID() == commandID {
			out := make([]Command, 0, len(list)-1)
			out = append(out, list[:i]...)
			out = append(out, list[i+1:]...)
			return out, true
		}
		if rep, isRepeat := c.(*Repeat); isRepeat {
			if body, ok := removeFrom(rep.Body, commandID); ok {
				cp := *rep
				cp.Body = body
				return replaceAt(list, i, &cp), true
			}
		}
	}
	return nil, false
}

// Update replaces the numeric parameter of the node with commandID, leaving
// kind and children untouched. Updating an unknown id is a no-op that returns
// the input Program unchanged.
func Update(p Program, commandID string, value int) Program {
	out, ok := updateIn(p, commandID, value)
	if !ok {
		return p
	}
	return out
}

func updateIn(list []Command, commandID string, value int) ([]Command, bool) {
	for i, c := range list {
		if c.ID() == commandID {
			return replaceAt(list, i, c.withValue(value)), true
		}
		if rep, isRepeat := c.(*Repeat); isRepeat {
			if body, ok := updateIn(rep.Body, commandID, value); ok {
				cp := *rep
				cp.Body = body
				return replaceAt(list, i, &cp), true
			}
		}
	}
	return nil, false
}

// Find looks up the node with commandID at any nesting depth. The returned
// node is the live tree node, not a copy.
func Find(p Program, commandID string) (Command, bool) {
	return findIn(p, commandID)
}

func findIn(list []Command, commandID string) (Command, bool) {
	for _, c := range list {
		if c.ID() == commandID {
			return c, true
		}
		if rep, isRepeat := c.(*Repeat); isRepeat {
			if found, ok := findIn(rep.Body, commandID); ok {
				return found, ok
			}
		}
	}
	return nil, false
}

// replaceAt copies list with index i swapped for c. The siblings keep their
// identity; only the spine slice is new.
func replaceAt(list []Command, i int, c Command) []Command {
	out := make([]Command, len(list))
	copy(out, list)
	out[i] = c
	return out
}
