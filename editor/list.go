package editor

import (
	"slices"

	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/section"
)

// list is the payload of an editor that manages a list of records.
type list[E any] interface {
	~[]E
	section.Payload
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return errs.NewIndexOutOfRangeError(i, n)
	}
	return nil
}

func confirm(confirmed bool, operation string) error {
	if !confirmed {
		return errs.NewConfirmationRequiredError(operation)
	}
	return nil
}

// upsert replaces the record being edited, or appends v in add mode.
func upsert[S ~[]E, E any](items S, editing int, v E) (S, error) {
	if editing == NotEditing {
		return append(slices.Clone(items), v), nil
	}
	if err := checkIndex(editing, len(items)); err != nil {
		return nil, err
	}
	out := slices.Clone(items)
	out[editing] = v
	return out, nil
}

// insertAfter inserts v right after record i; an editing index past i moves
// with its record.
func insertAfter[S ~[]E, E any](items S, editing, i int, v E) (S, int, error) {
	if err := checkIndex(i, len(items)); err != nil {
		return nil, editing, err
	}
	out := slices.Insert(slices.Clone(items), i+1, v)
	if editing > i {
		editing++
	}
	return out, editing, nil
}

// removeAt drops record i. Editing the removed record resets the form;
// editing a later one shifts the index down by one.
func removeAt[S ~[]E, E any](items S, editing, i int) (S, int, error) {
	if err := checkIndex(i, len(items)); err != nil {
		return nil, editing, err
	}
	out := slices.Delete(slices.Clone(items), i, i+1)
	switch {
	case editing == i:
		editing = NotEditing
	case editing > i:
		editing--
	}
	return out, editing, nil
}

// swapAdjacent moves record i one step in the sign of dir. The editing index
// follows whichever record it pointed at.
func swapAdjacent[S ~[]E, E any](items S, editing, i, dir int) (S, int, error) {
	if dir == 0 {
		return nil, editing, errs.NewInvalidFieldError("direction", "must be negative or positive")
	}
	j := i + 1
	if dir < 0 {
		j = i - 1
	}
	if err := checkIndex(i, len(items)); err != nil {
		return nil, editing, err
	}
	if err := checkIndex(j, len(items)); err != nil {
		return nil, editing, err
	}

	out := slices.Clone(items)
	out[i], out[j] = out[j], out[i]
	switch editing {
	case i:
		editing = j
	case j:
		editing = i
	}
	return out, editing, nil
}

// reorder stable sorts items and keeps the editing index on the same record.
func reorder[S ~[]E, E any](items S, editing int, cmp func(a, b E) int) (S, int) {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return cmp(items[a], items[b]) })

	out := make(S, len(items))
	next := editing
	for pos, from := range order {
		out[pos] = items[from]
		if from == editing {
			next = pos
		}
	}
	return out, next
}

// reduceList applies the actions every list editor shares.
func reduceList[S list[E], E any](items S, editing int, a Action) (State, error) {
	switch a := a.(type) {
	case Edit:
		if err := checkIndex(a.Index, len(items)); err != nil {
			return State{}, err
		}
		return State{Payload: items, EditingIndex: a.Index}, nil
	case CancelEdit:
		return State{Payload: items, EditingIndex: NotEditing}, nil
	case Remove:
		if err := confirm(a.Confirmed, "Removing a record"); err != nil {
			return State{}, err
		}
		out, next, err := removeAt(items, editing, a.Index)
		if err != nil {
			return State{}, err
		}
		return State{Payload: out, EditingIndex: next}, nil
	case Clear:
		if err := confirm(a.Confirmed, "Clearing every record"); err != nil {
			return State{}, err
		}
		var empty S
		return State{Payload: empty, EditingIndex: NotEditing}, nil
	}
	return State{}, errs.NewUnknownActionError(string(items.Kind()), actionName(a))
}
