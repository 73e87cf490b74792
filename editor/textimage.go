package editor

import (
	"encoding/json"
	"strings"

	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/section"
)

type TextImage struct {
	Assets section.AssetNormalizer
}

var textImageActions = actionDecoders{
	"save":      decodeAs[SaveBlock],
	"edit":      decodeAs[Edit],
	"cancel":    decodeAs[CancelEdit],
	"duplicate": decodeAs[Duplicate],
	"remove":    decodeAs[Remove],
	"clear":     decodeAs[Clear],
	"setImage":  decodeAs[SetImage],
}

func (TextImage) Kind() section.Kind { return section.KindTextImage }

func (e TextImage) DecodeAction(name string, raw json.RawMessage) (Action, error) {
	return textImageActions.decode(e.Kind(), name, raw)
}

func (e TextImage) Reduce(s State, a Action) (State, error) {
	blocks, err := payloadAs[section.Blocks](s)
	if err != nil {
		return s, err
	}

	switch a := a.(type) {
	case SaveBlock:
		b := section.Block{
			ContentType: strings.TrimSpace(a.Block.ContentType),
			Title:       strings.TrimSpace(a.Block.Title),
			Text:        strings.TrimSpace(a.Block.Text),
			Image:       e.Assets.Normalize(a.Block.Image),
			Position:    section.NormalizePosition(a.Block.Position),
			Alt:         strings.TrimSpace(a.Block.Alt),
			ButtonText:  strings.TrimSpace(a.Block.ButtonText),
			ButtonURL:   strings.TrimSpace(a.Block.ButtonURL),
		}
		if !b.Valid() {
			return s, errs.NewEmptyBlockError()
		}
		out, err := upsert(blocks, s.EditingIndex, b)
		if err != nil {
			return s, err
		}
		return State{Payload: out, EditingIndex: NotEditing}, nil

	case Duplicate:
		if err := checkIndex(a.Index, len(blocks)); err != nil {
			return s, err
		}
		out, editing, err := insertAfter(blocks, s.EditingIndex, a.Index, blocks[a.Index])
		if err != nil {
			return s, err
		}
		return State{Payload: out, EditingIndex: editing}, nil

	case SetImage:
		if s.EditingIndex == NotEditing {
			return s, errs.NewNoActiveRecordError()
		}
		if err := checkIndex(s.EditingIndex, len(blocks)); err != nil {
			return s, err
		}
		b := blocks[s.EditingIndex]
		b.Image = e.Assets.Normalize(a.URL)
		out, err := upsert(blocks, s.EditingIndex, b)
		if err != nil {
			return s, err
		}
		return State{Payload: out, EditingIndex: s.EditingIndex}, nil
	}

	next, err := reduceList(blocks, s.EditingIndex, a)
	if err != nil {
		return s, err
	}
	return next, nil
}
