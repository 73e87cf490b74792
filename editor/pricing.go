package editor

import (
	"encoding/json"
	"strings"

	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/section"
)

type Pricing struct{}

var pricingActions = actionDecoders{
	"save":   decodeAs[SavePlan],
	"edit":   decodeAs[Edit],
	"cancel": decodeAs[CancelEdit],
	"copy":   decodeAs[Duplicate],
	"remove": decodeAs[Remove],
	"clear":  decodeAs[Clear],
}

func (Pricing) Kind() section.Kind { return section.KindPricing }

func (e Pricing) DecodeAction(name string, raw json.RawMessage) (Action, error) {
	return pricingActions.decode(e.Kind(), name, raw)
}

func (e Pricing) Reduce(s State, a Action) (State, error) {
	plans, err := payloadAs[section.Plans](s)
	if err != nil {
		return s, err
	}

	switch a := a.(type) {
	case SavePlan:
		plan, err := cleanPlan(a.Plan)
		if err != nil {
			return s, err
		}
		out, err := upsert(plans, s.EditingIndex, plan)
		if err != nil {
			return s, err
		}
		return State{Payload: out, EditingIndex: NotEditing}, nil

	case Duplicate:
		if err := checkIndex(a.Index, len(plans)); err != nil {
			return s, err
		}
		out, editing, err := insertAfter(plans, s.EditingIndex, a.Index, plans[a.Index].Copy())
		if err != nil {
			return s, err
		}
		return State{Payload: out, EditingIndex: editing}, nil
	}

	next, err := reduceList(plans, s.EditingIndex, a)
	if err != nil {
		return s, err
	}
	return next, nil
}

// cleanPlan trims the submitted form and checks it fits the pipe grammar.
func cleanPlan(p section.PricingPlan) (section.PricingPlan, error) {
	out := section.PricingPlan{
		Name:        strings.TrimSpace(p.Name),
		Price:       strings.TrimSpace(p.Price),
		Period:      strings.TrimSpace(p.Period),
		Description: strings.TrimSpace(p.Description),
		Popular:     p.Popular,
	}
	if out.Name == "" {
		return out, errs.NewMissingRequiredFieldError("name")
	}
	if out.Price == "" {
		return out, errs.NewMissingRequiredFieldError("price")
	}
	if out.Period == "" {
		out.Period = section.DefaultPeriod
	}

	for _, f := range p.Features {
		if f = strings.TrimSpace(f); f != "" {
			out.Features = append(out.Features, f)
		}
	}

	err := rejectDelimiters(
		namedField{"name", out.Name},
		namedField{"price", out.Price},
		namedField{"period", out.Period},
		namedField{"description", out.Description},
		namedField{"features", strings.Join(out.Features, "\n")},
	)
	if err != nil {
		return out, err
	}
	return out, nil
}
