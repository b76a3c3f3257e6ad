package catalog

import (
	"net/url"

	"lumenstore.com/app/pkg/view"
)

// OptionControl is what choosing an option value does. It is resolved once
// per page build: either a LinkControl to a sibling product or a
// ButtonControl that re-selects on the current product.
type OptionControl interface {
	Base() ControlBase
	isOptionControl()
}

type ControlBase struct {
	Axis      string
	Value     string
	Selected  bool
	Available bool
	Swatch    *view.Swatch
}

// LinkControl navigates to another product page.
type LinkControl struct {
	ControlBase
	Href string
}

// ButtonControl changes one axis of the current selection. Search is the
// encoded selection it leads to.
type ButtonControl struct {
	ControlBase
	Search string
}

func (c LinkControl) Base() ControlBase   { return c.ControlBase }
func (c ButtonControl) Base() ControlBase { return c.ControlBase }
func (LinkControl) isOptionControl()      {}
func (ButtonControl) isOptionControl()    {}

type AxisControls struct {
	Axis     string
	Controls []OptionControl
}

// BuildOptionControls resolves a control for every value of every axis.
// With hideUnavailable set, unavailable values are dropped unless currently
// selected.
func BuildOptionControls(p Product, sel Selection, hideUnavailable bool) []AxisControls {
	out := make([]AxisControls, 0, len(p.Options))
	for _, axis := range p.Options {
		avail := AvailabilityForAxis(axis.Name, axis.ValueNames(), sel, p.Variants)
		ac := AxisControls{Axis: axis.Name, Controls: make([]OptionControl, 0, len(axis.Values))}
		for _, ov := range axis.Values {
			base := ControlBase{
				Axis:      axis.Name,
				Value:     ov.Value,
				Selected:  sel[axis.Name] == ov.Value,
				Available: avail[ov.Value],
				Swatch:    ov.Swatch(),
			}
			if hideUnavailable && !base.Available && !base.Selected {
				continue
			}
			ac.Controls = append(ac.Controls, newControl(p.Handle, ov, base, sel))
		}
		out = append(out, ac)
	}
	return out
}

func newControl(currentHandle string, ov OptionValue, base ControlBase, sel Selection) OptionControl {
	if ov.LinkedProductHandle != "" && ov.LinkedProductHandle != currentHandle {
		return LinkControl{
			ControlBase: base,
			Href:        "/products/" + url.PathEscape(ov.LinkedProductHandle),
		}
	}
	return ButtonControl{ControlBase: base, Search: sel.With(base.Axis, base.Value).Query()}
}

// OptionViews flattens controls for rendering.
func OptionViews(handle string, axes []AxisControls) []view.OptionView {
	out := make([]view.OptionView, 0, len(axes))
	for _, a := range axes {
		ov := view.OptionView{Name: a.Axis, Values: make([]view.OptionValueView, 0, len(a.Controls))}
		for _, c := range a.Controls {
			b := c.Base()
			vv := view.OptionValueView{
				Value:     b.Value,
				Selected:  b.Selected,
				Available: b.Available,
				Swatch:    b.Swatch,
			}
			switch c := c.(type) {
			case LinkControl:
				vv.Kind = "link"
				vv.Href = c.Href
			case ButtonControl:
				vv.Kind = "button"
				vv.Href = "/products/" + url.PathEscape(handle) + "?" + c.Search
			}
			ov.Values = append(ov.Values, vv)
		}
		out = append(out, ov)
	}
	return out
}
