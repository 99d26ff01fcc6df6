package types

import "encoding/json"

// MarshalJSON renders a *Condition as its flat field/operator/value shape.
func (c *Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Field    string `json:"field"`
		Operator string `json:"operator"`
		Value    any    `json:"value"`
	}{c.Field, c.Operator, c.Value})
}

// MarshalJSON renders a *ConditionGroup as its logic/conditions shape.
func (g *ConditionGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Logic      Logic          `json:"logic"`
		Conditions []GroupElement `json:"conditions"`
	}{g.Logic, g.Conditions})
}

// UnmarshalJSON decodes a ConditionGroup, recursively resolving each
// "conditions" entry to either a *Condition or a nested *ConditionGroup.
func (g *ConditionGroup) UnmarshalJSON(data []byte) error {
	var raw struct {
		Logic      Logic             `json:"logic"`
		Conditions []json.RawMessage `json:"conditions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	g.Logic = raw.Logic
	g.Conditions = make([]GroupElement, 0, len(raw.Conditions))
	for _, rawEl := range raw.Conditions {
		el, err := unmarshalGroupElement(rawEl)
		if err != nil {
			return err
		}
		g.Conditions = append(g.Conditions, el)
	}
	return nil
}

func unmarshalGroupElement(data []byte) (GroupElement, error) {
	var probe struct {
		Logic *Logic `json:"logic"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	if probe.Logic != nil {
		group := &ConditionGroup{}
		if err := json.Unmarshal(data, group); err != nil {
			return nil, err
		}
		return group, nil
	}

	cond := &Condition{}
	if err := json.Unmarshal(data, cond); err != nil {
		return nil, err
	}
	return cond, nil
}
