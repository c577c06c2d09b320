package instrument

import (
	"encoding/json"
	"fmt"
)

type envelope struct {
	Kind       Kind            `json:"kind"`
	Instrument json.RawMessage `json:"instrument"`
}

// Marshal encodes an instrument inside a kind-tagged envelope.
func Marshal(inst Instrument) ([]byte, error) {
	body, err := json.Marshal(inst)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", inst.Kind(), err)
	}
	return json.MarshalIndent(envelope{Kind: inst.Kind(), Instrument: body}, "", "  ")
}

// Unmarshal decodes an envelope written by Marshal.
func Unmarshal(data []byte) (Instrument, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding instrument envelope: %w", err)
	}
	if _, err := ParseKind(string(env.Kind)); err != nil {
		return nil, err
	}
	if len(env.Instrument) == 0 {
		return nil, fmt.Errorf("instrument envelope for %s has no body", env.Kind)
	}

	inst, err := decode(env.Kind, env.Instrument)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", env.Kind, err)
	}
	return inst, nil
}

func decode(k Kind, body []byte) (Instrument, error) {
	switch k {
	case KindRubric:
		var v Rubric
		err := json.Unmarshal(body, &v)
		return v, err
	case KindChecklist:
		var v Checklist
		err := json.Unmarshal(body, &v)
		return v, err
	case KindRatingScale:
		var v RatingScale
		err := json.Unmarshal(body, &v)
		return v, err
	case KindObservationGuide:
		var v ObservationGuide
		err := json.Unmarshal(body, &v)
		return v, err
	case KindExam:
		var v Exam
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		for _, q := range v.Questions {
			if _, err := ParseQuestionType(string(q.Type)); err != nil {
				return nil, err
			}
		}
		return v, nil
	}
	return nil, fmt.Errorf("unknown instrument kind %q", k)
}
