// Package cardmeta reads and writes character-card documents embedded
// in image files.
//
// Currently cards stored in PNG tEXt chunks under the "chara"
// (Character Card V2) and "ccv3" (Character Card V3) keywords are
// supported.
package cardmeta

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Card spec envelope names.
const (
	SpecV2 = "chara_card_v2"
	SpecV3 = "chara_card_v3"
)

// Card is a character-card document.
//
// V2 and V3 cards wrap their fields in a spec envelope; legacy V1
// cards are a flat object. Both forms decode into Card.
type Card struct {
	Spec        string    `json:"spec,omitempty"`
	SpecVersion string    `json:"spec_version,omitempty"`
	Data        *CardData `json:"data,omitempty"`

	// Legacy holds the fields of a V1 card, which has no envelope.
	Legacy *CardData `json:"-"`
}

// CardData holds the character fields shared by all card versions.
type CardData struct {
	Name                    string   `json:"name,omitempty"`
	Description             string   `json:"description,omitempty"`
	Personality             string   `json:"personality,omitempty"`
	Scenario                string   `json:"scenario,omitempty"`
	FirstMes                string   `json:"first_mes,omitempty"`
	MesExample              string   `json:"mes_example,omitempty"`
	CreatorNotes            string   `json:"creator_notes,omitempty"`
	SystemPrompt            string   `json:"system_prompt,omitempty"`
	PostHistoryInstructions string   `json:"post_history_instructions,omitempty"`
	AlternateGreetings      []string `json:"alternate_greetings,omitempty"`
	Tags                    []string `json:"tags,omitempty"`
	Creator                 string   `json:"creator,omitempty"`
	CharacterVersion        string   `json:"character_version,omitempty"`
}

// ParseCard parses a card document in V1, V2 or V3 form.
func ParseCard(p []byte) (*Card, error) {
	c := new(Card)
	if err := json.Unmarshal(p, c); err != nil {
		return nil, errors.Wrap(err, "cardmeta: parse card")
	}
	return c, nil
}

func (c *Card) UnmarshalJSON(p []byte) error {
	type card Card // drop methods to avoid recursion
	var v card
	if err := json.Unmarshal(p, &v); err != nil {
		return err
	}
	if v.Spec == "" && v.Data == nil {
		var d CardData
		if err := json.Unmarshal(p, &d); err != nil {
			return err
		}
		v.Legacy = &d
	}
	*c = Card(v)
	return nil
}

// Fields returns the card's data fields regardless of card version.
// It never returns nil.
func (c *Card) Fields() *CardData {
	switch {
	case c.Data != nil:
		return c.Data
	case c.Legacy != nil:
		return c.Legacy
	}
	return &CardData{}
}

// Name returns the character name.
func (c *Card) Name() string { return c.Fields().Name }

// Version reports the card spec name, such as "chara_card_v2".
// It returns "" for legacy V1 cards.
func (c *Card) Version() string { return c.Spec }

// JSON encodes the card in the form it was parsed from: envelope for
// V2/V3 cards, flat object for legacy cards.
func (c *Card) JSON() ([]byte, error) {
	if c.Spec == "" && c.Data == nil && c.Legacy != nil {
		return json.Marshal(c.Legacy)
	}
	return json.Marshal(c)
}
