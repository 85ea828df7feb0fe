// Package content loads the card, character and encounter catalog that
// battles are built from.
package content

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Cam-Smith-Games/Card-Game/internal/game"
	"github.com/Cam-Smith-Games/Card-Game/internal/keys"
)

var (
	ErrInvalidCatalog   = errors.New("invalid catalog")
	ErrUnknownCard      = errors.New("unknown card")
	ErrUnknownCharacter = errors.New("unknown character")
	ErrUnknownEncounter = errors.New("unknown encounter")
)

// BuffSpec describes a StatBuff a character starts with.
type BuffSpec struct {
	Stat     string  `yaml:"stat" json:"stat"`
	Op       string  `yaml:"op" json:"op"`
	Value    float64 `yaml:"value" json:"value"`
	Duration int     `yaml:"duration" json:"duration"`
}

// CharacterSpec is a character template. Every battle gets fresh entities
// built from it; the cards in its deck are shared.
type CharacterSpec struct {
	Name        string             `yaml:"name" json:"name"`
	Description string             `yaml:"description" json:"description,omitempty"`
	HP          float64            `yaml:"hp" json:"hp"`
	Deck        []string           `yaml:"deck" json:"deck"`
	Defense     map[string]float64 `yaml:"defense" json:"defense,omitempty"`
	Dodge       *float64           `yaml:"dodge" json:"dodge,omitempty"`
	BaseAP      *int               `yaml:"base_ap" json:"base_ap,omitempty"`
	Control     string             `yaml:"control" json:"control,omitempty"`
	Animations  []string           `yaml:"animations" json:"animations,omitempty"`
	Buffs       []BuffSpec         `yaml:"buffs" json:"buffs,omitempty"`
	Size        *game.Vec          `yaml:"size" json:"size,omitempty"`
}

// Member places a character template in an encounter, optionally under a
// different display name.
type Member struct {
	Template string `yaml:"template" json:"template"`
	Name     string `yaml:"name" json:"name,omitempty"`
}

// EncounterSpec pits the player's side (team 0) against the enemies
// (team 1).
type EncounterSpec struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Player      []Member `yaml:"player" json:"player"`
	Enemies     []Member `yaml:"enemies" json:"enemies"`
}

type catalogFile struct {
	Cards      []game.CardSpec `yaml:"cards"`
	Characters []CharacterSpec `yaml:"characters"`
	Encounters []EncounterSpec `yaml:"encounters"`
}

// Catalog is the validated, read-only content set. It is safe for
// concurrent use.
type Catalog struct {
	cards      []*game.Card
	cardByKey  map[string]*game.Card
	characters []CharacterSpec
	charByKey  map[string]CharacterSpec
	encounters []EncounterSpec
	encByKey   map[string]EncounterSpec
}

// LoadCatalog reads and validates a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(b)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes and validates a YAML catalog. Every card, template
// and encounter is checked up front so authoring mistakes never reach a
// running battle.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{
		cardByKey: make(map[string]*game.Card, len(f.Cards)),
		charByKey: make(map[string]CharacterSpec, len(f.Characters)),
		encByKey:  make(map[string]EncounterSpec, len(f.Encounters)),
	}
	for _, spec := range f.Cards {
		card, err := game.NewCard(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
		if _, dup := c.cardByKey[card.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate card %q", ErrInvalidCatalog, card.Key)
		}
		c.cardByKey[card.Key] = card
		c.cards = append(c.cards, card)
	}

	for _, ch := range f.Characters {
		k := keys.CardKey(ch.Name)
		if k == "" {
			return nil, fmt.Errorf("%w: character without name", ErrInvalidCatalog)
		}
		if _, dup := c.charByKey[k]; dup {
			return nil, fmt.Errorf("%w: duplicate character %q", ErrInvalidCatalog, ch.Name)
		}
		c.charByKey[k] = ch
		c.characters = append(c.characters, ch)
		if _, err := c.NewEntity(ch.Name, ""); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
	}

	for _, enc := range f.Encounters {
		k := keys.CardKey(enc.Name)
		if k == "" {
			return nil, fmt.Errorf("%w: encounter without name", ErrInvalidCatalog)
		}
		if _, dup := c.encByKey[k]; dup {
			return nil, fmt.Errorf("%w: duplicate encounter %q", ErrInvalidCatalog, enc.Name)
		}
		if len(enc.Player) == 0 || len(enc.Enemies) == 0 {
			return nil, fmt.Errorf("%w: encounter %q needs both sides", ErrInvalidCatalog, enc.Name)
		}
		for _, m := range append(append([]Member(nil), enc.Player...), enc.Enemies...) {
			if _, ok := c.charByKey[keys.CardKey(m.Template)]; !ok {
				return nil, fmt.Errorf("%w: encounter %q: %w %q", ErrInvalidCatalog, enc.Name, ErrUnknownCharacter, m.Template)
			}
		}
		c.encByKey[k] = enc
		c.encounters = append(c.encounters, enc)
	}
	return c, nil
}

// Cards lists cards in catalog order.
func (c *Catalog) Cards() []*game.Card { return append([]*game.Card(nil), c.cards...) }

// Card looks a card up by name or key.
func (c *Catalog) Card(name string) (*game.Card, bool) {
	card, ok := c.cardByKey[keys.CardKey(name)]
	return card, ok
}

// Characters lists templates in catalog order.
func (c *Catalog) Characters() []CharacterSpec {
	return append([]CharacterSpec(nil), c.characters...)
}

// Encounters lists encounters in catalog order.
func (c *Catalog) Encounters() []EncounterSpec {
	return append([]EncounterSpec(nil), c.encounters...)
}

// Encounter looks an encounter up by name.
func (c *Catalog) Encounter(name string) (EncounterSpec, bool) {
	e, ok := c.encByKey[keys.CardKey(name)]
	return e, ok
}

// NewEntity builds a fresh entity from a template. An empty name keeps the
// template's name.
func (c *Catalog) NewEntity(template, name string) (*game.Entity, error) {
	ch, ok := c.charByKey[keys.CardKey(template)]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCharacter, template)
	}
	deck := make([]*game.Card, 0, len(ch.Deck))
	for _, ref := range ch.Deck {
		card, ok := c.Card(ref)
		if !ok {
			return nil, fmt.Errorf("character %q: %w %q", ch.Name, ErrUnknownCard, ref)
		}
		deck = append(deck, card)
	}
	def := make(game.Defense, len(ch.Defense))
	for k, v := range ch.Defense {
		el, err := game.ParseElement(k)
		if err != nil {
			return nil, fmt.Errorf("character %q: %w", ch.Name, err)
		}
		def[el] = v
	}
	buffs := make([]game.Buff, 0, len(ch.Buffs))
	for _, bs := range ch.Buffs {
		b, err := game.NewStatBuff(bs.Stat, bs.Op, bs.Value, bs.Duration)
		if err != nil {
			return nil, fmt.Errorf("character %q: %w", ch.Name, err)
		}
		buffs = append(buffs, b)
	}
	if name == "" {
		name = ch.Name
	}
	spec := game.EntitySpec{
		Name:       name,
		HP:         ch.HP,
		Deck:       deck,
		Defense:    def,
		Dodge:      ch.Dodge,
		BaseAP:     ch.BaseAP,
		Buffs:      buffs,
		Control:    ch.Control,
		Animations: ch.Animations,
	}
	if ch.Size != nil {
		spec.Size = *ch.Size
	}
	return game.NewEntity(spec)
}

// BuildEncounter creates fresh teams for a battle: team 0 is the player's
// side.
func (c *Catalog) BuildEncounter(name string) ([2][]*game.Entity, error) {
	var teams [2][]*game.Entity
	enc, ok := c.Encounter(name)
	if !ok {
		return teams, fmt.Errorf("%w %q", ErrUnknownEncounter, name)
	}
	for i, side := range [][]Member{enc.Player, enc.Enemies} {
		for _, m := range side {
			e, err := c.NewEntity(m.Template, m.Name)
			if err != nil {
				return teams, err
			}
			teams[i] = append(teams[i], e)
		}
	}
	return teams, nil
}
