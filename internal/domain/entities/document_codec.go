package entities

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// wireBlock is the union of every block field as it appears on the wire
type wireBlock struct {
	Type     BlockKind    `yaml:"type" json:"type"`
	Items    []BulletItem `yaml:"items" json:"items"`
	Text     string       `yaml:"text" json:"text"`
	Language string       `yaml:"language" json:"language"`
	Code     string       `yaml:"code" json:"code"`
	Src      string       `yaml:"src" json:"src"`
	Alt      string       `yaml:"alt" json:"alt"`
}

type wireBullets struct {
	Type  BlockKind    `yaml:"type" json:"type"`
	Items []BulletItem `yaml:"items" json:"items"`
}

type wireText struct {
	Type BlockKind `yaml:"type" json:"type"`
	Text string    `yaml:"text" json:"text"`
}

type wireCode struct {
	Type     BlockKind `yaml:"type" json:"type"`
	Language string    `yaml:"language" json:"language"`
	Code     string    `yaml:"code" json:"code"`
}

type wireImage struct {
	Type BlockKind `yaml:"type" json:"type"`
	Src  string    `yaml:"src" json:"src"`
	Alt  string    `yaml:"alt" json:"alt"`
}

func toWire(block ContentBlock) (interface{}, error) {
	switch b := block.(type) {
	case BulletList:
		items := b.Items
		if items == nil {
			items = []BulletItem{}
		}
		return wireBullets{Type: KindBullets, Items: items}, nil
	case Paragraph:
		return wireText{Type: KindText, Text: b.Text}, nil
	case CodeBlock:
		return wireCode{Type: KindCode, Language: b.Language, Code: b.Code}, nil
	case Image:
		return wireImage{Type: KindImage, Src: b.Src, Alt: b.Alt}, nil
	default:
		return nil, fmt.Errorf("cannot encode block of type %T", block)
	}
}

func fromWire(w wireBlock) (ContentBlock, error) {
	switch w.Type {
	case KindBullets:
		return BulletList{Items: w.Items}, nil
	case KindText:
		return Paragraph{Text: w.Text}, nil
	case KindCode:
		lang := w.Language
		if lang == "" {
			lang = DefaultCodeLanguage
		}
		return CodeBlock{Language: lang, Code: w.Code}, nil
	case KindImage:
		return Image{Src: w.Src, Alt: w.Alt}, nil
	default:
		return nil, fmt.Errorf("unknown block type %q", w.Type)
	}
}

func (b Blocks) wire() ([]interface{}, error) {
	out := make([]interface{}, 0, len(b))
	for i, block := range b {
		w, err := toWire(block)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		out = append(out, w)
	}
	return out, nil
}

func blocksFromWire(ws []wireBlock) (Blocks, error) {
	out := make(Blocks, 0, len(ws))
	for i, w := range ws {
		block, err := fromWire(w)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		out = append(out, block)
	}
	return out, nil
}

// MarshalJSON encodes blocks with their type tag
func (b Blocks) MarshalJSON() ([]byte, error) {
	ws, err := b.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(ws)
}

// UnmarshalJSON decodes tagged blocks
func (b *Blocks) UnmarshalJSON(data []byte) error {
	var ws []wireBlock
	if err := json.Unmarshal(data, &ws); err != nil {
		return err
	}
	blocks, err := blocksFromWire(ws)
	if err != nil {
		return err
	}
	*b = blocks
	return nil
}

// MarshalYAML encodes blocks with their type tag
func (b Blocks) MarshalYAML() (interface{}, error) {
	return b.wire()
}

// UnmarshalYAML decodes tagged blocks
func (b *Blocks) UnmarshalYAML(value *yaml.Node) error {
	var ws []wireBlock
	if err := value.Decode(&ws); err != nil {
		return err
	}
	blocks, err := blocksFromWire(ws)
	if err != nil {
		return err
	}
	*b = blocks
	return nil
}
