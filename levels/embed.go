package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

//go:embed *.json
var LevelsFS embed.FS

// Dir is checked before the embedded levels.
var Dir = "levels"

type Vec3 [3]float64

func (v Vec3) Vec() mgl64.Vec3 { return mgl64.Vec3(v) }

// Level is static geometry plus the characters placed in it. Y is up.
type Level struct {
	Name     string   `json:"name"`
	Ground   *Ground  `json:"ground,omitempty"`
	Boxes    []Box    `json:"boxes,omitempty"`
	Slopes   []Slope  `json:"slopes,omitempty"`
	Entities []Entity `json:"entities,omitempty"`
}

type Ground struct {
	Y          float64 `json:"y"`
	HalfExtent float64 `json:"half_extent"`
}

type Box struct {
	Center Vec3   `json:"center"`
	Size   Vec3   `json:"size"`
	Color  string `json:"color,omitempty"`
}

type Slope struct {
	From  Vec3    `json:"from"`
	To    Vec3    `json:"to"`
	Width float64 `json:"width"`
}

// Entity places a prefab. Type "player" marks the keyboard character.
type Entity struct {
	Type   string  `json:"type"`
	Prefab string  `json:"prefab"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
}

func (e Entity) Position() mgl64.Vec3 {
	return mgl64.Vec3{e.X, e.Y, e.Z}
}

// Load reads a level by name; the .json suffix is optional.
func Load(name string) (*Level, error) {
	clean := filepath.ToSlash(strings.TrimSpace(name))
	clean = strings.TrimPrefix(clean, "levels/")
	if !strings.HasSuffix(clean, ".json") {
		clean += ".json"
	}

	data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean)))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", clean, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Ground != nil && l.Ground.HalfExtent <= 0 {
		return fmt.Errorf("levels: %s: ground half_extent must be positive", l.Name)
	}
	for i, b := range l.Boxes {
		if b.Size[0] <= 0 || b.Size[1] <= 0 || b.Size[2] <= 0 {
			return fmt.Errorf("levels: %s: box %d has size %v", l.Name, i, b.Size)
		}
	}
	for i, s := range l.Slopes {
		if s.Width <= 0 || s.From == s.To {
			return fmt.Errorf("levels: %s: slope %d is degenerate", l.Name, i)
		}
	}
	for i, e := range l.Entities {
		if strings.TrimSpace(e.Prefab) == "" {
			return fmt.Errorf("levels: %s: entity %d has no prefab", l.Name, i)
		}
	}
	return nil
}

// Spawns returns the entities of the given type.
func (l *Level) Spawns(typ string) []Entity {
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
