// Package levels holds the embedded tile levels. A level is a grid of tile
// ids per layer; ids map to prefabs through TilePrefabs.
package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Dir is searched for level files before the embedded copies.
var Dir = "levels"

// BackgroundLayer is drawn only; it never spawns entities.
const BackgroundLayer = "Background"

type Level struct {
	Name   string  `json:"name"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Next   string  `json:"next,omitempty"`
	Layers []Layer `json:"layers"`
	Doors  []Door  `json:"doors,omitempty"`
}

// Layer is a row-major tile grid, top row first. Zero is empty.
type Layer struct {
	Name string `json:"name"`
	Data []int  `json:"data"`
}

// Door groups the button and door tiles that share a counter. Tiles not
// listed by any door belong to DefaultDoor. Rule is an inline tengo rule;
// Script names a file under prefabs/scripts.
type Door struct {
	ID     string   `json:"id"`
	Rule   string   `json:"rule,omitempty"`
	Script string   `json:"script,omitempty"`
	Tiles  [][2]int `json:"tiles,omitempty"`
}

const DefaultDoor = "door1"

// Tile ids with a dedicated prefab. Decor ids spawn nothing and any other
// non-zero id is a wall.
var TilePrefabs = map[int]string{
	25: "cell_tower",
	27: "player",
	32: "box",
	33: "door",
	34: "button",
	35: "spike",
	36: "exit",
}

var decorTiles = map[int]bool{10: true, 26: true, 31: true}

const WallPrefab = "wall"

// PrefabFor returns the prefab spawned for a tile id, or "" for none.
func PrefabFor(id int) string {
	if id <= 0 || decorTiles[id] {
		return ""
	}
	if name, ok := TilePrefabs[id]; ok {
		return name
	}
	return WallPrefab
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("levels: %s: invalid size %dx%d", l.Name, l.Width, l.Height)
	}
	for _, layer := range l.Layers {
		if len(layer.Data) != l.Width*l.Height {
			return fmt.Errorf("levels: %s: layer %q has %d tiles, want %d", l.Name, layer.Name, len(layer.Data), l.Width*l.Height)
		}
	}
	seen := make(map[string]bool)
	for _, d := range l.Doors {
		if d.ID == "" {
			return fmt.Errorf("levels: %s: door without id", l.Name)
		}
		if seen[d.ID] {
			return fmt.Errorf("levels: %s: duplicate door %q", l.Name, d.ID)
		}
		seen[d.ID] = true
	}
	return nil
}

// DoorAt returns the door id owning the tile at x, y.
func (l *Level) DoorAt(x, y int) string {
	for _, d := range l.Doors {
		for _, t := range d.Tiles {
			if t[0] == x && t[1] == y {
				return d.ID
			}
		}
	}
	return DefaultDoor
}

// Door returns the door definition for id, if any.
func (l *Level) Door(id string) (Door, bool) {
	for _, d := range l.Doors {
		if d.ID == id {
			return d, true
		}
	}
	return Door{}, false
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func LoadLevelFromFS(name string) (*Level, error) {
	name = fileName(name)
	data, err := os.ReadFile(filepath.Join(Dir, name))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(name, ".json")
	}
	return lvl, nil
}

// Names lists the embedded levels in order.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			out = append(out, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	slices.Sort(out)
	return out
}

func fileName(name string) string {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return name
}
