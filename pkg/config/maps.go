// Package config loads map documents and runtime settings from YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/megaverse/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Maps is the configuration document: named maps such as "map1" and "map2".
type Maps map[string]domain.MapData

// LoadMaps reads a map document. Files ending in .json are parsed as JSON,
// anything else as YAML.
func LoadMaps(path string) (Maps, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read maps file: %w", err)
	}
	return ParseMaps(data, filepath.Ext(path))
}

// ParseMaps decodes a map document in the format implied by ext.
func ParseMaps(data []byte, ext string) (Maps, error) {
	var maps Maps
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &maps); err != nil {
			return nil, fmt.Errorf("failed to parse maps json: %w", err)
		}
	} else {
		var raw map[string]yamlMapData
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse maps yaml: %w", err)
		}
		if raw != nil {
			maps = make(Maps, len(raw))
			for name, m := range raw {
				maps[name] = m.toMapData()
			}
		}
	}
	if maps == nil {
		maps = Maps{}
	}
	return maps, nil
}

// yamlMapData mirrors domain.MapData for YAML. Cells are pointers because
// yaml.v3 skips null sequence items when decoding into a string type, which
// would shift every later cell of the row.
type yamlMapData struct {
	Description string      `yaml:"description"`
	Size        domain.Size `yaml:"size"`
	Map         [][]*string `yaml:"map"`
}

func (m yamlMapData) toMapData() domain.MapData {
	var grid domain.Grid
	if m.Map != nil {
		grid = make(domain.Grid, len(m.Map))
		for r, row := range m.Map {
			grid[r] = make([]domain.Cell, len(row))
			for c, v := range row {
				if v != nil {
					grid[r][c] = domain.Cell(*v)
				}
			}
		}
	}
	return domain.MapData{Description: m.Description, Size: m.Size, Map: grid}
}

// Names returns the map names in sorted order.
func (m Maps) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select returns the named map or domain.ErrMapNotFound.
func (m Maps) Select(name string) (domain.MapData, error) {
	data, ok := m[name]
	if !ok {
		return domain.MapData{}, fmt.Errorf("%w: %q (available: %s)", domain.ErrMapNotFound, name, strings.Join(m.Names(), ", "))
	}
	return data, nil
}
