package obj

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/udhos/gwob"
)

// Material is the subset of an MTL material the renderer uses.
type Material struct {
	Name string
	// Color is the diffuse color, used when there is no diffuse map.
	Color       [3]float32
	DiffuseMap  string
	SpecularMap string
}

func (m *Material) resolve(dir string) {
	if m.DiffuseMap != "" && !filepath.IsAbs(m.DiffuseMap) {
		m.DiffuseMap = filepath.Join(dir, m.DiffuseMap)
	}
	if m.SpecularMap != "" && !filepath.IsAbs(m.SpecularMap) {
		m.SpecularMap = filepath.Join(dir, m.SpecularMap)
	}
}

// LoadMTL reads the material library at path. Texture paths are returned as
// written in the file.
func LoadMTL(path string) (map[string]*Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("material library: %w", err)
	}
	mats, err := ParseMTL(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return mats, nil
}

// ParseMTL reads an MTL material library held in memory. A missing or black
// Kd is read as white.
func ParseMTL(data []byte) (map[string]*Material, error) {
	lib, err := gwob.ReadMaterialLibFromBuf(data, parserOptions())
	if err != nil {
		return nil, err
	}
	specular := specularMaps(data)

	mats := make(map[string]*Material, len(lib.Lib))
	for name, src := range lib.Lib {
		mat := &Material{
			Name:        name,
			Color:       src.Kd,
			DiffuseMap:  mapPath(src.MapKd),
			SpecularMap: specular[name],
		}
		if mat.Color == ([3]float32{}) {
			mat.Color = [3]float32{1, 1, 1}
		}
		mats[name] = mat
	}
	return mats, nil
}

// specularMaps collects the map_Ks entry of each material, which gwob skips.
func specularMaps(data []byte) map[string]string {
	maps := map[string]string{}
	var current string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			current = fields[1]
		case "map_Ks":
			if current != "" {
				maps[current] = mapPath(fields[len(fields)-1])
			}
		}
	}
	return maps
}

// mapPath normalizes a texture reference. Options before the file name are
// dropped and Windows separators are converted.
func mapPath(ref string) string {
	fields := strings.Fields(ref)
	if len(fields) == 0 {
		return ""
	}
	return filepath.FromSlash(strings.ReplaceAll(fields[len(fields)-1], `\`, "/"))
}
